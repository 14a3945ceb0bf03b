package cronwheel

import "time"

// ObservabilityHooks provides optional callbacks for monitoring scheduler
// activity. Nil callbacks are safely ignored. Hooks are called
// synchronously on the goroutine that runs the task (OnTaskStart,
// OnTaskComplete, and OnSchedule on auto-rearm) or the caller's goroutine
// (OnSchedule on Add, OnCancel), so implementations should be lightweight
// or dispatch elsewhere for expensive work.
//
// Adapted from the teacher library's observability.go, generalized from
// per-entry job hooks to per-task-id cron hooks.
//
// Example with Prometheus:
//
//	hooks := cronwheel.ObservabilityHooks{
//	    OnTaskStart: func(id string, scheduled time.Time) {
//	        tasksStarted.WithLabelValues(id).Inc()
//	    },
//	    OnTaskComplete: func(id string, dur time.Duration, recovered any) {
//	        taskDuration.WithLabelValues(id).Observe(dur.Seconds())
//	        if recovered != nil {
//	            taskPanics.WithLabelValues(id).Inc()
//	        }
//	    },
//	}
type ObservabilityHooks struct {
	// OnTaskStart is called immediately before a task body begins execution.
	OnTaskStart func(taskID string, scheduledTime time.Time)

	// OnTaskComplete is called when a task body finishes execution.
	// recovered holds the value from recover() if the body panicked, or nil.
	OnTaskComplete func(taskID string, duration time.Duration, recovered any)

	// OnSchedule is called whenever a task's next fire instant is computed,
	// either on Add or on auto-rearm after a firing.
	OnSchedule func(taskID string, nextRun time.Time)

	// OnCancel is called when Scheduler.Cancel actually transitions a
	// handle from INIT to CANCELLED (not on idempotent no-op cancels).
	OnCancel func(taskID string)
}

func (h *ObservabilityHooks) callOnTaskStart(taskID string, scheduled time.Time) {
	if h != nil && h.OnTaskStart != nil {
		h.OnTaskStart(taskID, scheduled)
	}
}

func (h *ObservabilityHooks) callOnTaskComplete(taskID string, dur time.Duration, recovered any) {
	if h != nil && h.OnTaskComplete != nil {
		h.OnTaskComplete(taskID, dur, recovered)
	}
}

func (h *ObservabilityHooks) callOnSchedule(taskID string, next time.Time) {
	if h != nil && h.OnSchedule != nil {
		h.OnSchedule(taskID, next)
	}
}

func (h *ObservabilityHooks) callOnCancel(taskID string) {
	if h != nil && h.OnCancel != nil {
		h.OnCancel(taskID)
	}
}
