package cronwheel

import (
	"fmt"
	"runtime"
	"sync"
	"time"
)

// TaskWrapper decorates a Task with cross-cutting behavior, the Task
// analogue of the teacher library's JobWrapper.
type TaskWrapper func(Task) Task

// Chain is a sequence of TaskWrappers applied to a task body before it is
// submitted to the wheel.
type Chain struct {
	wrappers []TaskWrapper
}

// NewChain returns a Chain composed of the given wrappers, applied
// outermost-first: NewChain(m1, m2).Then(t) runs as m1(m2(t)).
func NewChain(w ...TaskWrapper) Chain {
	return Chain{wrappers: w}
}

// Then wraps task with every wrapper in the chain.
func (c Chain) Then(task Task) Task {
	for i := range c.wrappers {
		task = c.wrappers[len(c.wrappers)-i-1](task)
	}
	return task
}

// Recover catches panics in the wrapped task and logs them with logger,
// so a single misbehaving task body never takes down the wheel's worker
// goroutine. Adapted from the teacher library's Recover wrapper.
func Recover(logger Logger) TaskWrapper {
	return func(task Task) Task {
		return func(h *TimeoutHandle) {
			defer func() {
				if r := recover(); r != nil {
					const size = 64 << 10
					buf := make([]byte, size)
					buf = buf[:runtime.Stack(buf, false)]
					err, ok := r.(error)
					if !ok {
						err = fmt.Errorf("%v", r)
					}
					logger.Error(err, "task panicked", "panic_type", fmt.Sprintf("%T", r), "stack", string(buf))
				}
			}()
			task(h)
		}
	}
}

// SkipIfStillRunning skips an invocation of task if a previous invocation
// of the same wrapped task is still running. Skips are logged at Info.
func SkipIfStillRunning(logger Logger) TaskWrapper {
	return func(task Task) Task {
		ch := make(chan struct{}, 1)
		ch <- struct{}{}
		return func(h *TimeoutHandle) {
			select {
			case v := <-ch:
				defer func() { ch <- v }()
				task(h)
			default:
				logger.Info("skip", "reason", "still running")
			}
		}
	}
}

// DelayIfStillRunning serializes invocations of task, delaying a new
// invocation until the previous one completes. Delays over a minute are
// logged at Info.
func DelayIfStillRunning(logger Logger) TaskWrapper {
	return func(task Task) Task {
		var mu sync.Mutex
		return func(h *TimeoutHandle) {
			start := time.Now()
			mu.Lock()
			defer mu.Unlock()
			if d := time.Since(start); d > time.Minute {
				logger.Info("delay", "duration", d)
			}
			task(h)
		}
	}
}
