package cronwheel

import "time"

// TaskSnapshot is a read-only view of one registered task, returned by
// Scheduler.Tasks and Scheduler.Task.
type TaskSnapshot struct {
	ID       string
	Cron     string
	Deadline time.Time
	State    handleState
}

// Tasks returns a snapshot of every task currently registered with s, in
// no particular order.
func (s *Scheduler) Tasks() []TaskSnapshot {
	snap := s.registry.Snapshot()
	out := make([]TaskSnapshot, 0, len(snap))
	for id, h := range snap {
		out = append(out, TaskSnapshot{
			ID:       id,
			Cron:     s.exprOf(id),
			Deadline: h.Deadline(),
			State:    h.State(),
		})
	}
	return out
}

// Task returns the snapshot for a single task id, if registered.
func (s *Scheduler) Task(id string) (TaskSnapshot, bool) {
	h, ok := s.registry.Get(id)
	if !ok {
		return TaskSnapshot{}, false
	}
	return TaskSnapshot{
		ID:       id,
		Cron:     s.exprOf(id),
		Deadline: h.Deadline(),
		State:    h.State(),
	}, true
}

// NextN returns the next n fire instants of expr, starting strictly after
// t. Returns nil if expr is nil or n <= 0. Useful for calendar previews
// and debugging cron strings before committing them to a Scheduler.
//
// Adapted from the teacher library's introspect.go NextN, generalized from
// the teacher's heap-scheduled Schedule interface to this package's
// CronExpression.
func NextN(expr *CronExpression, t time.Time, n int) []time.Time {
	if expr == nil || n <= 0 {
		return nil
	}
	out := make([]time.Time, 0, n)
	current := t
	for range n {
		next, ok := expr.NextValidAfter(current)
		if !ok {
			break
		}
		out = append(out, next)
		current = next
	}
	return out
}

// Between returns every fire instant of expr in the half-open range
// [start, end), bounded by limit (0 means unbounded).
func Between(expr *CronExpression, start, end time.Time, limit int) []time.Time {
	if expr == nil || !start.Before(end) {
		return nil
	}
	var out []time.Time
	current := start.Add(-time.Nanosecond)
	for {
		next, ok := expr.NextValidAfter(current)
		if !ok || !next.Before(end) {
			break
		}
		out = append(out, next)
		current = next
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}

// exprOf returns the original cron string a task id was registered with,
// or "" if unknown. Scheduler keeps this alongside the registry purely for
// introspection; it does not affect scheduling.
func (s *Scheduler) exprOf(id string) string {
	s.exprsMu.Lock()
	defer s.exprsMu.Unlock()
	return s.exprs[id]
}
