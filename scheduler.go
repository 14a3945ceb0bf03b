package cronwheel

import (
	"sync"
	"sync/atomic"
	"time"
)

// Scheduler is the facade described in spec.md §4.D (component D): it
// accepts a cron task, asks a CronExpression for the next fire instant,
// submits the delay to a HashedWheelTimer, tracks the resulting handle in
// a HandleRegistry, and re-arms the task for its next cron instant after
// each firing.
//
// Grounded in the teacher library's Cron facade (cron.go: AddJob/Stop and
// the run loop's auto-rearm-via-heap-reinsert pattern), adapted from
// heap-based rescheduling to the wheel's submit/re-submit cycle.
type Scheduler struct {
	location *time.Location
	logger   Logger
	chain    Chain
	hooks    *ObservabilityHooks

	wheel     *HashedWheelTimer
	wheelOpts []WheelOption
	ownsWheel bool

	registry *HandleRegistry

	exprsMu sync.Mutex
	exprs   map[string]string

	parser Parser

	shuttingDown atomic.Bool
	startOnce    sync.Once
}

// New constructs a Scheduler. The underlying HashedWheelTimer is started
// immediately unless WithSchedulerWheel supplies an already-running one.
func New(opts ...Option) *Scheduler {
	s := &Scheduler{
		location: time.Local,
		logger:   DefaultLogger,
		registry: NewHandleRegistry(),
		exprs:    make(map[string]string),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.parser = NewParser(WithParserLocation(s.location))

	if s.wheel == nil {
		s.wheel = NewHashedWheelTimer(s.wheelOpts...)
		s.ownsWheel = true
	}
	s.startOnce.Do(s.wheel.Start)
	return s
}

// Add parses cron, computes its first fire instant after now, and submits
// it to the wheel. If id already has a live entry, the prior handle is
// cancelled once the new one is registered (spec.md §4.C). Returns an
// *AddError wrapping ErrExpressionExhausted, a *ParseError, or
// ErrShutdown.
func (s *Scheduler) Add(id, cron string, body Task) error {
	if s.shuttingDown.Load() {
		return newAddError(id, ErrShutdown)
	}

	expr, err := s.parser.Parse(cron)
	if err != nil {
		return newAddError(id, err)
	}

	if err := s.schedule(id, cron, expr, body); err != nil {
		return newAddError(id, err)
	}
	return nil
}

// schedule computes expr's next fire instant after now, submits the
// wrapped body to the wheel, and installs the resulting handle in the
// registry, cancelling whatever was there before.
func (s *Scheduler) schedule(id, cron string, expr *CronExpression, body Task) error {
	now := s.wheel.clock.Now()
	next, ok := expr.NextValidAfter(now)
	if !ok {
		return ErrExpressionExhausted
	}
	delay := next.Sub(now)
	if delay < 0 {
		delay = 0
	}

	wrapped := s.wrapForRearm(id, expr, body)
	handle, err := s.wheel.Submit(wrapped, delay)
	if err != nil {
		return err
	}

	s.exprsMu.Lock()
	s.exprs[id] = cron
	s.exprsMu.Unlock()

	if prev := s.registry.Put(id, handle); prev != nil {
		s.wheel.Cancel(prev)
	}

	s.hooks.callOnSchedule(id, next)
	s.logger.Info("scheduled", "id", id, "next", next)
	return nil
}

// wrapForRearm applies the scheduler-wide Chain to body, then adds the
// auto-rearm behavior spec.md §4.D requires: after the task body returns
// or panics, the facade re-invokes scheduling for expr's subsequent
// instant, unless shutdown is in progress. A panic is recovered here,
// reported to OnTaskComplete, and re-raised after rearming.
func (s *Scheduler) wrapForRearm(id string, expr *CronExpression, body Task) Task {
	chained := s.chain.Then(body)
	return func(h *TimeoutHandle) {
		start := time.Now()
		s.hooks.callOnTaskStart(id, h.Deadline())

		var recovered any
		func() {
			defer func() { recovered = recover() }()
			chained(h)
		}()
		s.hooks.callOnTaskComplete(id, time.Since(start), recovered)

		if !s.shuttingDown.Load() {
			s.exprsMu.Lock()
			cron := s.exprs[id]
			s.exprsMu.Unlock()
			if err := s.schedule(id, cron, expr, body); err != nil {
				s.logger.Error(err, "rearm failed", "id", id)
			}
		}

		if recovered != nil {
			panic(recovered)
		}
	}
}

// Cancel cancels the task registered under id. Returns true if either no
// task was registered (idempotent no-op) or the registered handle's
// INIT -> CANCELLED transition succeeded.
func (s *Scheduler) Cancel(id string) bool {
	handle, ok := s.registry.Get(id)
	if !ok {
		return true
	}
	cancelled := s.wheel.Cancel(handle)
	if cancelled {
		s.registry.Remove(id)
		s.exprsMu.Lock()
		delete(s.exprs, id)
		s.exprsMu.Unlock()
		s.hooks.callOnCancel(id)
	}
	return cancelled
}

// Shutdown stops accepting new tasks, drains the wheel, and returns the
// ids of tasks that were still pending. A wheel supplied with
// WithSchedulerWheel is neither shut down nor drained, and Shutdown then
// returns nil.
func (s *Scheduler) Shutdown() []string {
	s.shuttingDown.Store(true)
	if !s.ownsWheel {
		return nil
	}
	unfired := s.wheel.Shutdown()

	ids := make([]string, 0, len(unfired))
	snap := s.registry.Snapshot()
	for id, h := range snap {
		for _, u := range unfired {
			if u == h {
				ids = append(ids, id)
				break
			}
		}
	}
	return ids
}
