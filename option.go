package cronwheel

import "time"

// Option configures a Scheduler at construction time.
type Option func(*Scheduler)

// WithSchedulerLocation overrides the time zone cron expressions without
// an explicit TZ are interpreted in. Defaults to time.Local.
func WithSchedulerLocation(loc *time.Location) Option {
	return func(s *Scheduler) { s.location = loc }
}

// WithSchedulerLogger sets the Logger used for Add/Cancel/Shutdown
// events. Defaults to DefaultLogger.
func WithSchedulerLogger(logger Logger) Option {
	return func(s *Scheduler) { s.logger = logger }
}

// WithSchedulerChain applies TaskWrappers to every task added to this
// Scheduler; the first wrapper given is the outermost. See chain.go for
// the provided wrappers.
func WithSchedulerChain(wrappers ...TaskWrapper) Option {
	return func(s *Scheduler) { s.chain = NewChain(wrappers...) }
}

// WithSchedulerObservability configures hooks fired around scheduling and
// execution events.
func WithSchedulerObservability(hooks ObservabilityHooks) Option {
	return func(s *Scheduler) { s.hooks = &hooks }
}

// WithSchedulerWheel supplies a pre-configured HashedWheelTimer instead of
// one built from WithWheelSize/WithTickDuration/WithWheelClock. Useful
// when the wheel's own options (executor, wheel-level logger) need finer
// control than the Scheduler's constructor exposes.
func WithSchedulerWheel(wheel *HashedWheelTimer) Option {
	return func(s *Scheduler) { s.wheel = wheel }
}

// WithSchedulerWheelOptions forwards options to the wheel constructed by
// New, when WithSchedulerWheel is not used.
func WithSchedulerWheelOptions(opts ...WheelOption) Option {
	return func(s *Scheduler) { s.wheelOpts = append(s.wheelOpts, opts...) }
}
