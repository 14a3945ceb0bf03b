/*
Package cronwheel implements a cron-driven deferred task scheduler built on
a hashed timing wheel.

# Installation

	go get github.com/netresearch/cronwheel

It requires Go 1.25 or later.

# Usage

	s := cronwheel.New()
	defer s.Shutdown()

	s.Add("backup", "0 0 3 * * ?", func(h *cronwheel.TimeoutHandle) {
		runBackup()
	})

	s.Cancel("backup")

Tasks are re-armed automatically: once a task's body returns, the Scheduler
computes the cron expression's next fire instant and resubmits it, so a
single Add call keeps firing on schedule until Cancel or Shutdown.

# Cron Expression Format

A cron string is 6 or 7 whitespace-separated fields:

	seconds minutes hours day-of-month month day-of-week [year]

	Field         | Range              | Special characters
	------------- | ------------------- | --------------------
	seconds       | 0-59                | * , - /
	minutes       | 0-59                | * , - /
	hours         | 0-23                | * , - /
	day-of-month  | 1-31                | * , - / ? L L-n dW
	month         | 1-12 or JAN-DEC     | * , - /
	day-of-week   | 1-7 (1=Sun) or SUN-SAT | * , - / ? L d#n
	year          | 1970-2199           | * , - /

Exactly one of day-of-month and day-of-week must be "?": the field that is
not "?" is the one that constrains matching days.

	dW   - the weekday nearest to day d, without crossing a month boundary
	L    - last day of the month (day-of-month) or last occurrence of that
	       weekday in the month (day-of-week)
	L-n  - n days before the last day of the month
	d#n  - the n-th occurrence of weekday d in the month

# Observability Hooks

ObservabilityHooks provide integration points for metrics and tracing:

	hooks := cronwheel.ObservabilityHooks{
		OnSchedule: func(id string, next time.Time) { ... },
		OnTaskStart: func(id string, scheduled time.Time) { ... },
		OnTaskComplete: func(id string, dur time.Duration, recovered any) { ... },
	}
	s := cronwheel.New(cronwheel.WithSchedulerObservability(hooks))

# Task Wrappers

Cross-cutting task behavior composes via TaskWrapper chains, applied with
WithSchedulerChain:

	s := cronwheel.New(cronwheel.WithSchedulerChain(
		cronwheel.Recover(logger),
		cronwheel.RetryWithBackoff(logger, 3, time.Second, time.Minute, 2.0),
		cronwheel.SkipIfStillRunning(logger),
	))

# Testing with FakeClock

FakeClock lets tests advance the wheel's tick loop deterministically
instead of sleeping in real time:

	clock := cronwheel.NewFakeClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	s := cronwheel.New(cronwheel.WithSchedulerWheelOptions(cronwheel.WithWheelClock(clock)))
	defer s.Shutdown()

	executed := make(chan struct{})
	s.Add("t", "* * * * * ?", func(h *cronwheel.TimeoutHandle) { close(executed) })
	clock.Advance(time.Second)
	<-executed

# Non-goals

This package does not persist pending tasks across restart, coordinate
scheduling across processes, guarantee sub-millisecond dispatch accuracy,
recover missed fires after a process restart, or pre-empt a running task
body. It implements the FIRE_ONCE_NOW misfire policy only: a late-starting
handle fires once, on the first tick after its deadline, rather than
replaying or dropping the missed fire.
*/
package cronwheel
