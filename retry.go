package cronwheel

import (
	"fmt"
	"math"
	"math/rand/v2"
	"runtime"
	"time"
)

// jitterFraction is the maximum fraction of the computed delay applied as
// jitter, to avoid synchronized retries across many tasks.
const jitterFraction = 0.1

// RetryWithBackoff wraps a task to retry on panic with exponential
// backoff, the Task analogue of the teacher library's RetryWithBackoff
// job wrapper. A task "fails" if it panics.
//
//   - maxRetries == 0: execute once, no retries.
//   - maxRetries > 0: retry up to maxRetries times (maxRetries+1 attempts).
//   - maxRetries < 0: unlimited retries.
//
// This is distinct from the wheel's own re-arm behavior (scheduler.go):
// RetryWithBackoff retries within a single firing, while re-arming
// schedules the next cron instant regardless of how this firing went.
func RetryWithBackoff(logger Logger, maxRetries int, initialDelay, maxDelay time.Duration, multiplier float64) TaskWrapper {
	return func(task Task) Task {
		return func(h *TimeoutHandle) {
			maxAttempts := maxRetries + 1
			if maxRetries < 0 {
				maxAttempts = 0
			}

			var lastPanic any
			for attempt := 1; maxAttempts == 0 || attempt <= maxAttempts; attempt++ {
				if attempt > 1 {
					delay := backoffDelay(attempt, initialDelay, maxDelay, multiplier)
					logger.Info("retry", "attempt", attempt, "delay", delay, "last_panic", lastPanic)
					time.Sleep(delay)
				}

				lastPanic = safeRun(task, h)
				if lastPanic == nil {
					if attempt > 1 {
						logger.Info("retry succeeded", "attempt", attempt)
					}
					return
				}
			}

			err, ok := lastPanic.(error)
			if !ok {
				err = fmt.Errorf("%v", lastPanic)
			}
			logger.Error(err, "retry exhausted", "attempts", maxAttempts)
			panic(lastPanic)
		}
	}
}

func backoffDelay(attempt int, initialDelay, maxDelay time.Duration, multiplier float64) time.Duration {
	delay := time.Duration(float64(initialDelay) * math.Pow(multiplier, float64(attempt-2)))
	if delay > maxDelay {
		delay = maxDelay
	}
	jitter := time.Duration(float64(delay) * jitterFraction * (2*rand.Float64() - 1))
	return delay + jitter
}

// safeRun executes task, converting a panic into a returned value carrying
// the stack trace, so callers can handle it without unwinding the stack.
func safeRun(task Task, h *TimeoutHandle) (panicValue any) {
	defer func() {
		if r := recover(); r != nil {
			const size = 64 << 10
			buf := make([]byte, size)
			buf = buf[:runtime.Stack(buf, false)]
			panicValue = &PanicWithStack{Value: r, Stack: buf}
		}
	}()
	task(h)
	return nil
}

// PanicWithStack wraps a panic value with the stack trace captured at the
// point of panic, so it can be re-panicked without losing debuggability.
type PanicWithStack struct {
	Value any
	Stack []byte
}

func (p *PanicWithStack) Error() string { return fmt.Sprintf("panic: %v", p.Value) }

func (p *PanicWithStack) Unwrap() error {
	if err, ok := p.Value.(error); ok {
		return err
	}
	return nil
}
