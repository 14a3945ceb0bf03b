package cronwheel

import (
	"context"

	"golang.org/x/time/rate"
)

// AdmissionController gates calls to Scheduler.Add with a token-bucket
// rate limiter, the bounded-admission layer spec.md §5 says callers must
// build above the facade ("the pending queue grows unboundedly; callers
// that must bound it layer admission control above the facade").
//
// Grounded in inipew-pewbot/pkg/logx's TelegramConfig.RatePerSec, which
// gates outbound log lines with golang.org/x/time/rate the same way this
// gates inbound Add calls.
type AdmissionController struct {
	scheduler *Scheduler
	limiter   *rate.Limiter
}

// NewAdmissionController wraps scheduler with a limiter allowing up to
// ratePerSec Add calls per second, admitting at most burst calls at once.
func NewAdmissionController(scheduler *Scheduler, ratePerSec float64, burst int) *AdmissionController {
	return &AdmissionController{
		scheduler: scheduler,
		limiter:   rate.NewLimiter(rate.Limit(ratePerSec), burst),
	}
}

// Add admits task through the rate limiter before delegating to the
// wrapped Scheduler's Add. Blocks until a token is available or ctx is
// done.
func (a *AdmissionController) Add(ctx context.Context, id, cron string, body Task) error {
	if err := a.limiter.Wait(ctx); err != nil {
		return err
	}
	return a.scheduler.Add(id, cron, body)
}

// TryAdd admits task only if a token is immediately available, without
// blocking. Returns false if the call was throttled.
func (a *AdmissionController) TryAdd(id, cron string, body Task) (admitted bool, err error) {
	if !a.limiter.Allow() {
		return false, nil
	}
	return true, a.scheduler.Add(id, cron, body)
}
