package cronwheel

import (
	"testing"
	"time"
)

func TestRealClockNow(t *testing.T) {
	c := RealClock{}
	before := time.Now()
	now := c.Now()
	after := time.Now()
	if now.Before(before) || now.After(after) {
		t.Errorf("Now() = %v, want between %v and %v", now, before, after)
	}
}

func TestFakeClockAdvanceFiresTimer(t *testing.T) {
	c := NewFakeClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	timer := c.NewTimer(time.Second)

	select {
	case <-timer.C():
		t.Fatal("timer fired before Advance")
	default:
	}

	c.Advance(time.Second)

	select {
	case <-timer.C():
	default:
		t.Fatal("timer did not fire after Advance")
	}
}

func TestFakeClockAdvancePastMultipleTimers(t *testing.T) {
	c := NewFakeClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	t1 := c.NewTimer(time.Second)
	t2 := c.NewTimer(2 * time.Second)
	t3 := c.NewTimer(3 * time.Hour)

	c.Advance(2500 * time.Millisecond)

	for _, tm := range []Timer{t1, t2} {
		select {
		case <-tm.C():
		default:
			t.Error("expected timer to have fired")
		}
	}
	select {
	case <-t3.C():
		t.Error("timer beyond the advance should not have fired")
	default:
	}
}

func TestFakeClockStopPreventsFiring(t *testing.T) {
	c := NewFakeClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	timer := c.NewTimer(time.Second)
	if !timer.Stop() {
		t.Error("Stop() on an active timer should return true")
	}
	c.Advance(time.Hour)
	select {
	case <-timer.C():
		t.Error("stopped timer should not fire")
	default:
	}
}

func TestFakeClockBlockUntil(t *testing.T) {
	c := NewFakeClock(time.Now())
	done := make(chan struct{})
	go func() {
		c.BlockUntil(1)
		close(done)
	}()
	c.NewTimer(time.Second)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("BlockUntil did not unblock after a timer was registered")
	}
}
