package cronwheel

import (
	"testing"
	"time"
)

func TestHandleCancelIsExclusiveWithExpire(t *testing.T) {
	h := newTimeoutHandle(func(*TimeoutHandle) {}, time.Now())

	if !h.cancel() {
		t.Fatal("first cancel should succeed")
	}
	if h.cancel() {
		t.Error("second cancel should not succeed")
	}
	if h.expire() {
		t.Error("expire after cancel should not succeed")
	}
	if h.State() != handleCancelled {
		t.Errorf("State() = %v, want handleCancelled", h.State())
	}
}

func TestHandleExpireIsExclusiveWithCancel(t *testing.T) {
	h := newTimeoutHandle(func(*TimeoutHandle) {}, time.Now())

	if !h.expire() {
		t.Fatal("first expire should succeed")
	}
	if h.expire() {
		t.Error("second expire should not succeed")
	}
	if h.cancel() {
		t.Error("cancel after expire should not succeed")
	}
}

func TestWheelBucketPushAndRemove(t *testing.T) {
	b := &wheelBucket{}
	h1 := newTimeoutHandle(nil, time.Time{})
	h2 := newTimeoutHandle(nil, time.Time{})
	h3 := newTimeoutHandle(nil, time.Time{})

	b.pushBack(h1)
	b.pushBack(h2)
	b.pushBack(h3)

	b.remove(h2)

	var order []*TimeoutHandle
	for h := b.head; h != nil; h = h.next {
		order = append(order, h)
	}
	if len(order) != 2 || order[0] != h1 || order[1] != h3 {
		t.Errorf("bucket order after removing middle = %v, want [h1 h3]", order)
	}
	if h2.bucket != nil || h2.prev != nil || h2.next != nil {
		t.Error("removed handle should be fully unlinked")
	}
}

func TestWheelBucketDrainAll(t *testing.T) {
	b := &wheelBucket{}
	h1 := newTimeoutHandle(nil, time.Time{})
	h2 := newTimeoutHandle(nil, time.Time{})
	b.pushBack(h1)
	b.pushBack(h2)

	drained := b.drainAll()
	if len(drained) != 2 {
		t.Fatalf("drainAll returned %d handles, want 2", len(drained))
	}
	if b.head != nil || b.tail != nil {
		t.Error("bucket should be empty after drainAll")
	}
}
