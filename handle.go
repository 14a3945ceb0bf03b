package cronwheel

import (
	"sync/atomic"
	"time"
)

// handleState is the monotonic lifecycle of a TimeoutHandle: INIT may move
// to CANCELLED or EXPIRED, never the reverse, and the two are mutually
// exclusive via CAS (spec.md §3's TimeoutHandle invariant).
type handleState int32

const (
	handleInit handleState = iota
	handleCancelled
	handleExpired
)

// Task is the opaque body a TimeoutHandle fires. It receives the handle
// itself so it can inspect its own state (e.g. to detect late/misfired
// delivery) without a separate lookup.
type Task func(h *TimeoutHandle)

// TimeoutHandle is one outstanding timeout placed into a HashedWheelTimer.
// It doubles as the intrusive linked-list node for its containing
// WheelBucket, so submitting a task allocates exactly one object.
type TimeoutHandle struct {
	deadline        time.Time
	remainingRounds int64
	state           atomic.Int32
	task            Task

	bucket     *wheelBucket
	prev, next *TimeoutHandle
}

func newTimeoutHandle(task Task, deadline time.Time) *TimeoutHandle {
	h := &TimeoutHandle{task: task, deadline: deadline}
	h.state.Store(int32(handleInit))
	return h
}

// Deadline returns the absolute instant this handle was scheduled to fire.
func (h *TimeoutHandle) Deadline() time.Time { return h.deadline }

// State reports the handle's current lifecycle state.
func (h *TimeoutHandle) State() handleState {
	return handleState(h.state.Load())
}

// cancel attempts the INIT -> CANCELLED transition. Returns true iff this
// call performed the transition; a handle already EXPIRED or already
// CANCELLED returns false. Cancellation never interrupts a task body
// already executing — it only prevents an unfired handle from firing.
func (h *TimeoutHandle) cancel() bool {
	return h.state.CompareAndSwap(int32(handleInit), int32(handleCancelled))
}

// expire attempts the INIT -> EXPIRED transition.
func (h *TimeoutHandle) expire() bool {
	return h.state.CompareAndSwap(int32(handleInit), int32(handleExpired))
}

// wheelBucket is an intrusive doubly-linked list of TimeoutHandles that
// share a bucket slot. Handles carry their own prev/next pointers, so
// unlinking a specific handle (on cancel) is O(1) given the handle alone —
// no list traversal required.
type wheelBucket struct {
	head, tail *TimeoutHandle
}

func (b *wheelBucket) pushBack(h *TimeoutHandle) {
	h.bucket = b
	h.prev, h.next = b.tail, nil
	if b.tail != nil {
		b.tail.next = h
	} else {
		b.head = h
	}
	b.tail = h
}

// remove unlinks h from its bucket. h must currently belong to b.
func (b *wheelBucket) remove(h *TimeoutHandle) {
	if h.prev != nil {
		h.prev.next = h.next
	} else {
		b.head = h.next
	}
	if h.next != nil {
		h.next.prev = h.prev
	} else {
		b.tail = h.prev
	}
	h.prev, h.next, h.bucket = nil, nil, nil
}

// drainAll unlinks and returns every handle currently in the bucket, in
// list order, leaving the bucket empty. Used by shutdown.
func (b *wheelBucket) drainAll() []*TimeoutHandle {
	var out []*TimeoutHandle
	for h := b.head; h != nil; {
		next := h.next
		h.prev, h.next, h.bucket = nil, nil, nil
		out = append(out, h)
		h = next
	}
	b.head, b.tail = nil, nil
	return out
}
