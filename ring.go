// ring.go: bounded single-producer/single-consumer connection queue (§4.G)
//
// Adapted from the stamped-slot technique in the lock-free ring buffer
// reference this project drew on: each slot carries a step counter
// alongside its value so a producer can tell a slot is free (step == tail)
// and a consumer can tell a slot is published (step == head+1) without a
// separate emptiness flag. That reference buffer is multi-producer/
// multi-consumer and advances head/tail with compare-and-swap; Xanthus's
// queues are genuinely single-producer/single-consumer (§4.G: "the acceptor
// is the sole producer, one worker is the sole consumer of its queue"), so
// head and tail here advance with plain atomic stores instead.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0
package xanthus

import "sync/atomic"

type ringSlot struct {
	step  atomic.Uint64
	value *connTask
}

// ring is a fixed-capacity SPSC queue of *connTask. Its capacity is rounded
// up to a power of two so index wrapping is a mask rather than a modulo.
type ring struct {
	head  atomic.Uint64
	tail  atomic.Uint64
	mask  uint64
	slots []ringSlot
}

// newRing creates a ring holding at least capacity entries.
func newRing(capacity int) *ring {
	n := nextPowerOf2(capacity)
	if n < 2 {
		n = 2
	}
	r := &ring{mask: uint64(n - 1), slots: make([]ringSlot, n)}
	for i := range r.slots {
		r.slots[i].step.Store(uint64(i))
	}
	return r
}

// push installs v at the tail. It returns false if the ring is full — the
// only producer-visible back-pressure signal in §4.G ("no backpressure
// beyond connection-queue fullness", spec.md §1 Non-goals).
func (r *ring) push(v *connTask) bool {
	tail := r.tail.Load()
	slot := &r.slots[tail&r.mask]
	if slot.step.Load() != tail {
		return false
	}
	slot.value = v
	slot.step.Store(tail + 1)
	r.tail.Store(tail + 1)
	return true
}

// pop removes and returns the value at the head, or false if the ring is
// empty.
func (r *ring) pop() (*connTask, bool) {
	head := r.head.Load()
	slot := &r.slots[head&r.mask]
	if slot.step.Load() != head+1 {
		return nil, false
	}
	v := slot.value
	slot.value = nil
	slot.step.Store(head + r.mask + 1)
	r.head.Store(head + 1)
	return v, true
}

// len reports the number of entries currently queued, for RecordQueueDepth.
func (r *ring) len() int {
	return int(r.tail.Load() - r.head.Load())
}
