// slot.go: the shared slot and its epoch-based free list (§4.B)
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0
package xanthus

import "sync/atomic"

// tsPayload is a Time-stamped Value (§3): a Container pointer bundled with
// its write-time in nanoseconds. The timestamp is immutable once created;
// the Container it points at is never mutated by a Slot.Write (a write
// always installs a brand new Container) but its leaf Value, if any, may be
// mutated in place by the interpreter's atomic ops (§4.A) without going
// through the slot at all — those operations intentionally bypass epoch
// reclamation, matching the source's "atomic ops mutate the cell, Slot
// writes replace the cell" split.
type tsPayload struct {
	c  *Container
	ts int64
}

// threadState is one participant's bookkeeping within a single Slot: the
// last epoch time that participant observed at this slot, and the
// append-only list of Time-stamped Values that participant has retired at
// this slot. Per spec.md §4.B/§4.E this bookkeeping lives inside the slot,
// not in a process-global table, so a participant that never touches a
// given Slot never constrains that Slot's reclamation.
type threadState struct {
	lastObserved atomic.Int64
	freeLim      atomic.Uint64
	free         []*tsPayload // owned by the one participant indexing this entry
}

// Slot is the unit of per-leaf concurrency (§4.B): a single mutable cell
// holding a versioned pointer to a Container. Reads and writes never block;
// retired payloads are reclaimed once no participant that has ever touched
// this slot could still be holding a reference to them.
type Slot struct {
	current       atomic.Pointer[tsPayload]
	byParticipant [MaxParticipants]atomic.Pointer[threadState]
	reg           *Registry
}

// NewSlot creates an empty slot bound to reg's epoch clock.
func NewSlot(reg *Registry) *Slot {
	return &Slot{reg: reg}
}

// NewSlotWithContainer creates a slot already holding c.
func NewSlotWithContainer(reg *Registry, c *Container) *Slot {
	s := &Slot{reg: reg}
	s.current.Store(&tsPayload{c: c, ts: reg.Now()})
	return s
}

func (s *Slot) state(p ParticipantID) *threadState {
	if p == NoParticipant {
		return nil
	}
	slot := &s.byParticipant[p]
	if st := slot.Load(); st != nil {
		return st
	}
	st := &threadState{}
	st.freeLim.Store(s.reg.FreeLimit())
	if !slot.CompareAndSwap(nil, st) {
		return slot.Load()
	}
	return st
}

// Read returns the slot's current Container pointer, or false if the slot
// has never been written. The returned pointer is the live Container — its
// leaf Value (if any) may be mutated in place by atomic ops — not a
// snapshot copy. The calling participant's last-observed time is advanced
// to the value's timestamp before returning, and (if the free list has
// grown past its threshold) the free list is scanned for newly-reclaimable
// entries.
func (s *Slot) Read(p ParticipantID) (*Container, bool) {
	cur := s.current.Load()
	if cur == nil {
		return nil, false
	}
	st := s.state(p)
	if st != nil {
		st.lastObserved.Store(cur.ts)
		s.maybeReclaim(st)
	}
	return cur.c, true
}

// Write atomically installs newC as the slot's current Container, retiring
// whatever was there before onto the calling participant's free list at
// this slot. The calling participant's last-observed time advances to the
// displaced value's timestamp.
func (s *Slot) Write(p ParticipantID, newC *Container) {
	next := &tsPayload{c: newC, ts: s.reg.Now()}
	old := s.current.Swap(next)
	if old == nil {
		return
	}
	st := s.state(p)
	if st == nil {
		return
	}
	st.free = append(st.free, old)
	st.lastObserved.Store(old.ts)
	s.maybeReclaim(st)
}

// CompareAndSwap installs newC only if the slot's current Container is
// still identical (by pointer) to oldC — nil meaning "still empty". On
// success it returns (newC, true); on failure it returns the Container that
// defeated the comparison (nil if the slot is still empty) and false, so
// callers like CreateSetMap can inspect what beat them without a second
// round trip.
func (s *Slot) CompareAndSwap(p ParticipantID, oldC *Container, newC *Container) (*Container, bool) {
	oldPayload := s.current.Load()
	if oldPayload == nil {
		if oldC != nil {
			return nil, false
		}
	} else if oldPayload.c != oldC {
		return oldPayload.c, false
	}

	next := &tsPayload{c: newC, ts: s.reg.Now()}
	if !s.current.CompareAndSwap(oldPayload, next) {
		cur := s.current.Load()
		if cur == nil {
			return nil, false
		}
		return cur.c, false
	}

	if oldPayload != nil {
		if st := s.state(p); st != nil {
			st.free = append(st.free, oldPayload)
			st.lastObserved.Store(oldPayload.ts)
			s.maybeReclaim(st)
		}
	}
	return newC, true
}

// UpdateTime publishes the slot's current timestamp into the calling
// participant's last-observed time without reading the payload. Used when a
// reader is about to yield without touching the value (§4.B).
func (s *Slot) UpdateTime(p ParticipantID) {
	cur := s.current.Load()
	if cur == nil {
		return
	}
	if st := s.state(p); st != nil {
		st.lastObserved.Store(cur.ts)
	}
}

// minObserved returns the minimum last-observed time across every
// participant that has ever touched this slot. Participants that never
// touched the slot are excluded — they cannot hold a reference into it.
func (s *Slot) minObserved() (int64, bool) {
	var min int64
	found := false
	for i := range s.byParticipant {
		st := s.byParticipant[i].Load()
		if st == nil {
			continue
		}
		t := st.lastObserved.Load()
		if !found || t < min {
			min = t
			found = true
		}
	}
	return min, found
}

// maybeReclaim scans st's free list once it exceeds its configured
// threshold, dropping every entry whose timestamp is strictly less than
// every participant's last-observed time at this slot (§4.B free-list
// policy). Entries that fail the check are kept for a later scan.
func (s *Slot) maybeReclaim(st *threadState) {
	limit := st.freeLim.Load()
	if uint64(len(st.free)) <= limit {
		return
	}
	min, ok := s.minObserved()
	if !ok {
		return
	}
	kept := st.free[:0]
	for _, node := range st.free {
		if node.ts < min {
			continue // reclaimable: drop the reference, GC does the rest
		}
		kept = append(kept, node)
	}
	st.free = kept
}
