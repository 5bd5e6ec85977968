// parker.go: adaptive back-off for the accept loop and idle workers (§4.H)
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0
package xanthus

import "time"

// Parker holds the adaptive back-off state described in spec.md §4.H: a
// current park duration that resets to a floor on progress and grows by a
// fixed step, capped at a ceiling, on repeated non-progress.
type Parker struct {
	minMillis  int
	maxMillis  int
	stepMillis int
	current    int
}

// NewParker creates a Parker starting at minMillis.
func NewParker(minMillis, maxMillis, stepMillis int) *Parker {
	return &Parker{
		minMillis:  minMillis,
		maxMillis:  maxMillis,
		stepMillis: stepMillis,
		current:    minMillis,
	}
}

// DoPark adjusts the current back-off — reset to the floor on progress,
// grown by the step (capped at the ceiling) otherwise — then sleeps for it.
// Parker is owned by exactly one goroutine (the acceptor or a single
// worker), so no synchronization guards its fields.
func (p *Parker) DoPark(progress bool) {
	if progress {
		p.current = p.minMillis
	} else {
		p.current += p.stepMillis
		if p.current > p.maxMillis {
			p.current = p.maxMillis
		}
	}
	if p.current > 0 {
		time.Sleep(time.Duration(p.current) * time.Millisecond)
	}
}

// SetBounds retunes the configured floor/ceiling/step in place (hotreload.go),
// clamping the current back-off into the new range.
func (p *Parker) SetBounds(minMillis, maxMillis, stepMillis int) {
	p.minMillis = minMillis
	p.maxMillis = maxMillis
	p.stepMillis = stepMillis
	if p.current < minMillis {
		p.current = minMillis
	}
	if p.current > maxMillis {
		p.current = maxMillis
	}
}
