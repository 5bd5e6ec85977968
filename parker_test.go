// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0
package xanthus

import "testing"

func TestParkerGrowsAndCaps(t *testing.T) {
	p := NewParker(0, 10, 3)
	if p.current != 0 {
		t.Fatalf("initial current = %d, want 0", p.current)
	}

	p.DoPark(false)
	if p.current != 3 {
		t.Errorf("after one non-progress park, current = %d, want 3", p.current)
	}
	p.DoPark(false)
	if p.current != 6 {
		t.Errorf("after two non-progress parks, current = %d, want 6", p.current)
	}
	p.DoPark(false)
	if p.current != 9 {
		t.Errorf("after three non-progress parks, current = %d, want 9", p.current)
	}
	p.DoPark(false)
	if p.current != 10 {
		t.Errorf("current should cap at the ceiling 10, got %d", p.current)
	}
}

func TestParkerResetsOnProgress(t *testing.T) {
	p := NewParker(1, 100, 10)
	p.DoPark(false)
	p.DoPark(false)
	if p.current == p.minMillis {
		t.Fatal("setup: current should have grown past the floor")
	}

	p.DoPark(true)
	if p.current != p.minMillis {
		t.Errorf("progress should reset current to the floor %d, got %d", p.minMillis, p.current)
	}
}

func TestParkerSetBoundsClampsCurrent(t *testing.T) {
	p := NewParker(0, 1000, 50)
	p.DoPark(false)
	p.DoPark(false) // current = 100

	p.SetBounds(20, 80, 10)
	if p.current < 20 || p.current > 80 {
		t.Errorf("SetBounds should clamp current into [20, 80], got %d", p.current)
	}
}

func TestParkerSetBoundsRaisesBelowFloor(t *testing.T) {
	p := NewParker(0, 1000, 50)
	p.SetBounds(5, 1000, 50)
	if p.current != 5 {
		t.Errorf("current below the new floor should be raised to it, got %d", p.current)
	}
}
