// pkg/daa/intervals_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package daa

import (
	gomath "math"
	"reflect"
	"testing"
)

func TestNeg(t *testing.T) {
	in := IntervalList{{LB: 2, UB: 4}, {LB: 7, UB: 9}}
	got := Neg(in)
	want := IntervalList{{LB: -9, UB: -7}, {LB: -4, UB: -2}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Neg(%v) = %v, want %v", in, got, want)
	}
}

func TestNegEmpty(t *testing.T) {
	if got := Neg(nil); len(got) != 0 {
		t.Errorf("Neg(nil) = %v, want empty", got)
	}
}

func TestAppendIntbandCoalesces(t *testing.T) {
	var l IntervalList
	l = AppendIntband(l, IntegerInterval{LB: 0, UB: 2})
	l = AppendIntband(l, IntegerInterval{LB: 3, UB: 5})
	want := IntervalList{{LB: 0, UB: 5}}
	if !reflect.DeepEqual(l, want) {
		t.Errorf("AppendIntband coalesced = %v, want %v", l, want)
	}
}

func TestAppendIntbandSeparate(t *testing.T) {
	var l IntervalList
	l = AppendIntband(l, IntegerInterval{LB: 0, UB: 2})
	l = AppendIntband(l, IntegerInterval{LB: 5, UB: 7})
	want := IntervalList{{LB: 0, UB: 2}, {LB: 5, UB: 7}}
	if !reflect.DeepEqual(l, want) {
		t.Errorf("AppendIntband separate = %v, want %v", l, want)
	}
}

func TestCombine(t *testing.T) {
	left := Neg(IntervalList{{LB: 0, UB: 2}})
	right := IntervalList{{LB: 0, UB: 3}}
	got := Combine(left, right)
	want := IntervalList{{LB: -2, UB: 3}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Combine = %v, want %v", got, want)
	}
}

func TestToIntervalSet(t *testing.T) {
	l := IntervalList{{LB: 0, UB: 2}, {LB: 4, UB: 5}}
	got := ToIntervalSet(l, 10, 0, gomath.Inf(-1), gomath.Inf(1))
	want := RealIntervalSet{{LB: 0, UB: 20}, {LB: 40, UB: 50}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ToIntervalSet = %v, want %v", got, want)
	}
}

// TestToIntervalSetIdentityPreservesEndpoints is testable property 4
// (spec.md §8): toIntervalSet(L, 1, 0, -inf, +inf) preserves L's
// endpoints exactly.
func TestToIntervalSetIdentityPreservesEndpoints(t *testing.T) {
	l := IntervalList{{LB: 2, UB: 5}, {LB: 9, UB: 12}}
	got := ToIntervalSet(l, 1, 0, gomath.Inf(-1), gomath.Inf(1))
	want := RealIntervalSet{{LB: 2, UB: 5}, {LB: 9, UB: 12}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ToIntervalSet identity = %v, want %v", got, want)
	}
}

// TestToIntervalSetClampsToRange exercises the intersect-with-[min,max]
// clause: an interval straddling the boundary is clipped, and one wholly
// outside it is dropped.
func TestToIntervalSetClampsToRange(t *testing.T) {
	l := IntervalList{{LB: -5, UB: 5}, {LB: 100, UB: 200}}
	got := ToIntervalSet(l, 1, 0, 0, 10)
	want := RealIntervalSet{{LB: 0, UB: 5}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ToIntervalSet clamp = %v, want %v", got, want)
	}
}

// TestToIntervalSet0to2PIStraddlesZero is scenario S5 (spec.md §8):
// toIntervalSet_0_2PI([[-1, 2]], scal=1, add=0) -> [[0, 2], [2pi-1, 2pi]].
func TestToIntervalSet0to2PIStraddlesZero(t *testing.T) {
	twoPi := 2 * gomath.Pi
	l := IntervalList{{LB: -1, UB: 2}}
	got := ToIntervalSet0to2PI(l, 1, 0)
	want := RealIntervalSet{{LB: 0, UB: 2}, {LB: twoPi - 1, UB: twoPi}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ToIntervalSet0to2PI(S5) = %v, want %v", got, want)
	}
}

func TestToIntervalSet0to2PIWraps(t *testing.T) {
	// 350 degrees to 370 degrees (i.e. 10 degrees) should split around the seam.
	degPerStep := 10.0
	radPerStep := degPerStep * 3.141592653589793 / 180
	l := IntervalList{{LB: 35, UB: 37}} // 350..370 deg
	got := ToIntervalSet0to2PI(l, radPerStep, 0)
	if len(got) != 2 {
		t.Fatalf("expected a wraparound split into 2 intervals, got %d: %v", len(got), got)
	}
}
