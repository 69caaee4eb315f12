// pkg/daa/intervals.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package daa

import "github.com/skywatch-systems/daaband/pkg/geom"

// Neg reverses an IntervalList and negates every bound: [lo, hi] becomes
// [-hi, -lo], and the list order flips so the result stays in ascending
// order. This is how a left-side IntervalList (sampled with increasing
// offsets) is turned into signed combined coordinates before being
// stitched to a right-side one (spec.md §4.2.8).
func Neg(l IntervalList) IntervalList {
	out := make(IntervalList, len(l))
	for i, iv := range l {
		out[len(l)-1-i] = IntegerInterval{LB: -iv.UB, UB: -iv.LB}
	}
	return out
}

// AppendIntband appends iv to l, coalescing with the last element if the
// two are adjacent or overlapping (UB+1 >= next LB), matching the
// original's append_intband helper used while stitching the left and
// right kinematic bands into one combined list.
func AppendIntband(l IntervalList, iv IntegerInterval) IntervalList {
	if len(l) == 0 {
		return append(l, iv)
	}
	last := &l[len(l)-1]
	if iv.LB <= last.UB+1 {
		if iv.UB > last.UB {
			last.UB = iv.UB
		}
		return l
	}
	return append(l, iv)
}

// Combine merges a left-side list (already Neg'd into combined
// coordinates) and a right-side list into one coalesced, ordered
// IntervalList.
func Combine(left, right IntervalList) IntervalList {
	var out IntervalList
	for _, iv := range left {
		out = AppendIntband(out, iv)
	}
	for _, iv := range right {
		out = AppendIntband(out, iv)
	}
	return out
}

// ToIntervalSet is spec.md §4.2.9's toIntervalSet(list, scal, add, min,
// max): each [lb, ub] projects to [scal*lb+add, scal*ub+add], intersects
// with [lo, hi] (a no-op when lo/hi are left at +/-Inf, which also
// recovers testable property 4: endpoints survive exactly under the
// identity projection), and is merged into the running set via
// almostAdd the way the original's to_interval_set does for
// non-wraparound bands (ground speed, vertical speed, altitude).
func ToIntervalSet(l IntervalList, scal, add, lo, hi float64) RealIntervalSet {
	var out RealIntervalSet
	for _, iv := range l {
		a := scal*float64(iv.LB) + add
		b := scal*float64(iv.UB) + add
		if a > b {
			a, b = b, a
		}
		if a > hi || b < lo {
			continue
		}
		if a < lo {
			a = lo
		}
		if b > hi {
			b = hi
		}
		out = almostAdd(out, RealInterval{LB: a, UB: b})
	}
	return out
}

// ToIntervalSet0to2PI is the heading/track-angle variant: it projects
// into [0, 2*pi) with wraparound, the way the original's
// to_interval_set_0_2pi does — an interval whose lower bound angle
// exceeds its upper bound angle after wrapping is split into two pieces
// around the 0/2pi seam.
func ToIntervalSet0to2PI(l IntervalList, scal, add float64) RealIntervalSet {
	var out RealIntervalSet
	for _, iv := range l {
		lo := geom.ToTwoPi(scal*float64(iv.LB) + add)
		hi := geom.ToTwoPi(scal*float64(iv.UB) + add)
		if lo <= hi {
			out = almostAdd(out, RealInterval{LB: lo, UB: hi})
		} else {
			out = almostAdd(out, RealInterval{LB: 0, UB: hi})
			out = almostAdd(out, RealInterval{LB: lo, UB: 2 * 3.141592653589793})
		}
	}
	return out
}

// almostAdd appends iv to set, coalescing with the last entry if the two
// are adjacent to within geom.Precision5 — the real-valued analogue of
// AppendIntband, used once bounds have left the integer grid.
func almostAdd(set RealIntervalSet, iv RealInterval) RealIntervalSet {
	if len(set) == 0 {
		return append(set, iv)
	}
	last := &set[len(set)-1]
	if iv.LB <= last.UB || geom.AlmostEquals(iv.LB, last.UB) {
		if iv.UB > last.UB {
			last.UB = iv.UB
		}
		return set
	}
	return append(set, iv)
}
