// pkg/daa/query.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package daa

// KinematicBandsCombine is the public entry point for a full
// KinematicBandsCore computation (spec.md §4.2.8): it runs KinematicBands
// independently on the left and right side, flips the left side's sample
// indices back into combined (signed) coordinates with Neg, and
// coalesces the two into one IntervalList of red (forbidden) sample
// indices. q.Dir restricts the scan to one side when the caller only
// cares about turns in a single direction.
func (q *BandsQuery) KinematicBandsCombine() IntervalList {
	var left, right IntervalList

	if q.Dir != DirRight {
		left = Neg(q.KinematicBands(Left, q.MaxL))
	}
	if q.Dir != DirLeft {
		right = q.KinematicBands(Right, q.MaxR)
	}

	return Combine(left, right)
}

// AllIntRed is spec.md §4.2.11's allIntRed(dir): every reachable step on
// the requested side(s) is unsafe. dir > 0 restricts the query to the
// right side only, dir < 0 to the left only; the opposite side's clause
// is vacuously true and skipped.
func (q *BandsQuery) AllIntRed(dir DirFilter) bool {
	leftAllRed := dir > DirBoth || q.firstGreen(Left, q.MaxL) < 0
	rightAllRed := dir < DirBoth || q.firstGreen(Right, q.MaxR) < 0
	return leftAllRed && rightAllRed
}

// AnyIntRed is spec.md §4.2.11's anyIntRed(dir): some reachable step on a
// requested side is unsafe.
func (q *BandsQuery) AnyIntRed(dir DirFilter) bool {
	leftRed := dir <= DirBoth && q.redBandExist(Left, q.MaxL)
	rightRed := dir >= DirBoth && q.redBandExist(Right, q.MaxR)
	return leftRed || rightRed
}

// IntervalListAllRed reports whether every index in [lo, hi] is covered
// by some interval of l, i.e. the entire requested range is red. This is
// a plain range-coverage helper over an already-computed IntervalList
// (e.g. the output of KinematicBandsCombine), distinct from the
// query-level AllIntRed/AnyIntRed entry points above.
func IntervalListAllRed(l IntervalList, lo, hi int) bool {
	for k := lo; k <= hi; k++ {
		if !intervalListContains(l, k) {
			return false
		}
	}
	return true
}

// IntervalListAnyIntRed reports whether any index in [lo, hi] is covered
// by some interval of l.
func IntervalListAnyIntRed(l IntervalList, lo, hi int) bool {
	for _, iv := range l {
		if iv.UB < lo || iv.LB > hi {
			continue
		}
		return true
	}
	return false
}

func intervalListContains(l IntervalList, k int) bool {
	for _, iv := range l {
		if k >= iv.LB && k <= iv.UB {
			return true
		}
	}
	return false
}
