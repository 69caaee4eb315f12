// pkg/daa/urgency.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package daa

import (
	"github.com/skywatch-systems/daaband/pkg/geom"
	"github.com/skywatch-systems/daaband/pkg/traffic"
)

// tcpa is the time, in seconds and clamped to be non-negative, at which
// the horizontal distance between the ownship and an intruder is
// smallest under constant-velocity propagation. A relative speed that is
// (numerically) zero means the horizontal separation never changes, so
// "now" is as close as it ever gets.
func tcpa(so, vo, si, vi geom.Vect3) float64 {
	srelX, srelY := si.X-so.X, si.Y-so.Y
	vrelX, vrelY := vi.X-vo.X, vi.Y-vo.Y
	denom := vrelX*vrelX + vrelY*vrelY
	if denom <= geom.Precision5 {
		return 0
	}
	t := -(srelX*vrelX + srelY*vrelY) / denom
	return geom.Max(t, 0)
}

// dcpaNorm is the cylindrical norm (spec.md's NMAC metric) of the
// relative position at the horizontal time of closest approach: values
// <= 1 mean the closest-approach point itself lies within (or on) the
// NMAC cylinder.
func dcpaNorm(so, vo, si, vi geom.Vect3, D, H float64) float64 {
	t := tcpa(so, vo, si, vi)
	srel := si.Sub(so)
	vrel := vi.Sub(vo)
	atT := vrel.ScalAdd(t, srel)
	return atT.CylNorm(D, H)
}

// MostUrgent is the public entry point for UrgencyRanking (spec.md §4.1):
// given the ownship and a non-empty traffic list, it returns the single
// intruder the bands core should treat as the repulsion-criterion
// aircraft. It is grounded on the original's DCPAUrgencyStrategy tie
// lattice: an intruder already inside (or projected into) the NMAC
// cylinder at its closest approach is strictly more urgent than one that
// isn't, ties within that "minimum recovery regime" are broken by
// soonest closest-approach time, and ties outside it are broken by
// smallest closest-approach distance — with a further fallback to the
// other quantity whenever the primary one is equal to within
// geom.Precision5.
//
// MostUrgent returns traffic.Invalid if own is invalid, tfc is empty, or
// no intruder is currently in conflict with the ownship over [0, T].
func MostUrgent(det ConflictOracle, own traffic.OwnshipState, tfc []traffic.TrafficState, D, H, T float64) traffic.TrafficState {
	if !own.IsValid() || len(tfc) == 0 {
		return traffic.Invalid
	}

	so, vo := own.S(), own.V()

	var best traffic.TrafficState
	var bestT, bestD float64
	haveBest := false

	for _, ac := range tfc {
		si, vi := own.TrafficS(ac), own.TrafficV(ac)
		if !det.Conflict(so, vo, si, vi, 0, T).HasConflict {
			continue
		}
		t := tcpa(so, vo, si, vi)
		d := dcpaNorm(so, vo, si, vi, D, H)

		if !haveBest {
			best, bestT, bestD, haveBest = ac, t, d, true
			continue
		}

		switch {
		case d <= 1 && bestD > 1:
			// ac is in the minimum recovery regime and best isn't: always
			// more urgent regardless of timing.
			best, bestT, bestD = ac, t, d

		case d <= 1 && bestD <= 1:
			// Both in the minimum recovery regime: soonest approach wins,
			// falling back to closest approach on a near tie in time.
			if t < bestT && !geom.AlmostEquals(t, bestT) {
				best, bestT, bestD = ac, t, d
			} else if geom.AlmostEquals(t, bestT) && d < bestD {
				best, bestT, bestD = ac, t, d
			}

		default:
			// d > 1: dcpa-strategy applies regardless of bestD's regime
			// (spec.md §4.1) — closest approach wins, falling back to
			// soonest approach on a near tie in distance, even when best
			// is still in the minimum recovery regime.
			if d < bestD && !geom.AlmostEquals(d, bestD) {
				best, bestT, bestD = ac, t, d
			} else if geom.AlmostEquals(d, bestD) && t < bestT {
				best, bestT, bestD = ac, t, d
			}
		}
	}

	if !haveBest {
		return traffic.Invalid
	}
	return best
}
