// pkg/daa/bands.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package daa

import (
	gomath "math"

	"github.com/skywatch-systems/daaband/pkg/geom"
	"github.com/skywatch-systems/daaband/pkg/traffic"
)

// anyLosAircraft reports whether, at the sampled time tsk along the
// candidate trajectory, the ownship is in an instantaneous loss of
// separation with any intruder in the traffic list (an "any-los"
// predicate, spec.md §4.2.1). Intruders are propagated linearly at
// their constant velocity — the traffic assumption built into every
// conflict query inside the core.
func (q *BandsQuery) anyLosAircraft(det ConflictOracle, dir Direction, tsk float64) bool {
	sot, vot := q.Sampler.Trajectory(q.Ownship, tsk, dir)
	for _, ac := range q.Traffic {
		si := q.Ownship.TrafficS(ac)
		vi := q.Ownship.TrafficV(ac)
		sit := vi.ScalAdd(tsk, si)
		if det.Violation(sot, vot, sit, vi) {
			return true
		}
	}
	return false
}

// cdFutureTraj reports whether the intruder ac is in conflict with the
// ownship over the remaining portion of the window [B, T], given that
// the ownship has already flown t seconds of the candidate trajectory.
func (q *BandsQuery) cdFutureTraj(det ConflictOracle, B, T float64, dir Direction, t float64, ac traffic.TrafficState) bool {
	if t > T || B > T {
		return false
	}
	sot, vot := q.Sampler.Trajectory(q.Ownship, t, dir)
	si := q.Ownship.TrafficS(ac)
	vi := q.Ownship.TrafficV(ac)
	sit := vi.ScalAdd(t, si)
	if B > t {
		return det.Conflict(sot, vot, sit, vi, B-t, T-t).HasConflict
	}
	return det.Conflict(sot, vot, sit, vi, 0, T-t).HasConflict
}

func (q *BandsQuery) anyConflictAircraft(det ConflictOracle, B, T float64, dir Direction, tsk float64) bool {
	for _, ac := range q.Traffic {
		if q.cdFutureTraj(det, B, T, dir, tsk, ac) {
			return true
		}
	}
	return false
}

// anyConflict is the predicate TrajConflictOnlyBands scans: is step k a
// conflict under the primary detector's window, or (if a recovery
// detector is present) under the recovery window.
func (q *BandsQuery) anyConflict(dir Direction, tsk float64) bool {
	if q.anyConflictAircraft(q.ConflictDet, q.B, q.T, dir, tsk) {
		return true
	}
	return q.RecoveryDet != nil && q.anyConflictAircraft(q.RecoveryDet, q.B2, q.T2, dir, tsk)
}

// TrajConflictOnlyBands is the two-state scanner of spec.md §4.2.6: it
// partitions [0, max] into runs of consecutive indices where anyConflict
// holds, closing a run (and emitting it) at the first step where the
// predicate is false, and emitting a final open run if the scan ends
// inside one.
func (q *BandsQuery) TrajConflictOnlyBands(dir Direction, max int) IntervalList {
	var l IntervalList
	first := -1
	for k := 0; k <= max; k++ {
		tsk := q.TStep * float64(k)
		conflict := q.anyConflict(dir, tsk)
		switch {
		case first >= 0 && conflict:
			// Run stays open; nothing to do.
		case first >= 0 && !conflict:
			l = append(l, IntegerInterval{LB: first, UB: k - 1})
			first = -1
		case first < 0 && conflict:
			first = k
		}
	}
	if first >= 0 {
		l = append(l, IntegerInterval{LB: first, UB: max})
	}
	return l
}

// firstLosStep returns the smallest k in [min, max] at which anyLosAircraft
// holds for the given detector, or -1 if none does.
func (q *BandsQuery) firstLosStep(det ConflictOracle, dir Direction, min, max int) int {
	for k := min; k <= max; k++ {
		if q.anyLosAircraft(det, dir, q.TStep*float64(k)) {
			return k
		}
	}
	return -1
}

// firstLosSearchIndex is spec.md §4.2.4: the first index forbidden by an
// instantaneous loss of separation under either detector's scan range.
func (q *BandsQuery) firstLosSearchIndex(dir Direction, max int) int {
	K := int(gomath.Ceil(q.B / q.TStep))
	N := geom.Min(int(gomath.Floor(q.T/q.TStep)), max)
	K2 := int(gomath.Ceil(q.B2 / q.TStep))
	N2 := geom.Min(int(gomath.Floor(q.T2/q.TStep)), max)

	firstLosInit := -1
	if q.RecoveryDet != nil {
		firstLosInit = q.firstLosStep(q.RecoveryDet, dir, K2, N2)
	}
	firstLos := q.firstLosStep(q.ConflictDet, dir, K, N)

	losInitIndex := firstLosInit
	if losInitIndex < 0 {
		losInitIndex = max + 1
	}
	losIndex := firstLos
	if losIndex < 0 {
		losIndex = max + 1
	}
	return geom.Min(losInitIndex, losIndex)
}

// linvel is the discrete-chord velocity between samples k and k+1 along
// the candidate trajectory (spec.md §4.2.2).
func (q *BandsQuery) linvel(dir Direction, k int) geom.Vect3 {
	p1, _ := q.Sampler.Trajectory(q.Ownship, float64(k+1)*q.TStep, dir)
	p0, _ := q.Sampler.Trajectory(q.Ownship, float64(k)*q.TStep, dir)
	return p1.Sub(p0).Scal(1 / q.TStep)
}

// repulsiveAt implements the horizontal repulsion check at step k
// (spec.md §4.2.2): true by convention at k=0; for k >= 1 the three-way
// sandwich of sampled and chord velocities, which at k=1 is evaluated
// only if the initial criterion (current state against the first chord)
// also holds.
func (q *BandsQuery) repulsiveAt(dir Direction, k int) bool {
	if k == 0 {
		return true
	}
	so, vo := q.Sampler.Trajectory(q.Ownship, 0, dir)
	si := q.Ownship.TrafficS(q.Repac)
	vi := q.Ownship.TrafficV(q.Repac)

	rep := true
	if k == 1 {
		rep = q.Criteria.HorizontalNewRepulsive(so.Sub(si), vo, vi, q.linvel(dir, 0), q.EpsH)
	}
	if !rep {
		return false
	}

	sot, vot := q.Sampler.Trajectory(q.Ownship, float64(k)*q.TStep, dir)
	sit := vi.ScalAdd(float64(k)*q.TStep, si)
	st := sot.Sub(sit)
	vop := q.linvel(dir, k-1)
	vok := q.linvel(dir, k)

	return q.Criteria.HorizontalNewRepulsive(st, vop, vi, vot, q.EpsH) &&
		q.Criteria.HorizontalNewRepulsive(st, vot, vi, vok, q.EpsH) &&
		q.Criteria.HorizontalNewRepulsive(st, vop, vi, vok, q.EpsH)
}

// vertRepulAt is the vertical counterpart of repulsiveAt, structurally
// identical but against the vertical criterion and epsv.
func (q *BandsQuery) vertRepulAt(dir Direction, k int) bool {
	if k == 0 {
		return true
	}
	so, vo := q.Sampler.Trajectory(q.Ownship, 0, dir)
	si := q.Ownship.TrafficS(q.Repac)
	vi := q.Ownship.TrafficV(q.Repac)

	rep := true
	if k == 1 {
		rep = q.Criteria.VerticalNewRepulsive(so.Sub(si), vo, vi, q.linvel(dir, 0), q.EpsV)
	}
	if !rep {
		return false
	}

	sot, vot := q.Sampler.Trajectory(q.Ownship, float64(k)*q.TStep, dir)
	sit := vi.ScalAdd(float64(k)*q.TStep, si)
	st := sot.Sub(sit)
	vop := q.linvel(dir, k-1)
	vok := q.linvel(dir, k)

	return q.Criteria.VerticalNewRepulsive(st, vop, vi, vot, q.EpsV) &&
		q.Criteria.VerticalNewRepulsive(st, vot, vi, vok, q.EpsV) &&
		q.Criteria.VerticalNewRepulsive(st, vop, vi, vok, q.EpsV)
}

// firstNonrepulsiveStep returns the smallest k in [0, max] whose
// horizontal repulsion predicate is false, or -1 if none (spec.md §4.2.3).
func (q *BandsQuery) firstNonrepulsiveStep(dir Direction, max int) int {
	for k := 0; k <= max; k++ {
		if !q.repulsiveAt(dir, k) {
			return k
		}
	}
	return -1
}

func (q *BandsQuery) firstNonVertRepulStep(dir Direction, max int) int {
	for k := 0; k <= max; k++ {
		if !q.vertRepulAt(dir, k) {
			return k
		}
	}
	return -1
}

// bandsSearchIndex is spec.md §4.2.5: the first index that is forbidden
// by LOS, or (one step earlier) breaks horizontal or vertical repulsion.
// Repulsion is only ever checked below the current LOS cutoff, since
// it's cheaper than LOS and can only refine the cutoff earlier, never
// push it later.
func (q *BandsQuery) bandsSearchIndex(dir Direction, max int) int {
	firstLos := q.firstLosSearchIndex(dir, max)

	firstNonHRep := firstLos
	if q.useHCrit() && firstLos > 0 {
		firstNonHRep = q.firstNonrepulsiveStep(dir, firstLos-1)
	}
	firstProbHcrit := firstNonHRep
	if firstProbHcrit < 0 {
		firstProbHcrit = max + 1
	}
	firstProbHL := geom.Min(firstLos, firstProbHcrit)

	firstNonVRep := firstProbHL
	if q.useVCrit() && firstProbHL > 0 {
		firstNonVRep = q.firstNonVertRepulStep(dir, firstProbHL-1)
	}
	firstProbVcrit := firstNonVRep
	if firstProbVcrit < 0 {
		firstProbVcrit = max + 1
	}

	return geom.Min(firstProbHL, firstProbVcrit)
}

// KinematicBands is spec.md §4.2.7: the conflict-only bands on one side,
// truncated to one below the first forbidden-or-non-repulsive index.
func (q *BandsQuery) KinematicBands(dir Direction, max int) IntervalList {
	bsi := q.bandsSearchIndex(dir, max)
	if bsi == 0 {
		return nil
	}
	return q.TrajConflictOnlyBands(dir, bsi-1)
}

func (q *BandsQuery) anyConflictStep(det ConflictOracle, B, T float64, dir Direction, max int) bool {
	for k := 0; k <= max; k++ {
		if q.anyConflictAircraft(det, B, T, dir, q.TStep*float64(k)) {
			return true
		}
	}
	return false
}

// redBandExist is spec.md §4.2.11: true iff there's a non-repulsive step
// on this side, or any step yields a conflict under either detector's
// window.
func (q *BandsQuery) redBandExist(dir Direction, max int) bool {
	if q.useHCrit() && q.firstNonrepulsiveStep(dir, max) >= 0 {
		return true
	}
	if q.useVCrit() && q.firstNonVertRepulStep(dir, max) >= 0 {
		return true
	}
	if q.anyConflictStep(q.ConflictDet, q.B, q.T, dir, max) {
		return true
	}
	return q.RecoveryDet != nil && q.anyConflictStep(q.RecoveryDet, q.B2, q.T2, dir, max)
}

// firstGreen is spec.md §4.2.11: the smallest k in [0, max] that is
// simultaneously clear of LOS (under both windows), repulsive (under
// both active criteria), and free of conflict under both windows. It
// returns -1 as soon as a forbidden condition is hit before such a k is
// found.
func (q *BandsQuery) firstGreen(dir Direction, max int) int {
	for k := 0; k <= max; k++ {
		tsk := q.TStep * float64(k)

		losPrimary := tsk >= q.B && tsk <= q.T && q.anyLosAircraft(q.ConflictDet, dir, tsk)
		losRecovery := q.RecoveryDet != nil && tsk >= q.B2 && tsk <= q.T2 && q.anyLosAircraft(q.RecoveryDet, dir, tsk)
		hBreak := q.useHCrit() && !q.repulsiveAt(dir, k)
		vBreak := q.useVCrit() && !q.vertRepulAt(dir, k)

		if losPrimary || losRecovery || hBreak || vBreak {
			return -1
		}

		conflictPrimary := q.anyConflictAircraft(q.ConflictDet, q.B, q.T, dir, tsk)
		conflictRecovery := q.RecoveryDet != nil && q.anyConflictAircraft(q.RecoveryDet, q.B2, q.T2, dir, tsk)
		if !conflictPrimary && !conflictRecovery {
			return k
		}
	}
	return -1
}
