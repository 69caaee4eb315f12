// pkg/daa/urgency_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package daa

import (
	"testing"

	"github.com/skywatch-systems/daaband/pkg/geom"
	"github.com/skywatch-systems/daaband/pkg/traffic"
)

const (
	testD = 1.0
	testH = 1000.0
	testT = 1000.0
)

// alwaysConflictDetector treats every intruder as currently in conflict,
// so urgency tests can exercise the tie-break lattice (spec.md §4.1)
// without also depending on a particular conflict-window geometry.
type alwaysConflictDetector struct{}

func (alwaysConflictDetector) Violation(so, vo, si geom.Vect3, vi geom.Velocity) bool {
	return false
}

func (alwaysConflictDetector) Conflict(so, vo, si geom.Vect3, vi geom.Velocity, B, T float64) ConflictData {
	return ConflictData{HasConflict: true}
}

// neverConflictDetector treats every intruder as clear, to exercise the
// "no candidate selected" failure mode.
type neverConflictDetector struct{}

func (neverConflictDetector) Violation(so, vo, si geom.Vect3, vi geom.Velocity) bool {
	return false
}

func (neverConflictDetector) Conflict(so, vo, si geom.Vect3, vi geom.Velocity, B, T float64) ConflictData {
	return ConflictData{}
}

func TestMostUrgentEmpty(t *testing.T) {
	own := traffic.MakeOwnshipState("OWN", geom.Vect3{}, geom.Vect3{X: 1})
	if got := MostUrgent(alwaysConflictDetector{}, own, nil, testD, testH, testT); got.IsValid() {
		t.Errorf("MostUrgent(empty) = %v, want Invalid", got)
	}
}

func TestMostUrgentInvalidOwnship(t *testing.T) {
	ac := traffic.MakeTrafficState("AC1", geom.Vect3{X: 10}, geom.Vect3{X: -1})
	if got := MostUrgent(alwaysConflictDetector{}, traffic.OwnshipState{}, []traffic.TrafficState{ac}, testD, testH, testT); got.IsValid() {
		t.Errorf("MostUrgent(invalid ownship) = %v, want Invalid", got)
	}
}

func TestMostUrgentNoneInConflict(t *testing.T) {
	own := traffic.MakeOwnshipState("OWN", geom.Vect3{}, geom.Vect3{X: 1})
	ac := traffic.MakeTrafficState("AC1", geom.Vect3{X: 10}, geom.Vect3{X: -1})
	got := MostUrgent(neverConflictDetector{}, own, []traffic.TrafficState{ac}, testD, testH, testT)
	if got.IsValid() {
		t.Errorf("MostUrgent(no intruder in conflict) = %v, want Invalid", got)
	}
}

func TestMostUrgentSingle(t *testing.T) {
	own := traffic.MakeOwnshipState("OWN", geom.Vect3{}, geom.Vect3{X: 1})
	ac := traffic.MakeTrafficState("AC1", geom.Vect3{X: 10}, geom.Vect3{X: -1})
	got := MostUrgent(alwaysConflictDetector{}, own, []traffic.TrafficState{ac}, testD, testH, testT)
	if got.Callsign != "AC1" {
		t.Errorf("MostUrgent(single) = %v, want AC1", got.Callsign)
	}
}

func TestMostUrgentMinimumRecoveryRegimeBeatsClear(t *testing.T) {
	own := traffic.MakeOwnshipState("OWN", geom.Vect3{}, geom.Vect3{X: 1})
	// head-on: dcpa == 0 at tcpa == 5.
	headOn := traffic.MakeTrafficState("HEADON", geom.Vect3{X: 10}, geom.Vect3{X: -1})
	// parallel, never closes: dcpa == 100.
	clear := traffic.MakeTrafficState("CLEAR", geom.Vect3{Y: 100}, geom.Vect3{})

	got := MostUrgent(alwaysConflictDetector{}, own, []traffic.TrafficState{clear, headOn}, testD, testH, testT)
	if got.Callsign != "HEADON" {
		t.Errorf("MostUrgent = %v, want HEADON (dcpa<=1 beats dcpa>1 regardless of order)", got.Callsign)
	}

	got2 := MostUrgent(alwaysConflictDetector{}, own, []traffic.TrafficState{headOn, clear}, testD, testH, testT)
	if got2.Callsign != "HEADON" {
		t.Errorf("MostUrgent (reversed order) = %v, want HEADON", got2.Callsign)
	}
}

func TestMostUrgentMinimumRecoveryRegimeTiebreakByTcpa(t *testing.T) {
	own := traffic.MakeOwnshipState("OWN", geom.Vect3{}, geom.Vect3{X: 1})
	// dcpa == 0 at tcpa == 5 (relative speed 2, srel 10)
	slow := traffic.MakeTrafficState("SLOW", geom.Vect3{X: 10}, geom.Vect3{X: -1})
	// dcpa == 0 at tcpa == 2, a sooner closest approach.
	fast := traffic.MakeTrafficState("FAST", geom.Vect3{X: 8}, geom.Vect3{X: -3})

	got := MostUrgent(alwaysConflictDetector{}, own, []traffic.TrafficState{slow, fast}, testD, testH, testT)
	if got.Callsign != "FAST" {
		t.Errorf("MostUrgent = %v, want FAST (sooner tcpa wins when both dcpa<=1)", got.Callsign)
	}
}

func TestMostUrgentClearRegimeTiebreakByDcpa(t *testing.T) {
	own := traffic.MakeOwnshipState("OWN", geom.Vect3{}, geom.Vect3{})
	// Both stationary relative to ownship (tcpa == 0 for each): closer one wins.
	near := traffic.MakeTrafficState("NEAR", geom.Vect3{X: 2}, geom.Vect3{})
	far := traffic.MakeTrafficState("FAR", geom.Vect3{X: 5}, geom.Vect3{})

	got := MostUrgent(alwaysConflictDetector{}, own, []traffic.TrafficState{far, near}, testD, testH, testT)
	if got.Callsign != "NEAR" {
		t.Errorf("MostUrgent = %v, want NEAR (smaller dcpa wins when both dcpa>1)", got.Callsign)
	}
}

// TestMostUrgentDcpaStrategyAppliesAcrossRegimeBoundary is the
// cross-regime tie-break from spec.md §4.1's tie-break table: when a
// candidate's dcpa > 1 is almost_equals to the current winner's dcpa
// even though that winner's dcpa <= 1 (straddling the minimum-recovery
// boundary), the dcpa-strategy still applies and the smaller-tcpa
// candidate replaces the winner. The current winner being in the
// minimum-recovery regime must not special-case this away.
func TestMostUrgentDcpaStrategyAppliesAcrossRegimeBoundary(t *testing.T) {
	own := traffic.MakeOwnshipState("OWN", geom.Vect3{}, geom.Vect3{})
	// dcpa == 0.999997 (just inside the minimum-recovery regime), tcpa == 5.
	recovery := traffic.MakeTrafficState("RECOVERY", geom.Vect3{X: 0.999997, Y: 10}, geom.Vect3{Y: -2})
	// dcpa == 1.000002 (just outside it, almost_equals to 0.999997 at
	// precision5 — a 5e-6 gap, well inside the 1e-5 tolerance), tcpa == 2 —
	// sooner, so it must win the tie.
	clearTie := traffic.MakeTrafficState("CLEARTIE", geom.Vect3{X: 1.000002, Y: 10}, geom.Vect3{Y: -5})

	got := MostUrgent(alwaysConflictDetector{}, own, []traffic.TrafficState{recovery, clearTie}, testD, testH, testT)
	if got.Callsign != "CLEARTIE" {
		t.Errorf("MostUrgent = %v, want CLEARTIE (dcpa-strategy tie-break applies even though the incumbent's dcpa<=1)", got.Callsign)
	}
}

func TestMostUrgentClearRegimeAlmostEqualDcpaFallsBackToTcpa(t *testing.T) {
	own := traffic.MakeOwnshipState("OWN", geom.Vect3{}, geom.Vect3{})
	// dcpa == 3, tcpa == 4 (approaches from x=4,y=3 toward x=0).
	slow := traffic.MakeTrafficState("SLOW", geom.Vect3{X: 4, Y: 3}, geom.Vect3{X: -1})
	// dcpa == 3, tcpa == 0 (already stationary at closest approach).
	soon := traffic.MakeTrafficState("SOON", geom.Vect3{Y: 3}, geom.Vect3{})

	got := MostUrgent(alwaysConflictDetector{}, own, []traffic.TrafficState{slow, soon}, testD, testH, testT)
	if got.Callsign != "SOON" {
		t.Errorf("MostUrgent = %v, want SOON (tied dcpa falls back to sooner tcpa)", got.Callsign)
	}
}
