// pkg/daa/types.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package daa is the core of the detect-and-avoid advisory engine: it
// picks the most urgent intruder (UrgencyRanking) and computes kinematic
// integer bands over candidate maneuver trajectories (KinematicBandsCore).
// Everything here is a pure function of its inputs — no I/O, no logging,
// no mutable package state — so that it can be called concurrently from
// independent goroutines as long as each call is given disjoint output
// buffers and the injected collaborators (ConflictOracle, TrajectorySampler,
// CriteriaKit) are themselves free of shared mutable state.
package daa

import (
	"github.com/skywatch-systems/daaband/pkg/geom"
	"github.com/skywatch-systems/daaband/pkg/traffic"
)

// Direction selects which side of "no maneuver" a candidate trajectory
// samples: Left turns/decelerates/descends away from current, Right does
// the opposite. It corresponds to the `trajdir` parameter throughout
// spec.md.
type Direction bool

const (
	Left  Direction = false
	Right Direction = true
)

func (d Direction) String() string {
	if d == Right {
		return "right"
	}
	return "left"
}

// DirFilter is the query-side filter used by AllIntRed/AnyIntRed: -1
// means left only, +1 means right only, 0 means both.
type DirFilter int

const (
	DirLeft  DirFilter = -1
	DirBoth  DirFilter = 0
	DirRight DirFilter = 1
)

// ConflictData is what a ConflictOracle.Conflict call reports: whether a
// loss of separation occurs somewhere in the requested time window.
type ConflictData struct {
	HasConflict bool
}

// ConflictOracle is the external collaborator the core queries for
// "is there a loss of separation right now" and "is there a conflict in
// this future time window." The core never constructs one; it is always
// injected, and primary/recovery detection may use two distinct
// instances of this interface.
type ConflictOracle interface {
	Violation(so, vo, si geom.Vect3, vi geom.Velocity) bool
	Conflict(so, vo, si geom.Vect3, vi geom.Velocity, B, T float64) ConflictData
}

// TrajectorySampler is the external collaborator that knows how to fly a
// candidate maneuver: given an ownship state, an elapsed time, and a
// direction, it reports the sampled position/velocity along that
// candidate trajectory. trajectory(ownship, 0, dir) must equal
// (ownship.Position, ownship.Velocity) for either direction.
type TrajectorySampler interface {
	Trajectory(own traffic.OwnshipState, t float64, dir Direction) (pos geom.Vect3, vel geom.Velocity)
}

// CriteriaKit is the external collaborator exposing the horizontal and
// vertical "new repulsive criterion" predicates the bands core's
// repulsion checks are built from.
type CriteriaKit interface {
	HorizontalNewRepulsive(s, v1, vi, v2 geom.Vect3, eps int) bool
	VerticalNewRepulsive(s, v1, vi, v2 geom.Vect3, eps int) bool
}

// IntegerInterval is a closed integer range [LB, UB], LB <= UB,
// representing sample grid indices k.
type IntegerInterval struct {
	LB, UB int
}

// IntervalList is an ordered, strictly increasing, non-adjacent sequence
// of IntegerIntervals (gap >= 2 between consecutive intervals). Callers
// that build one incrementally (e.g. AppendIntband) are responsible for
// keeping it coalesced; the scanner in TrajConflictOnlyBands already
// produces output satisfying this by construction.
type IntervalList []IntegerInterval

// RealInterval is a closed real-number interval.
type RealInterval struct {
	LB, UB float64
}

// RealIntervalSet is an ordered set of RealIntervals after projection
// from an IntervalList, with near-adjacent intervals merged at
// geom.Precision5 by almostAdd.
type RealIntervalSet []RealInterval

// BandsQuery holds the immutable inputs to one bands computation. All
// collaborators are read-only borrows held for the scope of the call;
// the core owns only the IntervalList(s) it produces.
type BandsQuery struct {
	ConflictDet ConflictOracle // must be non-nil
	RecoveryDet ConflictOracle // nil disables the recovery window entirely
	Sampler     TrajectorySampler
	Criteria    CriteriaKit

	TStep float64 // > 0
	B, T  float64 // primary window, 0 <= B <= T
	B2, T2 float64 // recovery window, 0 <= B2 <= T2 (ignored if RecoveryDet == nil)

	MaxL, MaxR int // left/right max sample index

	Ownship traffic.OwnshipState
	Traffic []traffic.TrafficState
	Repac   traffic.TrafficState // urgent intruder; traffic.Invalid disables repulsion

	EpsH, EpsV int // repulsion sign, -1/0/+1; 0 disables that check
	Dir        DirFilter
}

func (q *BandsQuery) useHCrit() bool {
	return q.Repac.IsValid() && q.EpsH != 0
}

func (q *BandsQuery) useVCrit() bool {
	return q.Repac.IsValid() && q.EpsV != 0
}

func (q *BandsQuery) maxFor(dir Direction) int {
	if dir == Right {
		return q.MaxR
	}
	return q.MaxL
}
