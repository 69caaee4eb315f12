// pkg/criteria/criteria.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package criteria ships a concrete CriteriaKit: the horizontal and
// vertical "new repulsive criterion" predicates the bands core's
// repulsion checks (spec.md §4.2.2) are built from. The exact internal
// solver behind DAIDALUS's repulsive criteria isn't part of this
// module's scope (spec.md §1 keeps CriteriaKit an external collaborator),
// so this package ships one concrete, documented, testable realization
// rather than attempting byte-for-byte parity with an unexposed source.
package criteria

import "github.com/skywatch-systems/daaband/pkg/geom"

// Kit is the engine's default CriteriaKit.
type Kit struct{}

func det2(a, b geom.Vect3) float64 {
	return a.X*b.Y - a.Y*b.X
}

// HorizontalNewRepulsive asks whether maneuvering the ownship's
// horizontal velocity from v1 to v2 keeps it on the side of the
// intruder's relative position s that eps designates as "repulsive" —
// true if the relative velocity before the maneuver, after the maneuver,
// or the turn between them points away from s in the eps sense. s, v1,
// v2 are the ownship-frame quantities; vi is the intruder's velocity,
// subtracted out to work in the ownship-relative frame the geometric
// test is defined in.
func (Kit) HorizontalNewRepulsive(s, v1, vi, v2 geom.Vect3, eps int) bool {
	rv1 := v1.Sub(vi)
	rv2 := v2.Sub(vi)
	e := float64(eps)
	return e*det2(s, rv1) <= 0 || e*det2(s, rv2) <= 0 || e*det2(rv1, rv2) <= 0
}

// VerticalNewRepulsive is the 1-D analogue of HorizontalNewRepulsive: the
// horizontal cross product collapses to a signed product against the
// vertical component of s.
func (Kit) VerticalNewRepulsive(s, v1, vi, v2 geom.Vect3, eps int) bool {
	rv1 := v1.Z - vi.Z
	rv2 := v2.Z - vi.Z
	e := float64(eps)
	return e*s.Z*rv1 <= 0 || e*s.Z*rv2 <= 0 || e*rv1*rv2 <= 0
}
