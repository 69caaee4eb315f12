// pkg/traffic/state.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package traffic holds the immutable per-computation state the bands
// core reads: the ownship's own position/velocity and the list of
// intruder aircraft it's being flown relative to.
package traffic

import "github.com/skywatch-systems/daaband/pkg/geom"

// ADSBCallsign identifies one aircraft across a traffic feed.
type ADSBCallsign string

// TrafficState is one intruder's position and velocity, both already
// expressed in the same Cartesian frame the ownship's OwnshipState uses.
// It is immutable once constructed.
type TrafficState struct {
	Callsign ADSBCallsign
	Position geom.Vect3
	Velocity geom.Velocity
	valid    bool
}

// Invalid is the sentinel "no candidate" value; mostUrgent and any
// operation guarded on repac.IsValid() use this to mean "not applicable."
var Invalid = TrafficState{}

func MakeTrafficState(callsign ADSBCallsign, pos geom.Vect3, vel geom.Velocity) TrafficState {
	return TrafficState{Callsign: callsign, Position: pos, Velocity: vel, valid: true}
}

func (t TrafficState) IsValid() bool {
	return t.valid
}

// OwnshipState is the aircraft's own current position and velocity. It
// is immutable for the scope of one bands computation: the bands core
// never mutates it, only samples candidate maneuvers relative to it
// through the injected trajectory sampler.
type OwnshipState struct {
	Callsign ADSBCallsign
	Position geom.Vect3
	Velocity geom.Velocity
	valid    bool
}

func MakeOwnshipState(callsign ADSBCallsign, pos geom.Vect3, vel geom.Velocity) OwnshipState {
	return OwnshipState{Callsign: callsign, Position: pos, Velocity: vel, valid: true}
}

func (o OwnshipState) IsValid() bool {
	return o.valid
}

// PosToS converts an absolute position into the ownship-relative frame.
// The data model (§3) requires all collaborators to operate in a single
// Cartesian frame; since positions here are already Cartesian and
// ownship-relative by construction (no lat/long conversion is part of
// this module's scope), this is the identity — the hook exists so a
// caller sitting above this package (one that does hold geodetic
// coordinates) has a single, well-defined place to perform that
// projection before calling into the bands core.
func (o OwnshipState) PosToS(p geom.Vect3) geom.Vect3 {
	return p
}

// VelToV converts an absolute velocity into the ownship-relative frame,
// for symmetry with PosToS; see its comment.
func (o OwnshipState) VelToV(pos geom.Vect3, v geom.Velocity) geom.Velocity {
	return v
}

// TrafficS returns the intruder's position already projected into the
// ownship's frame, i.e. `si` in spec.md's notation.
func (o OwnshipState) TrafficS(ac TrafficState) geom.Vect3 {
	return o.PosToS(ac.Position)
}

// TrafficV returns the intruder's velocity projected into the ownship's
// frame, i.e. `vi` in spec.md's notation.
func (o OwnshipState) TrafficV(ac TrafficState) geom.Velocity {
	return o.VelToV(ac.Position, ac.Velocity)
}

func (o OwnshipState) S() geom.Vect3 {
	return o.Position
}

func (o OwnshipState) V() geom.Velocity {
	return o.Velocity
}
