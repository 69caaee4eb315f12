// pkg/sampler/sampler.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package sampler ships the engine's concrete TrajectorySampler
// implementations: constant-rate turn, constant-rate speed change, and
// constant-rate climb/descent. Each rate-limits its maneuver the way the
// teacher's pkg/aviation Nav.updateHeading/updateAirspeed/updateAltitude
// do — accelerate toward a target at a capped rate, then hold once the
// performance limit is reached — generalized here to an indefinite
// constant-rate maneuver since the bands core only ever asks "where
// would the aircraft be at time t," never "has it reached a target."
package sampler

import (
	"math"

	"github.com/skywatch-systems/daaband/pkg/daa"
	"github.com/skywatch-systems/daaband/pkg/geom"
	"github.com/skywatch-systems/daaband/pkg/traffic"
)

// sign returns +1 for daa.Right and -1 for daa.Left, matching the
// convention that Right samples the positive-index side of "no
// maneuver."
func sign(dir daa.Direction) float64 {
	if dir == daa.Right {
		return 1
	}
	return -1
}

// Heading is a TrajectorySampler for a constant-rate turn: the ownship's
// horizontal track rotates at RateRadPerSec (the rate a given bank angle
// sustains), vertical rate and speed held fixed, tracing a circular arc.
type Heading struct {
	RateRadPerSec float64 // > 0
}

func (h Heading) Trajectory(own traffic.OwnshipState, t float64, dir daa.Direction) (geom.Vect3, geom.Velocity) {
	v0 := own.V()
	speed := math.Hypot(v0.X, v0.Y)
	if speed <= geom.Precision5 || h.RateRadPerSec <= 0 {
		return v0.ScalAdd(t, own.S()), v0
	}

	omega := sign(dir) * h.RateRadPerSec
	a0 := math.Atan2(v0.Y, v0.X)
	a1 := a0 + omega*t

	vel := geom.Vect3{X: speed * math.Cos(a1), Y: speed * math.Sin(a1), Z: v0.Z}
	dx := (speed / omega) * (math.Sin(a1) - math.Sin(a0))
	dy := -(speed / omega) * (math.Cos(a1) - math.Cos(a0))
	pos := geom.Vect3{X: own.S().X + dx, Y: own.S().Y + dy, Z: own.S().Z + v0.Z*t}
	return pos, vel
}

// Speed is a TrajectorySampler for a constant-rate speed change: the
// ownship accelerates (or decelerates) along its current 3-D track at
// AccelPerSec up to a total delta of MaxDeltaSpeed, then holds.
type Speed struct {
	AccelPerSec   float64 // > 0, units/s^2
	MaxDeltaSpeed float64 // > 0, units/s
}

func (s Speed) Trajectory(own traffic.OwnshipState, t float64, dir daa.Direction) (geom.Vect3, geom.Velocity) {
	v0 := own.V()
	speed0 := math.Sqrt(v0.Dot(v0))
	if speed0 <= geom.Precision5 || s.AccelPerSec <= 0 {
		return v0.ScalAdd(t, own.S()), v0
	}
	unit := v0.Scal(1 / speed0)

	accel := sign(dir) * s.AccelPerSec
	rampTime := math.Abs(s.MaxDeltaSpeed / s.AccelPerSec)
	eff := math.Min(t, rampTime)

	speedAtEff := speed0 + accel*eff
	dist := speed0*eff + 0.5*accel*eff*eff
	if t > eff {
		dist += speedAtEff * (t - eff)
	}

	vel := unit.Scal(speedAtEff)
	pos := unit.ScalAdd(dist, own.S())
	return pos, vel
}

// Vertical is a TrajectorySampler for a constant-rate climb or descent:
// horizontal track and speed are held fixed while the vertical rate
// ramps at AccelPerSec up to a total delta of MaxDeltaRate, then holds.
type Vertical struct {
	AccelPerSec  float64 // > 0, ft/s^2
	MaxDeltaRate float64 // > 0, ft/s
}

func (s Vertical) Trajectory(own traffic.OwnshipState, t float64, dir daa.Direction) (geom.Vect3, geom.Velocity) {
	v0 := own.V()
	if s.AccelPerSec <= 0 {
		return v0.ScalAdd(t, own.S()), v0
	}

	accel := sign(dir) * s.AccelPerSec
	rampTime := math.Abs(s.MaxDeltaRate / s.AccelPerSec)
	eff := math.Min(t, rampTime)

	vzAtEff := v0.Z + accel*eff
	zDelta := v0.Z*eff + 0.5*accel*eff*eff
	if t > eff {
		zDelta += vzAtEff * (t - eff)
	}

	vel := geom.Vect3{X: v0.X, Y: v0.Y, Z: vzAtEff}
	pos := geom.Vect3{X: own.S().X + v0.X*t, Y: own.S().Y + v0.Y*t, Z: own.S().Z + zDelta}
	return pos, vel
}
