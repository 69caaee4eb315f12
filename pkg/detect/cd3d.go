// pkg/detect/cd3d.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package detect ships a concrete ConflictOracle: CD3D, a closed-form
// cylindrical conflict detector operating on constant-velocity relative
// motion. It is the engine's default detector, used both for the
// primary/recovery windows a BandsQuery is built from and as the
// detector UrgencyRanking filters candidates against.
package detect

import (
	"math"

	"github.com/skywatch-systems/daaband/pkg/daa"
	"github.com/skywatch-systems/daaband/pkg/geom"
)

// CD3D is a cylindrical closest-point-of-approach conflict detector
// parameterized by the NMAC cylinder (D horizontal radius, H vertical
// half-height). It treats the horizontal and vertical separation
// envelopes independently and intersects the resulting time intervals,
// the same decomposition ACCoRD's CD3D uses to turn a 3-D conflict query
// into two independent root-solves (a 2-D quadratic horizontally, a 1-D
// linear one vertically).
type CD3D struct {
	D, H float64
}

// New builds a CD3D detector for the given NMAC cylinder.
func New(D, H float64) CD3D {
	return CD3D{D: D, H: H}
}

// Violation reports an instantaneous loss of separation: the relative
// position so-vs-si(right now) lies within the (D, H) cylinder.
func (c CD3D) Violation(so, vo, si geom.Vect3, vi geom.Velocity) bool {
	return si.Sub(so).WithinCylinder(c.D, c.H)
}

// Conflict solves, in closed form, whether the constant-velocity
// relative trajectory enters the NMAC cylinder at some time in [B, T].
func (c CD3D) Conflict(so, vo, si geom.Vect3, vi geom.Velocity, B, T float64) daa.ConflictData {
	p0 := si.Sub(so)
	v := vi.Sub(vo)

	hLo, hHi, hOK := horizontalInterval(p0.X, p0.Y, v.X, v.Y, c.D)
	if !hOK {
		return daa.ConflictData{}
	}
	vLo, vHi, vOK := boundedBand(p0.Z, v.Z, c.H)
	if !vOK {
		return daa.ConflictData{}
	}

	lo := math.Max(math.Max(hLo, vLo), B)
	hi := math.Min(math.Min(hHi, vHi), T)
	return daa.ConflictData{HasConflict: lo <= hi}
}

// Tccpa is the horizontal time of closest point of approach under
// constant-velocity relative motion, clamped to be non-negative: a
// closest approach "in the past" is as close as the pair ever gets from
// here on, so the clamp reports "now."
func (c CD3D) Tccpa(s, vo, vi geom.Vect3) float64 {
	vrelX, vrelY := vi.X-vo.X, vi.Y-vo.Y
	denom := vrelX*vrelX + vrelY*vrelY
	if denom <= geom.Precision5 {
		return 0
	}
	t := -(s.X*vrelX + s.Y*vrelY) / denom
	return math.Max(t, 0)
}

// horizontalInterval solves for the interval of t over which
// |(x,y) + t*(vx,vy)| < r under constant-velocity planar motion. ok is
// false when the point is never within r.
func horizontalInterval(x, y, vx, vy, r float64) (lo, hi float64, ok bool) {
	a := vx*vx + vy*vy
	b := 2 * (x*vx + y*vy)
	cc := x*x + y*y - r*r

	if a <= geom.Precision5 {
		if cc < 0 {
			return math.Inf(-1), math.Inf(1), true
		}
		return 0, 0, false
	}
	disc := b*b - 4*a*cc
	if disc <= 0 {
		return 0, 0, false
	}
	sq := math.Sqrt(disc)
	return (-b - sq) / (2 * a), (-b + sq) / (2 * a), true
}

// boundedBand solves for the interval of t over which |z + t*vz| < h.
func boundedBand(z, vz, h float64) (lo, hi float64, ok bool) {
	if math.Abs(vz) <= geom.Precision5 {
		if math.Abs(z) < h {
			return math.Inf(-1), math.Inf(1), true
		}
		return 0, 0, false
	}
	t1 := (-h - z) / vz
	t2 := (h - z) / vz
	if t1 > t2 {
		t1, t2 = t2, t1
	}
	return t1, t2, true
}
