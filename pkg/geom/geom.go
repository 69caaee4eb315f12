// pkg/geom/geom.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package geom

// Vect3 is a point or displacement in the ownship-relative Cartesian
// frame that the bands core operates in: X/Y horizontal, Z vertical.
// Velocity is the same shape; the two are kept as distinct names because
// the core's signatures (pos_to_s, vel_to_v, traffic_s, traffic_v, ...)
// distinguish positions from velocities even though they share a
// representation.
type Vect3 struct {
	X, Y, Z float64
}

type Velocity = Vect3

func (a Vect3) Add(b Vect3) Vect3 {
	return Vect3{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

func (a Vect3) Sub(b Vect3) Vect3 {
	return Vect3{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

func (a Vect3) Scal(s float64) Vect3 {
	return Vect3{a.X * s, a.Y * s, a.Z * s}
}

// ScalAdd returns a + s*b, matching the ACCoRD/DAIDALUS naming the
// original source uses for "scale then add" (e.g. vi.ScalAdd(t, si) to
// linearly propagate a traffic position).
func (a Vect3) ScalAdd(s float64, b Vect3) Vect3 {
	return Vect3{b.X + s*a.X, b.Y + s*a.Y, b.Z + s*a.Z}
}

func (a Vect3) Dot(b Vect3) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

func (a Vect3) Vect2() (float64, float64) {
	return a.X, a.Y
}

// HorizNormSq returns the squared horizontal magnitude.
func (a Vect3) HorizNormSq() float64 {
	return a.X*a.X + a.Y*a.Y
}

func (a Vect3) HorizNorm() float64 {
	return Sqrt(a.HorizNormSq())
}

// CylNorm is the dimensionless cylindrical norm parameterized by
// horizontal radius D and half-height H: the unit cylinder (value 1) is
// the NMAC boundary. It combines the independent horizontal and vertical
// ratios with a max, which gives the norm its characteristic cylinder
// shape (flat caps, round sides) rather than an ellipsoid.
func (a Vect3) CylNorm(D, H float64) float64 {
	return Max(a.HorizNorm()/D, Abs(a.Z)/H)
}

// WithinCylinder reports whether the point is strictly inside the (D, H)
// cylinder, i.e. a loss of separation at this relative position.
func (a Vect3) WithinCylinder(D, H float64) bool {
	return a.HorizNorm() < D && Abs(a.Z) < H
}

// ToTwoPi wraps an angle expressed in radians to [0, 2*pi).
func ToTwoPi(x float64) float64 {
	twopi := 2 * 3.141592653589793
	y := Mod(x, twopi)
	if y < 0 {
		y += twopi
	}
	return y
}

// Precision5 is the fixed comparison tolerance used throughout the
// urgency and bands logic wherever the original source calls
// Util::almost_equals(..., PRECISION5).
const Precision5 = 1e-5

// AlmostEquals reports whether a and b agree to within Precision5,
// either in absolute terms or relative to their magnitude — the same
// two-sided test ACCoRD's Util::almost_equals performs so that
// comparisons of both small and large quantities behave sensibly.
func AlmostEquals(a, b float64) bool {
	if a == b {
		return true
	}
	d := Abs(a - b)
	if d <= Precision5 {
		return true
	}
	m := Max(Abs(a), Abs(b))
	return d <= Precision5*m
}
