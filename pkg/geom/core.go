// pkg/geom/core.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package geom

import (
	gomath "math"

	"golang.org/x/exp/constraints"
)

// A small set of scalar helpers so that callers don't need to sprinkle
// casts to the standard math package everywhere; the bands core works
// exclusively in float64 since the precision5 comparisons in the urgency
// and interval logic (see AlmostEquals) are sensitive to the rounding error
// float32 would otherwise introduce over a multi-hundred-second horizon.

func Sqrt(a float64) float64 {
	return gomath.Sqrt(a)
}

func Atan2(y, x float64) float64 {
	return gomath.Atan2(y, x)
}

func Mod(a, b float64) float64 {
	return gomath.Mod(a, b)
}

func Sign(v float64) float64 {
	if v > 0 {
		return 1
	} else if v < 0 {
		return -1
	}
	return 0
}

func Abs[V constraints.Integer | constraints.Float](x V) V {
	if x < 0 {
		return -x
	}
	return x
}

func Min[T constraints.Ordered](a, b T) T {
	if a < b {
		return a
	}
	return b
}

func Max[T constraints.Ordered](a, b T) T {
	if a > b {
		return a
	}
	return b
}

func Clamp[T constraints.Ordered](x, low, high T) T {
	if x < low {
		return low
	} else if x > high {
		return high
	}
	return x
}

func Sqr[V constraints.Integer | constraints.Float](v V) V { return v * v }
