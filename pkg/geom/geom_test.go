// pkg/geom/geom_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package geom

import "testing"

func TestCylNorm(t *testing.T) {
	type tc struct {
		v    Vect3
		D, H float64
		want float64
	}
	cases := []tc{
		{Vect3{3, 4, 0}, 5, 1, 1},     // horizontal distance 5, exactly on the cylinder wall
		{Vect3{0, 0, 2}, 1, 1, 2},     // vertical dominates
		{Vect3{0, 0, 0}, 1, 1, 0},
		{Vect3{6, 8, 0}, 5, 1, 2},     // horizontal distance 10, D=5 -> ratio 2
	}
	for _, c := range cases {
		if got := c.v.CylNorm(c.D, c.H); !AlmostEquals(got, c.want) {
			t.Errorf("CylNorm(%v, D=%g, H=%g) = %g, want %g", c.v, c.D, c.H, got, c.want)
		}
	}
}

func TestWithinCylinder(t *testing.T) {
	if !(Vect3{0.5, 0, 0}.WithinCylinder(1, 1)) {
		t.Errorf("expected point within cylinder")
	}
	if (Vect3{2, 0, 0}.WithinCylinder(1, 1)) {
		t.Errorf("expected point outside cylinder")
	}
}

func TestToTwoPi(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{-1, 2*3.141592653589793 - 1},
		{0, 0},
		{3.141592653589793, 3.141592653589793},
		{2*3.141592653589793 + 0.5, 0.5},
	}
	for _, c := range cases {
		if got := ToTwoPi(c.in); !AlmostEquals(got, c.want) {
			t.Errorf("ToTwoPi(%g) = %g, want %g", c.in, got, c.want)
		}
	}
}

func TestAlmostEquals(t *testing.T) {
	if !AlmostEquals(1.0, 1.0+1e-7) {
		t.Errorf("expected 1.0 ~= 1.0+1e-7")
	}
	if AlmostEquals(1.0, 1.1) {
		t.Errorf("expected 1.0 !~= 1.1")
	}
	if !AlmostEquals(1e6, 1e6*(1+1e-7)) {
		t.Errorf("expected large values with tiny relative error to be almost equal")
	}
}

func TestScalAdd(t *testing.T) {
	s := Vect3{1, 2, 3}
	v := Vect3{10, 0, 0}
	got := v.ScalAdd(2, s)
	want := Vect3{21, 2, 3}
	if got != want {
		t.Errorf("ScalAdd got %v, want %v", got, want)
	}
}
