// pkg/rand/rand_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package rand

import "testing"

func TestSeededRepeatable(t *testing.T) {
	a := New(42)
	b := New(42)
	for i := 0; i < 100; i++ {
		if a.Intn(1000) != b.Intn(1000) {
			t.Fatalf("generators seeded identically diverged at step %d", i)
		}
	}
}

func TestIntnRange(t *testing.T) {
	r := New(7)
	for i := 0; i < 1000; i++ {
		v := r.Intn(10)
		if v < 0 || v >= 10 {
			t.Fatalf("Intn(10) returned out-of-range value %d", v)
		}
	}
}

func TestBoolDistribution(t *testing.T) {
	r := New(1)
	trues := 0
	const n = 10000
	for i := 0; i < n; i++ {
		if r.Bool(0.5) {
			trues++
		}
	}
	// Loose sanity check, not a statistical test: a seeded PCG32 shouldn't
	// be wildly skewed over 10000 draws.
	if trues < n/3 || trues > 2*n/3 {
		t.Errorf("Bool(0.5) looks skewed: %d/%d true", trues, n)
	}
}
