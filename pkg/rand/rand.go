// pkg/rand/rand.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package rand

import (
	"github.com/MichaelTJones/pcg"
)

// Rand is a small PCG32-backed generator used to build repeatable
// randomized test fixtures (e.g. the conformance check in
// pkg/daa/bands_test.go that compares the two-state scanner against a
// brute-force enumerator over random conflict patterns). It is not used
// anywhere in the core itself, which is purely a function of its inputs.
type Rand struct {
	r *pcg.PCG32
}

func New(seed int64) Rand {
	r := Rand{r: pcg.NewPCG32()}
	r.Seed(seed)
	return r
}

func (r *Rand) Seed(s int64) {
	r.r.Seed(uint64(s), 0xda3e39cb94b95bdb)
}

// Intn returns a pseudo-random integer in [0, n).
func (r *Rand) Intn(n int) int {
	return int(r.r.Bounded(uint32(n)))
}

// Float64 returns a pseudo-random float in [0, 1).
func (r *Rand) Float64() float64 {
	return float64(r.r.Random()) / (1 << 32)
}

// Bool returns a pseudo-random boolean with probability p of being true.
func (r *Rand) Bool(p float64) bool {
	return r.Float64() < p
}
