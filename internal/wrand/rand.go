package wrand

import "math/rand/v2"

// Rand is the randomness source passed into every draw.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
	Float64() float64
}

// NewRand returns a PCG source for the seed. Seed 0 means a randomly seeded
// source, so draws are not reproducible.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
}

type globalRand struct{}

func (globalRand) IntN(n int) int   { return rand.IntN(n) }
func (globalRand) Float64() float64 { return rand.Float64() }

// Global draws from the process-wide source of math/rand/v2. It is safe for
// concurrent use, unlike sources returned by NewRand.
var Global Rand = globalRand{}
