package hkid

import "math/rand/v2"

// RandomSource supplies uniform integers in [0, n). *rand.Rand from
// math/rand/v2 satisfies it, which makes seeded, reproducible generation a
// one-liner in tests and tools.
type RandomSource interface {
	IntN(n int) int
}

// globalSource draws from the math/rand/v2 top-level generator, which is
// randomly seeded and safe for concurrent use.
type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// NewSeededSource returns a deterministic source. It is not safe for
// concurrent use.
func NewSeededSource(seed uint64) RandomSource {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
