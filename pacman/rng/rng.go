// Package rng provides the default ports.RNG implementation: a thin wrapper
// over math/rand/v2, so ghost movement never calls the global generator
// directly and a deterministic seed can be pinned for tests and replays.
package rng

import "math/rand/v2"

// Source wraps a math/rand/v2.Rand behind ports.RNG.
type Source struct {
	r *rand.Rand
}

// New returns a Source seeded deterministically from seed. The same seed
// always produces the same draw sequence, which is what makes recorded
// replays (package replay) reproducible.
func New(seed uint64) *Source {
	return &Source{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Uint32 returns a uniformly distributed pseudo-random uint32.
func (s *Source) Uint32() uint32 {
	return uint32(s.r.Uint64())
}

// IntN returns a pseudo-random int in [0,n). It panics if n<=0.
func (s *Source) IntN(n int) int {
	return s.r.IntN(n)
}
