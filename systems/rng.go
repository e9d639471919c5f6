package systems

import (
	"math/rand"
)

// Source yields uniform random values in [0, 1).
// *rand.Rand satisfies it; tests can supply a scripted sequence.
type Source interface {
	Float64() float64
}

// NewSource returns a generator seeded with seed. Every seed, 0 included,
// reproduces the same sequence; callers wanting a fresh field pick the seed.
func NewSource(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
