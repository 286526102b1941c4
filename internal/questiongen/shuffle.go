package questiongen

import (
	"math/rand/v2"
	"time"
)

// NewRand returns a generator seeded from the clock.
func NewRand() *rand.Rand {
	now := uint64(time.Now().UnixNano())
	return rand.New(rand.NewPCG(now, now>>32|1))
}

// NewSeededRand returns a deterministic generator for reproducible runs.
func NewSeededRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Shuffle returns a uniformly random permutation of in without modifying it.
func Shuffle[T any](rng *rand.Rand, in []T) []T {
	out := append([]T(nil), in...)
	if len(out) <= 1 {
		return out
	}
	for i := len(out) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Sample returns up to n elements of in chosen without replacement.
func Sample[T any](rng *rand.Rand, in []T, n int) []T {
	out := Shuffle(rng, in)
	if n < len(out) {
		out = out[:max(n, 0)]
	}
	return out
}
