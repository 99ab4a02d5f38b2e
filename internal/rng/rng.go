// Package rng provides the seeded random source and weighted sampling used
// by the map generator. Every generation run owns exactly one Rand; with a
// fixed seed the same call sequence reproduces the same outputs.
package rng

import (
	"errors"
	"fmt"
	"math/rand"
)

var (
	ErrEmptyWeights = errors.New("rng: weight table is empty")
	ErrZeroWeights  = errors.New("rng: weight table sums to zero")
	ErrBadWeight    = errors.New("rng: negative weight")
)

// Rand is a deterministic random source for one generation run.
type Rand struct {
	seed int64
	src  *rand.Rand
}

// New creates a Rand from a seed.
func New(seed int64) *Rand {
	return &Rand{
		seed: seed,
		src:  rand.New(rand.NewSource(seed)),
	}
}

// Seed returns the seed the Rand was created with.
func (r *Rand) Seed() int64 {
	return r.seed
}

// WeightedIndex picks an index with probability proportional to its weight.
// Weights need not sum to 1. An empty, negative, or all-zero table is a
// configuration error, never a silent uniform fallback.
func (r *Rand) WeightedIndex(weights []float64) (int, error) {
	if len(weights) == 0 {
		return 0, ErrEmptyWeights
	}

	total := 0.0
	for i, w := range weights {
		if w < 0 {
			return 0, fmt.Errorf("%w: weights[%d] = %v", ErrBadWeight, i, w)
		}
		total += w
	}
	if total <= 0 {
		return 0, ErrZeroWeights
	}

	roll := r.src.Float64() * total
	cumulative := 0.0
	for i, w := range weights {
		cumulative += w
		if roll < cumulative {
			return i, nil
		}
	}

	// Float accumulation can land exactly on the total; the last
	// positive-weight entry takes it.
	for i := len(weights) - 1; i >= 0; i-- {
		if weights[i] > 0 {
			return i, nil
		}
	}
	return len(weights) - 1, nil
}

// Prob returns true with probability p. Values outside [0,1] saturate.
func (r *Rand) Prob(p float64) bool {
	if p <= 0 {
		// Keep the stream position independent of p so probability
		// gates consume one draw regardless of outcome.
		r.src.Float64()
		return false
	}
	if p >= 1 {
		r.src.Float64()
		return true
	}
	return r.src.Float64() < p
}

// IntRange returns a uniform int in [lo, hi] inclusive.
func (r *Rand) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.src.Intn(hi-lo+1)
}

// FloatRange returns a uniform float64 in [lo, hi).
func (r *Rand) FloatRange(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + r.src.Float64()*(hi-lo)
}
