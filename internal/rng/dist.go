package rng

import (
	"errors"
	"fmt"
)

var (
	ErrDistLength = errors.New("rng: values and weights length mismatch")
	ErrDistEmpty  = errors.New("rng: distribution has no entries")
)

// Dist is a discrete weighted distribution over arbitrary values, the shape
// the generation profile uses for its kernel size, margin, and circularity
// tables. Weights need not sum to 1.
type Dist[T any] struct {
	Values  []T       `yaml:"values" json:"values"`
	Weights []float64 `yaml:"weights" json:"weights"`
}

// NewDist builds a distribution from parallel value/weight slices.
func NewDist[T any](values []T, weights []float64) Dist[T] {
	return Dist[T]{Values: values, Weights: weights}
}

// Validate checks that the distribution is sampleable: parallel non-empty
// slices, no negative weight, positive total weight.
func (d Dist[T]) Validate() error {
	if len(d.Values) == 0 {
		return ErrDistEmpty
	}
	if len(d.Values) != len(d.Weights) {
		return fmt.Errorf("%w: %d values, %d weights", ErrDistLength, len(d.Values), len(d.Weights))
	}

	total := 0.0
	for i, w := range d.Weights {
		if w < 0 {
			return fmt.Errorf("%w: weights[%d] = %v", ErrBadWeight, i, w)
		}
		total += w
	}
	if total <= 0 {
		return ErrZeroWeights
	}
	return nil
}

// Sample draws one value with probability proportional to its weight.
func (d Dist[T]) Sample(r *Rand) (T, error) {
	idx, err := r.WeightedIndex(d.Weights)
	if err != nil {
		var zero T
		return zero, err
	}
	if idx >= len(d.Values) {
		var zero T
		return zero, fmt.Errorf("%w: index %d for %d values", ErrDistLength, idx, len(d.Values))
	}
	return d.Values[idx], nil
}

// Max returns the largest value in an ordered distribution. Used to size the
// initial kernels from the profile's maximum configured sizes.
func Max[T int | float64](d Dist[T]) T {
	var max T
	for i, v := range d.Values {
		if i == 0 || v > max {
			max = v
		}
	}
	return max
}
