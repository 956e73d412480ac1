// Package split partitions a dataset into train, validation and test subsets.
package split

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// Sentinel errors for partitioning.
var (
	// ErrInvalidRatios indicates ratios that are negative or do not sum to PerMille.
	ErrInvalidRatios = errors.New("split: invalid ratios")

	// ErrNilRand indicates a partition was requested without a random source.
	ErrNilRand = errors.New("split: rng is required")
)

// PerMille is the denominator of Ratios.
const PerMille = 1000

// Ratios are subset proportions in thousandths. Integer arithmetic keeps
// floor(n * ratio) exact.
type Ratios struct {
	Train int
	Valid int
	Test  int
}

// DefaultRatios is the 67.8% / 8.1% / 24.1% split.
var DefaultRatios = Ratios{Train: 678, Valid: 81, Test: 241}

// Validate checks that r is usable.
func (r Ratios) Validate() error {
	if r.Train < 0 || r.Valid < 0 || r.Test < 0 {
		return fmt.Errorf("%w: negative share in %+v", ErrInvalidRatios, r)
	}
	if sum := r.Train + r.Valid + r.Test; sum != PerMille {
		return fmt.Errorf("%w: shares sum to %d, want %d", ErrInvalidRatios, sum, PerMille)
	}
	return nil
}

// Sizes returns subset sizes for n items. Train and validation are floored;
// test takes its floored share plus every remainder so the sizes sum to n.
func Sizes(n int, r Ratios) (train, valid, test int) {
	train = n * r.Train / PerMille
	valid = n * r.Valid / PerMille
	test = n * r.Test / PerMille
	test += n - (train + valid + test)
	return train, valid, test
}

// Split holds three disjoint subsets.
type Split[T any] struct {
	Train []T
	Valid []T
	Test  []T
}

// Len returns the total number of items across subsets.
func (s Split[T]) Len() int {
	return len(s.Train) + len(s.Valid) + len(s.Test)
}

// Partition shuffles a copy of items with rng and slices it into subsets:
// the first train items go to Train, the next valid to Valid, the rest to
// Test. items is not modified.
func Partition[T any](items []T, rng *rand.Rand, r Ratios) (Split[T], error) {
	if rng == nil {
		return Split[T]{}, ErrNilRand
	}
	if err := r.Validate(); err != nil {
		return Split[T]{}, err
	}

	shuffled := make([]T, len(items))
	copy(shuffled, items)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	train, valid, _ := Sizes(len(shuffled), r)
	return Split[T]{
		Train: shuffled[:train:train],
		Valid: shuffled[train : train+valid : train+valid],
		Test:  shuffled[train+valid:],
	}, nil
}

// NewRand returns a PCG-backed generator seeded with seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// RandomRand returns a generator seeded from the runtime's random source.
func RandomRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}
