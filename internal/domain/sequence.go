package domain

import (
	"fmt"
	"math/rand"
)

// Generator names how a fresh match sequence is produced.
type Generator string

const (
	// GeneratorPermutation shuffles the values 1..N.
	GeneratorPermutation Generator = "permutation"
	// GeneratorDraws draws N values uniformly from 1..max.
	GeneratorDraws Generator = "draws"
)

const (
	DefaultBoardLength = 14
	DefaultMaxValue    = 20
)

// NewPermutation returns the values 1..n in random order.
func NewPermutation(rng *rand.Rand, n int) []int {
	seq := make([]int, n)
	for i := range seq {
		seq[i] = i + 1
	}
	rng.Shuffle(len(seq), func(i, j int) { seq[i], seq[j] = seq[j], seq[i] })
	return seq
}

// NewDraws returns n values drawn uniformly from 1..max.
func NewDraws(rng *rand.Rand, n, max int) []int {
	seq := make([]int, n)
	for i := range seq {
		seq[i] = rng.Intn(max) + 1
	}
	return seq
}

// GenerateSequence builds a sequence of length n with the named generator.
func GenerateSequence(rng *rand.Rand, gen Generator, n, max int) ([]int, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: length %d", ErrInvalidSequence, n)
	}
	switch gen {
	case GeneratorPermutation, "":
		return NewPermutation(rng, n), nil
	case GeneratorDraws:
		if max <= 0 {
			return nil, fmt.Errorf("%w: max value %d", ErrInvalidSequence, max)
		}
		return NewDraws(rng, n, max), nil
	default:
		return nil, fmt.Errorf("unknown sequence generator: %q", gen)
	}
}
