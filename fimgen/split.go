package fimgen

import (
	"math/rand/v2"

	"github.com/arjunmahishi/fimgen/types"
)

// Splitter decides which split a file's samples go to, independently of
// the file's content.
type Splitter struct {
	testRatio float64
	rng       *rand.Rand
}

// NewSplitter returns a Splitter that picks the test split with
// probability testRatio.
func NewSplitter(testRatio float64, rng *rand.Rand) *Splitter {
	return &Splitter{testRatio: testRatio, rng: rng}
}

// NewSeededSplitter returns a Splitter drawing from a PCG source seeded
// with seed, or from a randomly seeded one when seed is 0.
func NewSeededSplitter(testRatio float64, seed uint64) *Splitter {
	return NewSplitter(testRatio, NewRand(seed))
}

// Decide draws the split of the next file.
func (s *Splitter) Decide() types.Split {
	if s.rng.Float64() < s.testRatio {
		return types.SplitTest
	}
	return types.SplitTrain
}

// NewRand returns a PCG-backed generator for seed. A zero seed is replaced
// with a random one.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed))
}
