package fimgen

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arjunmahishi/fimgen/types"
)

func draw(s *Splitter, n int) []types.Split {
	out := make([]types.Split, n)
	for i := range out {
		out[i] = s.Decide()
	}
	return out
}

func TestSplitterDeterministic(t *testing.T) {
	a := draw(NewSplitter(0.3, NewRand(42)), 200)
	b := draw(NewSeededSplitter(0.3, 42), 200)
	require.Equal(t, a, b)
	require.Contains(t, a, types.SplitTest)
	require.Contains(t, a, types.SplitTrain)
}

func TestSplitterExtremes(t *testing.T) {
	for _, s := range draw(NewSplitter(-1, NewRand(1)), 100) {
		require.Equal(t, types.SplitTrain, s)
	}
	for _, s := range draw(NewSplitter(1, NewRand(1)), 100) {
		require.Equal(t, types.SplitTest, s)
	}
}

func TestSplitterRatio(t *testing.T) {
	const n = 20000
	test := 0
	for _, s := range draw(NewSplitter(DefaultTestRatio, NewRand(7)), n) {
		if s == types.SplitTest {
			test++
		}
	}
	require.InDelta(t, DefaultTestRatio, float64(test)/n, 0.01)
}
