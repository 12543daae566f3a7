package study

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wordmap/wordmap/internal/deck"
)

var sample = []deck.Flashcard{
	{Front: "cat", Back: "feline"},
	{Front: "dog", Back: "canine"},
	{Front: "cow", Back: "bovine"},
}

func TestSequential(t *testing.T) {
	s := New(sample)

	c, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "cat", c.Front)
	assert.Equal(t, Progress{Position: 1, Total: 3}, s.Progress())

	s.Prev()
	c, _ = s.Current()
	assert.Equal(t, "cat", c.Front, "prev clamps at start")

	s.Flip()
	assert.True(t, s.Flipped())
	s.Next()
	assert.False(t, s.Flipped(), "moving resets flip")
	c, _ = s.Current()
	assert.Equal(t, "dog", c.Front)

	s.Next()
	s.Next()
	c, _ = s.Current()
	assert.Equal(t, "cow", c.Front, "next clamps at end")
	assert.InDelta(t, 1.0, s.Progress().Fraction(), 1e-9)
}

func TestEmpty(t *testing.T) {
	s := New(nil)
	assert.True(t, s.Empty())
	_, ok := s.Current()
	assert.False(t, ok)
	s.Next()
	s.Flip()
	assert.False(t, s.Flipped())
	assert.Equal(t, Progress{}, s.Progress())
	assert.Zero(t, s.Progress().Fraction())
}

func TestRandomMode(t *testing.T) {
	s := New(sample, WithRandomMode(true), WithRand(rand.New(rand.NewPCG(1, 2))))
	require.True(t, s.RandomMode())

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		s.Next()
		c, ok := s.Current()
		require.True(t, ok)
		seen[c.Front] = true
	}
	assert.Len(t, seen, len(sample))

	s.SetRandomMode(false)
	assert.False(t, s.RandomMode())
}

func TestShuffled(t *testing.T) {
	got := Shuffled(sample, rand.New(rand.NewPCG(3, 4)))
	assert.ElementsMatch(t, sample, got)
	assert.Equal(t, "cat", sample[0].Front, "input untouched")
}
