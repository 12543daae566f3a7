package quiz

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wordmap/wordmap/internal/conceptgraph"
	"github.com/wordmap/wordmap/internal/deck"
)

func seeded(seed uint64) Option {
	return WithRand(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

func pool(details ...string) []conceptgraph.Node {
	nodes := make([]conceptgraph.Node, len(details))
	for i, d := range details {
		nodes[i] = conceptgraph.Node{ID: i + 1, Label: fmt.Sprintf("w%d", i+1), Details: d}
	}
	return nodes
}

func cards(pairs ...string) []deck.Flashcard {
	out := make([]deck.Flashcard, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, deck.Flashcard{Front: pairs[i], Back: pairs[i+1]})
	}
	return out
}

func TestGenerate_OptionsInvariant(t *testing.T) {
	s := New(seeded(1))
	fc := cards("cat", "feline", "dog", "canine")
	require.NoError(t, s.Generate(fc, pool("feline", "canine", "bird", "fish", "fish")))

	st := s.Snapshot()
	require.Len(t, st.Questions, 2)
	assert.Equal(t, 0, st.CurrentIndex)
	assert.False(t, st.Finished)
	assert.Equal(t, PhaseInProgress, st.Phase)

	for _, q := range st.Questions {
		assert.Len(t, q.Options, OptionCount)
		assert.Contains(t, q.Options, q.CorrectAnswer)
		seen := map[string]bool{}
		for _, o := range q.Options {
			assert.False(t, seen[o], "duplicate option %q", o)
			seen[o] = true
		}
		assert.Nil(t, q.UserAnswer)
		assert.False(t, q.IsCorrect)
		assert.GreaterOrEqual(t, q.CorrectIndex(), 0)
	}
}

func TestGenerate_Empty(t *testing.T) {
	s := New(seeded(1))
	err := s.Generate(nil, pool("a", "b", "c", "d"))
	assert.ErrorIs(t, err, ErrNoFlashcards)
	assert.Equal(t, PhaseUnstarted, s.Phase())
}

func TestGenerate_InsufficientDistractors(t *testing.T) {
	s := New(seeded(1))
	// "feline" itself and a duplicate do not count.
	err := s.Generate(cards("cat", "feline"), pool("feline", "canine", "bird", "bird"))

	var ide *InsufficientDistractorsError
	require.True(t, errors.As(err, &ide))
	assert.Equal(t, "cat", ide.Prompt)
	assert.Equal(t, 2, ide.Available)
	assert.Equal(t, 3, ide.Required)
	assert.Equal(t, PhaseUnstarted, s.Phase())
	assert.Empty(t, s.Snapshot().Questions)
}

func TestGenerate_FailureKeepsPreviousSession(t *testing.T) {
	s := New(seeded(2))
	require.NoError(t, s.Generate(cards("cat", "feline"), pool("feline", "a", "b", "c")))
	require.NoError(t, s.Answer(0))

	err := s.Generate(cards("dog", "canine"), pool("canine"))
	require.Error(t, err)

	st := s.Snapshot()
	require.Len(t, st.Questions, 1)
	assert.Equal(t, "cat", st.Questions[0].Prompt)
	assert.NotNil(t, st.Questions[0].UserAnswer)
}

func TestAnswer_LastSelectionWins(t *testing.T) {
	s := New(seeded(3))
	require.NoError(t, s.Generate(cards("cat", "feline"), pool("feline", "canine", "bird", "fish")))

	q, ok := s.Current()
	require.True(t, ok)
	correct := q.CorrectIndex()
	wrong := (correct + 1) % OptionCount

	require.NoError(t, s.Answer(wrong))
	q, _ = s.Current()
	assert.False(t, q.IsCorrect)
	assert.Equal(t, q.Options[wrong], *q.UserAnswer)

	require.NoError(t, s.Answer(correct))
	q, _ = s.Current()
	assert.True(t, q.IsCorrect)
	assert.Equal(t, "feline", *q.UserAnswer)
	assert.Equal(t, correct, q.ChosenIndex())
}

func TestAnswer_Errors(t *testing.T) {
	s := New(seeded(4))
	assert.ErrorIs(t, s.Answer(0), ErrNotStarted)
	assert.ErrorIs(t, s.Advance(), ErrNotStarted)
	assert.ErrorIs(t, s.Retry(), ErrNotStarted)

	require.NoError(t, s.Generate(cards("cat", "feline"), pool("feline", "canine", "bird", "fish")))
	assert.ErrorIs(t, s.Answer(-1), ErrOptionOutOfRange)
	assert.ErrorIs(t, s.Answer(OptionCount), ErrOptionOutOfRange)

	require.NoError(t, s.Advance())
	assert.ErrorIs(t, s.Answer(0), ErrFinished)
}

func TestAdvance_FinishesExactlyOnce(t *testing.T) {
	s := New(seeded(5))
	fc := cards("a", "1", "b", "2", "c", "3")
	require.NoError(t, s.Generate(fc, pool("1", "2", "3", "4", "5")))

	for i := 0; i < len(fc)-1; i++ {
		assert.False(t, s.CanAdvance())
		require.NoError(t, s.Answer(0))
		assert.True(t, s.CanAdvance())
		require.NoError(t, s.Advance())
		assert.False(t, s.Finished())
		assert.Equal(t, i+1, s.Snapshot().CurrentIndex)
	}
	require.NoError(t, s.Skip())
	assert.True(t, s.Finished())
	assert.Equal(t, len(fc)-1, s.Snapshot().CurrentIndex)

	// Further advances are no-ops.
	require.NoError(t, s.Advance())
	assert.True(t, s.Finished())
	assert.Equal(t, len(fc)-1, s.Snapshot().CurrentIndex)
	_, ok := s.Current()
	assert.False(t, ok)
}

func TestScore(t *testing.T) {
	s := New(seeded(6))
	assert.Equal(t, Score{}, s.Score())

	fc := cards("a", "1", "b", "2", "c", "3")
	require.NoError(t, s.Generate(fc, pool("1", "2", "3", "4", "5")))

	// Answer the first two correctly, skip the third.
	for i := 0; i < 2; i++ {
		q, _ := s.Current()
		require.NoError(t, s.Answer(q.CorrectIndex()))
		require.NoError(t, s.Advance())
	}
	require.NoError(t, s.Skip())

	sc := s.Score()
	assert.Equal(t, Score{CorrectCount: 2, Total: 3, Percentage: 67}, sc)
	assert.Equal(t, "2 / 3 (67%)", sc.String())
}

func TestRetry_ClearsAnswers(t *testing.T) {
	s := New(seeded(7))
	fc := cards("a", "1", "b", "2")
	require.NoError(t, s.Generate(fc, pool("1", "2", "3", "4", "5")))
	require.NoError(t, s.Answer(0))
	require.NoError(t, s.Advance())
	require.NoError(t, s.Answer(0))
	require.NoError(t, s.Advance())
	require.True(t, s.Finished())

	require.NoError(t, s.Retry())
	st := s.Snapshot()
	assert.False(t, st.Finished)
	assert.Equal(t, 0, st.CurrentIndex)
	require.Len(t, st.Questions, 2)
	for _, q := range st.Questions {
		assert.Nil(t, q.UserAnswer)
		assert.False(t, q.IsCorrect)
	}
	assert.Equal(t, 0, s.Score().CorrectCount)
}

func TestSnapshot_IsCopy(t *testing.T) {
	s := New(seeded(8))
	require.NoError(t, s.Generate(cards("a", "1"), pool("1", "2", "3", "4")))
	require.NoError(t, s.Answer(0))

	st := s.Snapshot()
	st.Questions[0].Options[0] = "mutated"
	*st.Questions[0].UserAnswer = "mutated"

	again := s.Snapshot()
	assert.NotEqual(t, "mutated", again.Questions[0].Options[0])
	assert.NotEqual(t, "mutated", *again.Questions[0].UserAnswer)
}

func TestGenerate_SeededIsDeterministic(t *testing.T) {
	fc := cards("a", "1", "b", "2", "c", "3", "d", "4")
	p := pool("1", "2", "3", "4", "5", "6")

	a, b := New(seeded(42)), New(seeded(42))
	require.NoError(t, a.Generate(fc, p))
	require.NoError(t, b.Generate(fc, p))
	assert.Equal(t, a.Snapshot(), b.Snapshot())
}

func TestPhaseString(t *testing.T) {
	tests := []struct {
		p    Phase
		want string
	}{
		{PhaseUnstarted, "unstarted"},
		{PhaseInProgress, "in-progress"},
		{PhaseFinished, "finished"},
	}
	for _, tt := range tests {
		if got := tt.p.String(); got != tt.want {
			t.Errorf("Phase(%d).String() = %q, want %q", tt.p, got, tt.want)
		}
	}
}
