// Package study steps through a deck's flashcards one at a time.
package study

import (
	"math/rand/v2"

	"github.com/wordmap/wordmap/internal/deck"
)

// Progress describes the position within a study session.
type Progress struct {
	Position int // 1-based, 0 when empty
	Total    int
}

// Fraction returns Position/Total in [0, 1].
func (p Progress) Fraction() float64 {
	if p.Total == 0 {
		return 0
	}
	return float64(p.Position) / float64(p.Total)
}

// Session is a flip-card walk over flashcards.
type Session struct {
	cards   []deck.Flashcard
	index   int
	flipped bool
	random  bool
	rnd     *rand.Rand
}

// Option configures a Session.
type Option func(*Session)

// WithRandomMode makes Next and Prev jump to a random card.
func WithRandomMode(on bool) Option {
	return func(s *Session) { s.random = on }
}

// WithRand sets the random source for random mode.
func WithRand(r *rand.Rand) Option {
	return func(s *Session) { s.rnd = r }
}

// New creates a session positioned on the first card.
func New(cards []deck.Flashcard, opts ...Option) *Session {
	s := &Session{cards: append([]deck.Flashcard(nil), cards...)}
	for _, opt := range opts {
		opt(s)
	}
	if s.rnd == nil {
		s.rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return s
}

// Empty reports whether there is nothing to study.
func (s *Session) Empty() bool { return len(s.cards) == 0 }

// Current returns the card on screen.
func (s *Session) Current() (deck.Flashcard, bool) {
	if s.Empty() {
		return deck.Flashcard{}, false
	}
	return s.cards[s.index], true
}

// Flipped reports whether the back of the current card is showing.
func (s *Session) Flipped() bool { return s.flipped }

// Flip turns the current card over.
func (s *Session) Flip() {
	if !s.Empty() {
		s.flipped = !s.flipped
	}
}

// RandomMode reports whether navigation jumps randomly.
func (s *Session) RandomMode() bool { return s.random }

// SetRandomMode toggles random navigation.
func (s *Session) SetRandomMode(on bool) { s.random = on }

// Next moves forward, stopping at the last card unless in random mode.
func (s *Session) Next() {
	s.move(1)
}

// Prev moves back, stopping at the first card unless in random mode.
func (s *Session) Prev() {
	s.move(-1)
}

func (s *Session) move(delta int) {
	if s.Empty() {
		return
	}
	if s.random {
		s.index = s.rnd.IntN(len(s.cards))
	} else {
		s.index = min(max(s.index+delta, 0), len(s.cards)-1)
	}
	s.flipped = false
}

// Progress reports the current position.
func (s *Session) Progress() Progress {
	if s.Empty() {
		return Progress{}
	}
	return Progress{Position: s.index + 1, Total: len(s.cards)}
}

// Shuffled returns a shuffled copy of items.
func Shuffled[T any](items []T, rnd *rand.Rand) []T {
	out := append([]T(nil), items...)
	rnd.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}
