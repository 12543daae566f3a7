package quiz

import (
	"math"
	"math/rand/v2"

	"github.com/wordmap/wordmap/internal/conceptgraph"
	"github.com/wordmap/wordmap/internal/deck"
)

// Phase is the lifecycle phase of a Session.
type Phase int

const (
	PhaseUnstarted  Phase = iota // Generate not yet called
	PhaseInProgress              // Serving questions
	PhaseFinished                // Advanced past the last question
)

func (p Phase) String() string {
	switch p {
	case PhaseInProgress:
		return "in-progress"
	case PhaseFinished:
		return "finished"
	}
	return "unstarted"
}

// State is a copy of the session for rendering.
type State struct {
	Questions    []Question
	CurrentIndex int
	Finished     bool
	Phase        Phase
}

// Session turns flashcards into a randomized multiple-choice quiz and
// tracks answers through it. A Session is not safe for concurrent use.
type Session struct {
	rnd *rand.Rand

	flashcards []deck.Flashcard
	pool       []conceptgraph.Node

	questions []Question
	current   int
	phase     Phase
}

// Option configures a Session.
type Option func(*Session)

// WithRand sets the random source used for all shuffling and sampling.
func WithRand(r *rand.Rand) Option {
	return func(s *Session) { s.rnd = r }
}

// New creates an unstarted Session.
func New(opts ...Option) *Session {
	s := &Session{}
	for _, opt := range opts {
		opt(s)
	}
	if s.rnd == nil {
		s.rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return s
}

// Generate builds a fresh question set. Question order is a uniform
// permutation of flashcards; each question gets three distractors sampled
// without replacement from the distinct details in pool that differ from
// its answer, and the four options are shuffled.
//
// On error the session is left as it was.
func (s *Session) Generate(flashcards []deck.Flashcard, pool []conceptgraph.Node) error {
	if len(flashcards) == 0 {
		return ErrNoFlashcards
	}

	order := append([]deck.Flashcard(nil), flashcards...)
	s.rnd.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

	candidates := distinctDetails(pool)
	questions := make([]Question, 0, len(order))
	for _, card := range order {
		distractors, err := s.sampleDistractors(card, candidates)
		if err != nil {
			return err
		}
		options := append([]string{card.Back}, distractors...)
		s.rnd.Shuffle(len(options), func(i, j int) { options[i], options[j] = options[j], options[i] })

		questions = append(questions, Question{
			Prompt:        card.Front,
			CorrectAnswer: card.Back,
			Options:       options,
		})
	}

	s.flashcards = append([]deck.Flashcard(nil), flashcards...)
	s.pool = append([]conceptgraph.Node(nil), pool...)
	s.questions = questions
	s.current = 0
	s.phase = PhaseInProgress
	return nil
}

// Retry regenerates the quiz from the same flashcards and pool, clearing
// all answers.
func (s *Session) Retry() error {
	if s.phase == PhaseUnstarted {
		return ErrNotStarted
	}
	return s.Generate(s.flashcards, s.pool)
}

// Answer records the option at index for the current question. Calling it
// again before Advance overwrites the earlier choice.
func (s *Session) Answer(index int) error {
	switch s.phase {
	case PhaseUnstarted:
		return ErrNotStarted
	case PhaseFinished:
		return ErrFinished
	}

	q := &s.questions[s.current]
	if index < 0 || index >= len(q.Options) {
		return ErrOptionOutOfRange
	}
	choice := q.Options[index]
	q.UserAnswer = &choice
	q.IsCorrect = choice == q.CorrectAnswer
	return nil
}

// Advance moves to the next question, or finishes the session at the last
// one. It is a no-op once finished.
func (s *Session) Advance() error {
	switch s.phase {
	case PhaseUnstarted:
		return ErrNotStarted
	case PhaseFinished:
		return nil
	}

	if s.current < len(s.questions)-1 {
		s.current++
		return nil
	}
	s.phase = PhaseFinished
	return nil
}

// Skip moves on without answering the current question.
func (s *Session) Skip() error {
	return s.Advance()
}

// CanAdvance reports whether the current question has been answered.
func (s *Session) CanAdvance() bool {
	q, ok := s.Current()
	return ok && q.Answered()
}

// Current returns the question being asked. ok is false unless the
// session is in progress.
func (s *Session) Current() (q Question, ok bool) {
	if s.phase != PhaseInProgress {
		return Question{}, false
	}
	return s.questions[s.current].clone(), true
}

// Phase returns the lifecycle phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// Finished reports whether the session has advanced past its last question.
func (s *Session) Finished() bool {
	return s.phase == PhaseFinished
}

// Score counts correct answers. It may be called before finishing to
// report partial progress.
func (s *Session) Score() Score {
	sc := Score{Total: len(s.questions)}
	for _, q := range s.questions {
		if q.IsCorrect {
			sc.CorrectCount++
		}
	}
	if sc.Total > 0 {
		sc.Percentage = int(math.Round(100 * float64(sc.CorrectCount) / float64(sc.Total)))
	}
	return sc
}

// Snapshot returns a deep copy of the session state.
func (s *Session) Snapshot() State {
	qs := make([]Question, len(s.questions))
	for i, q := range s.questions {
		qs[i] = q.clone()
	}
	return State{
		Questions:    qs,
		CurrentIndex: s.current,
		Finished:     s.phase == PhaseFinished,
		Phase:        s.phase,
	}
}

// sampleDistractors draws distractorCount strings from candidates that
// differ from the card's back, using a partial Fisher-Yates shuffle.
func (s *Session) sampleDistractors(card deck.Flashcard, candidates []string) ([]string, error) {
	filtered := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if c != card.Back {
			filtered = append(filtered, c)
		}
	}
	if len(filtered) < distractorCount {
		return nil, &InsufficientDistractorsError{
			Prompt:    card.Front,
			Available: len(filtered),
			Required:  distractorCount,
		}
	}

	for i := 0; i < distractorCount; i++ {
		j := i + s.rnd.IntN(len(filtered)-i)
		filtered[i], filtered[j] = filtered[j], filtered[i]
	}
	return filtered[:distractorCount:distractorCount], nil
}

// distinctDetails returns the unique details strings of pool in first-seen
// order.
func distinctDetails(pool []conceptgraph.Node) []string {
	seen := make(map[string]bool, len(pool))
	out := make([]string, 0, len(pool))
	for _, n := range pool {
		if seen[n.Details] {
			continue
		}
		seen[n.Details] = true
		out = append(out, n.Details)
	}
	return out
}
