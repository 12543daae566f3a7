package quiz

import (
	"errors"
	"fmt"
)

var (
	// ErrNoFlashcards is returned when generating from an empty deck.
	ErrNoFlashcards = errors.New("quiz: no flashcards to generate questions from")

	// ErrNotStarted is returned when answering before Generate.
	ErrNotStarted = errors.New("quiz: session not started")

	// ErrFinished is returned when answering after the last question.
	ErrFinished = errors.New("quiz: session finished")

	// ErrOptionOutOfRange is returned for an option index outside the
	// current question's options.
	ErrOptionOutOfRange = errors.New("quiz: option index out of range")
)

// InsufficientDistractorsError indicates the candidate pool does not hold
// enough distinct wrong answers for a question.
type InsufficientDistractorsError struct {
	Prompt    string
	Available int
	Required  int
}

func (e *InsufficientDistractorsError) Error() string {
	return fmt.Sprintf("quiz: %q needs %d distractors, candidate pool has %d",
		e.Prompt, e.Required, e.Available)
}
