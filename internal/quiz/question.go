package quiz

import "fmt"

// OptionCount is the number of choices offered per question.
const OptionCount = 4

// distractorCount is the number of wrong choices per question.
const distractorCount = OptionCount - 1

// Question is a single multiple-choice question built from a flashcard.
type Question struct {
	// Prompt is the flashcard front.
	Prompt string

	// CorrectAnswer is the flashcard back.
	CorrectAnswer string

	// Options holds OptionCount unique strings, CorrectAnswer exactly once.
	Options []string

	// UserAnswer is nil until the learner picks an option.
	UserAnswer *string

	IsCorrect bool
}

// Answered reports whether an option has been chosen.
func (q Question) Answered() bool {
	return q.UserAnswer != nil
}

// CorrectIndex returns the position of the correct answer in Options.
func (q Question) CorrectIndex() int {
	for i, o := range q.Options {
		if o == q.CorrectAnswer {
			return i
		}
	}
	return -1
}

// ChosenIndex returns the position of the user's answer, or -1.
func (q Question) ChosenIndex() int {
	if q.UserAnswer == nil {
		return -1
	}
	for i, o := range q.Options {
		if o == *q.UserAnswer {
			return i
		}
	}
	return -1
}

func (q Question) clone() Question {
	c := q
	c.Options = append([]string(nil), q.Options...)
	if q.UserAnswer != nil {
		a := *q.UserAnswer
		c.UserAnswer = &a
	}
	return c
}

// Score summarizes a session's results.
type Score struct {
	CorrectCount int
	Total        int
	Percentage   int
}

func (s Score) String() string {
	return fmt.Sprintf("%d / %d (%d%%)", s.CorrectCount, s.Total, s.Percentage)
}
