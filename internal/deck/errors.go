package deck

import (
	"errors"
	"fmt"
)

var (
	// ErrNotEditing is returned by Submit when neither create nor edit
	// mode is active.
	ErrNotEditing = errors.New("deck: not in create or edit mode")

	// ErrSubmitInFlight is returned when Submit is called while an earlier
	// submission has not completed.
	ErrSubmitInFlight = errors.New("deck: a submission is already in progress")
)

// ValidationError indicates the selection cannot be submitted as a deck.
type ValidationError struct {
	Selected int
	Reason   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid deck: %s (%d selected)", e.Reason, e.Selected)
}

// PersistenceError indicates the persistence API rejected or failed a
// create, update or delete.
type PersistenceError struct {
	Op     string // "create", "update" or "delete"
	DeckID int    // zero for create
	Err    error
}

func (e *PersistenceError) Error() string {
	if e.DeckID != 0 {
		return fmt.Sprintf("%s deck %d: %v", e.Op, e.DeckID, e.Err)
	}
	return fmt.Sprintf("%s deck: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
