// Package handoff passes a deck between screens. A Payload replaces the
// untyped key/value blobs older front ends wrote to browser storage.
package handoff

import (
	"sync"

	"github.com/wordmap/wordmap/internal/deck"
)

// Kind names what the receiving screen should do with a deck.
type Kind int

const (
	KindStudy Kind = iota + 1
	KindTest
	KindEdit
)

// Legacy storage keys, one per Kind.
const (
	KeyStudy = "studyFlashcard"
	KeyTest  = "testFlashcard"
	KeyEdit  = "editFlashcard"
)

// EditFallbackName names an edited deck whose blob carried no name.
const EditFallbackName = "Editing deck"

func (k Kind) String() string {
	switch k {
	case KindStudy:
		return "study"
	case KindTest:
		return "test"
	case KindEdit:
		return "edit"
	}
	return "unknown"
}

// Key returns the legacy storage key for k.
func (k Kind) Key() string {
	switch k {
	case KindStudy:
		return KeyStudy
	case KindTest:
		return KeyTest
	case KindEdit:
		return KeyEdit
	}
	return ""
}

// KindForKey maps a legacy storage key to its Kind.
func KindForKey(key string) (Kind, bool) {
	switch key {
	case KeyStudy:
		return KindStudy, true
	case KeyTest:
		return KindTest, true
	case KeyEdit:
		return KindEdit, true
	}
	return 0, false
}

// Payload is a deck handed to another screen.
type Payload struct {
	Kind Kind
	Deck deck.Resolved
}

// Channel holds at most one pending Payload. Take consumes it.
type Channel struct {
	mu      sync.Mutex
	pending *Payload
}

// Put stores p, replacing anything not yet taken.
func (c *Channel) Put(p Payload) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = &p
}

// Take returns and clears the pending payload.
func (c *Channel) Take() (Payload, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending == nil {
		return Payload{}, false
	}
	p := *c.pending
	c.pending = nil
	return p, true
}
