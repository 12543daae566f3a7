package deck

import "github.com/wordmap/wordmap/internal/conceptgraph"

// DefaultName is used when a deck is submitted without a name.
const DefaultName = "New deck"

// MinItems is the smallest selection that can be submitted as a deck.
const MinItems = 2

// Deck is a named, ordered collection of concept node ids. ID is nil
// until the deck has been persisted.
type Deck struct {
	ID    *int
	Name  string
	Items []int
}

// Resolved is a deck as returned by the persistence API, with its word
// ids resolved to full nodes.
type Resolved struct {
	ID    int                 `json:"id"`
	Name  string              `json:"name"`
	Words []conceptgraph.Node `json:"words"`
}

// IDs returns the word ids in deck order.
func (r Resolved) IDs() []int {
	ids := make([]int, len(r.Words))
	for i, w := range r.Words {
		ids[i] = w.ID
	}
	return ids
}

// Deck converts the resolved deck back to its id-only form.
func (r Resolved) Deck() Deck {
	id := r.ID
	return Deck{ID: &id, Name: r.Name, Items: r.IDs()}
}

// Flashcards derives one flashcard per word, preserving order.
func (r Resolved) Flashcards() []Flashcard {
	return FlashcardsFromWords(r.Words)
}

// Flashcard is a front/back text pair derived from a single concept node.
type Flashcard struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// FlashcardsFromWords maps nodes to flashcards: label on the front,
// details on the back.
func FlashcardsFromWords(words []conceptgraph.Node) []Flashcard {
	cards := make([]Flashcard, len(words))
	for i, w := range words {
		cards[i] = Flashcard{Front: w.Label, Back: w.Details}
	}
	return cards
}

// Request is the create/update payload sent to the persistence API.
type Request struct {
	IDs  []int  `json:"ids" validate:"min=2,unique"`
	Name string `json:"name" validate:"required,max=200"`
}
