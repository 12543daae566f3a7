package decks

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/wordmap/wordmap/internal/api"
	"github.com/wordmap/wordmap/internal/conceptgraph"
	"github.com/wordmap/wordmap/internal/deck"
	"github.com/wordmap/wordmap/internal/handoff"
	"github.com/wordmap/wordmap/internal/router"
	"github.com/wordmap/wordmap/internal/screens/deps"
)

// fakeAPI implements deps.DeckAPI for testing.
type fakeAPI struct {
	decks     []deck.Resolved
	deleteErr error
	deleted   []int
	lists     int
}

func (f *fakeAPI) CreateDeck(context.Context, deck.Request) (*deck.Resolved, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeAPI) UpdateDeck(context.Context, int, deck.Request) (*deck.Resolved, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeAPI) ListDecks(context.Context) ([]deck.Resolved, error) {
	f.lists++
	return append([]deck.Resolved(nil), f.decks...), nil
}

func (f *fakeAPI) DeleteDeck(_ context.Context, id int) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	kept := f.decks[:0]
	for _, d := range f.decks {
		if d.ID != id {
			kept = append(kept, d)
		}
	}
	f.decks = kept
	return nil
}

func (f *fakeAPI) LoadAll(context.Context) (*conceptgraph.Graph, []deck.Resolved, error) {
	return nil, f.decks, nil
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func words(labels ...string) []conceptgraph.Node {
	out := make([]conceptgraph.Node, len(labels))
	for i, l := range labels {
		out[i] = conceptgraph.Node{ID: i + 1, Label: l, Details: l + "!"}
	}
	return out
}

func setup(t *testing.T) (*DecksScreen, *fakeAPI) {
	t.Helper()
	api := &fakeAPI{decks: []deck.Resolved{
		{ID: 1, Name: "Animals", Words: words("cat", "dog", "owl", "eel")},
		{ID: 2, Name: "Plants", Words: words("oak", "fern")},
	}}
	s := New(&deps.Deps{API: api}, WithRand(rand.New(rand.NewPCG(1, 2))))
	s.Update(s.Init()())
	return s, api
}

func openMsg(t *testing.T, cmd tea.Cmd) deps.OpenMsg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg, ok := cmd().(deps.OpenMsg)
	if !ok {
		t.Fatalf("got %T, want deps.OpenMsg", cmd())
	}
	return msg
}

func TestDecksScreen_Lists(t *testing.T) {
	s, _ := setup(t)
	view := s.View(80, 20)
	for _, want := range []string{"Animals", "4 words", "Plants", "2 words"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestDecksScreen_Actions(t *testing.T) {
	tests := []struct {
		key  rune
		kind handoff.Kind
	}{
		{'s', handoff.KindStudy},
		{'r', handoff.KindStudy},
		{'t', handoff.KindTest},
		{'e', handoff.KindEdit},
	}
	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			s, _ := setup(t)
			s.Update(keyPress('j'))
			_, cmd := s.Update(keyPress(tt.key))
			msg := openMsg(t, cmd)
			if msg.Payload.Kind != tt.kind {
				t.Errorf("kind = %v, want %v", msg.Payload.Kind, tt.kind)
			}
			if msg.Payload.Deck.ID != 2 {
				t.Errorf("deck = %d, want 2", msg.Payload.Deck.ID)
			}
			if msg.Replace {
				t.Error("deck actions should push")
			}
		})
	}
}

func TestDecksScreen_RandomStudyShuffles(t *testing.T) {
	s, api := setup(t)
	_, cmd := s.Update(keyPress('r'))
	got := openMsg(t, cmd).Payload.Deck.Words
	if len(got) != 4 {
		t.Fatalf("words = %d", len(got))
	}
	seen := make(map[int]bool)
	for _, w := range got {
		seen[w.ID] = true
	}
	if len(seen) != 4 {
		t.Errorf("shuffle lost words: %v", got)
	}
	if api.decks[0].Words[0].Label != "cat" {
		t.Error("listed deck should be untouched")
	}
}

func TestDecksScreen_DeleteConfirm(t *testing.T) {
	s, api := setup(t)

	s.Update(keyPress('d'))
	if !s.HandlesEscape() {
		t.Error("confirm prompt should own Esc")
	}
	if !strings.Contains(s.View(80, 20), `Delete "Animals"? y/n`) {
		t.Errorf("expected confirm prompt:\n%s", s.View(80, 20))
	}
	s.Update(keyPress('n'))
	if len(api.deleted) != 0 {
		t.Fatal("n should keep the deck")
	}

	s.Update(keyPress('d'))
	_, cmd := s.Update(keyPress('y'))
	if cmd == nil {
		t.Fatal("expected delete command")
	}
	_, reload := s.Update(cmd())
	if reload == nil {
		t.Fatal("expected refresh after delete")
	}
	s.Update(reload())

	if len(api.deleted) != 1 || api.deleted[0] != 1 {
		t.Errorf("deleted = %v", api.deleted)
	}
	view := s.View(80, 20)
	if strings.Contains(view, "Animals") {
		t.Error("deleted deck still listed")
	}
}

func TestDecksScreen_DeleteFailure(t *testing.T) {
	s, api := setup(t)
	api.deleteErr = errors.New("boom")
	s.Update(keyPress('d'))
	_, cmd := s.Update(keyPress('y'))
	s.Update(cmd())
	if !strings.Contains(s.View(80, 20), "delete deck 1: boom") {
		t.Errorf("expected inline error:\n%s", s.View(80, 20))
	}
}

func TestDecksScreen_DeleteAlreadyGone(t *testing.T) {
	s, fake := setup(t)
	// Removed elsewhere since the list was fetched.
	fake.decks = fake.decks[1:]
	fake.deleteErr = fmt.Errorf("delete: %w", &api.StatusError{Method: "DELETE", Path: "/api/flashcards/1", StatusCode: 404})

	s.Update(keyPress('d'))
	_, cmd := s.Update(keyPress('y'))
	_, reload := s.Update(cmd())
	if reload == nil {
		t.Fatal("a missing deck should trigger a reload")
	}
	s.Update(reload())

	view := s.View(80, 20)
	if !strings.Contains(view, "Deck 1 was already deleted.") {
		t.Errorf("expected notice:\n%s", view)
	}
	if strings.Contains(view, "404") || strings.Contains(view, "Animals") {
		t.Errorf("stale deck or raw error shown:\n%s", view)
	}
	if d, ok := s.Selected(); !ok || d.ID != 2 {
		t.Errorf("selected = %+v, want deck 2", d)
	}
}

func TestDecksScreen_ReloadsOnResume(t *testing.T) {
	s, api := setup(t)
	_, cmd := s.Update(router.ResumedMsg{})
	if cmd == nil {
		t.Fatal("expected reload")
	}
	s.Update(cmd())
	if api.lists != 2 {
		t.Errorf("lists = %d, want 2", api.lists)
	}
}

func TestDecksScreen_Empty(t *testing.T) {
	s := New(&deps.Deps{API: &fakeAPI{}})
	s.Update(s.Init()())
	if !strings.Contains(s.View(80, 20), "No decks yet") {
		t.Error("expected empty state")
	}
	if _, cmd := s.Update(keyPress('s')); cmd != nil {
		t.Error("actions need a deck")
	}
}
