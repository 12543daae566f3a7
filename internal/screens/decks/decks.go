// Package decks lists saved decks and launches study, test and edit.
package decks

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/wordmap/wordmap/internal/api"
	"github.com/wordmap/wordmap/internal/deck"
	"github.com/wordmap/wordmap/internal/handoff"
	"github.com/wordmap/wordmap/internal/router"
	"github.com/wordmap/wordmap/internal/screen"
	"github.com/wordmap/wordmap/internal/screens/deps"
	"github.com/wordmap/wordmap/internal/study"
	"github.com/wordmap/wordmap/internal/ui/layout"
	"github.com/wordmap/wordmap/internal/ui/theme"
)

type decksLoadedMsg struct {
	decks []deck.Resolved
	err   error
}

type deckDeletedMsg struct {
	id  int
	err error
}

// DecksScreen lists the decks stored by the API.
type DecksScreen struct {
	deps *deps.Deps
	rnd  *rand.Rand

	decks      []deck.Resolved
	selected   int
	loaded     bool
	confirming bool
	notice     string
	err        error
}

var _ screen.Screen = (*DecksScreen)(nil)
var _ screen.KeyHintProvider = (*DecksScreen)(nil)
var _ screen.EscapeHandler = (*DecksScreen)(nil)

// Option configures a DecksScreen.
type Option func(*DecksScreen)

// WithRand sets the source used for random study.
func WithRand(r *rand.Rand) Option {
	return func(s *DecksScreen) { s.rnd = r }
}

// New creates a DecksScreen.
func New(dp *deps.Deps, opts ...Option) *DecksScreen {
	s := &DecksScreen{deps: dp}
	for _, opt := range opts {
		opt(s)
	}
	if s.rnd == nil {
		s.rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return s
}

func (s *DecksScreen) Init() tea.Cmd {
	return s.load()
}

func (s *DecksScreen) load() tea.Cmd {
	client := s.deps.API
	return func() tea.Msg {
		decks, err := client.ListDecks(context.Background())
		return decksLoadedMsg{decks: decks, err: err}
	}
}

func (s *DecksScreen) Title() string {
	return "Decks"
}

func (s *DecksScreen) HandlesEscape() bool {
	return s.confirming
}

func (s *DecksScreen) KeyHints() []layout.KeyHint {
	if s.confirming {
		return []layout.KeyHint{
			{Key: "y", Description: "Delete"},
			{Key: "n", Description: "Keep"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "s", Description: "Study"},
		{Key: "r", Description: "Random"},
		{Key: "t", Description: "Test"},
		{Key: "e", Description: "Edit"},
		{Key: "d", Description: "Delete"},
		{Key: "Esc", Description: "Back"},
	}
}

// Selected returns the highlighted deck.
func (s *DecksScreen) Selected() (deck.Resolved, bool) {
	if s.selected < 0 || s.selected >= len(s.decks) {
		return deck.Resolved{}, false
	}
	return s.decks[s.selected], true
}

func (s *DecksScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case decksLoadedMsg:
		s.loaded = true
		s.err = msg.err
		if msg.err == nil {
			s.decks = msg.decks
		}
		s.selected = min(s.selected, max(len(s.decks)-1, 0))
		return s, nil

	case deckDeletedMsg:
		if api.IsNotFound(msg.err) {
			s.notice = fmt.Sprintf("Deck %d was already deleted.", msg.id)
			s.deps.Log().Info("deck already deleted", zap.Int("deck_id", msg.id))
			return s, s.load()
		}
		if msg.err != nil {
			s.err = &deck.PersistenceError{Op: "delete", DeckID: msg.id, Err: msg.err}
			return s, nil
		}
		s.deps.Log().Info("deck deleted", zap.Int("deck_id", msg.id))
		return s, s.load()

	case router.ResumedMsg:
		return s, s.load()

	case tea.KeyMsg:
		return s, s.handleKey(msg)
	}
	return s, nil
}

func (s *DecksScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	if s.confirming {
		switch msg.String() {
		case "y":
			s.confirming = false
			d, ok := s.Selected()
			if !ok {
				return nil
			}
			client := s.deps.API
			return func() tea.Msg {
				return deckDeletedMsg{id: d.ID, err: client.DeleteDeck(context.Background(), d.ID)}
			}
		case "n", "esc":
			s.confirming = false
		}
		return nil
	}

	switch msg.String() {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
		return nil
	case "down", "j":
		if s.selected < len(s.decks)-1 {
			s.selected++
		}
		return nil
	}

	d, ok := s.Selected()
	if !ok {
		return nil
	}
	switch msg.String() {
	case "s", "enter":
		return deps.Open(handoff.Payload{Kind: handoff.KindStudy, Deck: d}, false)
	case "r":
		d.Words = study.Shuffled(d.Words, s.rnd)
		return deps.Open(handoff.Payload{Kind: handoff.KindStudy, Deck: d}, false)
	case "t":
		return deps.Open(handoff.Payload{Kind: handoff.KindTest, Deck: d}, false)
	case "e":
		return deps.Open(handoff.Payload{Kind: handoff.KindEdit, Deck: d}, false)
	case "d":
		s.confirming = true
	}
	return nil
}

func (s *DecksScreen) View(width, height int) string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	var b strings.Builder
	b.WriteString("\n")
	if s.err != nil {
		b.WriteString(theme.ErrorText.Render("  " + s.err.Error()))
		b.WriteString("\n\n")
	}
	if s.notice != "" {
		b.WriteString(dim.Render("  " + s.notice))
		b.WriteString("\n\n")
	}
	switch {
	case !s.loaded:
		b.WriteString(dim.Render("  Loading decks..."))
		return b.String()
	case len(s.decks) == 0 && s.err == nil:
		b.WriteString(dim.Italic(true).Render("  No decks yet. Create one from the home menu."))
		return b.String()
	}

	for i, d := range s.decks {
		prefix := "  "
		style := theme.Unselected
		if i == s.selected {
			prefix = "▸ "
			style = theme.Selected
		}
		b.WriteString(fmt.Sprintf("  %s%s  %s\n",
			prefix, style.Render(d.Name), dim.Render(fmt.Sprintf("%d words", len(d.Words)))))
	}

	if s.confirming {
		if d, ok := s.Selected(); ok {
			b.WriteString("\n")
			b.WriteString(theme.ErrorText.Render(fmt.Sprintf("  Delete %q? y/n", d.Name)))
			b.WriteString("\n")
		}
	}
	return b.String()
}
