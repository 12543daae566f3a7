// Package deps carries the services shared by every screen.
package deps

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/wordmap/wordmap/internal/conceptgraph"
	"github.com/wordmap/wordmap/internal/deck"
	"github.com/wordmap/wordmap/internal/explore"
	"github.com/wordmap/wordmap/internal/handoff"
	"github.com/wordmap/wordmap/internal/store"
)

// DeckAPI is the subset of the persistence API the screens use.
type DeckAPI interface {
	deck.Persister
	ListDecks(ctx context.Context) ([]deck.Resolved, error)
	DeleteDeck(ctx context.Context, id int) error
	LoadAll(ctx context.Context) (*conceptgraph.Graph, []deck.Resolved, error)
}

// Deps is shared by pointer; screens read it on the UI goroutine only.
type Deps struct {
	API DeckAPI

	// Graph is nil until the startup fetch completes.
	Graph *conceptgraph.Graph

	// LoadErr is the startup fetch failure, if any.
	LoadErr error

	// Results is nil when local history could not be opened.
	Results store.QuizResultRepo

	Caps   explore.Capabilities
	Logger *zap.Logger

	// Status is shown on the right of the header.
	Status string

	// Draft mirrors the deck being built or edited. Its Mode is idle when
	// no editor is open.
	Draft deck.State
}

// Log returns the logger, never nil.
func (d *Deps) Log() *zap.Logger {
	if d == nil || d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}

// NewManager creates an idle deck manager over the API and the loaded
// graph whose state changes are mirrored into Draft.
func (d *Deps) NewManager() *deck.Manager {
	return deck.NewManager(d.API,
		deck.WithGraph(d.Graph),
		deck.WithLogger(d.Log()),
		deck.WithOnChange(func(s deck.State) { d.Draft = s }),
	)
}

// Pool returns the distractor pool for a quiz over words: the whole graph
// when loaded, otherwise the words themselves.
func (d *Deps) Pool(words []conceptgraph.Node) []conceptgraph.Node {
	if d != nil && d.Graph != nil {
		return d.Graph.Nodes()
	}
	return words
}

// OpenMsg asks the app to open the screen that handles a payload.
type OpenMsg struct {
	Payload handoff.Payload

	// Replace swaps the current screen instead of pushing.
	Replace bool
}

// Open returns a command emitting OpenMsg.
func Open(p handoff.Payload, replace bool) tea.Cmd {
	return func() tea.Msg { return OpenMsg{Payload: p, Replace: replace} }
}

// GraphLoadedMsg reports the result of the startup fetch.
type GraphLoadedMsg struct {
	Graph *conceptgraph.Graph
	Decks []deck.Resolved
	Err   error
}

// LoadGraph runs the startup fetch. A graph already set from a local file
// is kept and only the decks are fetched.
func (d *Deps) LoadGraph() tea.Cmd {
	preset := d.Graph
	return func() tea.Msg {
		ctx := context.Background()
		if preset != nil {
			decks, err := d.API.ListDecks(ctx)
			if err != nil {
				d.Log().Warn("deck fetch failed", zap.Error(err))
			}
			return GraphLoadedMsg{Graph: preset, Decks: decks, Err: err}
		}
		g, decks, err := d.API.LoadAll(ctx)
		if err != nil {
			d.Log().Warn("startup fetch failed", zap.Error(err))
		}
		return GraphLoadedMsg{Graph: g, Decks: decks, Err: err}
	}
}
