package deck

import (
	"context"
	"slices"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/wordmap/wordmap/internal/conceptgraph"
)

// Persister stores decks. The persistence API client implements it.
type Persister interface {
	CreateDeck(ctx context.Context, req Request) (*Resolved, error)
	UpdateDeck(ctx context.Context, id int, req Request) (*Resolved, error)
}

// Mode is the editing mode of a Manager.
type Mode int

const (
	ModeIdle   Mode = iota // Not building a deck
	ModeCreate             // Building a new deck
	ModeEdit               // Editing a persisted deck
)

func (m Mode) String() string {
	switch m {
	case ModeCreate:
		return "create"
	case ModeEdit:
		return "edit"
	}
	return "idle"
}

// State is a point-in-time copy of the Manager, safe to hand to the view.
type State struct {
	Mode       Mode
	Selection  []int
	TargetID   int // deck being edited, zero in create mode
	Name       string
	Submitting bool
}

// Selected reports whether id is in the selection.
func (s State) Selected(id int) bool {
	return slices.Contains(s.Selection, id)
}

// CanSubmit reports whether the submit affordance should be enabled.
func (s State) CanSubmit() bool {
	return s.Mode != ModeIdle && !s.Submitting && len(s.Selection) >= MinItems
}

// Manager owns the working selection used to create or edit a deck and
// reconciles it with the persistence API.
//
// Submit is expected to run off the UI goroutine, so all state is guarded.
type Manager struct {
	persister Persister
	graph     *conceptgraph.Graph
	logger    *zap.Logger
	onChange  func(State)

	mu         sync.Mutex
	mode       Mode
	selection  []int
	targetID   int
	name       string
	submitting bool
}

// Option configures a Manager.
type Option func(*Manager)

// WithGraph makes ToggleSelection ignore ids the graph does not contain.
func WithGraph(g *conceptgraph.Graph) Option {
	return func(m *Manager) { m.graph = g }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// WithOnChange registers a callback invoked after every selection change.
func WithOnChange(fn func(State)) Option {
	return func(m *Manager) { m.onChange = fn }
}

// NewManager creates an idle Manager backed by p.
func NewManager(p Persister, opts ...Option) *Manager {
	m := &Manager{persister: p, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// ToggleSelection removes id from the selection if present, otherwise
// appends it. There is no size constraint here.
func (m *Manager) ToggleSelection(id int) {
	if m.graph != nil && !m.graph.Has(id) {
		return
	}

	m.mu.Lock()
	if i := slices.Index(m.selection, id); i >= 0 {
		m.selection = slices.Delete(m.selection, i, i+1)
	} else {
		m.selection = append(m.selection, id)
	}
	st := m.snapshotLocked()
	m.mu.Unlock()

	m.notify(st)
}

// BeginEdit seeds the selection from an existing deck and enters edit mode.
func (m *Manager) BeginEdit(existing Resolved) {
	d := existing.Deck()

	m.mu.Lock()
	m.mode = ModeEdit
	m.selection = d.Items
	m.targetID = *d.ID
	m.name = d.Name
	st := m.snapshotLocked()
	m.mu.Unlock()

	m.notify(st)
}

// BeginCreate clears the selection and enters create mode.
func (m *Manager) BeginCreate() {
	m.reset(ModeCreate)
}

// Cancel clears the selection and leaves create/edit mode.
func (m *Manager) Cancel() {
	m.reset(ModeIdle)
}

// Exit leaves create/edit mode after a successful submit.
func (m *Manager) Exit() {
	m.reset(ModeIdle)
}

// SetName records the working deck name.
func (m *Manager) SetName(name string) {
	m.mu.Lock()
	m.name = name
	m.mu.Unlock()
}

// Snapshot returns a copy of the current state.
func (m *Manager) Snapshot() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// Submit validates the selection and creates or updates the deck.
//
// On any failure the selection, mode and edit target are left untouched
// so the caller can retry; they are only cleared by Exit or Cancel.
func (m *Manager) Submit(ctx context.Context, name string) (*Resolved, error) {
	m.mu.Lock()
	if m.mode == ModeIdle {
		m.mu.Unlock()
		return nil, ErrNotEditing
	}
	if m.submitting {
		m.mu.Unlock()
		return nil, ErrSubmitInFlight
	}
	if len(m.selection) < MinItems {
		n := len(m.selection)
		m.mu.Unlock()
		return nil, &ValidationError{Selected: n, Reason: "select at least 2 words"}
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultName
	}
	req := Request{IDs: slices.Clone(m.selection), Name: name}
	if err := validateRequest(req); err != nil {
		m.mu.Unlock()
		return nil, err
	}

	mode, target := m.mode, m.targetID
	m.name = name
	m.submitting = true
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.submitting = false
		m.mu.Unlock()
	}()

	var (
		resolved *Resolved
		err      error
		op       = "create"
	)
	if mode == ModeEdit {
		op = "update"
		resolved, err = m.persister.UpdateDeck(ctx, target, req)
	} else {
		resolved, err = m.persister.CreateDeck(ctx, req)
	}
	if err != nil {
		m.logger.Warn("deck submit failed",
			zap.String("op", op),
			zap.Int("deck_id", target),
			zap.Int("items", len(req.IDs)),
			zap.Error(err))
		return nil, &PersistenceError{Op: op, DeckID: target, Err: err}
	}

	m.logger.Info("deck submitted",
		zap.String("op", op),
		zap.Int("deck_id", resolved.ID),
		zap.Int("items", len(resolved.Words)))
	return resolved, nil
}

func (m *Manager) reset(mode Mode) {
	m.mu.Lock()
	m.mode = mode
	m.selection = nil
	m.targetID = 0
	m.name = ""
	st := m.snapshotLocked()
	m.mu.Unlock()

	m.notify(st)
}

func (m *Manager) snapshotLocked() State {
	return State{
		Mode:       m.mode,
		Selection:  slices.Clone(m.selection),
		TargetID:   m.targetID,
		Name:       m.name,
		Submitting: m.submitting,
	}
}

func (m *Manager) notify(st State) {
	if m.onChange != nil {
		m.onChange(st)
	}
}
