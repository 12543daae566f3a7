// Package editor builds and edits decks.
package editor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/wordmap/wordmap/internal/conceptgraph"
	"github.com/wordmap/wordmap/internal/deck"
	"github.com/wordmap/wordmap/internal/handoff"
	"github.com/wordmap/wordmap/internal/router"
	"github.com/wordmap/wordmap/internal/screen"
	"github.com/wordmap/wordmap/internal/screens/deps"
	"github.com/wordmap/wordmap/internal/screens/explore"
	"github.com/wordmap/wordmap/internal/ui/components"
	"github.com/wordmap/wordmap/internal/ui/layout"
	"github.com/wordmap/wordmap/internal/ui/theme"
)

type focusArea int

const (
	focusList focusArea = iota
	focusName
)

// submitDoneMsg carries the result of an async submit.
type submitDoneMsg struct {
	deck *deck.Resolved
	err  error
}

// EditorScreen drives a deck.Manager that is already in create or edit
// mode.
type EditorScreen struct {
	deps    *deps.Deps
	manager *deck.Manager

	words        []conceptgraph.Node
	cursor       int
	scrollOffset int

	name       components.TextInput
	focus      focusArea
	submitting bool
	err        error
}

var _ screen.Screen = (*EditorScreen)(nil)
var _ screen.KeyHintProvider = (*EditorScreen)(nil)
var _ screen.EscapeHandler = (*EditorScreen)(nil)

// New creates an EditorScreen. known lists the words to offer when the
// concept map is not loaded, typically the deck being edited.
func New(dp *deps.Deps, m *deck.Manager, known []conceptgraph.Node) *EditorScreen {
	words := known
	if dp.Graph != nil {
		words = dp.Graph.Nodes()
	}
	e := &EditorScreen{
		deps:    dp,
		manager: m,
		words:   words,
		name:    components.NewTextInput("Name: ", deck.DefaultName, 80),
	}
	e.name.SetValue(m.Snapshot().Name)
	return e
}

func (e *EditorScreen) Init() tea.Cmd {
	return nil
}

func (e *EditorScreen) Title() string {
	if e.manager.Snapshot().Mode == deck.ModeEdit {
		return "Edit deck"
	}
	return "New deck"
}

// HandlesEscape is always true: Esc from the list discards the working
// selection before leaving.
func (e *EditorScreen) HandlesEscape() bool {
	return true
}

func (e *EditorScreen) KeyHints() []layout.KeyHint {
	if e.focus == focusName {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Save"},
			{Key: "Tab", Description: "Words"},
			{Key: "Esc", Description: "Words"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Space", Description: "Toggle"},
		{Key: "/", Description: "Search map"},
		{Key: "Tab", Description: "Name"},
		{Key: "Ctrl+S", Description: "Save"},
		{Key: "Esc", Description: "Cancel"},
	}
}

func (e *EditorScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case submitDoneMsg:
		return e, e.handleSubmitDone(msg)
	case tea.KeyMsg:
		return e, e.handleKey(msg)
	}
	var cmd tea.Cmd
	e.name, cmd = e.name.Update(msg)
	return e, cmd
}

func (e *EditorScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+s":
		return e.submit()
	case "tab":
		return e.toggleFocus()
	}

	if e.focus == focusName {
		switch msg.String() {
		case "enter":
			return e.submit()
		case "esc":
			return e.toggleFocus()
		}
		var cmd tea.Cmd
		e.name, cmd = e.name.Update(msg)
		e.manager.SetName(e.name.Value())
		return cmd
	}

	switch msg.String() {
	case "up", "k":
		if e.cursor > 0 {
			e.cursor--
		}
	case "down", "j":
		if e.cursor < len(e.words)-1 {
			e.cursor++
		}
	case "space", " ":
		if e.cursor < len(e.words) {
			e.manager.ToggleSelection(e.words[e.cursor].ID)
			e.err = nil
		}
	case "/":
		if e.deps.Graph != nil {
			picker := explore.New(e.deps, e.manager)
			return func() tea.Msg { return router.PushScreenMsg{Screen: picker} }
		}
	case "enter":
		return e.submit()
	case "esc":
		return e.cancel()
	}
	return nil
}

// cancel drops the working selection and leaves the editor. It is a no-op
// while a submit is in flight.
func (e *EditorScreen) cancel() tea.Cmd {
	if e.submitting {
		return nil
	}
	e.manager.Cancel()
	e.deps.Log().Debug("deck edit cancelled")
	return func() tea.Msg { return router.PopScreenMsg{} }
}

func (e *EditorScreen) toggleFocus() tea.Cmd {
	if e.focus == focusList {
		e.focus = focusName
		return e.name.Focus()
	}
	e.focus = focusList
	e.name.Blur()
	return nil
}

// submit starts an async submit unless one is running or the selection
// is too small.
func (e *EditorScreen) submit() tea.Cmd {
	st := e.manager.Snapshot()
	if e.submitting || !st.CanSubmit() {
		if len(st.Selection) < deck.MinItems {
			e.err = &deck.ValidationError{Selected: len(st.Selection), Reason: "select at least 2 words"}
		}
		return nil
	}

	e.submitting = true
	e.err = nil
	m, name := e.manager, e.name.Value()
	return func() tea.Msg {
		d, err := m.Submit(context.Background(), name)
		return submitDoneMsg{deck: d, err: err}
	}
}

func (e *EditorScreen) handleSubmitDone(msg submitDoneMsg) tea.Cmd {
	e.submitting = false
	if msg.err != nil {
		e.err = msg.err
		return nil
	}
	e.deps.Log().Info("deck saved", zap.Int("deck_id", msg.deck.ID))
	e.manager.Exit()
	return deps.Open(handoff.Payload{Kind: handoff.KindStudy, Deck: *msg.deck}, true)
}

func (e *EditorScreen) View(width, height int) string {
	st := e.manager.Snapshot()
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	var top []string
	top = append(top, "  "+e.name.View())

	var picked []string
	if e.deps.Graph != nil {
		for _, n := range e.deps.Graph.Resolve(st.Selection) {
			picked = append(picked, n.Label)
		}
	} else {
		for _, id := range st.Selection {
			picked = append(picked, e.label(id))
		}
	}
	summary := fmt.Sprintf("  %d selected", len(st.Selection))
	if len(picked) > 0 {
		summary += ": " + truncate(strings.Join(picked, ", "), max(width-20, 10))
	}
	top = append(top, dimStyle.Render(summary))

	save := components.Button{
		Label:    "Save",
		Disabled: !st.CanSubmit() || e.submitting,
		Focused:  e.focus == focusName,
	}
	if e.submitting {
		save.Label = "Saving…"
	}
	status := "  " + save.View()
	if e.err != nil {
		status += "  " + theme.ErrorText.Render(errorText(e.err))
	}
	top = append(top, status, "")

	listHeight := max(height-len(top), 1)
	if len(e.words) == 0 {
		top = append(top, dimStyle.Render("  The concept map has not loaded yet."))
		return strings.Join(top, "\n")
	}

	if e.cursor < e.scrollOffset {
		e.scrollOffset = e.cursor
	}
	if e.cursor >= e.scrollOffset+listHeight {
		e.scrollOffset = e.cursor - listHeight + 1
	}

	lines := top
	for i := e.scrollOffset; i < len(e.words) && i < e.scrollOffset+listHeight; i++ {
		w := e.words[i]
		cursor := "  "
		style := theme.Unselected
		if i == e.cursor && e.focus == focusList {
			cursor = "▸ "
			style = theme.Selected
		}
		check := "[ ]"
		if st.Selected(w.ID) {
			check = "[x]"
		}
		lines = append(lines, fmt.Sprintf("  %s%s %s  %s",
			cursor, check, style.Render(w.Label), dimStyle.Render(truncate(w.Details, 50))))
	}
	return strings.Join(lines, "\n")
}

// label looks id up among the offered words when there is no graph.
func (e *EditorScreen) label(id int) string {
	for _, w := range e.words {
		if w.ID == id {
			return w.Label
		}
	}
	return fmt.Sprintf("#%d", id)
}

// errorText turns submit failures into a line for the status row.
func errorText(err error) string {
	var verr *deck.ValidationError
	var perr *deck.PersistenceError
	switch {
	case errors.As(err, &verr):
		return "Cannot save: " + verr.Reason
	case errors.As(err, &perr):
		return "Could not save the deck: " + perr.Err.Error()
	case errors.Is(err, deck.ErrSubmitInFlight):
		return "Already saving."
	}
	return err.Error()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
