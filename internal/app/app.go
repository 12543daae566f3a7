package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/wordmap/wordmap/internal/deck"
	"github.com/wordmap/wordmap/internal/handoff"
	"github.com/wordmap/wordmap/internal/router"
	"github.com/wordmap/wordmap/internal/screen"
	"github.com/wordmap/wordmap/internal/screens/deps"
	"github.com/wordmap/wordmap/internal/screens/editor"
	"github.com/wordmap/wordmap/internal/screens/home"
	quizscreen "github.com/wordmap/wordmap/internal/screens/quiz"
	studyscreen "github.com/wordmap/wordmap/internal/screens/study"
	"github.com/wordmap/wordmap/internal/ui/layout"
)

// Options configures the TUI.
type Options struct {
	Deps *deps.Deps

	// Handoff optionally carries a payload to open on startup.
	Handoff *handoff.Channel
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router  *router.Router
	home    *home.HomeScreen
	deps    *deps.Deps
	handoff *handoff.Channel
	width   int
	height  int
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(opts Options) AppModel {
	dp := opts.Deps
	if dp == nil {
		dp = &deps.Deps{}
	}
	homeScreen := home.New(dp)
	return AppModel{
		router:  router.New(homeScreen),
		home:    homeScreen,
		deps:    dp,
		handoff: opts.Handoff,
	}
}

func (m AppModel) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	if m.deps.API != nil {
		m.deps.Status = "connecting..."
		cmds = append(cmds, m.deps.LoadGraph())
	}
	if m.handoff != nil {
		if p, ok := m.handoff.Take(); ok {
			cmds = append(cmds, deps.Open(p, false))
		}
	}
	return tea.Batch(cmds...)
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if h, ok := m.router.Active().(screen.EscapeHandler); ok && h.HandlesEscape() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}

	case deps.GraphLoadedMsg:
		m.applyLoad(msg)
		var cmd tea.Cmd
		if m.router.Active() != screen.Screen(m.home) {
			_, cmd = m.home.Update(msg)
		}
		return m, tea.Batch(cmd, m.router.Update(msg))

	case deps.OpenMsg:
		s := m.screenFor(msg.Payload)
		m.deps.Log().Debug("open", zap.Stringer("kind", msg.Payload.Kind), zap.Int("deck_id", msg.Payload.Deck.ID))
		if msg.Replace {
			return m, m.router.Replace(s)
		}
		return m, m.router.Push(s)
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) applyLoad(msg deps.GraphLoadedMsg) {
	m.deps.LoadErr = msg.Err
	if msg.Err != nil {
		m.deps.Status = "offline"
		return
	}
	m.deps.Graph = msg.Graph
	m.deps.Status = fmt.Sprintf("%d words", msg.Graph.Len())
}

// screenFor builds the screen that handles a payload.
func (m AppModel) screenFor(p handoff.Payload) screen.Screen {
	switch p.Kind {
	case handoff.KindTest:
		return quizscreen.New(m.deps, p.Deck)
	case handoff.KindEdit:
		mgr := m.deps.NewManager()
		mgr.BeginEdit(p.Deck)
		return editor.New(m.deps, mgr, p.Deck.Words)
	default:
		return studyscreen.New(m.deps, p.Deck)
	}
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.headerStatus(), m.width)
	footer := layout.RenderFooter(m.footerHints(), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// headerStatus prefixes the selection size while a deck is being built.
func (m AppModel) headerStatus() string {
	d := m.deps.Draft
	if d.Mode == deck.ModeIdle {
		return m.deps.Status
	}
	status := fmt.Sprintf("%d selected", len(d.Selection))
	if m.deps.Status != "" {
		status += " · " + m.deps.Status
	}
	return status
}

func (m AppModel) footerHints() []layout.KeyHint {
	if p, ok := m.router.Active().(screen.KeyHintProvider); ok {
		return append(p.KeyHints(), layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
