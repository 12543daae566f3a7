package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/wordmap/wordmap/internal/router"
	"github.com/wordmap/wordmap/internal/screen"
	"github.com/wordmap/wordmap/internal/screens/decks"
	"github.com/wordmap/wordmap/internal/screens/deps"
	"github.com/wordmap/wordmap/internal/screens/editor"
	"github.com/wordmap/wordmap/internal/screens/explore"
	"github.com/wordmap/wordmap/internal/screens/history"
	"github.com/wordmap/wordmap/internal/screens/placeholder"
	"github.com/wordmap/wordmap/internal/ui/components"
	"github.com/wordmap/wordmap/internal/ui/theme"
)

const (
	itemExplore = iota
	itemDecks
	itemNewDeck
	itemHistory
	itemQuit
)

const banner = `                    _
 __ __ _____ _ _ __| |_ __  __ _ _ __
 \ V  V / _ \ '_/ _` + "`" + ` | '  \/ _` + "`" + ` | '_ \
  \_/\_/\___/_| \__,_|_|_|_\__,_| .__/
                                |_|`

// HomeScreen is the main menu.
type HomeScreen struct {
	deps      *deps.Deps
	menu      components.Menu
	deckCount int
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen. Items that need the concept map stay
// disabled until it loads.
func New(dp *deps.Deps) *HomeScreen {
	push := func(build func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			s := build()
			return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
		}
	}

	items := []components.MenuItem{
		itemExplore: {Label: "Explore map", Action: push(func() screen.Screen {
			return explore.New(dp, nil)
		})},
		itemDecks: {Label: "Decks", Action: push(func() screen.Screen {
			return decks.New(dp)
		})},
		itemNewDeck: {Label: "New deck", Action: push(func() screen.Screen {
			m := dp.NewManager()
			m.BeginCreate()
			return editor.New(dp, m, nil)
		})},
		itemHistory: {Label: "History", Action: push(func() screen.Screen {
			if dp.Results == nil {
				return placeholder.New("History", "Local quiz history is unavailable.\nCheck the database path in your config.")
			}
			return history.New(dp.Results)
		})},
		itemQuit: {Label: "Quit", Action: func() tea.Cmd { return tea.Quit }},
	}

	h := &HomeScreen{deps: dp, menu: components.NewMenu(items)}
	h.sync()
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

// sync enables the map-backed items once the graph is present.
func (h *HomeScreen) sync() {
	missing := h.deps.Graph == nil
	h.menu.SetDisabled(itemExplore, missing)
	h.menu.SetDisabled(itemNewDeck, missing)
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case deps.GraphLoadedMsg:
		h.deckCount = len(msg.Decks)
		h.sync()
		return h, nil
	case router.ResumedMsg:
		h.sync()
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	cw := min(max(width-6, 20), 60)

	var sections []string
	title := banner
	if height < 20 || width < 60 {
		title = "w · o · r · d · m · a · p"
	}
	sections = append(sections, lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render(title))

	sections = append(sections, h.renderStats(cw))
	sections = append(sections, lipgloss.NewStyle().
		Width(cw).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(1, 2).
		Render(strings.TrimRight(h.menu.View(), "\n")))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		strings.Join(sections, "\n\n"))
}

func (h *HomeScreen) renderStats(cw int) string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	var line string
	switch {
	case h.deps.LoadErr != nil:
		line = theme.ErrorText.Render("Could not reach the word service: " + h.deps.LoadErr.Error())
	case h.deps.Graph == nil:
		line = dim.Render("Loading the concept map...")
	default:
		words := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
			Render(fmt.Sprintf("%d words", h.deps.Graph.Len()))
		dks := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).
			Render(fmt.Sprintf("%d decks", h.deckCount))
		line = words + dim.Render("  ·  ") + dks
	}
	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(line)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
