package study

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/wordmap/wordmap/internal/deck"
	"github.com/wordmap/wordmap/internal/screen"
	"github.com/wordmap/wordmap/internal/screens/deps"
	flow "github.com/wordmap/wordmap/internal/study"
	"github.com/wordmap/wordmap/internal/ui/components"
	"github.com/wordmap/wordmap/internal/ui/layout"
	"github.com/wordmap/wordmap/internal/ui/theme"
)

// StudyScreen flips through a deck's flashcards.
type StudyScreen struct {
	deps    *deps.Deps
	name    string
	session *flow.Session
}

var _ screen.Screen = (*StudyScreen)(nil)
var _ screen.KeyHintProvider = (*StudyScreen)(nil)

// New creates a StudyScreen over d's words, in deck order.
func New(dp *deps.Deps, d deck.Resolved) *StudyScreen {
	return &StudyScreen{
		deps:    dp,
		name:    d.Name,
		session: flow.New(d.Flashcards()),
	}
}

func (s *StudyScreen) Init() tea.Cmd {
	return nil
}

func (s *StudyScreen) Title() string {
	if s.name == "" {
		return "Study"
	}
	return "Study: " + s.name
}

func (s *StudyScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Space", Description: "Flip"},
		{Key: "←→", Description: "Prev/Next"},
	}
	if s.deps.Caps.RandomMode {
		desc := "Random on"
		if s.session.RandomMode() {
			desc = "Random off"
		}
		hints = append(hints, layout.KeyHint{Key: "R", Description: desc})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (s *StudyScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "space", " ", "f", "enter":
		s.session.Flip()
	case "right", "l", "n":
		s.session.Next()
	case "left", "h", "p":
		s.session.Prev()
	case "r":
		if s.deps.Caps.RandomMode {
			s.session.SetRandomMode(!s.session.RandomMode())
		}
	}
	return s, nil
}

func (s *StudyScreen) View(width, height int) string {
	card, ok := s.session.Current()
	if !ok {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("This deck has no cards."))
	}

	cardWidth := min(width-8, 60)
	face, label := card.Front, "front"
	if s.session.Flipped() {
		face, label = card.Back, "back"
	}

	body := lipgloss.NewStyle().
		Width(cardWidth).
		Height(7).
		Align(lipgloss.Center, lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Primary).
		Foreground(theme.Text).
		Render(face)

	p := s.session.Progress()
	bar := components.ProgressBar{Current: p.Position, Total: p.Total, Width: cardWidth}

	var b strings.Builder
	b.WriteString(theme.Hint.Render(label))
	b.WriteString("\n")
	b.WriteString(body)
	b.WriteString("\n\n")
	b.WriteString(bar.View())
	if s.session.RandomMode() {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("random order"))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}
