package history

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/wordmap/wordmap/internal/screen"
	"github.com/wordmap/wordmap/internal/store"
	"github.com/wordmap/wordmap/internal/ui/layout"
	"github.com/wordmap/wordmap/internal/ui/theme"
)

// RecentLimit caps how many results the screen loads.
const RecentLimit = 50

type historyLoadedMsg struct {
	Results []store.QuizResult
	Best    map[int]int // deck id → best percentage
	Err     error
}

// HistoryScreen displays past quiz results.
type HistoryScreen struct {
	repo     store.QuizResultRepo
	results  []store.QuizResult
	best     map[int]int
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(repo store.QuizResultRepo) *HistoryScreen {
	return &HistoryScreen{
		repo:     repo,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		results, err := s.repo.Recent(ctx, RecentLimit)
		if err != nil {
			return historyLoadedMsg{Err: err}
		}

		best := make(map[int]int)
		for _, r := range results {
			if _, seen := best[r.DeckID]; seen {
				continue
			}
			pct, ok, err := s.repo.DeckBest(ctx, r.DeckID)
			if err != nil || !ok {
				continue
			}
			best[r.DeckID] = pct
		}

		return historyLoadedMsg{Results: results, Best: best}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.results = msg.Results
			s.best = msg.Best
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.results)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.results) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No quizzes yet. Test yourself on a deck!")
	}

	var b strings.Builder
	b.WriteString("\n")

	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	for i, r := range s.results {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %-24s  %d / %d  %3d%%",
			prefix, r.FinishedAt.Format("Jan 02, 2006 15:04"), truncate(r.DeckName, 24),
			r.Correct, r.Total, r.Percentage)

		style := lipgloss.NewStyle().Foreground(scoreColor(r.Percentage))
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			detail := fmt.Sprintf("    deck #%d", r.DeckID)
			if best, ok := s.best[r.DeckID]; ok {
				detail += fmt.Sprintf("  best %d%%", best)
			}
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, dim.Italic(true).Render(detail)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func scoreColor(pct int) color.Color {
	switch {
	case pct >= 80:
		return theme.Success
	case pct < 50:
		return theme.Error
	default:
		return theme.Text
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
