package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/wordmap/wordmap/internal/ui/theme"
)

// MultiChoice renders a question with numbered options. Once an option is
// chosen the correct one is revealed, but the choice can still change.
type MultiChoice struct {
	Question     string
	Options      []string
	CorrectIndex int
	Selected     int // highlighted row
	ChosenIndex  int // -1 until answered
}

// NewMultiChoice creates a new multiple-choice component.
func NewMultiChoice(question string, options []string, correctIndex, chosenIndex int) MultiChoice {
	sel := 0
	if chosenIndex >= 0 {
		sel = chosenIndex
	}
	return MultiChoice{
		Question:     question,
		Options:      options,
		CorrectIndex: correctIndex,
		Selected:     sel,
		ChosenIndex:  chosenIndex,
	}
}

// Answered reports whether an option has been chosen.
func (m MultiChoice) Answered() bool {
	return m.ChosenIndex >= 0
}

// Update moves the highlight. It never chooses; the caller decides what
// enter and the number keys mean.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	}
	return m, nil
}

// View renders the question and its options.
func (m MultiChoice) View() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(m.Question))
	b.WriteString("\n\n")

	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Selected {
			prefix = "▸ "
		}
		mark := ""
		if m.Answered() {
			switch {
			case i == m.CorrectIndex:
				mark = "  ✓"
			case i == m.ChosenIndex:
				mark = "  ✗"
			}
		}
		line := fmt.Sprintf("%s%d)  %s%s", prefix, i+1, opt, mark)

		style := theme.Unselected
		switch {
		case m.Answered() && i == m.CorrectIndex:
			style = theme.Correct
		case m.Answered() && i == m.ChosenIndex:
			style = theme.Incorrect
		case i == m.Selected:
			style = theme.Selected
		case m.Answered():
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

// IsCorrect returns true if the chosen option is the correct one.
func (m MultiChoice) IsCorrect() bool {
	return m.Answered() && m.ChosenIndex == m.CorrectIndex
}
