package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/wordmap/wordmap/internal/ui/theme"
)

// ProgressBar displays a horizontal bar with a "current / total" counter.
type ProgressBar struct {
	Current int
	Total   int
	Width   int
}

// Fraction returns Current/Total clamped to [0, 1].
func (p ProgressBar) Fraction() float64 {
	if p.Total <= 0 {
		return 0
	}
	return min(max(float64(p.Current)/float64(p.Total), 0), 1)
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	counter := fmt.Sprintf("  %d / %d", p.Current, p.Total)
	barWidth := max(p.Width-lipgloss.Width(counter), 4)

	filled := int(float64(barWidth) * p.Fraction())
	empty := barWidth - filled

	return lipgloss.NewStyle().Background(theme.Secondary).Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", empty)) +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(counter)
}
