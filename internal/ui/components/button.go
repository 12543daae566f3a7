package components

import (
	"github.com/wordmap/wordmap/internal/ui/theme"
)

// Button is a styled, non-interactive button label. The owning screen
// decides when it is pressed.
type Button struct {
	Label    string
	Disabled bool
	Focused  bool
}

// View renders the button.
func (b Button) View() string {
	if b.Disabled {
		return theme.ButtonInactive.Render(b.Label)
	}
	if b.Focused {
		return theme.ButtonActive.Render("▸ " + b.Label)
	}
	return theme.ButtonInactive.Render(b.Label)
}
