package explore

import (
	"charm.land/lipgloss/v2"

	"github.com/wordmap/wordmap/internal/conceptgraph"
	"github.com/wordmap/wordmap/internal/screens/deps"
	"github.com/wordmap/wordmap/internal/ui/theme"
)

// nodeStyle colors a node label by importance when the capability is on.
func nodeStyle(dp *deps.Deps, n conceptgraph.Node) lipgloss.Style {
	if !dp.Caps.ImportanceColoring || dp.Graph == nil {
		return theme.Unselected
	}
	c := conceptgraph.ImportanceColor(dp.Graph.Importance(n.ID))
	return lipgloss.NewStyle().Foreground(theme.Hex(c.Hex()))
}
