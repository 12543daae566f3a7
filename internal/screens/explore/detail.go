package explore

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/wordmap/wordmap/internal/conceptgraph"
	"github.com/wordmap/wordmap/internal/deck"
	nav "github.com/wordmap/wordmap/internal/explore"
	"github.com/wordmap/wordmap/internal/router"
	"github.com/wordmap/wordmap/internal/screen"
	"github.com/wordmap/wordmap/internal/screens/deps"
	"github.com/wordmap/wordmap/internal/ui/layout"
	"github.com/wordmap/wordmap/internal/ui/theme"
)

// NodeDetailScreen shows one word with its connected words.
type NodeDetailScreen struct {
	deps      *deps.Deps
	node      conceptgraph.Node
	manager   *deck.Manager
	neighbors *nav.Cursor[conceptgraph.Node]
}

var _ screen.Screen = (*NodeDetailScreen)(nil)
var _ screen.KeyHintProvider = (*NodeDetailScreen)(nil)

// NewDetail creates a NodeDetailScreen. manager may be nil.
func NewDetail(dp *deps.Deps, n conceptgraph.Node, manager *deck.Manager) *NodeDetailScreen {
	var connected []conceptgraph.Node
	if dp.Graph != nil {
		connected = dp.Graph.Connected(n.ID)
	}
	return &NodeDetailScreen{
		deps:      dp,
		node:      n,
		manager:   manager,
		neighbors: nav.NewCursor(connected),
	}
}

func (d *NodeDetailScreen) Init() tea.Cmd { return nil }
func (d *NodeDetailScreen) Title() string { return d.node.Label }

// Focused returns the highlighted neighbor.
func (d *NodeDetailScreen) Focused() (conceptgraph.Node, bool) {
	return d.neighbors.Current()
}

func (d *NodeDetailScreen) KeyHints() []layout.KeyHint {
	var hints []layout.KeyHint
	if d.deps.Caps.ConnectedNodeNav && d.neighbors.Len() > 0 {
		hints = append(hints,
			layout.KeyHint{Key: "←→", Description: "Connected"},
			layout.KeyHint{Key: "Enter", Description: "Open"})
	}
	if d.manager != nil {
		hints = append(hints, layout.KeyHint{Key: "Space", Description: "Toggle"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (d *NodeDetailScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return d, nil
	}

	switch kmsg.String() {
	case "space", " ":
		if d.manager != nil {
			d.manager.ToggleSelection(d.node.ID)
		}
		return d, nil
	}

	if !d.deps.Caps.ConnectedNodeNav {
		return d, nil
	}
	switch kmsg.String() {
	case "right", "l", "tab":
		d.neighbors.Next()
	case "left", "h", "shift+tab":
		d.neighbors.Prev()
	case "enter":
		if n, ok := d.neighbors.Current(); ok {
			next := NewDetail(d.deps, n, d.manager)
			return d, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
		}
	}
	return d, nil
}

func (d *NodeDetailScreen) View(width, height int) string {
	contentWidth := min(width-8, 70)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	headStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)

	var b strings.Builder

	b.WriteString(nodeStyle(d.deps, d.node).Bold(true).Render("  " + d.node.Label))
	if d.manager != nil && d.manager.Snapshot().Selected(d.node.ID) {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Success).Render("  ✓ in deck"))
	}
	b.WriteString("\n")
	if d.node.Category != "" {
		b.WriteString(dimStyle.Render("  " + d.node.Category))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if d.node.Details != "" {
		b.WriteString(lipgloss.NewStyle().
			Width(contentWidth).
			Foreground(theme.Text).
			PaddingLeft(2).
			Render(d.node.Details))
		b.WriteString("\n\n")
	}

	if d.deps.Graph != nil {
		imp := d.deps.Graph.Importance(d.node.ID)
		b.WriteString(dimStyle.Render("  Importance:  ") + fmt.Sprintf("%.0f", imp))
		if d.node.Importance != nil {
			b.WriteString(dimStyle.Render(fmt.Sprintf("  (by connections: %.0f)", d.deps.Graph.DegreeImportance(d.node.ID))))
		}
		b.WriteString("\n\n")
	}

	b.WriteString(headStyle.Render(fmt.Sprintf("  Connected (%d)", d.neighbors.Len())))
	b.WriteString("\n")
	if d.neighbors.Len() == 0 {
		b.WriteString(dimStyle.Render("  No connected words."))
		b.WriteString("\n")
	}

	focus := d.neighbors.Index()
	for i, n := range d.neighbors.Items() {
		marker := "  "
		style := nodeStyle(d.deps, n)
		if d.deps.Caps.ConnectedNodeNav && i == focus {
			marker = "▸ "
			style = theme.Selected
		}
		line := "  " + marker + style.Render(n.Label)
		if d.deps.Caps.EdgeLengths && d.deps.Graph != nil {
			if l, ok := d.deps.Graph.EdgeLength(d.node.ID, n.ID); ok {
				line += dimStyle.Render(fmt.Sprintf("  (%d)", l))
			}
		}
		b.WriteString(line + "\n")
	}
	if d.deps.Caps.ConnectedNodeNav && d.neighbors.Len() > 0 {
		b.WriteString(dimStyle.Render("  " + d.neighbors.Position()))
		b.WriteString("\n")
	}

	return lipgloss.Place(width, height, lipgloss.Left, lipgloss.Top, "\n"+b.String())
}
