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
	"github.com/wordmap/wordmap/internal/ui/components"
	"github.com/wordmap/wordmap/internal/ui/layout"
	"github.com/wordmap/wordmap/internal/ui/theme"
)

type rowKind int

const (
	rowCategoryHeader rowKind = iota
	rowNode
)

type row struct {
	kind     rowKind
	category string
	node     conceptgraph.Node
}

// ExploreScreen lists the concept map by category with search. When given
// a deck manager it doubles as a word picker for the deck editor.
type ExploreScreen struct {
	deps    *deps.Deps
	manager *deck.Manager

	rows         []row
	cursor       int
	scrollOffset int

	search  components.TextInput
	query   string
	matches *nav.Cursor[int] // row indexes
}

var _ screen.Screen = (*ExploreScreen)(nil)
var _ screen.KeyHintProvider = (*ExploreScreen)(nil)
var _ screen.EscapeHandler = (*ExploreScreen)(nil)

// New creates an ExploreScreen. manager may be nil.
func New(dp *deps.Deps, manager *deck.Manager) *ExploreScreen {
	s := &ExploreScreen{
		deps:    dp,
		manager: manager,
		search:  components.NewTextInput("/ ", "search words", 64),
		matches: nav.NewCursor[int](nil),
	}
	if dp.Graph != nil {
		s.rows = buildRows(dp.Graph.Nodes())
	}
	for i, r := range s.rows {
		if r.kind == rowNode {
			s.cursor = i
			break
		}
	}
	return s
}

// buildRows groups nodes by category in first-seen order. A single
// category gets no header.
func buildRows(nodes []conceptgraph.Node) []row {
	var order []string
	byCat := make(map[string][]conceptgraph.Node)
	for _, n := range nodes {
		if _, ok := byCat[n.Category]; !ok {
			order = append(order, n.Category)
		}
		byCat[n.Category] = append(byCat[n.Category], n)
	}

	var rows []row
	for _, cat := range order {
		if len(order) > 1 {
			rows = append(rows, row{kind: rowCategoryHeader, category: cat})
		}
		for _, n := range byCat[cat] {
			rows = append(rows, row{kind: rowNode, category: cat, node: n})
		}
	}
	return rows
}

func (s *ExploreScreen) Init() tea.Cmd {
	return nil
}

func (s *ExploreScreen) Title() string {
	if s.manager != nil {
		return "Pick words"
	}
	return "Explore"
}

func (s *ExploreScreen) HandlesEscape() bool {
	return s.search.Focused()
}

func (s *ExploreScreen) KeyHints() []layout.KeyHint {
	if s.search.Focused() {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Search"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "/", Description: "Search"},
	}
	if s.matches.Len() > 0 {
		hints = append(hints, layout.KeyHint{Key: "n/N", Description: "Next/Prev hit"})
	}
	if s.manager != nil {
		hints = append(hints, layout.KeyHint{Key: "Space", Description: "Toggle"})
	}
	return append(hints,
		layout.KeyHint{Key: "Enter", Description: "Details"},
		layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (s *ExploreScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		s.search, cmd = s.search.Update(msg)
		return s, cmd
	}

	if s.search.Focused() {
		switch kmsg.String() {
		case "enter":
			s.search.Blur()
			s.applyQuery(s.search.Value())
			return s, nil
		case "esc":
			s.search.Blur()
			s.search.SetValue(s.query)
			return s, nil
		}
		var cmd tea.Cmd
		s.search, cmd = s.search.Update(msg)
		return s, cmd
	}

	switch kmsg.String() {
	case "up", "k":
		s.moveCursor(-1)
	case "down", "j":
		s.moveCursor(1)
	case "/":
		return s, s.search.Focus()
	case "n":
		if i, ok := s.matches.Next(); ok {
			s.cursor = i
		}
	case "N":
		if i, ok := s.matches.Prev(); ok {
			s.cursor = i
		}
	case "space", " ":
		if n, ok := s.current(); ok && s.manager != nil {
			s.manager.ToggleSelection(n.ID)
		}
	case "enter":
		if n, ok := s.current(); ok {
			detail := NewDetail(s.deps, n, s.manager)
			return s, func() tea.Msg { return router.PushScreenMsg{Screen: detail} }
		}
	}
	return s, nil
}

// applyQuery records the search hits and jumps to the first one.
func (s *ExploreScreen) applyQuery(q string) {
	s.query = q
	var hits []int
	if s.deps.Graph != nil && q != "" {
		want := make(map[int]bool)
		for _, n := range s.deps.Graph.Search(q) {
			want[n.ID] = true
		}
		for i, r := range s.rows {
			if r.kind == rowNode && want[r.node.ID] {
				hits = append(hits, i)
			}
		}
	}
	s.matches.Reset(hits)
	if i, ok := s.matches.Current(); ok {
		s.cursor = i
	}
}

func (s *ExploreScreen) current() (conceptgraph.Node, bool) {
	if s.cursor < 0 || s.cursor >= len(s.rows) || s.rows[s.cursor].kind != rowNode {
		return conceptgraph.Node{}, false
	}
	return s.rows[s.cursor].node, true
}

// moveCursor moves the cursor by delta, skipping category headers.
func (s *ExploreScreen) moveCursor(delta int) {
	next := s.cursor + delta
	for next >= 0 && next < len(s.rows) {
		if s.rows[next].kind == rowNode {
			s.cursor = next
			return
		}
		next += delta
	}
}

func (s *ExploreScreen) adjustScroll(height int) {
	if height <= 0 {
		return
	}
	top := s.cursor
	for top > 0 && s.rows[top-1].kind == rowCategoryHeader {
		top--
	}
	if top < s.scrollOffset {
		s.scrollOffset = top
	}
	if s.cursor >= s.scrollOffset+height {
		s.scrollOffset = s.cursor - height + 1
	}
}

func (s *ExploreScreen) View(width, height int) string {
	if s.deps.Graph == nil {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("The concept map has not loaded yet."))
	}

	var top strings.Builder
	top.WriteString("  " + s.search.View())
	switch {
	case s.query != "" && s.matches.Len() == 0:
		top.WriteString(theme.Hint.Render("   no matches"))
	case s.matches.Len() > 0:
		top.WriteString(theme.Hint.Render("   hit " + s.matches.Position()))
	}
	if s.manager != nil {
		top.WriteString(theme.Hint.Render(fmt.Sprintf("   %d selected", len(s.manager.Snapshot().Selection))))
	}

	listHeight := max(height-2, 1)
	s.adjustScroll(listHeight)

	hit := make(map[int]bool)
	for _, i := range s.matches.Items() {
		hit[i] = true
	}

	var st deck.State
	if s.manager != nil {
		st = s.manager.Snapshot()
	}

	lines := []string{top.String(), ""}
	for i := s.scrollOffset; i < len(s.rows) && len(lines) < listHeight+2; i++ {
		r := s.rows[i]
		if r.kind == rowCategoryHeader {
			name := r.category
			if name == "" {
				name = "uncategorized"
			}
			lines = append(lines, theme.Section.Render("  "+strings.ToUpper(name)))
			continue
		}
		lines = append(lines, s.renderNodeRow(r.node, i == s.cursor, hit[i], st.Selected(r.node.ID)))
	}
	return strings.Join(lines, "\n")
}

func (s *ExploreScreen) renderNodeRow(n conceptgraph.Node, focused, hit, picked bool) string {
	cursor := "  "
	if focused {
		cursor = "▸ "
	}
	check := ""
	if s.manager != nil {
		check = "[ ] "
		if picked {
			check = "[x] "
		}
	}

	style := nodeStyle(s.deps, n)
	switch {
	case focused:
		style = theme.Selected
	case hit:
		style = lipgloss.NewStyle().Foreground(theme.Match).Bold(true)
	}
	details := lipgloss.NewStyle().Foreground(theme.TextDim).Render(truncate(n.Details, 50))
	return fmt.Sprintf("  %s%s%s  %s", cursor, check, style.Render(n.Label), details)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
