package home

import (
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/wordmap/wordmap/internal/conceptgraph"
	"github.com/wordmap/wordmap/internal/router"
	"github.com/wordmap/wordmap/internal/screens/deps"
)

func TestHome_MapItemsWaitForGraph(t *testing.T) {
	dp := &deps.Deps{}
	h := New(dp)
	if !h.menu.Items[itemExplore].Disabled || !h.menu.Items[itemNewDeck].Disabled {
		t.Fatal("map items should start disabled")
	}
	if h.menu.Selected != itemDecks {
		t.Errorf("selected = %d, want decks", h.menu.Selected)
	}

	g, err := conceptgraph.New([]conceptgraph.Node{{ID: 1, Label: "a"}}, nil)
	if err != nil {
		t.Fatal(err)
	}
	dp.Graph = g
	h.Update(deps.GraphLoadedMsg{Graph: g})
	if h.menu.Items[itemExplore].Disabled {
		t.Error("explore should enable once the graph loads")
	}
	if !strings.Contains(h.View(100, 30), "1 words") {
		t.Error("expected word count")
	}
}

func TestHome_HistoryWithoutStore(t *testing.T) {
	h := New(&deps.Deps{})
	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected push")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("got %T", cmd())
	}
	if !strings.Contains(push.Screen.View(80, 20), "unavailable") {
		t.Error("expected the placeholder screen")
	}
}

func TestHome_ShowsLoadError(t *testing.T) {
	h := New(&deps.Deps{LoadErr: errors.New("connection refused")})
	if !strings.Contains(h.View(100, 30), "connection refused") {
		t.Error("expected load error")
	}
}
