package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blockfall/internal/storage"
)

func TestMenuListsVariantsWithBest(t *testing.T) {
	store := openStore(t)
	store.RecordRun(storage.Run{GameID: "blockfall_mini", Score: 900})

	m := NewMenuModel(store, testConfig())

	var mini *MenuItem
	for i := range m.items {
		if m.items[i].GameID == "blockfall_mini" {
			mini = &m.items[i]
		}
	}
	if mini == nil {
		t.Fatal("menu should list blockfall_mini")
	}
	if mini.Best != 900 {
		t.Errorf("mini best = %d, expected 900", mini.Best)
	}
	if !strings.Contains(m.View(), "best 900") {
		t.Error("view should show the session best")
	}
}

func TestMenuSelect(t *testing.T) {
	m := NewMenuModel(nil, testConfig())
	if len(m.items) < 2 {
		t.Fatalf("menu has %d items, expected both variants", len(m.items))
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, cmd := next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("select should quit the menu")
	}

	mm := next.(MenuModel)
	if mm.Selected() == nil || mm.Selected().GameID != m.items[1].GameID {
		t.Errorf("Selected() = %v, expected %q", mm.Selected(), m.items[1].GameID)
	}
}

func TestMenuCursorStaysInRange(t *testing.T) {
	var next tea.Model = NewMenuModel(nil, testConfig())
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyUp})

	if got := next.(MenuModel).cursor; got != 0 {
		t.Errorf("cursor = %d, expected 0", got)
	}
}
