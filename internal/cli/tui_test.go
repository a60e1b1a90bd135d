package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func testStates() []stateInfo {
	return []stateInfo{
		{ID: "login", Outgoing: 1},
		{ID: "lobby", Outgoing: 2},
		{ID: "match", Outgoing: 0},
	}
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "up", "down", "enter", "esc":
		types := map[string]tea.KeyType{
			"up":    tea.KeyUp,
			"down":  tea.KeyDown,
			"enter": tea.KeyEnter,
			"esc":   tea.KeyEsc,
		}
		return tea.KeyMsg{Type: types[s]}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestStateListNavigation(t *testing.T) {
	m := NewStateListModel("Select Start State", testStates())

	next, _ := m.Update(keyMsg("down"))
	m = next.(StateListModel)
	if m.Cursor != 1 {
		t.Errorf("cursor = %d, want 1", m.Cursor)
	}

	next, _ = m.Update(keyMsg("down"))
	m = next.(StateListModel)
	next, _ = m.Update(keyMsg("down")) // at the end, must not move past
	m = next.(StateListModel)
	if m.Cursor != 2 {
		t.Errorf("cursor = %d, want 2", m.Cursor)
	}

	next, _ = m.Update(keyMsg("up"))
	m = next.(StateListModel)
	if m.Cursor != 1 {
		t.Errorf("cursor = %d, want 1", m.Cursor)
	}
}

func TestStateListSelect(t *testing.T) {
	m := NewStateListModel("Select Goal State", testStates())

	next, _ := m.Update(keyMsg("down"))
	m = next.(StateListModel)
	next, cmd := m.Update(keyMsg("enter"))
	m = next.(StateListModel)

	if m.Selected != "lobby" {
		t.Errorf("Selected = %q, want lobby", m.Selected)
	}
	if cmd == nil {
		t.Error("enter should quit the program")
	}
}

func TestStateListQuitWithoutSelection(t *testing.T) {
	m := NewStateListModel("Select Start State", testStates())

	next, cmd := m.Update(keyMsg("esc"))
	m = next.(StateListModel)

	if m.Selected != "" {
		t.Errorf("Selected = %q, want empty", m.Selected)
	}
	if cmd == nil {
		t.Error("esc should quit the program")
	}
}

func TestStateListView(t *testing.T) {
	m := NewStateListModel("Select Start State", testStates())
	view := m.View()

	for _, s := range []string{"Select Start State", "login", "lobby", "match", "sink"} {
		if !strings.Contains(view, s) {
			t.Errorf("view missing %q:\n%s", s, view)
		}
	}
	if !strings.Contains(view, "[1/3]") {
		t.Errorf("view missing position indicator:\n%s", view)
	}
}
