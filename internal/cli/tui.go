package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// StateListModel - Interactive state selection
// =============================================================================

// stateInfo describes one selectable state.
type stateInfo struct {
	ID       string
	Outgoing int // number of outgoing transitions
}

// StateListModel is the bubbletea model for picking a state from a world map.
// It is used twice by the explore command: once for the start state and once
// for the goal.
type StateListModel struct {
	Title    string
	States   []stateInfo
	Cursor   int
	Selected string
	Height   int
	Offset   int
}

// NewStateListModel creates a state picker with the given title.
func NewStateListModel(title string, states []stateInfo) StateListModel {
	return StateListModel{
		Title:  title,
		States: states,
		Height: 15,
	}
}

func (m StateListModel) Init() tea.Cmd {
	return nil
}

func (m StateListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.States)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			m.Selected = m.States[m.Cursor].ID
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m StateListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.States) {
		end = len(m.States)
	}

	for i := m.Offset; i < end; i++ {
		s := m.States[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		detail := "sink"
		if s.Outgoing == 1 {
			detail = "1 transition"
		} else if s.Outgoing > 1 {
			detail = fmt.Sprintf("%d transitions", s.Outgoing)
		}

		line := fmt.Sprintf("%s%-25s %s", cursor, s.ID, listDimStyle.Render(detail))
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.States))))

	return b.String()
}
