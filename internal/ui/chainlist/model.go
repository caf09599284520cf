// Package chainlist renders the user's chains: for each chain, its
// member habits in order with their done-today marks, skipping
// references to habits that no longer exist.
package chainlist

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"habitchain/internal/keys"
	"habitchain/internal/model"
	"habitchain/internal/theme"
)

// EditChainMsg asks the app to open the edit form for a chain.
type EditChainMsg struct {
	Chain model.Chain
}

// DeleteChainMsg asks the app to delete a chain.
type DeleteChainMsg struct {
	ChainID string
	Name    string
}

// Model is the chain overview component.
type Model struct {
	chains []model.Chain
	byID   map[string]model.HabitWithStreak
	keys   *keys.KeyMap
	cursor int
	width  int
	height int
}

// New creates a new chain list model.
func New(k *keys.KeyMap, width, height int) Model {
	return Model{
		keys:   k,
		width:  width,
		height: height,
	}
}

// SetData replaces the chains and the habit lookup used to resolve
// their members.
func (m *Model) SetData(chains []model.Chain, habits []model.HabitWithStreak) {
	m.chains = chains
	m.byID = make(map[string]model.HabitWithStreak, len(habits))
	for _, h := range habits {
		m.byID[h.ID] = h
	}
	if m.cursor >= len(chains) {
		m.cursor = len(chains) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// Selected returns the chain under the cursor.
func (m Model) Selected() (model.Chain, bool) {
	if len(m.chains) == 0 || m.cursor >= len(m.chains) {
		return model.Chain{}, false
	}
	return m.chains[m.cursor], true
}

// Update handles messages for the chain list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < len(m.chains)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, m.keys.Edit), key.Matches(keyMsg, m.keys.Select):
		if c, ok := m.Selected(); ok {
			chain := c
			return m, func() tea.Msg { return EditChainMsg{Chain: chain} }
		}
	case key.Matches(keyMsg, m.keys.Delete):
		if c, ok := m.Selected(); ok {
			id, name := c.ID, c.Name
			return m, func() tea.Msg { return DeleteChainMsg{ChainID: id, Name: name} }
		}
	}
	return m, nil
}

// View renders every chain as a block of its resolved habits.
func (m Model) View() string {
	if len(m.chains) == 0 {
		return lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray).
			Render("No chains yet.\n\nPress 'n' to link habits into a chain.")
	}

	var blocks []string
	for i, c := range m.chains {
		blocks = append(blocks, m.renderChain(c, i == m.cursor))
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

func (m Model) renderChain(c model.Chain, selected bool) string {
	title := c.Name
	if title == "" {
		title = "(unnamed chain)"
	}

	done := 0
	var lines []string
	for _, id := range c.HabitIDs {
		h, ok := m.byID[id]
		if !ok {
			continue
		}
		mark := "○"
		if h.DoneToday {
			mark = theme.DoneStyle.Render("✓")
			done++
		}
		name := theme.HabitStyle(h.Color).Render(h.Name)
		if h.Icon != "" {
			name = h.Icon + " " + name
		}
		lines = append(lines, fmt.Sprintf("  %s %s", mark, name))
	}

	header := fmt.Sprintf("%s  %d/%d today", title, done, len(lines))
	if selected {
		header = theme.SelectedItemStyle.Render(header)
	} else {
		header = lipgloss.NewStyle().Bold(true).Render(header)
	}

	if len(lines) == 0 {
		lines = append(lines, theme.HelpStyle.Render("  (no habits)"))
	}
	return header + "\n" + strings.Join(lines, "\n") + "\n"
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
