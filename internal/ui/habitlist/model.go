package habitlist

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"habitchain/internal/keys"
	"habitchain/internal/model"
	"habitchain/internal/theme"
)

// ToggleHabitMsg asks the app to flip today's completion for a habit.
type ToggleHabitMsg struct {
	HabitID string
}

// EditHabitMsg asks the app to open the edit form for a habit.
type EditHabitMsg struct {
	Habit model.Habit
}

// DeleteHabitMsg asks the app to delete a habit.
type DeleteHabitMsg struct {
	HabitID string
	Name    string
}

// Model is the dashboard habit list component.
type Model struct {
	list   list.Model
	keys   *keys.KeyMap
	width  int
	height int
}

// New creates a new habit list model.
func New(k *keys.KeyMap, width, height int) Model {
	l := list.New([]list.Item{}, ItemDelegate{}, width, height-2)
	l.Title = "Habits"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	return Model{
		list:   l,
		keys:   k,
		width:  width,
		height: height,
	}
}

// SetHabits replaces the list contents, keeping the cursor position
// when possible.
func (m *Model) SetHabits(habits []model.HabitWithStreak) tea.Cmd {
	items := make([]list.Item, len(habits))
	for i, h := range habits {
		items[i] = HabitItem{Habit: h}
	}
	return m.list.SetItems(items)
}

// Selected returns the habit under the cursor.
func (m Model) Selected() (model.HabitWithStreak, bool) {
	item, ok := m.list.SelectedItem().(HabitItem)
	if !ok {
		return model.HabitWithStreak{}, false
	}
	return item.Habit, true
}

// Update handles messages for the habit list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, m.keys.Toggle):
			if h, ok := m.Selected(); ok {
				id := h.ID
				return m, func() tea.Msg { return ToggleHabitMsg{HabitID: id} }
			}
			return m, nil

		case key.Matches(keyMsg, m.keys.Edit):
			if h, ok := m.Selected(); ok {
				habit := h.Habit
				return m, func() tea.Msg { return EditHabitMsg{Habit: habit} }
			}
			return m, nil

		case key.Matches(keyMsg, m.keys.Delete):
			if h, ok := m.Selected(); ok {
				id, name := h.ID, h.Name
				return m, func() tea.Msg { return DeleteHabitMsg{HabitID: id, Name: name} }
			}
			return m, nil
		}
	}

	// Delegate to the list for navigation keys (up/down/pgup/pgdn)
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the habit list view.
func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return m.renderEmptyState()
	}
	return m.list.View()
}

// renderEmptyState shows guidance text when no habits exist yet.
func (m Model) renderEmptyState() string {
	style := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	return style.Render("No habits yet.\n\nPress 'a' to add your first habit.")
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
}
