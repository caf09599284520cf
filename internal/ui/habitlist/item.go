package habitlist

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"habitchain/internal/model"
	"habitchain/internal/theme"
)

// HabitItem wraps a model.HabitWithStreak so it can be used in a
// bubbles/list.
type HabitItem struct {
	Habit model.HabitWithStreak
}

// FilterValue returns the string used for fuzzy filtering.
func (i HabitItem) FilterValue() string { return i.Habit.Name }

// Title returns the habit name for the list.
func (i HabitItem) Title() string { return i.Habit.Name }

// Description returns a short summary line for the list.
func (i HabitItem) Description() string {
	return fmt.Sprintf("🔥 %d", i.Habit.Streak)
}

// ItemDelegate implements list.ItemDelegate for rendering habit rows.
type ItemDelegate struct{}

// Height returns the number of lines each item takes.
func (d ItemDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d ItemDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused).
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single habit line: checkbox, icon, colored name, and
// the streak badge.
func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	hi, ok := item.(HabitItem)
	if !ok {
		return
	}
	h := hi.Habit

	checkbox := "○"
	if h.DoneToday {
		checkbox = theme.DoneStyle.Render("✓")
	}

	name := theme.HabitStyle(h.Color).Render(h.Name)
	if h.Icon != "" {
		name = h.Icon + " " + name
	}

	line := fmt.Sprintf("%s %s", checkbox, name)
	if h.Streak > 0 {
		line += "  " + theme.StreakStyle.Render(fmt.Sprintf("🔥 %d", h.Streak))
	}

	if index == m.Index() {
		fmt.Fprint(w, theme.SelectedItemStyle.Render(line))
		return
	}
	fmt.Fprint(w, theme.ListItemStyle.Render(line))
}
