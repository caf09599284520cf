// Package statsview renders the aggregate statistics panel: active
// days, longest streak, completion rate, and the weekly completion
// chart.
package statsview

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"habitchain/internal/stats"
	"habitchain/internal/theme"
)

// Model is the statistics view component.
type Model struct {
	summary stats.Summary
	week    []stats.WeeklyPoint
	width   int
	height  int
}

// New creates a new stats view model.
func New(width, height int) Model {
	return Model{
		width:  width,
		height: height,
	}
}

// SetData replaces the rendered summary and weekly series.
func (m *Model) SetData(summary stats.Summary, week []stats.WeeklyPoint) {
	m.summary = summary
	m.week = week
}

// Update handles messages for the stats view. Navigation is handled by
// the app; the view itself is static.
func (m Model) Update(_ tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

// View renders the statistics panel.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	cards := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderCard("Active days", fmt.Sprintf("%d", m.summary.ActiveDays)),
		m.renderCard("Longest streak", fmt.Sprintf("🔥 %d", m.summary.LongestStreak)),
		m.renderCard("30-day completion", fmt.Sprintf("%d%%", m.summary.CompletionRate)),
	)

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render("Statistics"),
		cards,
		"",
		m.renderWeeklyChart(),
	)

	return theme.PanelStyle.
		Width(m.width - 4).
		Render(content)
}

func (m Model) renderCard(label, value string) string {
	valueStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorYellow)
	return lipgloss.NewStyle().
		Padding(0, 2).
		Render(lipgloss.JoinVertical(
			lipgloss.Center,
			valueStyle.Render(value),
			theme.HelpStyle.Render(label),
		))
}

// renderWeeklyChart plots the last seven days of completions, Monday
// first, with weekend labels dimmed.
func (m Model) renderWeeklyChart() string {
	if len(m.week) == 0 {
		return theme.HelpStyle.Render("No activity this week.")
	}

	data := make([]float64, len(m.week))
	for i, p := range m.week {
		data[i] = float64(p.Count)
	}

	chart := asciigraph.Plot(
		data,
		asciigraph.Height(6),
		asciigraph.Width(chartWidth(m.width)),
		asciigraph.Caption("completions this week"),
	)

	var labels []string
	for _, p := range m.week {
		label := p.Day
		if p.IsWeekend {
			label = theme.WeekendStyle.Render(label)
		}
		labels = append(labels, label)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		chart,
		strings.Join(labels, "  "),
	)
}

func chartWidth(width int) int {
	w := width - 16
	if w < 28 {
		w = 28
	}
	return w
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
