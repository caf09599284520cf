package ui

import (
	"github.com/charmbracelet/lipgloss"

	"habitchain/internal/theme"
)

// Layout manages the terminal layout dimensions shared by all views.
type Layout struct {
	Width           int
	Height          int
	HeaderHeight    int
	StatusBarHeight int
}

// NewLayout creates a Layout with the given terminal dimensions.
// HeaderHeight and StatusBarHeight default to 1.
func NewLayout(width, height int) Layout {
	return Layout{
		Width:           width,
		Height:          height,
		HeaderHeight:    1,
		StatusBarHeight: 1,
	}
}

// ContentWidth returns the full available width.
func (l Layout) ContentWidth() int {
	return l.Width
}

// ContentHeight returns the height available for the main content area,
// accounting for the header and status bar.
func (l Layout) ContentHeight() int {
	return l.Height - l.HeaderHeight - l.StatusBarHeight
}

// fillBar pads rendered segments to the full terminal width with the
// style's background so header and status bar span the screen.
func (l Layout) fillBar(style lipgloss.Style, segments ...string) string {
	used := 0
	for _, s := range segments {
		used += lipgloss.Width(s)
	}
	// The filler is rendered through the bar style, whose own padding
	// counts against the remaining width.
	gap := l.Width - used - style.GetHorizontalFrameSize()
	if gap < 0 {
		gap = 0
	}

	filler := style.Render(
		lipgloss.NewStyle().
			Width(gap).
			Background(style.GetBackground()).
			Render(""),
	)

	if len(segments) == 1 {
		return lipgloss.JoinHorizontal(lipgloss.Top, segments[0], filler)
	}
	parts := append([]string{segments[0], filler}, segments[1:]...)
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// RenderHeader renders the top header bar with the app title on the
// left and the account and sync status on the right.
func (l Layout) RenderHeader(title string, status string) string {
	return l.fillBar(theme.HeaderStyle,
		theme.HeaderStyle.Render(title),
		theme.HeaderStyle.Align(lipgloss.Right).Render(status),
	)
}

// RenderStatusBar renders the bottom status bar. A pending error
// preempts the keyboard hints and is styled as such.
func (l Layout) RenderStatusBar(hints string, errMsg string) string {
	if errMsg != "" {
		return l.fillBar(theme.StatusBarStyle,
			theme.ErrorStyle.Render("⚠ "+errMsg))
	}
	return l.fillBar(theme.StatusBarStyle, theme.StatusBarStyle.Render(hints))
}

// RenderWithFrame composes a full terminal view by vertically joining
// the header, content area, and status bar.
func (l Layout) RenderWithFrame(
	header string,
	content string,
	statusBar string,
) string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		content,
		statusBar,
	)
}
