package theme

import "github.com/charmbracelet/lipgloss"

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue   = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorPurple = lipgloss.AdaptiveColor{Dark: "#B197FC", Light: "#6B46C1"}
	ColorCoral  = lipgloss.AdaptiveColor{Dark: "#FF8787", Light: "#C53030"}
	ColorGreen  = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed    = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorGray   = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite  = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorSubtle = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#CBD5E0"}
	ColorBorder = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
)

// HeaderStyle is used for top-level section headers and the application title.
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorBlue).
	Padding(0, 1)

// StatusBarStyle is used for the bottom status bar.
var StatusBarStyle = lipgloss.NewStyle().
	Foreground(ColorWhite).
	Background(ColorSubtle).
	Padding(0, 1)

// ErrorStyle renders backend and validation errors in the status bar.
var ErrorStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorRed)

// PanelStyle wraps bordered content areas such as the stats view.
var PanelStyle = lipgloss.NewStyle().
	Padding(1, 2).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// ListItemStyle is the base style for items in a list.
var ListItemStyle = lipgloss.NewStyle().
	PaddingLeft(2)

// SelectedItemStyle highlights the currently focused list item.
var SelectedItemStyle = lipgloss.NewStyle().
	PaddingLeft(1).
	Bold(true).
	Foreground(ColorBlue).
	Border(lipgloss.NormalBorder(), false, false, false, true).
	BorderForeground(ColorBlue)

// HelpStyle is used for keyboard shortcut hints and help text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Italic(true)

// StreakStyle renders the flame-and-count streak badge.
var StreakStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorYellow)

// DoneStyle marks habits completed today.
var DoneStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorGreen)

// HabitStyle returns a color-coded style for a habit's configured
// color. Unknown values fall back to the default blue.
func HabitStyle(color string) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)

	switch color {
	case "purple":
		return base.Foreground(ColorPurple)
	case "coral":
		return base.Foreground(ColorCoral)
	case "blue":
		return base.Foreground(ColorBlue)
	default:
		return base.Foreground(ColorBlue)
	}
}

// WeekendStyle dims weekend labels in the weekly chart.
var WeekendStyle = lipgloss.NewStyle().
	Foreground(ColorGray)
