package tui

import "github.com/charmbracelet/lipgloss"

// Palette, scaled down from surge/internal/tui/styles.go's Dracula set.
var (
	ColorPrimary = lipgloss.Color("#bd93f9")
	ColorSuccess = lipgloss.Color("#50fa7b")
	ColorError   = lipgloss.Color("#ff5555")
	ColorWarning = lipgloss.Color("#ffb86c")
	ColorText    = lipgloss.Color("#f8f8f2")
	ColorSubtext = lipgloss.Color("#6272a4")

	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(0, 1)

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorSubtext).
			Padding(0, 1)

	QueueItemStyle = lipgloss.NewStyle().Foreground(ColorText)

	HelpStyle = lipgloss.NewStyle().Foreground(ColorSubtext)
)

// stateColor returns the accent color for a tracker state label.
func stateColor(label string) lipgloss.Color {
	switch {
	case label == "Stuck":
		return ColorWarning
	case len(label) >= 7 && label[:7] == "Holding":
		return ColorError
	case label == "Idle":
		return ColorSubtext
	default:
		return ColorSuccess
	}
}
