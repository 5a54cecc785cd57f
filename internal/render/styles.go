package render

import "github.com/charmbracelet/lipgloss"

// Color palette.
var (
	colorAccent  = lipgloss.Color("#D8780A") // chart orange
	colorSuccess = lipgloss.Color("#50C878")
	colorError   = lipgloss.Color("#FF6961")
	colorMuted   = lipgloss.Color("#808080")
	colorBorder  = lipgloss.Color("#3A3A5C")
	colorTitle   = lipgloss.Color("#C4B5FD")
)

var (
	stylePanel = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	styleErrPanel = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorError).
			Padding(0, 1)

	styleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorTitle)
	styleOK    = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	styleErr   = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	styleDim   = lipgloss.NewStyle().Foreground(colorMuted)
	styleLabel = lipgloss.NewStyle().Foreground(colorMuted)
	styleBar   = lipgloss.NewStyle().Foreground(colorAccent)
	styleHint  = lipgloss.NewStyle().Foreground(colorMuted).Italic(true)
)
