package dashboard

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Palette loosely follows the solved.ac tier colors.
var (
	colPrimary = lipgloss.Color("#27E2A4") // solved.ac green
	colGold    = lipgloss.Color("#EC9A00")
	colSilver  = lipgloss.Color("#435F7A")
	colError   = lipgloss.Color("#F43F5E")
	colText    = lipgloss.Color("#F8FAFC")
	colDim     = lipgloss.Color("#94A3B8")
	colBorder  = lipgloss.Color("#334155")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colPrimary)

	dimStyle = lipgloss.NewStyle().
			Foreground(colDim)

	errorStyle = lipgloss.NewStyle().
			Foreground(colError).
			Bold(true)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colBorder).
			Padding(1, 2)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colGold)

	valueStyle = lipgloss.NewStyle().
			Foreground(colText)

	tierStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colSilver)
)

// severityColor maps a weak-tag severity to its display color.
func severityColor(severity string) color.Color {
	switch severity {
	case "Critical":
		return colError
	case "High":
		return colGold
	default:
		return colDim
	}
}
