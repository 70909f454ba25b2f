// Package theme provides the Lip Gloss color palette and reusable styles
// for the lapmaster board. It is a leaf package with no internal imports
// to avoid import cycles.
package theme

import "github.com/charmbracelet/lipgloss"

// Event colors.
var (
	ColorPage   = lipgloss.Color("#2563eb")
	ColorStamp  = lipgloss.Color("#7c3aed")
	ColorReload = lipgloss.Color("#d97706")
	ColorError  = lipgloss.Color("#dc2626")
)

// Clock colors.
var (
	ColorClock      = lipgloss.Color("#f59e0b")
	ColorClockFrame = lipgloss.Color("#854d0e")
)

// UI chrome colors.
var (
	ColorBorder  = lipgloss.Color("#4b5563")
	ColorDimmed  = lipgloss.Color("#6b7280")
	ColorBright  = lipgloss.Color("#f9fafb")
	ColorHealthy = lipgloss.Color("#22c55e")
	ColorWarning = lipgloss.Color("#d97706")
	ColorDanger  = lipgloss.Color("#dc2626")
)

// EventColor returns the color for an event log kind.
func EventColor(kind string) lipgloss.Color {
	switch kind {
	case "page":
		return ColorPage
	case "stmp":
		return ColorStamp
	case "rld":
		return ColorReload
	case "err":
		return ColorError
	default:
		return ColorDimmed
	}
}

// Reusable styles.
var (
	StyleBorder = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder)

	StyleHeader = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorBright)

	StyleDimmed = lipgloss.NewStyle().
		Foreground(ColorDimmed)

	StyleClock = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorClock).
		Padding(0, 1).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorClockFrame)

	StyleError = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorDanger)
)
