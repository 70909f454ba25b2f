package status

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/lapmaster/board/internal/theme"
)

// Model holds the status bar state.
type Model struct {
	Live      bool
	Stamp     string
	LastCheck time.Time
	LastErr   string
	Reloads   int
	Width     int
}

// New creates a status bar model.
func New() Model {
	return Model{}
}

// View renders the status bar.
func (m Model) View() string {
	width := m.Width
	if width < 40 {
		width = 40
	}

	var liveStr string
	switch {
	case !m.Live:
		liveStr = lipgloss.NewStyle().Foreground(theme.ColorWarning).Render("○ Loading...")
	case m.LastErr != "":
		liveStr = lipgloss.NewStyle().Foreground(theme.ColorDanger).Render("● Server unreachable")
	default:
		liveStr = lipgloss.NewStyle().Foreground(theme.ColorHealthy).Render("● Live")
	}

	stampStr := lipgloss.NewStyle().Foreground(theme.ColorStamp).Render(fmt.Sprintf("stamp %q", m.Stamp))

	checked := "never checked"
	if !m.LastCheck.IsZero() {
		checked = "checked " + m.LastCheck.Format("15:04:05")
	}

	sep := lipgloss.NewStyle().Foreground(theme.ColorBorder).Render(" | ")
	content := liveStr + sep + stampStr + sep + theme.StyleDimmed.Render(checked) +
		sep + fmt.Sprintf("%d reloads", m.Reloads)
	if m.LastErr != "" {
		content += sep + lipgloss.NewStyle().Foreground(theme.ColorDanger).Render(m.LastErr)
	}

	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 1).
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(theme.ColorBorder).
		Render(content)
}
