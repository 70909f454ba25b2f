// Package eventlog provides a scrollable overlay listing page loads,
// stamp checks, reloads and errors.
package eventlog

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/lapmaster/board/internal/theme"
)

const maxEntries = 200

// Event kinds.
const (
	KindPage   = "page"
	KindStamp  = "stmp"
	KindReload = "rld"
	KindError  = "err"
)

// Entry is a single event log line.
type Entry struct {
	Time    time.Time
	Kind    string
	Message string
}

// Model holds event log state.
type Model struct {
	Entries []Entry
	Offset  int // scroll offset (from bottom)
}

// New creates an empty event log.
func New() Model {
	return Model{}
}

// Add appends an entry stamped with the current time and caps the buffer.
func (m *Model) Add(kind, message string) {
	m.AddAt(time.Now(), kind, message)
}

// AddAt appends an entry with an explicit time.
func (m *Model) AddAt(t time.Time, kind, message string) {
	m.Entries = append(m.Entries, Entry{
		Time:    t,
		Kind:    kind,
		Message: message,
	})
	if len(m.Entries) > maxEntries {
		m.Entries = m.Entries[len(m.Entries)-maxEntries:]
	}
	// New entries snap back to the bottom.
	m.Offset = 0
}

// Last returns the most recent entry of kind, if any.
func (m Model) Last(kind string) (Entry, bool) {
	for i := len(m.Entries) - 1; i >= 0; i-- {
		if m.Entries[i].Kind == kind {
			return m.Entries[i], true
		}
	}
	return Entry{}, false
}

// ScrollUp moves the view towards older entries.
func (m *Model) ScrollUp(n int) {
	m.Offset += n
	max := len(m.Entries) - 1
	if max < 0 {
		max = 0
	}
	if m.Offset > max {
		m.Offset = max
	}
}

// ScrollDown moves the view towards newer entries.
func (m *Model) ScrollDown(n int) {
	m.Offset -= n
	if m.Offset < 0 {
		m.Offset = 0
	}
}

func panelStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(width).
		Padding(1, 2).
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(theme.ColorBorder)
}

// View renders the log as an overlay panel.
func (m Model) View(width, height int) string {
	innerW := width - 4
	if innerW < 20 {
		innerW = 20
	}
	visibleLines := height - 6
	if visibleLines < 3 {
		visibleLines = 3
	}

	title := theme.StyleHeader.Render(" EVENT LOG ")
	help := theme.StyleDimmed.Render(fmt.Sprintf("j/k:scroll  esc:close  %d entries", len(m.Entries)))

	if len(m.Entries) == 0 {
		body := theme.StyleDimmed.Render("  No events recorded yet.")
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", body, "", help)
		return panelStyle(innerW).Render(content)
	}

	end := len(m.Entries) - m.Offset
	start := end - visibleLines
	if start < 0 {
		start = 0
	}
	if end < 0 {
		end = 0
	}

	var lines []string
	for i := start; i < end; i++ {
		e := m.Entries[i]
		tsStr := theme.StyleDimmed.Render(e.Time.Format("15:04:05.000"))
		kindStr := lipgloss.NewStyle().Foreground(theme.EventColor(e.Kind)).Width(4).Render(e.Kind)
		msgStr := e.Message
		if len(msgStr) > innerW-20 && innerW > 23 {
			msgStr = msgStr[:innerW-23] + "..."
		}
		lines = append(lines, fmt.Sprintf("%s %s %s", tsStr, kindStr, msgStr))
	}

	body := strings.Join(lines, "\n")
	scrollIndicator := ""
	if m.Offset > 0 {
		scrollIndicator = theme.StyleDimmed.Render(fmt.Sprintf(" ↓ %d more", m.Offset))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, title, body, scrollIndicator, help)
	return panelStyle(innerW).Render(content)
}
