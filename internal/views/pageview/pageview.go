// Package pageview renders a lapmaster page body in the terminal: HTML is
// converted to Markdown, styled by glamour and shown in a scrollable
// viewport.
package pageview

import (
	"log"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/lapmaster/board/internal/page"
)

const glamourStyle = "dark"

// Model holds the rendered page.
type Model struct {
	viewport      viewport.Model
	renderer      *glamour.TermRenderer
	rendererWidth int
	markdown      string
}

// New creates an empty page view.
func New() Model {
	return Model{viewport: viewport.New(80, 20)}
}

// SetSize resizes the viewport and re-wraps the content.
func (m *Model) SetSize(width, height int) {
	if width < 20 {
		width = 20
	}
	if height < 3 {
		height = 3
	}
	m.viewport.Width = width
	m.viewport.Height = height
	m.refresh()
}

// SetDocument converts doc to Markdown and shows it. Called on every page
// load and on every clock tick, since the clock lives inside the page.
func (m *Model) SetDocument(doc *page.Document) error {
	md, err := doc.Markdown()
	if err != nil {
		return err
	}
	m.markdown = md
	m.refresh()
	return nil
}

// Markdown returns the last Markdown shown.
func (m Model) Markdown() string {
	return m.markdown
}

// Clear drops the page, e.g. while a reload is in progress.
func (m *Model) Clear() {
	m.markdown = ""
	m.viewport.SetContent("")
	m.viewport.GotoTop()
}

func (m *Model) refresh() {
	if m.markdown == "" {
		return
	}
	out := m.markdown
	if r := m.rendererFor(m.viewport.Width); r != nil {
		rendered, err := r.Render(m.markdown)
		if err != nil {
			log.Printf("pageview: render: %v", err)
		} else {
			out = rendered
		}
	}
	m.viewport.SetContent(out)
}

func (m *Model) rendererFor(width int) *glamour.TermRenderer {
	if m.renderer != nil && m.rendererWidth == width {
		return m.renderer
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(glamourStyle),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		log.Printf("pageview: renderer: %v", err)
		return nil
	}
	m.renderer = r
	m.rendererWidth = width
	return r
}

// Update forwards scrolling input to the viewport.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the viewport.
func (m Model) View() string {
	return m.viewport.View()
}
