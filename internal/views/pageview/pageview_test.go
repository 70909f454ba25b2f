package pageview

import (
	"strings"
	"testing"

	"github.com/lapmaster/board/internal/page"
)

func TestSetDocument(t *testing.T) {
	doc, err := page.Parse(strings.NewReader(`<html><body>` +
		`<table><tr><td><a href="index.html">Resultatlistor</a></td><td id="clock"></td></tr></table>` +
		`<h2>Senaste passager</h2></body></html>`))
	if err != nil {
		t.Fatal(err)
	}
	if err := doc.SetClock("09:05:03"); err != nil {
		t.Fatal(err)
	}

	m := New()
	m.SetSize(80, 20)
	if err := m.SetDocument(doc); err != nil {
		t.Fatalf("SetDocument: %v", err)
	}
	if !strings.Contains(m.Markdown(), "09:05:03") {
		t.Errorf("markdown missing clock:\n%s", m.Markdown())
	}
	if strings.TrimSpace(m.View()) == "" {
		t.Error("view should not be empty after SetDocument")
	}

	m.Clear()
	if m.Markdown() != "" {
		t.Error("Clear should drop the markdown")
	}
}
