package eventlog

import (
	"strings"
	"testing"
	"time"
)

func TestAddEntry(t *testing.T) {
	m := New()
	m.Add(KindPage, "loaded /index.html")
	if len(m.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(m.Entries))
	}
	if m.Entries[0].Kind != KindPage {
		t.Errorf("expected kind %q, got %q", KindPage, m.Entries[0].Kind)
	}
}

func TestMaxEntries(t *testing.T) {
	m := New()
	for i := 0; i < maxEntries+50; i++ {
		m.Add(KindStamp, "unchanged")
	}
	if len(m.Entries) != maxEntries {
		t.Errorf("expected %d entries, got %d", maxEntries, len(m.Entries))
	}
}

func TestLast(t *testing.T) {
	m := New()
	if _, ok := m.Last(KindReload); ok {
		t.Error("empty log should have no reload entry")
	}
	t0 := time.Date(2024, 5, 1, 10, 0, 0, 0, time.Local)
	m.AddAt(t0, KindReload, "abc123 -> def456")
	m.AddAt(t0.Add(time.Second), KindPage, "loaded")
	e, ok := m.Last(KindReload)
	if !ok {
		t.Fatal("expected a reload entry")
	}
	if !e.Time.Equal(t0) || e.Message != "abc123 -> def456" {
		t.Errorf("Last(reload) = %+v", e)
	}
}

func TestScrollUpDown(t *testing.T) {
	m := New()
	for i := 0; i < 20; i++ {
		m.Add(KindStamp, "msg")
	}
	if m.Offset != 0 {
		t.Fatal("expected offset 0 after adds")
	}

	m.ScrollUp(5)
	if m.Offset != 5 {
		t.Errorf("expected offset 5, got %d", m.Offset)
	}

	m.ScrollDown(3)
	if m.Offset != 2 {
		t.Errorf("expected offset 2, got %d", m.Offset)
	}

	m.ScrollDown(10)
	if m.Offset != 0 {
		t.Errorf("expected offset 0, got %d", m.Offset)
	}
}

func TestScrollUpCapped(t *testing.T) {
	m := New()
	for i := 0; i < 5; i++ {
		m.Add(KindStamp, "msg")
	}
	m.ScrollUp(100)
	if m.Offset != 4 {
		t.Errorf("expected offset 4, got %d", m.Offset)
	}
}

func TestViewEmpty(t *testing.T) {
	m := New()
	if v := m.View(80, 20); !strings.Contains(v, "No events") {
		t.Error("empty view should show 'No events' message")
	}
}

func TestViewWithEntries(t *testing.T) {
	m := New()
	m.Add(KindReload, "abc123 -> def456")
	m.Add(KindError, "connection refused")
	v := m.View(80, 20)
	if !strings.Contains(v, "def456") {
		t.Error("view should contain the new stamp")
	}
	if !strings.Contains(v, "connection refused") {
		t.Error("view should contain the error")
	}
}

func TestAddResetsScroll(t *testing.T) {
	m := New()
	for i := 0; i < 10; i++ {
		m.Add(KindStamp, "msg")
	}
	m.ScrollUp(5)
	m.Add(KindStamp, "new")
	if m.Offset != 0 {
		t.Error("adding entry should reset scroll to 0")
	}
}
