package app

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lapmaster/board/internal/livepage"
	"github.com/lapmaster/board/internal/page"
	"github.com/lapmaster/board/internal/theme"
	"github.com/lapmaster/board/internal/views/eventlog"
	"github.com/lapmaster/board/internal/views/pageview"
	"github.com/lapmaster/board/internal/views/status"
)

// Lines taken by everything except the page body: header with the boxed
// clock, status bar, help line.
const chromeHeight = 7

// Client is what the board needs from the lapmaster web server.
type Client interface {
	livepage.StampFetcher
	FetchPage(ctx context.Context, path string) (*page.Document, error)
}

// Options configures the board.
type Options struct {
	PagePath string
	Helper   livepage.Options
}

// --- Bubble Tea messages ---

// Every message carries the page generation it was scheduled for. A reload
// bumps the generation, so ticks from the discarded page fall through.

type pageLoadedMsg struct {
	gen int
	doc *page.Document
	err error
}

type retryLoadMsg struct{ gen int }

type clockTickMsg struct{ gen int }

type pollTickMsg struct{ gen int }

type stampCheckedMsg struct {
	gen      int
	decision livepage.Decision
	stamp    string
	err      error
}

// Model is the root Bubble Tea model.
type Model struct {
	client Client
	opts   Options
	clock  livepage.Clock
	ctx    context.Context
	cancel context.CancelFunc

	keys    KeyMap
	width   int
	height  int
	showLog bool

	// Page state, replaced wholesale on reload.
	gen    int
	doc    *page.Document
	helper *livepage.Helper
	fatal  error

	statusBar status.Model
	body      pageview.Model
	events    eventlog.Model
}

// New creates the root model.
func New(c Client, opts Options) Model {
	if opts.PagePath == "" {
		opts.PagePath = "/index.html"
	}
	if opts.Helper.PollInterval <= 0 {
		opts.Helper.PollInterval = livepage.DefaultPollInterval
	}
	if opts.Helper.ClockInterval <= 0 {
		opts.Helper.ClockInterval = livepage.DefaultClockInterval
	}
	if opts.Helper.Clock == nil {
		opts.Helper.Clock = livepage.RealClock{}
	}
	ctx, cancel := context.WithCancel(context.Background())
	return Model{
		client:    c,
		opts:      opts,
		clock:     opts.Helper.Clock,
		ctx:       ctx,
		cancel:    cancel,
		keys:      DefaultKeyMap(),
		statusBar: status.New(),
		body:      pageview.New(),
		events:    eventlog.New(),
	}
}

// Init fetches the page.
func (m Model) Init() tea.Cmd {
	return m.loadPage()
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.statusBar.Width = msg.Width
		m.body.SetSize(msg.Width, msg.Height-chromeHeight)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case pageLoadedMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		return m.handlePageLoaded(msg)

	case retryLoadMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		return m, m.loadPage()

	case clockTickMsg:
		if msg.gen != m.gen || m.helper == nil {
			return m, nil
		}
		if _, err := m.helper.UpdateClock(); err != nil {
			return m.fail(err), nil
		}
		m.refreshBody()
		return m, m.scheduleClock()

	case pollTickMsg:
		if msg.gen != m.gen || m.helper == nil {
			return m, nil
		}
		return m, m.checkStamp()

	case stampCheckedMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		return m.handleStampChecked(msg)
	}

	return m, nil
}

func (m Model) handlePageLoaded(msg pageLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		log.Printf("load %s: %v", m.opts.PagePath, msg.err)
		m.statusBar.LastErr = msg.err.Error()
		m.events.Add(eventlog.KindError, fmt.Sprintf("load %s: %v", m.opts.PagePath, msg.err))
		return m, m.retryLoad()
	}

	h := livepage.New(msg.doc, m.client, m.opts.Helper)
	if err := h.Init(); err != nil {
		return m.fail(err), nil
	}

	m.doc = msg.doc
	m.helper = h
	stamp := h.State().Stamp
	m.statusBar.Live = true
	m.statusBar.Stamp = stamp
	m.statusBar.LastErr = ""
	m.events.Add(eventlog.KindPage, fmt.Sprintf("loaded %s, stamp %q", m.opts.PagePath, stamp))
	m.refreshBody()

	return m, tea.Batch(m.schedulePoll(), m.scheduleClock())
}

func (m Model) handleStampChecked(msg stampCheckedMsg) (tea.Model, tea.Cmd) {
	m.statusBar.LastCheck = m.clock.Now()
	if msg.err != nil {
		log.Printf("versionstamp check: %v", msg.err)
		m.statusBar.LastErr = msg.err.Error()
		m.events.Add(eventlog.KindError, msg.err.Error())
	} else {
		m.statusBar.LastErr = ""
	}

	if msg.decision == livepage.Reload {
		m.events.Add(eventlog.KindReload, fmt.Sprintf("stamp %q -> %q", m.statusBar.Stamp, msg.stamp))
		m.statusBar.Reloads++
		return m.reload()
	}
	return m, m.schedulePoll()
}

// reload throws away the page and its helper and fetches the page again.
func (m Model) reload() (tea.Model, tea.Cmd) {
	m.gen++
	m.doc = nil
	m.helper = nil
	m.statusBar.Live = false
	m.body.Clear()
	return m, m.loadPage()
}

func (m Model) fail(err error) Model {
	log.Printf("page: %v", err)
	m.fatal = err
	m.helper = nil
	m.statusBar.Live = false
	m.events.Add(eventlog.KindError, err.Error())
	return m
}

func (m *Model) refreshBody() {
	if m.doc == nil {
		return
	}
	if err := m.body.SetDocument(m.doc); err != nil {
		log.Printf("render page: %v", err)
	}
}

func (m Model) loadPage() tea.Cmd {
	ctx, c, gen, path := m.ctx, m.client, m.gen, m.opts.PagePath
	return func() tea.Msg {
		doc, err := c.FetchPage(ctx, path)
		return pageLoadedMsg{gen: gen, doc: doc, err: err}
	}
}

func (m Model) retryLoad() tea.Cmd {
	gen := m.gen
	return tea.Tick(m.opts.Helper.PollInterval, func(time.Time) tea.Msg {
		return retryLoadMsg{gen: gen}
	})
}

func (m Model) scheduleClock() tea.Cmd {
	gen := m.gen
	return tea.Tick(m.helper.State().ClockInterval, func(time.Time) tea.Msg {
		return clockTickMsg{gen: gen}
	})
}

func (m Model) schedulePoll() tea.Cmd {
	gen := m.gen
	return tea.Tick(m.helper.State().PollInterval, func(time.Time) tea.Msg {
		return pollTickMsg{gen: gen}
	})
}

// checkStamp runs the blocking stamp fetch off the update loop. The next
// poll tick is only scheduled once its result arrives.
func (m Model) checkStamp() tea.Cmd {
	ctx, h, gen := m.ctx, m.helper, m.gen
	return func() tea.Msg {
		d, err := h.CheckStamp(ctx)
		return stampCheckedMsg{gen: gen, decision: d, stamp: h.State().Stamp, err: err}
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.cancel()
		return m, tea.Quit
	}

	if m.showLog {
		switch {
		case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Log):
			m.showLog = false
		case key.Matches(msg, m.keys.Up):
			m.events.ScrollUp(1)
		case key.Matches(msg, m.keys.Down):
			m.events.ScrollDown(1)
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Log):
		m.showLog = true
		return m, nil

	case key.Matches(msg, m.keys.Reload):
		m.fatal = nil
		m.events.Add(eventlog.KindReload, "manual reload")
		return m.reload()
	}

	var cmd tea.Cmd
	m.body, cmd = m.body.Update(msg)
	return m, cmd
}

// View renders the full board.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	var main string
	switch {
	case m.showLog:
		main = m.events.View(m.width, m.height-chromeHeight)
	case m.fatal != nil:
		main = theme.StyleError.Render("  Page cannot be shown: "+m.fatal.Error()) + "\n" +
			theme.StyleDimmed.Render("  r:retry  q:quit")
	case m.doc == nil:
		main = theme.StyleDimmed.Render("  Loading " + m.opts.PagePath + "...")
	default:
		main = m.body.View()
	}

	sections := []string{
		m.renderHeader(),
		main,
		m.statusBar.View(),
		theme.StyleDimmed.Render("  j/k:scroll  r:reload  l:event log  q:quit"),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	title := "lapmaster"
	clock := "--:--:--"
	if m.doc != nil {
		if t := m.doc.Title(); t != "" {
			title = t
		}
		if c := m.doc.ClockText(); c != "" {
			clock = c
		}
	}
	left := theme.StyleHeader.Render(" " + title)
	right := theme.StyleClock.Render(clock)

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	// Align the title with the middle row of the boxed clock.
	left = "\n" + left + strings.Repeat(" ", gap)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}
