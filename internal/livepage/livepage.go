// Package livepage keeps a displayed lapmaster page current. It ticks the
// clock in the page's navigation bar and watches the server's version
// stamp, asking the host to reload the page once the stamp moves.
//
// A Helper belongs to exactly one loaded page. Reloading means dropping the
// Helper together with the page and building a new one from the fresh
// markup.
package livepage

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"
)

const (
	DefaultPollInterval  = 500 * time.Millisecond
	DefaultClockInterval = 1000 * time.Millisecond
)

var (
	// ErrReload is returned by Run when the server stamp changed and the
	// page must be fetched again.
	ErrReload = errors.New("livepage: versionstamp changed")

	// ErrCheckInFlight is returned by CheckStamp when another check has
	// not finished yet.
	ErrCheckInFlight = errors.New("livepage: stamp check already in flight")
)

// Document is the part of a page the helper reads and writes.
type Document interface {
	VersionStamp() (string, error)
	SetClock(text string) error
}

// StampFetcher asks the server for its current version stamp.
type StampFetcher interface {
	FetchStamp(ctx context.Context) (string, error)
}

// Decision is the outcome of a stamp check.
type Decision int

const (
	Reschedule Decision = iota
	Reload
)

func (d Decision) String() string {
	switch d {
	case Reschedule:
		return "reschedule"
	case Reload:
		return "reload"
	default:
		return fmt.Sprintf("Decision(%d)", int(d))
	}
}

// State is everything a page keeps between ticks.
type State struct {
	PollInterval  time.Duration
	ClockInterval time.Duration
	Stamp         string
}

// Options configures a Helper. Zero values take the defaults.
type Options struct {
	PollInterval  time.Duration
	ClockInterval time.Duration
	Clock         Clock
}

// Helper runs the clock updater and the version watcher for one page.
type Helper struct {
	doc     Document
	fetcher StampFetcher
	clock   Clock

	mu       sync.Mutex
	state    State
	checking bool
}

// New creates a helper for doc. Call Init before any tick.
func New(doc Document, fetcher StampFetcher, opts Options) *Helper {
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	if opts.ClockInterval <= 0 {
		opts.ClockInterval = DefaultClockInterval
	}
	if opts.Clock == nil {
		opts.Clock = RealClock{}
	}
	return &Helper{
		doc:     doc,
		fetcher: fetcher,
		clock:   opts.Clock,
		state: State{
			PollInterval:  opts.PollInterval,
			ClockInterval: opts.ClockInterval,
		},
	}
}

// State returns a copy of the current state.
func (h *Helper) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Init captures the page's version stamp and paints the clock once. The
// caller schedules the first watcher tick after PollInterval and the first
// clock tick after ClockInterval.
func (h *Helper) Init() error {
	stamp, err := h.doc.VersionStamp()
	if err != nil {
		return fmt.Errorf("livepage: init: %w", err)
	}
	h.mu.Lock()
	h.state.Stamp = stamp
	h.mu.Unlock()

	if _, err := h.UpdateClock(); err != nil {
		return fmt.Errorf("livepage: init: %w", err)
	}
	return nil
}

// UpdateClock writes the current time into the page and returns the text
// written.
func (h *Helper) UpdateClock() (string, error) {
	text := FormatClock(h.clock.Now())
	if err := h.doc.SetClock(text); err != nil {
		return "", err
	}
	return text, nil
}

// CheckStamp fetches the server stamp and compares it with the remembered
// one. On a mismatch the new stamp is stored and Reload is returned; the
// helper must not be ticked again afterwards.
//
// A failed fetch counts as "no change": the stamp is left alone and the
// error is returned next to Reschedule.
func (h *Helper) CheckStamp(ctx context.Context) (Decision, error) {
	h.mu.Lock()
	if h.checking {
		h.mu.Unlock()
		return Reschedule, ErrCheckInFlight
	}
	h.checking = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		h.checking = false
		h.mu.Unlock()
	}()

	stamp, err := h.fetcher.FetchStamp(ctx)
	if err != nil {
		return Reschedule, fmt.Errorf("livepage: fetch versionstamp: %w", err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if stamp == h.state.Stamp {
		return Reschedule, nil
	}
	h.state.Stamp = stamp
	return Reload, nil
}

// Run initializes the helper and drives both tasks until the stamp
// changes (ErrReload), the clock element disappears, or ctx is done.
func (h *Helper) Run(ctx context.Context) error {
	if err := h.Init(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errc := make(chan error, 2)
	go func() { errc <- h.runClock(ctx) }()
	go func() { errc <- h.runWatcher(ctx) }()

	err := <-errc
	cancel()
	<-errc
	return err
}

func (h *Helper) runClock(ctx context.Context) error {
	interval := h.State().ClockInterval
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-h.clock.After(interval):
		}
		if _, err := h.UpdateClock(); err != nil {
			return fmt.Errorf("livepage: clock: %w", err)
		}
	}
}

func (h *Helper) runWatcher(ctx context.Context) error {
	interval := h.State().PollInterval
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-h.clock.After(interval):
		}
		d, err := h.CheckStamp(ctx)
		if err != nil {
			log.Printf("versionstamp check: %v", err)
		}
		if d == Reload {
			return ErrReload
		}
	}
}
