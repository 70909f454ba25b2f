package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lapmaster/board/internal/app"
	"github.com/lapmaster/board/internal/client"
	"github.com/lapmaster/board/internal/config"
	"github.com/lapmaster/board/internal/livepage"
)

func main() {
	configPath := flag.String("config", "", "Path to config file (defaults are used when empty)")
	baseURL := flag.String("url", "", "Override base URL of the lapmaster web server")
	pagePath := flag.String("page", "", "Override page to display")
	plain := flag.Bool("plain", false, "Print the clock to stdout instead of running the board")
	debugLog := flag.String("debug", "", "Write the board's log to this file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *baseURL != "" {
		cfg.Server.URL = *baseURL
	}
	if *pagePath != "" {
		cfg.Server.Page = *pagePath
	}

	httpClient := client.NewHTTPClient(cfg.Server.URL, cfg.Server.Timeout)
	opts := livepage.Options{
		PollInterval:  cfg.Helper.PollInterval,
		ClockInterval: cfg.Helper.ClockInterval,
	}

	if *plain {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		if err := runPlain(ctx, httpClient, cfg.Server.Page, opts, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
			log.Fatalf("Error: %v", err)
		}
		return
	}

	// The alt screen owns the terminal, so the log goes to a file or nowhere.
	if *debugLog != "" {
		f, err := tea.LogToFile(*debugLog, "board")
		if err != nil {
			log.Fatalf("Failed to open debug log: %v", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	m := app.New(httpClient, app.Options{PagePath: cfg.Server.Page, Helper: opts})
	p := tea.NewProgram(m, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runPlain keeps one page live without a terminal UI. Each stamp change
// drops the helper and starts over from a freshly fetched page.
func runPlain(ctx context.Context, c *client.HTTPClient, path string, opts livepage.Options, w io.Writer) error {
	for {
		doc, err := c.FetchPage(ctx, path)
		if err != nil {
			return err
		}
		h := livepage.New(echoDocument{Document: doc, w: w}, c, opts)
		err = h.Run(ctx)
		if errors.Is(err, livepage.ErrReload) {
			log.Printf("versionstamp now %q, reloading %s", h.State().Stamp, path)
			continue
		}
		return err
	}
}

// echoDocument prints every clock value it stores.
type echoDocument struct {
	livepage.Document
	w io.Writer
}

func (d echoDocument) SetClock(text string) error {
	if err := d.Document.SetClock(text); err != nil {
		return err
	}
	_, err := fmt.Fprintln(d.w, text)
	return err
}
