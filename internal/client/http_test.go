package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestFetchStamp(t *testing.T) {
	var gotMethod, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/versionstamp" {
			http.NotFound(w, r)
			return
		}
		gotMethod = r.Method
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("abc123\n"))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL+"/", time.Second)
	got, err := c.FetchStamp(context.Background())
	if err != nil {
		t.Fatalf("FetchStamp: %v", err)
	}
	// Body is taken verbatim, trailing newline included.
	if got != "abc123\n" {
		t.Errorf("FetchStamp() = %q, want %q", got, "abc123\n")
	}
	if gotMethod != http.MethodGet {
		t.Errorf("method = %s, want GET", gotMethod)
	}
	if gotQuery != "" {
		t.Errorf("query = %q, want none", gotQuery)
	}
}

func TestFetchStampNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "deploying", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, time.Second)
	_, err := c.FetchStamp(context.Background())
	if err == nil {
		t.Fatal("expected error for 503")
	}
	if !strings.Contains(err.Error(), "503") {
		t.Errorf("error %q should mention the status", err)
	}
}

func TestFetchStampUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewHTTPClient(url, time.Second)
	if _, err := c.FetchStamp(context.Background()); err == nil {
		t.Fatal("expected error for closed server")
	}
}

func TestFetchStampTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	c := NewHTTPClient(srv.URL, 50*time.Millisecond)
	if _, err := c.FetchStamp(context.Background()); err == nil {
		t.Fatal("expected timeout error")
	}
}

func TestFetchPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/index.html" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`<html><head><title>Resultatlistor</title>` +
			`<meta id="versionstamp" versionstamp="v42"></head>` +
			`<body><table><tr><td id="clock"></td></tr></table></body></html>`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, time.Second)
	doc, err := c.FetchPage(context.Background(), "/index.html")
	if err != nil {
		t.Fatalf("FetchPage: %v", err)
	}
	stamp, err := doc.VersionStamp()
	if err != nil {
		t.Fatalf("VersionStamp: %v", err)
	}
	if stamp != "v42" {
		t.Errorf("stamp = %q, want %q", stamp, "v42")
	}
	if doc.Title() != "Resultatlistor" {
		t.Errorf("title = %q", doc.Title())
	}

	if _, err := c.FetchPage(context.Background(), "/missing.html"); err == nil {
		t.Error("expected error for 404 page")
	}
}
