package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/lapmaster/board/internal/page"
)

// StampPath is the endpoint serving the current version stamp as plain text.
const StampPath = "/versionstamp"

// HTTPClient fetches pages and version stamps from the lapmaster web server.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPClient creates a client targeting the given base URL (e.g. "http://127.0.0.1:8000").
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// FetchStamp fetches /versionstamp. The whole body is the stamp.
func (c *HTTPClient) FetchStamp(ctx context.Context) (string, error) {
	body, err := c.get(ctx, StampPath)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// FetchPage fetches and parses a page.
func (c *HTTPClient) FetchPage(ctx context.Context, path string) (*page.Document, error) {
	body, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}
	return page.Parse(bytes.NewReader(body))
}

func (c *HTTPClient) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", path, err)
	}
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("GET %s: %d %s", path, resp.StatusCode, string(body))
	}
	return body, nil
}
