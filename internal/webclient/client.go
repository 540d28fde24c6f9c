// Package webclient provides the shared HTTP client used by all dataset
// adapters: fixed timeout, identifying User-Agent, bounded response reads.
package webclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	defaultTimeout = 30 * time.Second
	maxBodyBytes   = 10 * 1024 * 1024 // 10MB

	// Wikipedia asks API consumers to identify themselves.
	defaultUserAgent = "caia-datasets/1.0 (https://github.com/Caia-Tech/caia-datasets)"
)

// Client is a thin wrapper around http.Client with adapter-wide defaults.
type Client struct {
	http      *http.Client
	userAgent string
}

// New returns a client with the default timeout and User-Agent.
func New() *Client {
	return &Client{
		http:      &http.Client{Timeout: defaultTimeout},
		userAgent: defaultUserAgent,
	}
}

// NewWithTimeout returns a client with a custom timeout.
func NewWithTimeout(timeout time.Duration) *Client {
	c := New()
	c.http.Timeout = timeout
	return c
}

// Get issues a GET request and returns the response body and status code.
// Transport-level failures are returned as errors; non-2xx statuses are not,
// so callers can implement their own retry policy.
func (c *Client) Get(ctx context.Context, rawURL string, params url.Values) ([]byte, int, error) {
	if len(params) > 0 {
		rawURL = rawURL + "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read response: %w", err)
	}

	return body, resp.StatusCode, nil
}

// GetJSON issues a GET request and decodes a JSON response into v.
// A non-OK status is an error, matching APIs that signal failure by status.
func (c *Client) GetJSON(ctx context.Context, rawURL string, params url.Values, v interface{}) error {
	body, status, err := c.Get(ctx, rawURL, params)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("unexpected status code %d from %s", status, rawURL)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", rawURL, err)
	}
	return nil
}
