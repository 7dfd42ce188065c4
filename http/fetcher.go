// Package http provides an HTTP-based implementation of pttcrawl.Fetcher
// for PTT's web front end.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/pttcrawl"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = pttcrawl.DefaultTimeout

// AgeCheckCookie acknowledges the adult-content prompt that guards some boards.
var AgeCheckCookie = &http.Cookie{Name: "over18", Value: "1"}

// Ensure Fetcher implements pttcrawl.Fetcher at compile time.
var _ pttcrawl.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using HTTP requests.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (3s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the HTML content from the given URL.
// Non-200 responses return ENOTFOUND.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.AddCookie(AgeCheckCookie)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", pttcrawl.Errorf(pttcrawl.ENOTFOUND, "HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return string(body), nil
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
