package pttcrawl

import "context"

// Fetcher retrieves HTML from URLs.
type Fetcher interface {
	// Fetch returns the body of the page at url.
	// Returns ENOTFOUND if the server answers with a non-success status.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}
