package pttcrawl

import (
	"context"
	"strconv"
	"strings"
)

// DefaultBaseURL is the web front end of PTT.
const DefaultBaseURL = "https://www.ptt.cc"

// BoardIndexURL returns the URL of a board's newest index page.
func BoardIndexURL(baseURL, board string) string {
	return strings.TrimSuffix(baseURL, "/") + "/bbs/" + board + "/index.html"
}

// IndexURL returns the URL of a numbered board index page.
func IndexURL(baseURL, board string, page int) string {
	return strings.TrimSuffix(baseURL, "/") + "/bbs/" + board + "/index" + strconv.Itoa(page) + ".html"
}

// ArticleURL returns the URL of an article page.
func ArticleURL(baseURL, board, articleID string) string {
	return strings.TrimSuffix(baseURL, "/") + "/bbs/" + board + "/" + articleID + ".html"
}

// IndexEntry is one article link listed on a board index page.
type IndexEntry struct {
	ArticleID string
	Href      string
	Title     string
}

// IndexParser reads board index pages.
type IndexParser interface {
	// ParseIndex returns the article links of an index page in document
	// order. Deleted articles, which carry no link, are left out.
	ParseIndex(html string) ([]IndexEntry, error)

	// LastPage returns the number of the newest index page given the
	// board's index.html, or 1 when it cannot be determined.
	LastPage(html string) int
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}

// SeenSet remembers article IDs processed during one run.
type SeenSet interface {
	Add(id string)
	Test(id string) bool
}
