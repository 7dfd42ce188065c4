// Package crawl provides board crawling orchestration.
// It coordinates index page discovery, fetching, article parsing, and
// storage of article records.
package crawl

import (
	"context"
	"fmt"
	"net/url"

	"github.com/fwojciec/pttcrawl"
)

// Crawler walks board index pages and parses the articles they list.
// It processes one page at a time; the only shared state is the optional
// SeenSet.
type Crawler struct {
	BaseURL     string
	Fetcher     pttcrawl.Fetcher
	Parser      pttcrawl.ArticleParser
	Index       pttcrawl.IndexParser
	RateLimiter pttcrawl.DomainLimiter

	// Seen, if set, drops articles already processed during the run. Index
	// pages shift while new posts arrive, so one article can be listed on
	// two consecutive pages. A hit is only trusted when the ID was also
	// listed on the current or previous page; other hits are treated as
	// false positives and the article is processed.
	Seen pttcrawl.SeenSet
}

// RangeResult holds the outcome of a page-range run.
type RangeResult struct {
	Pages         int
	FailedPages   int
	Saved         int
	Invalid       int
	Filtered      int
	Failed        int
	Duplicates    int
	Announcements int

	// FalseHits counts Seen hits that no nearby page confirmed.
	FalseHits int
}

// ProgressEvent reports progress during a page-range run.
type ProgressEvent struct {
	Type      ProgressType
	Page      int
	URL       string
	ArticleID string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressPage ProgressType = iota
	ProgressPageFailed
	ProgressSaved
	ProgressInvalid
	ProgressFiltered
	ProgressFailed
	ProgressDuplicate
	ProgressAnnouncement
)

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

func (c *Crawler) baseURL() string {
	if c.BaseURL == "" {
		return pttcrawl.DefaultBaseURL
	}
	return c.BaseURL
}

// ParseArticle fetches and parses one article.
//
// A page that cannot be fetched yields the invalid url record. An article
// rejected by the author filter yields a nil record and a nil error.
// Parse failures are returned as errors.
func (c *Crawler) ParseArticle(ctx context.Context, board, articleID string, filter pttcrawl.AuthorFilter) (*pttcrawl.Record, error) {
	link := pttcrawl.ArticleURL(c.baseURL(), board, articleID)

	html, err := c.fetch(ctx, link)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return pttcrawl.InvalidURLRecord(), nil
	}

	return c.Assemble(html, pttcrawl.Source{URL: link, Board: board, ArticleID: articleID}, filter)
}

// Assemble parses a fetched article page and applies the author filter.
func (c *Crawler) Assemble(html string, src pttcrawl.Source, filter pttcrawl.AuthorFilter) (*pttcrawl.Record, error) {
	a, err := c.Parser.Parse(html, src)
	if err != nil {
		return nil, err
	}
	if !filter.Match(a.Author) {
		return nil, nil
	}
	return pttcrawl.NewRecord(a), nil
}

// LastPage returns the number of the board's newest index page.
// It falls back to 1 when the board index cannot be fetched.
func (c *Crawler) LastPage(ctx context.Context, board string) int {
	html, err := c.fetch(ctx, pttcrawl.BoardIndexURL(c.baseURL(), board))
	if err != nil {
		return 1
	}
	return c.Index.LastPage(html)
}

// ResolveRange turns user-supplied page bounds into absolute page numbers.
// A negative start counts back from the newest page; an end of -1 means the
// newest page.
func (c *Crawler) ResolveRange(ctx context.Context, board string, start, end int) (int, int) {
	if start >= 0 && end != -1 {
		return start, end
	}
	last := c.LastPage(ctx, board)
	if start < 0 {
		start = last + start
	}
	if end == -1 {
		end = last
	}
	return start, end
}

// ParseRange parses every article listed on index pages start through end
// and saves the resulting records. Failed pages and articles are reported
// and skipped. The caller commits or aborts the store.
func (c *Crawler) ParseRange(ctx context.Context, board string, start, end int, filter pttcrawl.AuthorFilter, store pttcrawl.RecordStore, progress ProgressFunc) (*RangeResult, error) {
	result := &RangeResult{}
	err := c.walk(ctx, board, start, end, result, progress, func(page int, entry pttcrawl.IndexEntry) error {
		event := ProgressEvent{Page: page, ArticleID: entry.ArticleID, URL: pttcrawl.ArticleURL(c.baseURL(), board, entry.ArticleID)}

		rec, err := c.ParseArticle(ctx, board, entry.ArticleID, filter)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			result.Failed++
			event.Type, event.Error = ProgressFailed, err
			report(progress, event)
			return nil
		}
		if rec == nil {
			result.Filtered++
			event.Type = ProgressFiltered
			report(progress, event)
			return nil
		}

		if err := store.Save(ctx, rec); err != nil {
			return fmt.Errorf("save %s: %w", entry.ArticleID, err)
		}

		if rec.IsError() {
			result.Invalid++
			event.Type = ProgressInvalid
		} else {
			result.Saved++
			event.Type = ProgressSaved
		}
		report(progress, event)
		return nil
	})
	return result, err
}

// walk fetches index pages start through end and calls fn for every listed
// article not seen before. Only errors returned by fn or a canceled context
// stop the walk.
func (c *Crawler) walk(ctx context.Context, board string, start, end int, result *RangeResult, progress ProgressFunc, fn func(page int, entry pttcrawl.IndexEntry) error) error {
	var prev map[string]struct{}
	for page := start; page <= end; page++ {
		link := pttcrawl.IndexURL(c.baseURL(), board, page)
		report(progress, ProgressEvent{Type: ProgressPage, Page: page, URL: link})

		entries, err := c.fetchIndex(ctx, link)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			result.FailedPages++
			report(progress, ProgressEvent{Type: ProgressPageFailed, Page: page, URL: link, Error: err})
			continue
		}
		result.Pages++

		cur := make(map[string]struct{}, len(entries))
		for _, entry := range entries {
			if c.Seen != nil {
				if c.Seen.Test(entry.ArticleID) {
					if listed(entry.ArticleID, prev, cur) {
						result.Duplicates++
						report(progress, ProgressEvent{Type: ProgressDuplicate, Page: page, ArticleID: entry.ArticleID})
						continue
					}
					result.FalseHits++
				} else {
					c.Seen.Add(entry.ArticleID)
				}
			}
			cur[entry.ArticleID] = struct{}{}

			if err := fn(page, entry); err != nil {
				return err
			}
		}
		prev = cur
	}
	return nil
}

func listed(id string, pages ...map[string]struct{}) bool {
	for _, ids := range pages {
		if _, ok := ids[id]; ok {
			return true
		}
	}
	return false
}

func (c *Crawler) fetchIndex(ctx context.Context, link string) ([]pttcrawl.IndexEntry, error) {
	html, err := c.fetch(ctx, link)
	if err != nil {
		return nil, err
	}
	return c.Index.ParseIndex(html)
}

// fetch waits for the rate limiter and retrieves a page.
func (c *Crawler) fetch(ctx context.Context, link string) (string, error) {
	if c.RateLimiter != nil {
		u, err := url.Parse(link)
		if err != nil {
			return "", pttcrawl.Errorf(pttcrawl.EINVALID, "invalid URL %q: %v", link, err)
		}
		if err := c.RateLimiter.Wait(ctx, u.Host); err != nil {
			return "", err
		}
	}
	return c.Fetcher.Fetch(ctx, link)
}

func report(progress ProgressFunc, event ProgressEvent) {
	if progress != nil {
		progress(event)
	}
}
