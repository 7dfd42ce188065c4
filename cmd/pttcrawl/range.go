package main

import (
	"fmt"

	"github.com/fwojciec/pttcrawl"
	"github.com/fwojciec/pttcrawl/bloom"
	"github.com/fwojciec/pttcrawl/crawl"
	"github.com/fwojciec/pttcrawl/fs"
)

// Run executes the range command.
func (c *RangeCmd) Run(deps *Dependencies) error {
	start, end := deps.Crawler.ResolveRange(deps.Ctx, c.Board, c.Start, c.End)
	if start < 1 || end < start {
		err := pttcrawl.Errorf(pttcrawl.EINVALID, "invalid page range %d-%d", start, end)
		fmt.Fprintf(deps.Stderr, "error: %s\n", pttcrawl.ErrorMessage(err))
		return err
	}

	name := fs.RangeFileName(c.Board, start, end)
	store := deps.RangeStore(name)
	deps.Crawler.Seen = bloom.NewRangeFilter(end - start + 1)

	result, err := deps.Crawler.ParseRange(deps.Ctx, c.Board, start, end, pttcrawl.AuthorFilter(c.Author), store, progressPrinter(deps))
	if err != nil {
		_ = store.Abort()
		fmt.Fprintf(deps.Stderr, "error crawling: %v\n", err)
		return err
	}

	if err := store.Commit(); err != nil {
		fmt.Fprintf(deps.Stderr, "error committing: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Saved %d articles, %d invalid, %d skipped to %s\n",
		result.Saved, result.Invalid, result.Failed+result.Filtered+result.Duplicates, deps.Target(name))
	return nil
}

// progressPrinter reports crawl progress the same way for every command.
func progressPrinter(deps *Dependencies) crawl.ProgressFunc {
	return func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressPage:
			fmt.Fprintf(deps.Stdout, "Processing index: %d\n", event.Page)
		case crawl.ProgressPageFailed, crawl.ProgressInvalid:
			fmt.Fprintf(deps.Stderr, "invalid url: %s\n", event.URL)
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "skip %s: %v\n", event.ArticleID, event.Error)
		case crawl.ProgressDuplicate:
			fmt.Fprintf(deps.Stderr, "skip %s: already seen\n", event.ArticleID)
		}
	}
}
