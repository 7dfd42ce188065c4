package main

import (
	"fmt"

	"github.com/fwojciec/pttcrawl"
	"github.com/fwojciec/pttcrawl/fs"
)

// Run executes the article command.
func (c *ArticleCmd) Run(deps *Dependencies) error {
	rec, err := deps.Crawler.ParseArticle(deps.Ctx, c.Board, c.ArticleID, pttcrawl.AuthorFilter(c.Author))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pttcrawl.ErrorMessage(err))
		return err
	}

	if rec == nil {
		fmt.Fprintf(deps.Stdout, "skip %s: author does not match\n", c.ArticleID)
		return nil
	}
	if rec.IsError() {
		fmt.Fprintf(deps.Stderr, "invalid url: %s\n", pttcrawl.ArticleURL(deps.Crawler.BaseURL, c.Board, c.ArticleID))
	}

	name := fs.ArticleFileName(c.Board, c.ArticleID)
	store := deps.ArticleStore(name)
	if err := store.Save(deps.Ctx, rec); err != nil {
		_ = store.Abort()
		fmt.Fprintf(deps.Stderr, "error saving %s: %v\n", c.ArticleID, err)
		return err
	}
	if err := store.Commit(); err != nil {
		fmt.Fprintf(deps.Stderr, "error committing: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Saved %s to %s\n", c.ArticleID, deps.Target(name))
	return nil
}
