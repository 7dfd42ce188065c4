package main

import (
	"fmt"

	"github.com/fwojciec/pttcrawl"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := pttcrawl.ArticleFilter{Limit: c.Limit, Offset: c.Offset}
	if c.Board != "" {
		filter.Board = &c.Board
	}
	if c.Author != "" {
		filter.Author = &c.Author
	}

	articles, err := deps.Articles.FindArticles(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pttcrawl.ErrorMessage(err))
		return err
	}

	if len(articles) == 0 {
		fmt.Fprintln(deps.Stdout, "No articles found. Use 'pttcrawl range --db' to store some.")
		return nil
	}

	for _, a := range articles {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %s  %s\n", a.ArticleID, a.Board, a.Date, a.Author, a.Title)
	}
	return nil
}
