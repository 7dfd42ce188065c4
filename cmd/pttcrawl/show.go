package main

import (
	"fmt"

	"github.com/fwojciec/pttcrawl"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	a, err := deps.Articles.FindArticleByID(deps.Ctx, c.ArticleID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pttcrawl.ErrorMessage(err))
		return err
	}

	data, err := pttcrawl.EncodeRecord(pttcrawl.NewRecord(a.Article))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error encoding %s: %v\n", c.ArticleID, err)
		return err
	}

	fmt.Fprintln(deps.Stdout, string(data))
	return nil
}
