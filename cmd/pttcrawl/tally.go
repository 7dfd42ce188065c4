package main

import (
	"fmt"

	"github.com/fwojciec/pttcrawl"
	"github.com/fwojciec/pttcrawl/bloom"
)

// Run executes the tally command.
func (c *TallyCmd) Run(deps *Dependencies) error {
	start, end := deps.Crawler.ResolveRange(deps.Ctx, c.Board, c.Start, c.End)
	if start < 1 || end < start {
		err := pttcrawl.Errorf(pttcrawl.EINVALID, "invalid page range %d-%d", start, end)
		fmt.Fprintf(deps.Stderr, "error: %s\n", pttcrawl.ErrorMessage(err))
		return err
	}

	deps.Crawler.Seen = bloom.NewRangeFilter(end - start + 1)

	tally, result, err := deps.Crawler.TallyRange(deps.Ctx, c.Board, start, end, progressPrinter(deps))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error crawling: %v\n", err)
		return err
	}

	entityID := c.EntityID
	if entityID == 0 {
		entityID = deps.EntityID
	}

	if err := deps.Tallies.UpsertTally(deps.Ctx, entityID, tally, deps.Now()); err != nil {
		fmt.Fprintf(deps.Stderr, "error storing counts: %v\n", err)
		return err
	}

	for _, date := range tally.Dates() {
		fmt.Fprintf(deps.Stdout, "Inserted data for %s: %d articles\n", date, tally[date])
	}
	fmt.Fprintf(deps.Stdout, "Counted %d articles on %d dates (%d announcements, %d skipped)\n",
		result.Saved, len(tally), result.Announcements, result.Failed+result.Invalid+result.Duplicates)
	return nil
}
