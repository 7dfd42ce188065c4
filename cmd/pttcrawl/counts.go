package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/pttcrawl"
)

// Run executes the counts command.
func (c *CountsCmd) Run(deps *Dependencies) error {
	entityID := c.EntityID
	if entityID == 0 {
		entityID = deps.EntityID
	}

	counts, err := deps.Tallies.FindDailyCounts(deps.Ctx, entityID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pttcrawl.ErrorMessage(err))
		return err
	}

	if len(counts) == 0 {
		fmt.Fprintf(deps.Stdout, "No counts stored for entity %d. Use 'pttcrawl tally' to store some.\n", entityID)
		return nil
	}

	for _, dc := range counts {
		fmt.Fprintf(deps.Stdout, "%s  %d  %s\n", dc.Date, dc.Value, dc.UpdatedAt.UTC().Format(time.RFC3339))
	}
	return nil
}
