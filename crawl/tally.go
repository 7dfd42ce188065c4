package crawl

import (
	"context"

	"github.com/fwojciec/pttcrawl"
)

// TallyRange counts the articles listed on index pages start through end
// by posting date. Announcements are left out. Articles that cannot be
// fetched, parsed, or dated are reported and skipped.
func (c *Crawler) TallyRange(ctx context.Context, board string, start, end int, progress ProgressFunc) (pttcrawl.DateTally, *RangeResult, error) {
	tally := pttcrawl.NewDateTally()
	result := &RangeResult{}

	err := c.walk(ctx, board, start, end, result, progress, func(page int, entry pttcrawl.IndexEntry) error {
		link := pttcrawl.ArticleURL(c.baseURL(), board, entry.ArticleID)
		event := ProgressEvent{Page: page, ArticleID: entry.ArticleID, URL: link}

		html, err := c.fetch(ctx, link)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			result.Invalid++
			event.Type, event.Error = ProgressInvalid, err
			report(progress, event)
			return nil
		}

		a, err := c.Parser.Parse(html, pttcrawl.Source{URL: link, Board: board, ArticleID: entry.ArticleID})
		if err != nil {
			result.Failed++
			event.Type, event.Error = ProgressFailed, err
			report(progress, event)
			return nil
		}

		if a.IsAnnouncement() {
			result.Announcements++
			event.Type = ProgressAnnouncement
			report(progress, event)
			return nil
		}

		posted, err := pttcrawl.ParseArticleDate(a.Date)
		if err != nil {
			result.Failed++
			event.Type, event.Error = ProgressFailed, err
			report(progress, event)
			return nil
		}

		tally.Add(posted)
		result.Saved++
		event.Type = ProgressSaved
		report(progress, event)
		return nil
	})

	return tally, result, err
}
