package crawl_test

import (
	"context"
	"testing"

	"github.com/fwojciec/pttcrawl"
	"github.com/fwojciec/pttcrawl/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCrawler_TallyRange(t *testing.T) {
	t.Parallel()

	t.Run("counts articles per posting date", func(t *testing.T) {
		t.Parallel()

		c := &crawl.Crawler{
			BaseURL: testBase,
			Fetcher: pagesFetcher(map[string]string{
				indexURL(1):           "M.1.A.1,M.2.A.2,M.3.A.3",
				articleURL("M.1.A.1"): "a|one|Mon Jan  2 15:04:05 2023",
				articleURL("M.2.A.2"): "b|two|Mon Jan  2 23:59:00 2023",
				articleURL("M.3.A.3"): "c|three|Tue Jan  3 00:00:01 2023",
			}),
			Parser: authorParser(),
			Index:  listIndex(),
		}

		tally, result, err := c.TallyRange(context.Background(), "Gossiping", 1, 1, nil)

		require.NoError(t, err)
		assert.Equal(t, pttcrawl.DateTally{"2023-01-02": 2, "2023-01-03": 1}, tally)
		assert.Equal(t, 3, result.Saved)
	})

	t.Run("leaves out announcements", func(t *testing.T) {
		t.Parallel()

		c := &crawl.Crawler{
			BaseURL: testBase,
			Fetcher: pagesFetcher(map[string]string{
				indexURL(1):           "M.1.A.1,M.2.A.2",
				articleURL("M.1.A.1"): "a|[公告] 板規|Mon Jan  2 15:04:05 2023",
				articleURL("M.2.A.2"): "b|[問卦] 有沒有|Mon Jan  2 16:00:00 2023",
			}),
			Parser: authorParser(),
			Index:  listIndex(),
		}

		tally, result, err := c.TallyRange(context.Background(), "Gossiping", 1, 1, nil)

		require.NoError(t, err)
		assert.Equal(t, pttcrawl.DateTally{"2023-01-02": 1}, tally)
		assert.Equal(t, 1, result.Announcements)
	})

	t.Run("skips unreachable and undated articles", func(t *testing.T) {
		t.Parallel()

		var failed []string
		c := &crawl.Crawler{
			BaseURL: testBase,
			Fetcher: pagesFetcher(map[string]string{
				indexURL(1):           "M.1.A.1,M.2.A.2,M.404.A.1",
				articleURL("M.1.A.1"): "a|one|not a date",
				articleURL("M.2.A.2"): "b|two|Mon Jan  2 16:00:00 2023",
			}),
			Parser: authorParser(),
			Index:  listIndex(),
		}

		tally, result, err := c.TallyRange(context.Background(), "Gossiping", 1, 1, func(e crawl.ProgressEvent) {
			if e.Type == crawl.ProgressFailed || e.Type == crawl.ProgressInvalid {
				failed = append(failed, e.ArticleID)
			}
		})

		require.NoError(t, err)
		assert.Equal(t, pttcrawl.DateTally{"2023-01-02": 1}, tally)
		assert.Equal(t, 1, result.Failed)
		assert.Equal(t, 1, result.Invalid)
		assert.Equal(t, []string{"M.1.A.1", "M.404.A.1"}, failed)
	})

	t.Run("empty range yields empty tally", func(t *testing.T) {
		t.Parallel()

		c := &crawl.Crawler{
			BaseURL: testBase,
			Fetcher: pagesFetcher(nil),
			Parser:  authorParser(),
			Index:   listIndex(),
		}

		tally, result, err := c.TallyRange(context.Background(), "Gossiping", 3, 2, nil)

		require.NoError(t, err)
		assert.Empty(t, tally)
		assert.Zero(t, result.Pages)
	})
}
