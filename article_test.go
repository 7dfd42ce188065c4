package pttcrawl_test

import (
	"testing"
	"time"

	"github.com/fwojciec/pttcrawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyTag(t *testing.T) {
	t.Parallel()

	assert.Equal(t, pttcrawl.ReactionPositive, pttcrawl.ClassifyTag("推"))
	assert.Equal(t, pttcrawl.ReactionNegative, pttcrawl.ClassifyTag("噓"))
	assert.Equal(t, pttcrawl.ReactionNeutral, pttcrawl.ClassifyTag("→"))
	assert.Equal(t, pttcrawl.ReactionNeutral, pttcrawl.ClassifyTag(""))
	assert.Equal(t, pttcrawl.ReactionNeutral, pttcrawl.ClassifyTag("推 "))
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	t.Run("counts each kind and net score", func(t *testing.T) {
		t.Parallel()

		reactions := []pttcrawl.Reaction{
			{Kind: pttcrawl.ReactionPositive},
			{Kind: pttcrawl.ReactionPositive},
			{Kind: pttcrawl.ReactionNegative},
			{Kind: pttcrawl.ReactionNeutral},
			{Kind: pttcrawl.ReactionPositive},
		}

		s := pttcrawl.Summarize(reactions)

		assert.Equal(t, pttcrawl.ReactionSummary{Total: 5, Push: 3, Boo: 1, Neutral: 1, Count: 2}, s)
	})

	t.Run("net score can be negative", func(t *testing.T) {
		t.Parallel()

		s := pttcrawl.Summarize([]pttcrawl.Reaction{
			{Kind: pttcrawl.ReactionNegative},
			{Kind: pttcrawl.ReactionNegative},
		})

		assert.Equal(t, -2, s.Count)
		assert.Equal(t, 2, s.Total)
	})

	t.Run("empty input yields zero summary", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, pttcrawl.ReactionSummary{}, pttcrawl.Summarize(nil))
	})

	t.Run("invariants hold for every mix of tags", func(t *testing.T) {
		t.Parallel()

		tags := []string{"推", "噓", "→"}
		for n := 0; n < 81; n++ {
			var reactions []pttcrawl.Reaction
			for i, v := 0, n; i < 4; i, v = i+1, v/3 {
				tag := tags[v%3]
				reactions = append(reactions, pttcrawl.Reaction{Tag: tag, Kind: pttcrawl.ClassifyTag(tag)})
			}

			s := pttcrawl.Summarize(reactions)

			assert.Equal(t, len(reactions), s.Total)
			assert.Equal(t, s.Push-s.Boo, s.Count)
			assert.Equal(t, s.Total, s.Push+s.Boo+s.Neutral)
		}
	})
}

func TestAuthorFilter_Match(t *testing.T) {
	t.Parallel()

	t.Run("empty filter matches everyone", func(t *testing.T) {
		t.Parallel()

		assert.True(t, pttcrawl.AuthorFilter(nil).Match("alice (Alice W.)"))
		assert.True(t, pttcrawl.AuthorFilter{}.Match(""))
	})

	t.Run("matches case-insensitive substring", func(t *testing.T) {
		t.Parallel()

		f := pttcrawl.AuthorFilter{"ALICE"}

		assert.True(t, f.Match("alice (Alice W.)"))
	})

	t.Run("matches any term", func(t *testing.T) {
		t.Parallel()

		f := pttcrawl.AuthorFilter{"carol", "bob"}

		assert.True(t, f.Match("Bob (Robert)"))
		assert.False(t, f.Match("alice (Alice W.)"))
	})
}

func TestIsAnnouncement(t *testing.T) {
	t.Parallel()

	assert.True(t, pttcrawl.IsAnnouncement("[公告] 板規修正"))
	assert.False(t, pttcrawl.IsAnnouncement("[Question] foo"))

	a := &pttcrawl.Article{Title: "[公告] 水桶名單"}
	assert.True(t, a.IsAnnouncement())
}

func TestParseArticleDate(t *testing.T) {
	t.Parallel()

	t.Run("parses metadata date", func(t *testing.T) {
		t.Parallel()

		tm, err := pttcrawl.ParseArticleDate("Mon Jan 02 03:04:05 2023")

		require.NoError(t, err)
		assert.Equal(t, time.Date(2023, time.January, 2, 3, 4, 5, 0, time.UTC), tm)
	})

	t.Run("accepts space-padded day", func(t *testing.T) {
		t.Parallel()

		tm, err := pttcrawl.ParseArticleDate("Sun Mar  3 10:21:33 2024")

		require.NoError(t, err)
		assert.Equal(t, "2024-03-03", tm.Format(pttcrawl.TallyDateLayout))
	})

	t.Run("rejects other formats", func(t *testing.T) {
		t.Parallel()

		_, err := pttcrawl.ParseArticleDate("2023-01-02")

		require.Error(t, err)
		assert.Equal(t, pttcrawl.EINVALID, pttcrawl.ErrorCode(err))
	})
}

func TestArticle_Validate(t *testing.T) {
	t.Parallel()

	t.Run("requires article ID", func(t *testing.T) {
		t.Parallel()

		a := &pttcrawl.Article{Board: "Stock"}

		assert.Equal(t, pttcrawl.EINVALID, pttcrawl.ErrorCode(a.Validate()))
	})

	t.Run("requires board", func(t *testing.T) {
		t.Parallel()

		a := &pttcrawl.Article{ArticleID: "M.1672628645.A.1F2"}

		assert.Equal(t, pttcrawl.EINVALID, pttcrawl.ErrorCode(a.Validate()))
	})

	t.Run("accepts complete article", func(t *testing.T) {
		t.Parallel()

		a := &pttcrawl.Article{ArticleID: "M.1672628645.A.1F2", Board: "Stock"}

		assert.NoError(t, a.Validate())
	})
}
