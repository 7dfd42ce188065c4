package pttcrawl

import (
	"context"
	"strings"
	"time"
)

// NoOriginIP is stored in Article.OriginIP when the origin station line is
// missing or carries no address.
const NoOriginIP = "none"

// Tag glyphs used by reaction entries.
const (
	TagPush = "推"
	TagBoo  = "噓"
)

// AnnouncementMarker marks board announcements in article titles.
const AnnouncementMarker = "公告"

// DateLayout is the layout of the date field in an article's metadata block.
const DateLayout = "Mon Jan _2 15:04:05 2006"

// Article represents one parsed board article.
type Article struct {
	URL       string          `json:"url"`
	Board     string          `json:"board"`
	ArticleID string          `json:"article_id"`
	Title     string          `json:"title"`
	Author    string          `json:"author"`
	Date      string          `json:"date"`
	Content   string          `json:"content"`
	OriginIP  string          `json:"origin_ip"`
	Reactions []Reaction      `json:"reactions"`
	Summary   ReactionSummary `json:"reaction_summary"`
}

// Validate returns an error if the article contains invalid fields.
func (a *Article) Validate() error {
	if a.ArticleID == "" {
		return Errorf(EINVALID, "article ID required")
	}
	if a.Board == "" {
		return Errorf(EINVALID, "article board required")
	}
	return nil
}

// IsAnnouncement reports whether the article is a board announcement.
func (a *Article) IsAnnouncement() bool {
	return IsAnnouncement(a.Title)
}

// IsAnnouncement reports whether a title carries the announcement marker.
// Announcements are left out of per-day article counts.
func IsAnnouncement(title string) bool {
	return strings.Contains(title, AnnouncementMarker)
}

// ParseArticleDate parses the raw date field of a metadata block.
func ParseArticleDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, Errorf(EINVALID, "invalid article date %q", s)
	}
	return t, nil
}

// ReactionKind classifies a reaction by its tag glyph.
type ReactionKind string

// ReactionKind constants.
const (
	ReactionPositive ReactionKind = "positive"
	ReactionNegative ReactionKind = "negative"
	ReactionNeutral  ReactionKind = "neutral"
)

// ClassifyTag maps a tag glyph to its reaction kind.
// Anything other than the push and boo glyphs is neutral.
func ClassifyTag(tag string) ReactionKind {
	switch tag {
	case TagPush:
		return ReactionPositive
	case TagBoo:
		return ReactionNegative
	default:
		return ReactionNeutral
	}
}

// Reaction is one reader response attached to an article.
type Reaction struct {
	Kind      ReactionKind `json:"kind"`
	Tag       string       `json:"tag"`
	UserID    string       `json:"user_id"`
	Comment   string       `json:"comment"`
	Timestamp string       `json:"timestamp"`
}

// ReactionSummary holds derived reaction counts.
type ReactionSummary struct {
	Total   int `json:"total"`
	Push    int `json:"push"`
	Boo     int `json:"boo"`
	Neutral int `json:"neutral"`

	// Count is the net score: Push minus Boo.
	Count int `json:"count"`
}

// Summarize counts reactions by kind.
func Summarize(reactions []Reaction) ReactionSummary {
	var s ReactionSummary
	for _, r := range reactions {
		switch r.Kind {
		case ReactionPositive:
			s.Push++
		case ReactionNegative:
			s.Boo++
		default:
			s.Neutral++
		}
	}
	s.Total = s.Push + s.Boo + s.Neutral
	s.Count = s.Push - s.Boo
	return s
}

// AuthorFilter restricts records to authors containing at least one term.
// An empty filter matches every author.
type AuthorFilter []string

// Match returns true if the author passes the filter.
func (f AuthorFilter) Match(author string) bool {
	if len(f) == 0 {
		return true
	}
	author = strings.ToLower(author)
	for _, term := range f {
		if strings.Contains(author, strings.ToLower(term)) {
			return true
		}
	}
	return false
}

// Source identifies the page an article was parsed from.
type Source struct {
	URL       string
	Board     string
	ArticleID string
}

// ArticleParser extracts an article from a fetched article page.
type ArticleParser interface {
	// Parse reads metadata, reactions, and body text from the HTML.
	// Returns EINVALID if the page has no article content.
	Parse(html string, src Source) (*Article, error)
}

// StoredArticle is an article read back from storage.
type StoredArticle struct {
	*Article
	ID          string
	ContentHash string
	FetchedAt   time.Time
}

// ArticleService reads stored articles.
type ArticleService interface {
	// FindArticleByID returns ENOTFOUND if the article was never stored.
	FindArticleByID(ctx context.Context, articleID string) (*StoredArticle, error)

	// FindArticles returns articles matching the filter, most recently
	// fetched first.
	FindArticles(ctx context.Context, filter ArticleFilter) ([]*StoredArticle, error)
}

// ArticleFilter represents a filter for stored articles.
type ArticleFilter struct {
	Board *string

	// Author matches case-insensitively anywhere in the author field.
	Author *string

	Offset int
	Limit  int
}
