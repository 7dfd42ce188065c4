package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/pttcrawl"
)

var (
	_ pttcrawl.ArticleParser = (*LoggingArticleParser)(nil)
	_ pttcrawl.IndexParser   = (*LoggingIndexParser)(nil)
)

// LoggingArticleParser wraps an ArticleParser with debug logging.
type LoggingArticleParser struct {
	next   pttcrawl.ArticleParser
	logger *slog.Logger
}

// NewLoggingArticleParser creates a new LoggingArticleParser.
func NewLoggingArticleParser(next pttcrawl.ArticleParser, logger *slog.Logger) *LoggingArticleParser {
	return &LoggingArticleParser{next: next, logger: logger}
}

// Parse delegates to the wrapped parser and logs the result.
func (p *LoggingArticleParser) Parse(html string, src pttcrawl.Source) (a *pttcrawl.Article, err error) {
	defer func(begin time.Time) {
		var reactions int
		if a != nil {
			reactions = len(a.Reactions)
		}
		p.logger.Info("article parse",
			"article_id", src.ArticleID,
			"reactions", reactions,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.Parse(html, src)
}

// LoggingIndexParser wraps an IndexParser with debug logging.
type LoggingIndexParser struct {
	next   pttcrawl.IndexParser
	logger *slog.Logger
}

// NewLoggingIndexParser creates a new LoggingIndexParser.
func NewLoggingIndexParser(next pttcrawl.IndexParser, logger *slog.Logger) *LoggingIndexParser {
	return &LoggingIndexParser{next: next, logger: logger}
}

// ParseIndex delegates to the wrapped parser and logs the entry count.
func (p *LoggingIndexParser) ParseIndex(html string) (entries []pttcrawl.IndexEntry, err error) {
	defer func(begin time.Time) {
		p.logger.Info("index parse",
			"count", len(entries),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.ParseIndex(html)
}

// LastPage delegates to the wrapped parser and logs the page found.
func (p *LoggingIndexParser) LastPage(html string) int {
	page := p.next.LastPage(html)
	p.logger.Info("last page", "page", page)
	return page
}
