package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pttcrawl"
)

// Ensure LoggingArticleService implements pttcrawl.ArticleService.
var _ pttcrawl.ArticleService = (*LoggingArticleService)(nil)

// LoggingArticleService wraps an ArticleService with logging.
type LoggingArticleService struct {
	next   pttcrawl.ArticleService
	logger *slog.Logger
}

// NewLoggingArticleService creates a new LoggingArticleService.
func NewLoggingArticleService(next pttcrawl.ArticleService, logger *slog.Logger) *LoggingArticleService {
	return &LoggingArticleService{next: next, logger: logger}
}

// FindArticleByID delegates to the wrapped service and logs the lookup.
func (s *LoggingArticleService) FindArticleByID(ctx context.Context, articleID string) (a *pttcrawl.StoredArticle, err error) {
	defer func(begin time.Time) {
		s.logger.Info("article find",
			"article_id", articleID,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindArticleByID(ctx, articleID)
}

// FindArticles delegates to the wrapped service and logs the query.
func (s *LoggingArticleService) FindArticles(ctx context.Context, filter pttcrawl.ArticleFilter) (articles []*pttcrawl.StoredArticle, err error) {
	defer func(begin time.Time) {
		s.logger.Info("article list",
			"count", len(articles),
			"limit", filter.Limit,
			"offset", filter.Offset,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindArticles(ctx, filter)
}
