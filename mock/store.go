package mock

import (
	"context"
	"time"

	"github.com/fwojciec/pttcrawl"
)

var (
	_ pttcrawl.RecordStore    = (*RecordStore)(nil)
	_ pttcrawl.TallyStore     = (*TallyStore)(nil)
	_ pttcrawl.ArticleService = (*ArticleService)(nil)
)

// RecordStore is a mock implementation of pttcrawl.RecordStore.
type RecordStore struct {
	SaveFn   func(ctx context.Context, r *pttcrawl.Record) error
	CommitFn func() error
	AbortFn  func() error
}

func (s *RecordStore) Save(ctx context.Context, r *pttcrawl.Record) error {
	return s.SaveFn(ctx, r)
}

func (s *RecordStore) Commit() error {
	return s.CommitFn()
}

func (s *RecordStore) Abort() error {
	return s.AbortFn()
}

// TallyStore is a mock implementation of pttcrawl.TallyStore.
type TallyStore struct {
	UpsertTallyFn     func(ctx context.Context, entityID int, tally pttcrawl.DateTally, at time.Time) error
	FindDailyCountsFn func(ctx context.Context, entityID int) ([]*pttcrawl.DailyCount, error)
}

func (s *TallyStore) UpsertTally(ctx context.Context, entityID int, tally pttcrawl.DateTally, at time.Time) error {
	return s.UpsertTallyFn(ctx, entityID, tally, at)
}

func (s *TallyStore) FindDailyCounts(ctx context.Context, entityID int) ([]*pttcrawl.DailyCount, error) {
	return s.FindDailyCountsFn(ctx, entityID)
}

// ArticleService is a mock implementation of pttcrawl.ArticleService.
type ArticleService struct {
	FindArticleByIDFn func(ctx context.Context, articleID string) (*pttcrawl.StoredArticle, error)
	FindArticlesFn    func(ctx context.Context, filter pttcrawl.ArticleFilter) ([]*pttcrawl.StoredArticle, error)
}

func (s *ArticleService) FindArticleByID(ctx context.Context, articleID string) (*pttcrawl.StoredArticle, error) {
	return s.FindArticleByIDFn(ctx, articleID)
}

func (s *ArticleService) FindArticles(ctx context.Context, filter pttcrawl.ArticleFilter) ([]*pttcrawl.StoredArticle, error) {
	return s.FindArticlesFn(ctx, filter)
}
