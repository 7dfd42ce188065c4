package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pttcrawl"
)

// Ensure LoggingTallyStore implements pttcrawl.TallyStore.
var _ pttcrawl.TallyStore = (*LoggingTallyStore)(nil)

// LoggingTallyStore wraps a TallyStore with debug logging.
type LoggingTallyStore struct {
	next   pttcrawl.TallyStore
	logger *slog.Logger
}

// NewLoggingTallyStore creates a new LoggingTallyStore.
func NewLoggingTallyStore(next pttcrawl.TallyStore, logger *slog.Logger) *LoggingTallyStore {
	return &LoggingTallyStore{next: next, logger: logger}
}

// UpsertTally delegates to the wrapped store and logs the write.
func (s *LoggingTallyStore) UpsertTally(ctx context.Context, entityID int, tally pttcrawl.DateTally, at time.Time) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("tally upsert",
			"entity_id", entityID,
			"dates", len(tally),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.UpsertTally(ctx, entityID, tally, at)
}

// FindDailyCounts delegates to the wrapped store and logs the read.
func (s *LoggingTallyStore) FindDailyCounts(ctx context.Context, entityID int) (counts []*pttcrawl.DailyCount, err error) {
	defer func(begin time.Time) {
		s.logger.Info("tally find",
			"entity_id", entityID,
			"dates", len(counts),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindDailyCounts(ctx, entityID)
}
