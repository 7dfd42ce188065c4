package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/pttcrawl"
)

// Compile-time interface verification.
var _ pttcrawl.TallyStore = (*TallyService)(nil)

// TallyService implements pttcrawl.TallyStore using SQLite.
type TallyService struct {
	db *DB
}

// NewTallyService creates a new TallyService.
func NewTallyService(db *DB) *TallyService {
	return &TallyService{db: db}
}

// UpsertTally writes one row per date in a single transaction. A stored
// value is only replaced by a larger one.
func (s *TallyService) UpsertTally(ctx context.Context, entityID int, tally pttcrawl.DateTally, at time.Time) error {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stamp := at.UTC().Format(time.RFC3339)
	for _, date := range tally.Dates() {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO daily_scalar_values (record_date, security_id, value, last_updated_at)
			VALUES (?, ?, ?, ?)
			ON CONFLICT (record_date, security_id) DO UPDATE SET
				value = excluded.value,
				last_updated_at = excluded.last_updated_at
			WHERE excluded.value > daily_scalar_values.value
		`, date, entityID, tally[date], stamp)
		if err != nil {
			return fmt.Errorf("failed to upsert count for %s: %w", date, err)
		}
	}

	return tx.Commit()
}

// FindDailyCounts returns the stored rows for an entity ordered by date.
func (s *TallyService) FindDailyCounts(ctx context.Context, entityID int) ([]*pttcrawl.DailyCount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT record_date, security_id, value, last_updated_at
		FROM daily_scalar_values
		WHERE security_id = ?
		ORDER BY record_date ASC
	`, entityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []*pttcrawl.DailyCount
	for rows.Next() {
		var c pttcrawl.DailyCount
		var updatedAt string
		if err := rows.Scan(&c.Date, &c.EntityID, &c.Value, &updatedAt); err != nil {
			return nil, err
		}
		if c.UpdatedAt, err = parseRFC3339(updatedAt, "last_updated_at"); err != nil {
			return nil, err
		}
		counts = append(counts, &c)
	}
	return counts, rows.Err()
}
