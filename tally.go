package pttcrawl

import (
	"context"
	"slices"
	"time"
)

// TallyDateLayout is the key layout of a DateTally.
const TallyDateLayout = "2006-01-02"

// DefaultEntityID is the entity the per-day counts are stored under.
const DefaultEntityID = 6

// DateTally counts articles per calendar date (YYYY-MM-DD).
type DateTally map[string]int

// NewDateTally returns an empty tally.
func NewDateTally() DateTally {
	return make(DateTally)
}

// Inc increments the count for date, starting from zero.
func (t DateTally) Inc(date string) {
	t[date]++
}

// Add counts one article posted at tm.
func (t DateTally) Add(tm time.Time) {
	t.Inc(tm.Format(TallyDateLayout))
}

// Dates returns the tallied dates in ascending order.
func (t DateTally) Dates() []string {
	dates := make([]string, 0, len(t))
	for d := range t {
		dates = append(dates, d)
	}
	slices.Sort(dates)
	return dates
}

// TallyStore persists per-day article counts.
type TallyStore interface {
	// UpsertTally stores one row per date keyed by (date, entityID).
	// An existing row is only updated when the new count is larger;
	// updated rows are stamped with at.
	UpsertTally(ctx context.Context, entityID int, tally DateTally, at time.Time) error

	// FindDailyCounts returns the stored rows for an entity ordered by date.
	FindDailyCounts(ctx context.Context, entityID int) ([]*DailyCount, error)
}

// DailyCount is one stored per-day count.
type DailyCount struct {
	Date      string
	EntityID  int
	Value     int
	UpdatedAt time.Time
}
