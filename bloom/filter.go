// Package bloom provides article deduplication using Bloom filters.
package bloom

import (
	"github.com/bits-and-blooms/bloom/v3"
	"github.com/fwojciec/pttcrawl"
)

// Ensure Filter implements pttcrawl.SeenSet at compile time.
var _ pttcrawl.SeenSet = (*Filter)(nil)

// Default sizing for one run: about 20 articles per index page.
const (
	DefaultArticlesPerPage = 20
	DefaultFalsePositive   = 0.0001
)

// Filter wraps a Bloom filter for article ID deduplication.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected items
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// NewRangeFilter creates a filter sized for a run over pages index pages.
func NewRangeFilter(pages int) *Filter {
	if pages < 1 {
		pages = 1
	}
	return NewFilter(uint(pages*DefaultArticlesPerPage), DefaultFalsePositive)
}

// Add adds an article ID to the filter.
func (f *Filter) Add(id string) {
	f.f.AddString(id)
}

// Test returns true if the article ID might be in the filter.
// False positives are possible; false negatives are not.
func (f *Filter) Test(id string) bool {
	return f.f.TestString(id)
}
