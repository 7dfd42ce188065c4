package mock

import (
	"context"

	"github.com/fwojciec/pttcrawl"
)

var (
	_ pttcrawl.DomainLimiter = (*DomainLimiter)(nil)
	_ pttcrawl.SeenSet       = (*SeenSet)(nil)
)

// DomainLimiter is a mock implementation of pttcrawl.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}

// SeenSet is a mock implementation of pttcrawl.SeenSet.
type SeenSet struct {
	AddFn  func(id string)
	TestFn func(id string) bool
}

func (s *SeenSet) Add(id string) {
	s.AddFn(id)
}

func (s *SeenSet) Test(id string) bool {
	return s.TestFn(id)
}
