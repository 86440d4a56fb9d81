package resilience

import (
	"context"

	"github.com/clarionvoice/clarion/internal/history"
	"github.com/clarionvoice/clarion/internal/scoring"
)

// StoreFallback wraps a primary [history.Store] with fallbacks behind
// per-backend circuit breakers. A typical setup uses a PostgreSQL store as
// primary and a local file store as fallback, so session results survive a
// database outage.
type StoreFallback struct {
	group *FallbackGroup[history.Store]
}

var _ history.Store = (*StoreFallback)(nil)

// NewStoreFallback creates a fallback store with primary as the first
// backend tried.
func NewStoreFallback(primary history.Store, primaryName string, cfg FallbackConfig) *StoreFallback {
	return &StoreFallback{
		group: NewFallbackGroup[history.Store](primary, primaryName, cfg),
	}
}

// AddFallback registers an additional backend, tried after the primary.
func (f *StoreFallback) AddFallback(name string, store history.Store) {
	f.group.AddFallback(name, store)
}

func (f *StoreFallback) Append(ctx context.Context, result scoring.SessionResult) (history.SessionRecord, error) {
	return ExecuteWithResult(f.group, func(s history.Store) (history.SessionRecord, error) {
		return s.Append(ctx, result)
	})
}

func (f *StoreFallback) Recent(ctx context.Context, n int) ([]history.SessionRecord, error) {
	return ExecuteWithResult(f.group, func(s history.Store) ([]history.SessionRecord, error) {
		return s.Recent(ctx, n)
	})
}

func (f *StoreFallback) PreviousLevel(ctx context.Context) (int, error) {
	return ExecuteWithResult(f.group, func(s history.Store) (int, error) {
		return s.PreviousLevel(ctx)
	})
}

func (f *StoreFallback) SetPreviousLevel(ctx context.Context, tier int) error {
	return f.group.Execute(func(s history.Store) error {
		return s.SetPreviousLevel(ctx, tier)
	})
}

func (f *StoreFallback) Clear(ctx context.Context) error {
	return f.group.Execute(func(s history.Store) error {
		return s.Clear(ctx)
	})
}
