package resilience

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/clarionvoice/clarion/internal/history"
	"github.com/clarionvoice/clarion/internal/scoring"
)

// brokenStore fails every operation, standing in for an unreachable
// database.
type brokenStore struct{}

var errStoreDown = errors.New("store down")

func (brokenStore) Append(context.Context, scoring.SessionResult) (history.SessionRecord, error) {
	return history.SessionRecord{}, errStoreDown
}
func (brokenStore) Recent(context.Context, int) ([]history.SessionRecord, error) {
	return nil, errStoreDown
}
func (brokenStore) PreviousLevel(context.Context) (int, error) { return 0, errStoreDown }
func (brokenStore) SetPreviousLevel(context.Context, int) error {
	return errStoreDown
}
func (brokenStore) Clear(context.Context) error { return errStoreDown }

func TestStoreFallback_DegradesToFile(t *testing.T) {
	ctx := context.Background()
	file := history.NewFileStore(filepath.Join(t.TempDir(), "history.jsonl"), 10)

	sf := NewStoreFallback(brokenStore{}, "postgres", FallbackConfig{
		CircuitBreaker: CircuitBreakerConfig{MaxFailures: 2},
	})
	sf.AddFallback("file", file)

	rec, err := sf.Append(ctx, scoring.SessionResult{OverallScore: 70})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if rec.ID == "" {
		t.Error("record ID is empty")
	}

	// The write must have landed in the fallback store.
	records, err := file.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent on fallback: %v", err)
	}
	if len(records) != 1 || records[0].Result.OverallScore != 70 {
		t.Errorf("fallback records = %+v, want one with score 70", records)
	}

	if err := sf.SetPreviousLevel(ctx, 5); err != nil {
		t.Fatalf("SetPreviousLevel: %v", err)
	}
	tier, err := sf.PreviousLevel(ctx)
	if err != nil {
		t.Fatalf("PreviousLevel: %v", err)
	}
	if tier != 5 {
		t.Errorf("tier = %d, want 5", tier)
	}
}

func TestStoreFallback_AllBackendsFail(t *testing.T) {
	sf := NewStoreFallback(brokenStore{}, "primary", FallbackConfig{
		CircuitBreaker: CircuitBreakerConfig{MaxFailures: 2},
	})
	sf.AddFallback("secondary", brokenStore{})

	_, err := sf.Recent(context.Background(), 10)
	if !errors.Is(err, ErrAllFailed) {
		t.Errorf("error = %v, want ErrAllFailed", err)
	}
}
