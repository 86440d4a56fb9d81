// Package history persists completed assessment sessions in a bounded,
// most-recent-first log, along with the learner's last achieved level tier.
// Two implementations exist: a JSON-lines [FileStore] for single-user
// deployments and a PostgreSQL-backed [PostgresStore].
package history

import (
	"context"
	"fmt"
	"time"

	"github.com/clarionvoice/clarion/internal/scoring"
)

// DefaultLimit is how many sessions a store keeps before evicting the
// oldest.
const DefaultLimit = 10

// SessionRecord is one persisted session.
type SessionRecord struct {
	ID        string                `json:"id"`
	Timestamp time.Time             `json:"timestamp"`
	Result    scoring.SessionResult `json:"result"`
}

// Store is the persistence boundary for session history. Implementations
// keep at most their configured limit of records, evicting the oldest on
// append, and track the previous level tier separately.
type Store interface {
	// Append persists a session result and returns the stored record.
	// When the store is full the oldest record is evicted.
	Append(ctx context.Context, result scoring.SessionResult) (SessionRecord, error)

	// Recent returns up to n records, newest first.
	Recent(ctx context.Context, n int) ([]SessionRecord, error)

	// PreviousLevel returns the last recorded level tier, or 0 when no
	// level has been recorded yet.
	PreviousLevel(ctx context.Context) (int, error)

	// SetPreviousLevel records the level tier of the latest session.
	SetPreviousLevel(ctx context.Context, tier int) error

	// Clear removes all records and the previous-level marker.
	Clear(ctx context.Context) error
}

// Latest returns the most recent record from store, or nil when the
// history is empty.
func Latest(ctx context.Context, store Store) (*SessionRecord, error) {
	records, err := store.Recent(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &records[0], nil
}

// newRecordID derives a unique record identifier from the timestamp.
func newRecordID(ts time.Time) string {
	return fmt.Sprintf("session_%d", ts.UnixNano())
}
