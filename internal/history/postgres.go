package history

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clarionvoice/clarion/internal/scoring"
)

// PostgresStore persists session history in PostgreSQL. The session log
// is trimmed to the configured limit on every append, and the previous
// level tier lives in a single-row marker table.
type PostgresStore struct {
	pool  *pgxpool.Pool
	limit int
	now   func() time.Time
}

var _ Store = (*PostgresStore)(nil)

// NewPostgresStore creates a store backed by pool. A non-positive limit
// falls back to [DefaultLimit]. Call [Migrate] once before use.
func NewPostgresStore(pool *pgxpool.Pool, limit int) *PostgresStore {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &PostgresStore{pool: pool, limit: limit, now: time.Now}
}

const (
	ddlSessions = `
CREATE TABLE IF NOT EXISTS assessment_sessions (
	id         TEXT PRIMARY KEY,
	created_at TIMESTAMPTZ NOT NULL,
	result     JSONB NOT NULL
)`

	ddlSessionsCreatedIdx = `
CREATE INDEX IF NOT EXISTS assessment_sessions_created_at_idx
	ON assessment_sessions (created_at DESC)`

	ddlLevelMarker = `
CREATE TABLE IF NOT EXISTS level_marker (
	singleton BOOLEAN PRIMARY KEY DEFAULT TRUE CHECK (singleton),
	tier      INTEGER NOT NULL
)`
)

// Migrate creates the history tables if they do not exist. It is safe to
// run on every startup.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for _, ddl := range []string{ddlSessions, ddlSessionsCreatedIdx, ddlLevelMarker} {
		if _, err := pool.Exec(ctx, ddl); err != nil {
			return fmt.Errorf("history: migrate: %w", err)
		}
	}
	return nil
}

func (s *PostgresStore) Append(ctx context.Context, result scoring.SessionResult) (SessionRecord, error) {
	ts := s.now().UTC()
	rec := SessionRecord{
		ID:        newRecordID(ts),
		Timestamp: ts,
		Result:    result,
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return SessionRecord{}, fmt.Errorf("history: begin append: %w", err)
	}
	defer tx.Rollback(ctx)

	const insert = `
INSERT INTO assessment_sessions (id, created_at, result)
VALUES ($1, $2, $3)`
	if _, err := tx.Exec(ctx, insert, rec.ID, rec.Timestamp, rec.Result); err != nil {
		return SessionRecord{}, fmt.Errorf("history: insert session: %w", err)
	}

	const trim = `
DELETE FROM assessment_sessions
WHERE id NOT IN (
	SELECT id FROM assessment_sessions
	ORDER BY created_at DESC, id DESC
	LIMIT $1
)`
	if _, err := tx.Exec(ctx, trim, s.limit); err != nil {
		return SessionRecord{}, fmt.Errorf("history: trim sessions: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return SessionRecord{}, fmt.Errorf("history: commit append: %w", err)
	}
	return rec, nil
}

func (s *PostgresStore) Recent(ctx context.Context, n int) ([]SessionRecord, error) {
	const q = `
SELECT id, created_at, result
FROM assessment_sessions
ORDER BY created_at DESC, id DESC
LIMIT $1`
	rows, err := s.pool.Query(ctx, q, n)
	if err != nil {
		return nil, fmt.Errorf("history: query sessions: %w", err)
	}
	records, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (SessionRecord, error) {
		var rec SessionRecord
		err := row.Scan(&rec.ID, &rec.Timestamp, &rec.Result)
		return rec, err
	})
	if err != nil {
		return nil, fmt.Errorf("history: scan sessions: %w", err)
	}
	if records == nil {
		records = []SessionRecord{}
	}
	return records, nil
}

func (s *PostgresStore) PreviousLevel(ctx context.Context) (int, error) {
	const q = `SELECT tier FROM level_marker WHERE singleton`
	var tier int
	err := s.pool.QueryRow(ctx, q).Scan(&tier)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("history: query level marker: %w", err)
	}
	return tier, nil
}

func (s *PostgresStore) SetPreviousLevel(ctx context.Context, tier int) error {
	const q = `
INSERT INTO level_marker (singleton, tier)
VALUES (TRUE, $1)
ON CONFLICT (singleton) DO UPDATE SET tier = EXCLUDED.tier`
	if _, err := s.pool.Exec(ctx, q, tier); err != nil {
		return fmt.Errorf("history: upsert level marker: %w", err)
	}
	return nil
}

func (s *PostgresStore) Clear(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM assessment_sessions`); err != nil {
		return fmt.Errorf("history: clear sessions: %w", err)
	}
	if _, err := s.pool.Exec(ctx, `DELETE FROM level_marker`); err != nil {
		return fmt.Errorf("history: clear level marker: %w", err)
	}
	return nil
}
