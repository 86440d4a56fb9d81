package history

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
	"time"

	"github.com/clarionvoice/clarion/internal/scoring"
)

// FileStore keeps session history as JSON lines in a single file, oldest
// record first, and the previous level tier in a sibling file. It is safe
// for concurrent use within one process.
type FileStore struct {
	mu        sync.Mutex
	path      string
	levelPath string
	limit     int
	now       func() time.Time
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates a file-backed store writing to path. The
// previous-level marker lives at path + ".level". A non-positive limit
// falls back to [DefaultLimit].
func NewFileStore(path string, limit int) *FileStore {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &FileStore{
		path:      path,
		levelPath: path + ".level",
		limit:     limit,
		now:       time.Now,
	}
}

func (s *FileStore) Append(ctx context.Context, result scoring.SessionResult) (SessionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return SessionRecord{}, err
	}

	ts := s.now().UTC()
	rec := SessionRecord{
		ID:        newRecordID(ts),
		Timestamp: ts,
		Result:    result,
	}
	records = append(records, rec)
	if len(records) > s.limit {
		records = records[len(records)-s.limit:]
	}
	if err := s.save(records); err != nil {
		return SessionRecord{}, err
	}
	return rec, nil
}

func (s *FileStore) Recent(_ context.Context, n int) ([]SessionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return nil, err
	}
	if n > len(records) {
		n = len(records)
	}
	out := make([]SessionRecord, 0, n)
	for i := len(records) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, records[i])
	}
	return out, nil
}

func (s *FileStore) PreviousLevel(context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.levelPath)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("history: read level file: %w", err)
	}
	var marker struct {
		Tier int `json:"tier"`
	}
	if err := json.Unmarshal(data, &marker); err != nil {
		return 0, fmt.Errorf("history: decode level file: %w", err)
	}
	return marker.Tier, nil
}

func (s *FileStore) SetPreviousLevel(_ context.Context, tier int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(struct {
		Tier int `json:"tier"`
	}{Tier: tier})
	if err != nil {
		return fmt.Errorf("history: encode level marker: %w", err)
	}
	if err := os.WriteFile(s.levelPath, data, 0o644); err != nil {
		return fmt.Errorf("history: write level file: %w", err)
	}
	return nil
}

func (s *FileStore) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range []string{s.path, s.levelPath} {
		if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("history: remove %s: %w", p, err)
		}
	}
	return nil
}

// load reads all records from the history file, oldest first. A missing
// file yields an empty history. Malformed lines abort the load rather
// than being skipped, so corruption surfaces instead of silently losing
// sessions.
func (s *FileStore) load() ([]SessionRecord, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("history: open file: %w", err)
	}
	defer f.Close()

	var records []SessionRecord
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec SessionRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, fmt.Errorf("history: decode record: %w", err)
		}
		records = append(records, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("history: scan file: %w", err)
	}
	return records, nil
}

// save rewrites the history file with the given records, oldest first.
func (s *FileStore) save(records []SessionRecord) error {
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("history: open file: %w", err)
	}

	w := bufio.NewWriter(f)
	for _, rec := range records {
		data, err := json.Marshal(rec)
		if err != nil {
			f.Close()
			return fmt.Errorf("history: encode record: %w", err)
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			f.Close()
			return fmt.Errorf("history: write record: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("history: flush file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("history: close file: %w", err)
	}
	return nil
}
