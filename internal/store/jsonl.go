package store

import (
	"bufio"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"slices"
	"sync"
)

// JSONLStore appends each run as a single JSON line to a file.
type JSONLStore struct {
	path string
	mu   sync.Mutex
}

// NewJSONLStore returns a store writing to path, creating its directory.
func NewJSONLStore(path string) (*JSONLStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create run log dir: %w", err)
	}
	return &JSONLStore{path: path}, nil
}

// DefaultPath returns runs.jsonl under the XDG data directory:
// $XDG_DATA_HOME/roguelike, defaulting to ~/.local/share/roguelike.
func DefaultPath() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "roguelike", "runs.jsonl"), nil
}

// Save appends rec to the file.
func (s *JSONLStore) Save(rec RunRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode run record: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open run log: %w", err)
	}
	defer f.Close()
	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write run log: %w", err)
	}
	return nil
}

// Recent reads the whole file and returns its last n records, newest first.
// Lines that fail to decode are skipped.
func (s *JSONLStore) Recent(n int) ([]RunRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open run log: %w", err)
	}
	defer f.Close()

	var recs []RunRecord
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var rec RunRecord
		if json.Unmarshal(sc.Bytes(), &rec) == nil {
			recs = append(recs, rec)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read run log: %w", err)
	}
	if len(recs) > n {
		recs = recs[len(recs)-n:]
	}
	slices.Reverse(recs)
	return recs, nil
}

// Get scans the file for the record with id.
func (s *JSONLStore) Get(id string) (RunRecord, error) {
	recs, err := s.Recent(math.MaxInt)
	if err != nil {
		return RunRecord{}, err
	}
	for _, rec := range recs {
		if rec.ID == id {
			return rec, nil
		}
	}
	return RunRecord{}, ErrNotFound
}

// Close is a no-op; the file is opened per call.
func (s *JSONLStore) Close() error { return nil }
