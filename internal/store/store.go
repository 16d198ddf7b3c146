// Package store persists finished runs.
package store

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no record matches.
var ErrNotFound = errors.New("run record not found")

// RunRecord summarizes one finished or abandoned game.
type RunRecord struct {
	ID           string    `json:"id"`
	Seed         int64     `json:"seed"`
	Turns        int       `json:"turns"`
	Kills        int       `json:"kills"`
	DamageDealt  int       `json:"damage_dealt"`
	DamageTaken  int       `json:"damage_taken"`
	CauseOfDeath string    `json:"cause_of_death,omitempty"`
	StartedAt    time.Time `json:"started_at"`
	EndedAt      time.Time `json:"ended_at"`
}

// Store saves run records and lists the latest ones.
type Store interface {
	Save(rec RunRecord) error
	// Recent returns up to n records, newest first.
	Recent(n int) ([]RunRecord, error)
	// Get returns the record with id, or ErrNotFound.
	Get(id string) (RunRecord, error)
	Close() error
}

// NewID returns a random UUID for a new run.
func NewID() string {
	return uuid.NewString()
}

// Open returns the PostgreSQL store when dsn is set and the JSONL store at
// path otherwise. An empty path means DefaultPath.
func Open(dsn, path string) (Store, error) {
	if dsn != "" {
		pg, err := NewPostgresStore(dsn)
		if err != nil {
			return nil, err
		}
		return pg, nil
	}
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	js, err := NewJSONLStore(path)
	if err != nil {
		return nil, err
	}
	return js, nil
}
