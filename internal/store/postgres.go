package store

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// PostgresStore keeps run records in a PostgreSQL table.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore connects to dsn and makes sure the runs table exists.
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	s := &PostgresStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return s, nil
}

func (s *PostgresStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		seed BIGINT NOT NULL,
		turns INTEGER NOT NULL,
		kills INTEGER NOT NULL,
		damage_dealt INTEGER NOT NULL,
		damage_taken INTEGER NOT NULL,
		cause_of_death TEXT NOT NULL DEFAULT '',
		started_at TIMESTAMP WITH TIME ZONE NOT NULL,
		ended_at TIMESTAMP WITH TIME ZONE NOT NULL
	);
	CREATE INDEX IF NOT EXISTS runs_ended_at ON runs (ended_at DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Save inserts rec, replacing any earlier record with the same ID.
func (s *PostgresStore) Save(rec RunRecord) error {
	query := `
	INSERT INTO runs (id, seed, turns, kills, damage_dealt, damage_taken, cause_of_death, started_at, ended_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	ON CONFLICT (id)
	DO UPDATE SET
		turns = $3, kills = $4, damage_dealt = $5, damage_taken = $6,
		cause_of_death = $7, ended_at = $9
	`
	_, err := s.db.Exec(query,
		rec.ID, rec.Seed, rec.Turns, rec.Kills, rec.DamageDealt, rec.DamageTaken,
		rec.CauseOfDeath, rec.StartedAt, rec.EndedAt)
	if err != nil {
		return fmt.Errorf("save run %s: %w", rec.ID, err)
	}
	return nil
}

// Recent returns up to n records ordered by end time, newest first.
func (s *PostgresStore) Recent(n int) ([]RunRecord, error) {
	rows, err := s.db.Query(`
	SELECT id, seed, turns, kills, damage_dealt, damage_taken, cause_of_death, started_at, ended_at
	FROM runs ORDER BY ended_at DESC LIMIT $1`, n)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var recs []RunRecord
	for rows.Next() {
		var rec RunRecord
		if err := rows.Scan(&rec.ID, &rec.Seed, &rec.Turns, &rec.Kills, &rec.DamageDealt,
			&rec.DamageTaken, &rec.CauseOfDeath, &rec.StartedAt, &rec.EndedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// Get loads a single record by ID.
func (s *PostgresStore) Get(id string) (RunRecord, error) {
	var rec RunRecord
	err := s.db.QueryRow(`
	SELECT id, seed, turns, kills, damage_dealt, damage_taken, cause_of_death, started_at, ended_at
	FROM runs WHERE id = $1`, id).Scan(&rec.ID, &rec.Seed, &rec.Turns, &rec.Kills, &rec.DamageDealt,
		&rec.DamageTaken, &rec.CauseOfDeath, &rec.StartedAt, &rec.EndedAt)
	if err == sql.ErrNoRows {
		return RunRecord{}, ErrNotFound
	}
	if err != nil {
		return RunRecord{}, fmt.Errorf("load run %s: %w", id, err)
	}
	return rec, nil
}

// Close closes the database connection.
func (s *PostgresStore) Close() error { return s.db.Close() }
