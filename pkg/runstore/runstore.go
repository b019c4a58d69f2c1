// Package runstore persists one row per processing run in a SQLite
// database, so past runs are listable from the CLI, HTTP API and MCP
// tools.
package runstore

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Run statuses.
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Run is one processing invocation: what was ingested, what region was
// detected, and what came out.
type Run struct {
	ID         string  `json:"id"`
	Source     string  `json:"source"`
	Region     string  `json:"region,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
	NameMode   string  `json:"name_mode,omitempty"`
	Households int     `json:"households"`
	Persons    int     `json:"persons"`
	Likely     int     `json:"likely_duplicates"`
	Somewhat   int     `json:"somewhat_likely_duplicates"`
	Possible   int     `json:"possible_duplicates"`
	NoName     int     `json:"no_name_records"`
	StartedAt  int64   `json:"started_at"`
	FinishedAt *int64  `json:"finished_at,omitempty"`
	Status     string  `json:"status"`
	Error      *string `json:"error,omitempty"`
}

// Store manages the runs SQLite table.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the SQLite database at path and ensures the
// runs table exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open run store: %w", err)
	}

	const ddl = `CREATE TABLE IF NOT EXISTS runs (
		id          TEXT PRIMARY KEY,
		source      TEXT NOT NULL,
		region      TEXT NOT NULL DEFAULT '',
		confidence  REAL NOT NULL DEFAULT 0,
		name_mode   TEXT NOT NULL DEFAULT '',
		households  INTEGER NOT NULL DEFAULT 0,
		persons     INTEGER NOT NULL DEFAULT 0,
		likely      INTEGER NOT NULL DEFAULT 0,
		somewhat    INTEGER NOT NULL DEFAULT 0,
		possible    INTEGER NOT NULL DEFAULT 0,
		no_name     INTEGER NOT NULL DEFAULT 0,
		started_at  INTEGER NOT NULL,
		finished_at INTEGER,
		status      TEXT NOT NULL,
		error       TEXT
	)`
	if _, err := db.Exec(ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("create runs table: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Begin records a new run in the running state and returns its ID.
func (s *Store) Begin(source string) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(
		`INSERT INTO runs (id, source, started_at, status) VALUES (?, ?, ?, ?)`,
		id, source, time.Now().Unix(), StatusRunning,
	)
	if err != nil {
		return "", fmt.Errorf("begin run for %s: %w", source, err)
	}
	return id, nil
}

// Finish marks a run completed and stores its results.
func (s *Store) Finish(id string, run Run) error {
	res, err := s.db.Exec(
		`UPDATE runs SET region = ?, confidence = ?, name_mode = ?,
			households = ?, persons = ?, likely = ?, somewhat = ?, possible = ?, no_name = ?,
			finished_at = ?, status = ? WHERE id = ?`,
		run.Region, run.Confidence, run.NameMode,
		run.Households, run.Persons, run.Likely, run.Somewhat, run.Possible, run.NoName,
		time.Now().Unix(), StatusCompleted, id,
	)
	if err != nil {
		return fmt.Errorf("finish run %s: %w", id, err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("run %s not found", id)
	}
	return nil
}

// Fail marks a run failed with the given message.
func (s *Store) Fail(id, msg string) error {
	_, err := s.db.Exec(
		`UPDATE runs SET finished_at = ?, status = ?, error = ? WHERE id = ?`,
		time.Now().Unix(), StatusFailed, msg, id,
	)
	if err != nil {
		return fmt.Errorf("fail run %s: %w", id, err)
	}
	return nil
}

const runColumns = `id, source, region, confidence, name_mode,
	households, persons, likely, somewhat, possible, no_name,
	started_at, finished_at, status, error`

func scanRun(scan func(...any) error) (Run, error) {
	var r Run
	err := scan(&r.ID, &r.Source, &r.Region, &r.Confidence, &r.NameMode,
		&r.Households, &r.Persons, &r.Likely, &r.Somewhat, &r.Possible, &r.NoName,
		&r.StartedAt, &r.FinishedAt, &r.Status, &r.Error)
	return r, err
}

// Get returns one run by ID.
func (s *Store) Get(id string) (Run, error) {
	row := s.db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	r, err := scanRun(row.Scan)
	if err != nil {
		return Run{}, fmt.Errorf("get run %s: %w", id, err)
	}
	return r, nil
}

// List returns the most recent runs, newest first. A non-positive
// limit returns everything.
func (s *Store) List(limit int) ([]Run, error) {
	q := `SELECT ` + runColumns + ` FROM runs ORDER BY started_at DESC, id`
	var args []any
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
