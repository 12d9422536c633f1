// Package storage provides SQLite-based persistence for recorded runs.
// A run is the ordered list of intents applied to one session, enough to
// replay it. Uses the pure-Go modernc.org/sqlite driver to avoid CGO.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/smarterfiring/internal/config"
)

var (
	// ErrRunNotFound is returned when no run matches an ID or prefix.
	ErrRunNotFound = errors.New("storage: run not found")

	// ErrAmbiguousRun is returned when an ID prefix matches several runs.
	ErrAmbiguousRun = errors.New("storage: run id prefix is ambiguous")
)

// Store manages the SQLite database connection for the run journal.
type Store struct {
	db *sql.DB
}

// Run describes one recorded session.
type Run struct {
	ID              string
	Source          string // "local", "ssh:<user>", "autoplay"
	Seed            int64
	GridSize        int
	SessionSeconds  int
	HitRewardPoints int
	StartedAt       time.Time
	EndedAt         time.Time // zero while the run is open
	Completed       bool      // the game clock ran out
	EventCount      int
}

// EventRecord is one journal entry. For a move, Direction is the step
// direction. For a fire, X, Y and Direction describe the spawned dragon.
type EventRecord struct {
	Seq       int
	Kind      string
	Direction string
	X, Y      int
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	dbPath, err := config.ExpandHome(dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			source TEXT NOT NULL,
			seed INTEGER NOT NULL DEFAULT 0,
			grid_size INTEGER NOT NULL,
			session_secs INTEGER NOT NULL,
			hit_reward INTEGER NOT NULL,
			started_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			ended_at DATETIME,
			completed INTEGER NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at DESC);

		CREATE TABLE IF NOT EXISTS run_events (
			run_id TEXT NOT NULL,
			seq INTEGER NOT NULL,
			kind TEXT NOT NULL,
			direction TEXT NOT NULL DEFAULT '',
			x INTEGER NOT NULL DEFAULT 0,
			y INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (run_id, seq)
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// CreateRun records the start of a run. StartedAt defaults to now.
func (s *Store) CreateRun(run Run) error {
	_, err := s.db.Exec(
		`INSERT INTO runs (id, source, seed, grid_size, session_secs, hit_reward)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.Source, run.Seed, run.GridSize, run.SessionSeconds, run.HitRewardPoints,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot create run: %w", err)
	}
	return nil
}

// AppendEvents adds journal entries to a run in a single transaction.
func (s *Store) AppendEvents(runID string, events []EventRecord) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	//nolint:errcheck // Rollback after Commit is a no-op
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		"INSERT INTO run_events (run_id, seq, kind, direction, x, y) VALUES (?, ?, ?, ?, ?, ?)",
	)
	if err != nil {
		return fmt.Errorf("storage: cannot prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range events {
		if _, err := stmt.Exec(runID, e.Seq, e.Kind, e.Direction, e.X, e.Y); err != nil {
			return fmt.Errorf("storage: cannot append event %d: %w", e.Seq, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit events: %w", err)
	}
	return nil
}

// FinishRun marks a run as closed.
func (s *Store) FinishRun(runID string, completed bool) error {
	res, err := s.db.Exec(
		"UPDATE runs SET ended_at = CURRENT_TIMESTAMP, completed = ? WHERE id = ?",
		completed, runID,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot finish run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return nil
}

const runColumns = `r.id, r.source, r.seed, r.grid_size, r.session_secs, r.hit_reward,
	r.started_at, r.ended_at, r.completed,
	(SELECT COUNT(*) FROM run_events e WHERE e.run_id = r.id)`

// FindRun returns the run whose ID is or starts with idOrPrefix.
func (s *Store) FindRun(idOrPrefix string) (*Run, error) {
	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs r
		 WHERE r.id = ? OR r.id LIKE ? || '%'
		 ORDER BY (r.id = ?) DESC
		 LIMIT 2`,
		idOrPrefix, idOrPrefix, idOrPrefix,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	defer rows.Close()

	runs, err := scanRuns(rows)
	if err != nil {
		return nil, err
	}

	switch {
	case len(runs) == 0:
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, idOrPrefix)
	case runs[0].ID == idOrPrefix:
		return &runs[0], nil
	case len(runs) > 1:
		return nil, fmt.Errorf("%w: %s", ErrAmbiguousRun, idOrPrefix)
	}
	return &runs[0], nil
}

// RecentRuns returns the most recently started runs.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs r
		 ORDER BY r.started_at DESC, r.rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	return scanRuns(rows)
}

// Events returns the journal of a run in order.
func (s *Store) Events(runID string) ([]EventRecord, error) {
	rows, err := s.db.Query(
		`SELECT seq, kind, direction, x, y
		 FROM run_events
		 WHERE run_id = ?
		 ORDER BY seq`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query events: %w", err)
	}
	defer rows.Close()

	var events []EventRecord
	for rows.Next() {
		var e EventRecord
		if err := rows.Scan(&e.Seq, &e.Kind, &e.Direction, &e.X, &e.Y); err != nil {
			return nil, fmt.Errorf("storage: cannot scan event: %w", err)
		}
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return events, nil
}

// DeleteRun removes a run and its journal.
func (s *Store) DeleteRun(runID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	//nolint:errcheck // Rollback after Commit is a no-op
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM run_events WHERE run_id = ?", runID); err != nil {
		return fmt.Errorf("storage: cannot delete events: %w", err)
	}
	res, err := tx.Exec("DELETE FROM runs WHERE id = ?", runID)
	if err != nil {
		return fmt.Errorf("storage: cannot delete run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit delete: %w", err)
	}
	return nil
}

func scanRuns(rows *sql.Rows) ([]Run, error) {
	var runs []Run
	for rows.Next() {
		var r Run
		var startedAt, endedAt any
		if err := rows.Scan(
			&r.ID,
			&r.Source,
			&r.Seed,
			&r.GridSize,
			&r.SessionSeconds,
			&r.HitRewardPoints,
			&startedAt,
			&endedAt,
			&r.Completed,
			&r.EventCount,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan run: %w", err)
		}
		r.StartedAt = parseTime(startedAt)
		r.EndedAt = parseTime(endedAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
