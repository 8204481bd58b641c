// Package history records command invocations in a local SQLite
// database.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Entry is one recorded invocation.
type Entry struct {
	ID        int64
	Raw       string
	CommandID string
	Status    string
	Duration  time.Duration
	At        time.Time
}

// Recorder stores invocation history. All methods are best-effort:
// history must never block a command from running.
type Recorder struct {
	db *sql.DB
}

// retention bounds how long invocations are kept. Open prunes older
// rows so the database does not grow without bound.
const retention = 90 * 24 * time.Hour

// Open opens or creates the history database and prunes entries older
// than the retention window.
func Open(path string) (*Recorder, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	r := &Recorder{db: db}
	if err := r.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	_, _ = r.Prune(time.Now().Add(-retention))
	return r, nil
}

func (r *Recorder) initialize() error {
	_, err := r.db.Exec(`
		CREATE TABLE IF NOT EXISTS invocations (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			raw         TEXT NOT NULL,
			command_id  TEXT NOT NULL,
			status      TEXT NOT NULL,
			duration_ms INTEGER NOT NULL,
			at          TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_invocations_at ON invocations(at);
	`)
	if err != nil {
		return fmt.Errorf("failed to initialize history schema: %w", err)
	}
	return nil
}

// Close closes the database.
func (r *Recorder) Close() error {
	return r.db.Close()
}

// Record stores one invocation. CommandID may be empty when the input
// never resolved to a command.
func (r *Recorder) Record(raw, commandID, status string, duration time.Duration) error {
	_, err := r.db.Exec(
		`INSERT INTO invocations (raw, command_id, status, duration_ms, at) VALUES (?, ?, ?, ?, ?)`,
		raw, commandID, status, duration.Milliseconds(), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to record invocation: %w", err)
	}
	return nil
}

// Recent returns the most recent invocations, newest first.
func (r *Recorder) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.Query(
		`SELECT id, raw, command_id, status, duration_ms, at
		 FROM invocations ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var durationMS int64
		var at string
		if err := rows.Scan(&e.ID, &e.Raw, &e.CommandID, &e.Status, &durationMS, &at); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		e.Duration = time.Duration(durationMS) * time.Millisecond
		if parsed, err := time.Parse(time.RFC3339, at); err == nil {
			e.At = parsed
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Prune deletes entries older than the cutoff.
func (r *Recorder) Prune(before time.Time) (int64, error) {
	res, err := r.db.Exec(
		`DELETE FROM invocations WHERE at < ?`,
		before.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to prune history: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
