// Package storage provides SQLite-based persistence for daily boards.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/chris-horner/Reverse-Rainbow-sub000/internal/core"
	"github.com/chris-horner/Reverse-Rainbow-sub000/internal/loader"
)

// Store manages the SQLite database connection for board persistence.
type Store struct {
	db *sql.DB
}

// BoardRecord summarizes one saved day.
type BoardRecord struct {
	Date        core.Date
	Assigned    int // tiles placed in a category
	UpdatedAt   time.Time
	CompletedAt time.Time // zero if the board was never finished
}

// Completed reports whether the day was finished.
func (r BoardRecord) Completed() bool {
	return !r.CompletedAt.IsZero()
}

// Stats aggregates the saved history.
type Stats struct {
	Saved     int
	Completed int
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

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
		CREATE TABLE IF NOT EXISTS boards (
			date TEXT PRIMARY KEY,
			tiles_json TEXT NOT NULL,
			assigned INTEGER NOT NULL DEFAULT 0,
			updated_at TEXT NOT NULL,
			completed_at TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_boards_completed ON boards(completed_at);
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

// SaveSnapshot stores the board for snap.Date, replacing any earlier save
// for the same day. A recorded completion is kept.
func (s *Store) SaveSnapshot(snap loader.Snapshot, at time.Time) error {
	data, err := encodeTiles(snap.Tiles)
	if err != nil {
		return fmt.Errorf("storage: cannot encode board: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO boards (date, tiles_json, assigned, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(date) DO UPDATE SET
		   tiles_json = excluded.tiles_json,
		   assigned = excluded.assigned,
		   updated_at = excluded.updated_at`,
		snap.Date.String(), string(data), assignedCount(snap), formatTime(at),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save board: %w", err)
	}
	return nil
}

// LoadSnapshot returns the saved board for date.
// The boolean is false when nothing was saved for that day.
func (s *Store) LoadSnapshot(date core.Date) (loader.Snapshot, bool, error) {
	var data string
	err := s.db.QueryRow(
		"SELECT tiles_json FROM boards WHERE date = ?",
		date.String(),
	).Scan(&data)

	if errors.Is(err, sql.ErrNoRows) {
		return loader.Snapshot{}, false, nil
	}
	if err != nil {
		return loader.Snapshot{}, false, fmt.Errorf("storage: cannot query board: %w", err)
	}

	tiles, err := decodeTiles([]byte(data))
	if err != nil {
		return loader.Snapshot{}, false, fmt.Errorf("storage: cannot decode board %s: %w", date, err)
	}
	return loader.Snapshot{Date: date, Tiles: tiles}, true, nil
}

// MarkCompleted records that date was finished at the given time.
// Only the first completion is kept. Returns true if this call recorded it.
func (s *Store) MarkCompleted(date core.Date, at time.Time) (bool, error) {
	res, err := s.db.Exec(
		"UPDATE boards SET completed_at = ? WHERE date = ? AND completed_at IS NULL",
		formatTime(at), date.String(),
	)
	if err != nil {
		return false, fmt.Errorf("storage: cannot mark completed: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("storage: cannot get affected rows: %w", err)
	}
	return n > 0, nil
}

// History returns the most recent saved days, newest first.
func (s *Store) History(limit int) ([]BoardRecord, error) {
	if limit <= 0 {
		limit = 30
	}

	rows, err := s.db.Query(
		`SELECT date, assigned, updated_at, completed_at
		 FROM boards
		 ORDER BY date DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query history: %w", err)
	}
	defer rows.Close()

	var records []BoardRecord
	for rows.Next() {
		var r BoardRecord
		var date, updatedAt string
		var completedAt sql.NullString
		if err := rows.Scan(&date, &r.Assigned, &updatedAt, &completedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}

		if r.Date, err = core.ParseDate(date); err != nil {
			return nil, fmt.Errorf("storage: bad date %q: %w", date, err)
		}
		r.UpdatedAt = parseTime(updatedAt)
		if completedAt.Valid {
			r.CompletedAt = parseTime(completedAt.String)
		}
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// Stats returns the number of saved and completed days.
func (s *Store) Stats() (Stats, error) {
	var st Stats
	err := s.db.QueryRow(
		"SELECT COUNT(*), COUNT(completed_at) FROM boards",
	).Scan(&st.Saved, &st.Completed)
	if err != nil {
		return Stats{}, fmt.Errorf("storage: cannot query stats: %w", err)
	}
	return st, nil
}

// ClearHistory deletes all saved boards.
func (s *Store) ClearHistory() error {
	if _, err := s.db.Exec("DELETE FROM boards"); err != nil {
		return fmt.Errorf("storage: cannot clear history: %w", err)
	}
	return nil
}

func assignedCount(snap loader.Snapshot) int {
	n := 0
	for _, t := range snap.Tiles {
		if t.HasCategory() {
			n++
		}
	}
	return n
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
