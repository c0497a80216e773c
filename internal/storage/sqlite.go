// Package storage persists save-slot progress and run history in SQLite.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrCorruptState reports persisted progress that cannot be trusted.
// Callers fall back to defaults and keep going.
var ErrCorruptState = errors.New("storage: corrupt persisted state")

// SlotIDs are the save slots the game offers.
var SlotIDs = []string{"1", "2", "3"}

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// Run is one finished campaign or practice run.
type Run struct {
	ID        int64
	Mode      string
	Slot      string // Empty for practice
	World     int
	Level     int
	Won       bool
	Coins     int
	CreatedAt time.Time
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
		CREATE TABLE IF NOT EXISTS save_slots (
			slot TEXT PRIMARY KEY,
			world INTEGER NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			mode TEXT NOT NULL,
			slot TEXT NOT NULL DEFAULT '',
			world INTEGER NOT NULL,
			level INTEGER NOT NULL,
			won INTEGER NOT NULL DEFAULT 0,
			coins INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_slot ON runs(slot);
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

// DefaultProgress returns every slot at world 1.
func DefaultProgress() map[string]int {
	p := make(map[string]int, len(SlotIDs))
	for _, id := range SlotIDs {
		p[id] = 1
	}
	return p
}

// LoadProgress returns the saved world of every slot. Slots never saved
// default to 1. Rows holding an impossible or non-integer world are replaced
// by the default and reported with ErrCorruptState alongside the usable map.
func (s *Store) LoadProgress() (map[string]int, error) {
	progress := DefaultProgress()

	rows, err := s.db.Query("SELECT slot, world FROM save_slots")
	if err != nil {
		return progress, fmt.Errorf("storage: cannot query slots: %w", err)
	}
	defer rows.Close()

	var bad []string
	for rows.Next() {
		var slot string
		var raw any
		if err := rows.Scan(&slot, &raw); err != nil {
			bad = append(bad, slot)
			continue
		}
		world, ok := raw.(int64)
		if !ok || world < 1 {
			bad = append(bad, slot)
			continue
		}
		progress[slot] = int(world)
	}
	if err := rows.Err(); err != nil {
		return progress, fmt.Errorf("storage: row iteration error: %w", err)
	}

	if len(bad) > 0 {
		return progress, fmt.Errorf("%w: slots %v", ErrCorruptState, bad)
	}
	return progress, nil
}

// SaveSlot stores the world a slot resumes from.
func (s *Store) SaveSlot(slot string, world int) error {
	_, err := s.db.Exec(
		`INSERT INTO save_slots (slot, world, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(slot) DO UPDATE SET world = excluded.world, updated_at = excluded.updated_at`,
		slot, world,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save slot %s: %w", slot, err)
	}
	return nil
}

// ClearSlot forgets a slot so it starts from world 1 again.
func (s *Store) ClearSlot(slot string) error {
	_, err := s.db.Exec("DELETE FROM save_slots WHERE slot = ?", slot)
	if err != nil {
		return fmt.Errorf("storage: cannot clear slot %s: %w", slot, err)
	}
	return nil
}

// ImportJSON loads a legacy saves file ({"1": 1, "2": 3, "3": 9}) into the
// slot table. A file that does not parse, or holds a world below 1, is
// rejected with ErrCorruptState and nothing is written. Unknown slot keys
// are ignored. Returns the imported progress.
func (s *Store) ImportJSON(path string) (map[string]int, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- path is provided by the user
	if err != nil {
		return nil, fmt.Errorf("storage: cannot read %s: %w", path, err)
	}

	var raw map[string]int
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptState, path, err)
	}

	imported := make(map[string]int)
	for _, id := range SlotIDs {
		world, ok := raw[id]
		if !ok {
			continue
		}
		if world < 1 {
			return nil, fmt.Errorf("%w: slot %s has world %d", ErrCorruptState, id, world)
		}
		imported[id] = world
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("storage: cannot begin import: %w", err)
	}
	ids := make([]string, 0, len(imported))
	for id := range imported {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if _, err := tx.Exec(
			`INSERT INTO save_slots (slot, world, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
			 ON CONFLICT(slot) DO UPDATE SET world = excluded.world, updated_at = excluded.updated_at`,
			id, imported[id],
		); err != nil {
			_ = tx.Rollback()
			return nil, fmt.Errorf("storage: cannot import slot %s: %w", id, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("storage: cannot commit import: %w", err)
	}
	return imported, nil
}

// RecordRun stores a finished run. Returns the ID of the inserted record.
func (s *Store) RecordRun(r Run) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO runs (mode, slot, world, level, won, coins) VALUES (?, ?, ?, ?, ?, ?)",
		r.Mode, r.Slot, r.World, r.Level, r.Won, r.Coins,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// RecentRuns returns the latest runs, newest first.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, mode, slot, world, level, won, coins, created_at
		 FROM runs
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Mode, &r.Slot, &r.World, &r.Level, &r.Won, &r.Coins, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// RunStats aggregates the run history.
type RunStats struct {
	Runs       int
	Wins       int
	BestCoins  int
	LastPlayed time.Time
}

// Stats summarizes every recorded run.
func (s *Store) Stats() (*RunStats, error) {
	stats := &RunStats{}
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(won), 0), COALESCE(MAX(coins), 0) FROM runs`,
	).Scan(&stats.Runs, &stats.Wins, &stats.BestCoins)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get run stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(`SELECT created_at FROM runs ORDER BY id DESC LIMIT 1`).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}
	return stats, nil
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
