// Package sqlite provides a SQLite-backed implementation of the
// storage.Snapshotter interface using Go's standard database/sql
// package.
//
// WHY SQLite AS A SNAPSHOT SLOT?
// ──────────────────────────────
// SQLite stores everything in a single file on disk. There is no
// network, no separate server process, and no installation beyond the
// driver. The roster's persistence contract is a single durable
// key-value slot, so the schema is one keyed row: the full roster,
// JSON-encoded, stored under a well-known key. Every save replaces the
// row atomically; every load reads it back.
//
// The blank import below registers the sqlite3 driver with
// database/sql. The driver's init() function does this automatically
// when the package is loaded — we never call anything from it directly.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/aanand-mishra/roster-api/internal/config"
	"github.com/aanand-mishra/roster-api/internal/types"

	// Blank import: side-effect only (registers the "sqlite3" driver).
	// Without this the sql.Open("sqlite3", ...) call would fail with
	// "unknown driver".
	_ "github.com/mattn/go-sqlite3"
)

// snapshotKey is the slot the serialized roster lives under, matching
// the single named slot the reference implementation used.
const snapshotKey = "students"

// SQLite is the concrete implementation of storage.Snapshotter.
// It holds a *sql.DB, the connection pool managed by database/sql.
type SQLite struct {
	Db *sql.DB
}

// New opens the SQLite database at the path specified in
// cfg.StoragePath, creates the snapshots table if it does not already
// exist, and returns a ready-to-use *SQLite.
//
// Naming convention: New() acts as a constructor. Go has no
// constructors, so the community convention is a package-level New()
// that returns an initialised instance (and an error as the second
// value).
func New(cfg *config.Config) (*SQLite, error) {
	// sql.Open does NOT open a real connection yet — it just validates
	// the driver name and data source name (DSN).
	// The first actual connection happens on the first query.
	db, err := sql.Open("sqlite3", cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	// CREATE TABLE IF NOT EXISTS is idempotent — safe to run on every
	// startup.
	//
	// Schema:
	//   key  — the slot name; only "students" is used today
	//   data — the JSON-encoded roster snapshot
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS snapshots (
			key  TEXT PRIMARY KEY,
			data TEXT NOT NULL
		)
	`)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: create table: %w", err)
	}

	return &SQLite{Db: db}, nil
}

// Load reads the roster snapshot back out of the slot. When the slot
// has never been written (first run), it returns an empty roster and
// no error.
func (s *SQLite) Load() ([]types.Student, error) {
	stmt, err := s.Db.Prepare(
		"SELECT data FROM snapshots WHERE key = ? LIMIT 1",
	)
	if err != nil {
		return nil, fmt.Errorf("Load: prepare: %w", err)
	}
	// defer ensures the statement is closed when this function returns,
	// even on an early error return. Prevents resource leaks.
	defer stmt.Close()

	var data string

	// QueryRow returns exactly one row; the "nothing matched" error
	// only surfaces when Scan is called.
	err = stmt.QueryRow(snapshotKey).Scan(&data)
	if err != nil {
		if err == sql.ErrNoRows {
			// No snapshot yet — a brand new roster, not a failure.
			return make([]types.Student, 0), nil
		}
		return nil, fmt.Errorf("Load: scan: %w", err)
	}

	// Pre-allocate an empty (non-nil) slice so an empty snapshot
	// decodes to [] rather than nil.
	students := make([]types.Student, 0)
	if err := json.Unmarshal([]byte(data), &students); err != nil {
		return nil, fmt.Errorf("Load: decode snapshot: %w", err)
	}

	return students, nil
}

// Save writes the full roster into the slot, replacing whatever was
// there. The ? placeholders keep the JSON payload as pure data — the
// database never interprets it as SQL.
func (s *SQLite) Save(students []types.Student) error {
	data, err := json.Marshal(students)
	if err != nil {
		return fmt.Errorf("Save: encode snapshot: %w", err)
	}

	stmt, err := s.Db.Prepare(`
		INSERT INTO snapshots (key, data) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET data = excluded.data
	`)
	if err != nil {
		return fmt.Errorf("Save: prepare: %w", err)
	}
	defer stmt.Close()

	if _, err := stmt.Exec(snapshotKey, string(data)); err != nil {
		return fmt.Errorf("Save: exec: %w", err)
	}

	return nil
}
