// Package library persists the user's collection: liked songs and
// playlists. The store treats the whole library as one opaque snapshot
// (load it, replace it) with no schema migration logic.
package library

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/velium/velium/internal/core"
	velerrors "github.com/velium/velium/internal/errors"
)

const libraryKey = "library"

const schema = `
CREATE TABLE IF NOT EXISTS snapshots (
	key   TEXT PRIMARY KEY,
	value BLOB NOT NULL
);`

// Store persists library snapshots in a SQLite key-value table.
type Store struct {
	db *sql.DB
}

// OpenStore opens (creating if needed) the library database at path.
// The path can be ":memory:" for an in-memory store.
func OpenStore(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			return nil, fmt.Errorf("failed to create library directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open library database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping library database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize library schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Load returns the current library snapshot. An empty library is returned
// when nothing has been saved yet.
func (s *Store) Load() (*core.Library, error) {
	var value []byte
	err := s.db.QueryRow(`SELECT value FROM snapshots WHERE key = ?`, libraryKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return &core.Library{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read library: %w", err)
	}

	var lib core.Library
	if err := json.Unmarshal(value, &lib); err != nil {
		return nil, fmt.Errorf("%w: %v", velerrors.ErrStoreCorrupt, err)
	}
	return &lib, nil
}

// Save replaces the stored library with the given snapshot.
func (s *Store) Save(lib *core.Library) error {
	value, err := json.Marshal(lib)
	if err != nil {
		return fmt.Errorf("failed to encode library: %w", err)
	}
	if _, err := s.db.Exec(
		`INSERT INTO snapshots (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		libraryKey, value,
	); err != nil {
		return fmt.Errorf("failed to write library: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
