// Package history records past searches.
package history

import (
	"fmt"
	"time"
)

// MemoryPath selects the in-memory backend.
const MemoryPath = ":memory:"

// Entry is one recorded search.
type Entry struct {
	Query      string    `json:"query"`
	Path       string    `json:"path"`
	IgnoreCase bool      `json:"ignore_case"`
	Matches    int       `json:"matches"`
	Files      int       `json:"files"`
	CreatedAt  time.Time `json:"created_at"`
}

// Store provides persistence for search history.
type Store interface {
	// Add records a search.
	Add(e Entry) error

	// Recent returns up to limit entries, newest first. A limit of zero or
	// less returns every entry.
	Recent(limit int) ([]Entry, error)

	// Close releases the backend.
	Close() error
}

// Config for store initialization.
type Config struct {
	// Path is the database file path.
	// Use ":memory:" for an in-memory store (useful for testing).
	Path string
}

// New creates a Store. ":memory:" returns a MemoryStore, any other path
// a SQLiteStore.
func New(cfg Config) (Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("path is required")
	}

	if cfg.Path == MemoryPath {
		return NewMemory(), nil
	}

	return NewSQLite(cfg.Path)
}
