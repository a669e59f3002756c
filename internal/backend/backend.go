// Package backend selects and constructs the ledger store named by
// configuration, so the dashboard never knows which medium backs it.
package backend

import (
	"fmt"

	"outlay/internal/ledger"
)

// Type names a ledger store implementation.
type Type string

const (
	CSV    Type = "csv"
	SQLite Type = "sqlite"
	Memory Type = "memory"
)

func (t Type) String() string { return string(t) }

// IsValid reports whether the backend type is known.
func (t Type) IsValid() bool {
	switch t {
	case CSV, SQLite, Memory:
		return true
	default:
		return false
	}
}

// Types returns every valid backend type.
func Types() []Type {
	return []Type{CSV, SQLite, Memory}
}

// CleanupFunc releases backend resources on shutdown.
type CleanupFunc func() error

// Result holds the constructed store and its optional cleanup.
type Result struct {
	Store   ledger.Store
	Cleanup CleanupFunc
}

// Config holds what the factory needs to build any backend.
type Config struct {
	Type         Type
	CSVPath      string
	SQLiteDBPath string
}

// Validate checks the config for the selected backend.
func (c Config) Validate() error {
	if !c.Type.IsValid() {
		return fmt.Errorf("invalid backend type: %s", c.Type)
	}
	switch c.Type {
	case CSV:
		if c.CSVPath == "" {
			return fmt.Errorf("CSV path is required for csv backend")
		}
	case SQLite:
		if c.SQLiteDBPath == "" {
			return fmt.Errorf("SQLite database path is required for sqlite backend")
		}
	}
	return nil
}
