package ledger

import (
	"context"

	"outlay/internal/core"
)

// Ports for ledger store backends.
type (
	Appender interface {
		// Append validates and writes a new record, returning a
		// backend-specific reference for it.
		Append(ctx context.Context, r core.Record) (ref string, err error)
	}

	Loader interface {
		// LoadAll returns the full ledger in insertion order. A missing
		// or empty backing medium yields an empty slice, not an error.
		LoadAll(ctx context.Context) ([]core.Record, error)
	}

	// Store is the full set of operations the dashboard needs.
	Store interface {
		Appender
		Loader
	}
)
