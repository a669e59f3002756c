package backend

import (
	"fmt"
	"log/slog"

	"outlay/internal/ledger/csvfile"
	"outlay/internal/ledger/memory"
	"outlay/internal/ledger/sqlite"
)

// Factory creates ledger stores from configuration.
type Factory struct {
	logger *slog.Logger
}

func NewFactory(logger *slog.Logger) *Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &Factory{logger: logger}
}

// Create builds the store named by config.Type.
func (f *Factory) Create(config Config) (*Result, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Type {
	case CSV:
		store := csvfile.New(config.CSVPath)
		f.logger.Info("Initialized CSV ledger backend", "path", config.CSVPath)
		return &Result{Store: store}, nil

	case SQLite:
		store, err := sqlite.New(config.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite backend: %w", err)
		}
		f.logger.Info("Initialized SQLite ledger backend", "db_path", config.SQLiteDBPath)
		return &Result{Store: store, Cleanup: store.Close}, nil

	case Memory:
		store := memory.New()
		f.logger.Info("Initialized memory ledger backend")
		return &Result{Store: store}, nil

	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}
