// Package sqlite implements a SQLite-backed ledger store. It serves as
// an alternate primary backend and as the archive the mirror worker
// writes into.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"outlay/internal/core"
	"outlay/internal/ledger"

	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

var _ ledger.Store = (*Store)(nil)

func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Append inserts a record and returns its row id.
func (s *Store) Append(ctx context.Context, r core.Record) (string, error) {
	if err := r.Validate(); err != nil {
		return "", err
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO records (date, category, amount_cents, note) VALUES (?, ?, ?, ?)`,
		r.Date.String(), r.Category, r.Amount.Cents, r.Note)
	if err != nil {
		return "", fmt.Errorf("insert record: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return "", fmt.Errorf("last insert id: %w", err)
	}

	slog.InfoContext(ctx, "Record saved to SQLite",
		"id", id,
		"date", r.Date.String(),
		"category", r.Category,
		"amount_cents", r.Amount.Cents)

	return strconv.FormatInt(id, 10), nil
}

// LoadAll returns every record ordered by insertion.
func (s *Store) LoadAll(ctx context.Context) ([]core.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT date, category, amount_cents, note FROM records ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var records []core.Record
	for rows.Next() {
		var (
			dateStr  string
			category string
			cents    int64
			note     string
		)
		if err := rows.Scan(&dateStr, &category, &cents, &note); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		date, err := core.ParseDate(dateStr)
		if err != nil {
			slog.WarnContext(ctx, "Skipping record with bad stored date", "date", dateStr, "error", err)
			continue
		}
		records = append(records, core.Record{
			Date:     date,
			Category: category,
			Amount:   core.Money{Cents: cents},
			Note:     note,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return records, nil
}

// Count returns the number of stored records. The mirror reconcile
// pass uses it to find how far the archive lags the ledger.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM records`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return n, nil
}
