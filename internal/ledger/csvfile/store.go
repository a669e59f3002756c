// Package csvfile implements the default ledger store: a flat CSV file
// with a header row, one record per line, append-only.
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"outlay/internal/core"
	"outlay/internal/ledger"
)

// Store reads and appends ledger records on a single CSV file. Writers
// within the process are serialized with a mutex; there is no
// cross-process locking.
type Store struct {
	mu      sync.Mutex
	path    string
	rows    int // data rows on disk, -1 until first scan
	skipped int // malformed rows dropped by the last load
}

var _ ledger.Store = (*Store)(nil)

func New(path string) *Store {
	return &Store{path: path, rows: -1}
}

// Append validates the record and writes it as a new row, creating the
// file with a header when absent. The returned reference is the 1-based
// row number.
func (s *Store) Append(ctx context.Context, r core.Record) (string, error) {
	if err := r.Validate(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.rows < 0 {
		if _, err := s.loadLocked(ctx); err != nil {
			return "", err
		}
	}

	if dir := filepath.Dir(s.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("create ledger directory: %w", err)
		}
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return "", fmt.Errorf("open ledger file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("stat ledger file: %w", err)
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(Header); err != nil {
			return "", fmt.Errorf("write header: %w", err)
		}
	}
	if err := w.Write(encodeRecord(r)); err != nil {
		return "", fmt.Errorf("write record: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush ledger file: %w", err)
	}

	s.rows++
	ref := fmt.Sprintf("csv:%d", s.rows)

	slog.InfoContext(ctx, "Record appended to ledger",
		"ref", ref,
		"date", r.Date.String(),
		"category", r.Category,
		"amount_cents", r.Amount.Cents)

	return ref, nil
}

// LoadAll returns every record in file order. A missing or empty file
// is an empty ledger. Malformed rows are skipped with a warning and
// counted.
func (s *Store) LoadAll(ctx context.Context) ([]core.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx)
}

// SkippedRows reports how many malformed rows the last load dropped.
func (s *Store) SkippedRows() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.skipped
}

func (s *Store) loadLocked(ctx context.Context) ([]core.Record, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		s.rows = 0
		s.skipped = 0
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open ledger file: %w", err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1 // tolerate short rows, parseRecord decides

	var records []core.Record
	skipped := 0
	line := 0
	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			skipped++
			slog.WarnContext(ctx, "Skipping unreadable ledger row", "line", line, "error", err)
			continue
		}
		if line == 1 && isHeader(fields) {
			continue
		}
		r, err := parseRecord(fields)
		if err != nil {
			skipped++
			slog.WarnContext(ctx, "Skipping malformed ledger row", "line", line, "error", err)
			continue
		}
		records = append(records, r)
	}

	s.rows = len(records)
	s.skipped = skipped
	return records, nil
}
