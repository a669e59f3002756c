package csvfile

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"outlay/internal/core"
)

func testRecord(day int, category string, cents int64, note string) core.Record {
	return core.Record{
		Date:     core.NewDate(2024, 1, day),
		Category: category,
		Amount:   core.Money{Cents: cents},
		Note:     note,
	}
}

func TestAppendCreatesFileWithHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.csv")
	s := New(path)

	ref, err := s.Append(context.Background(), testRecord(1, "Food", 1000, ""))
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if ref != "csv:1" {
		t.Fatalf("expected ref csv:1, got %s", ref)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 row, got %d lines", len(lines))
	}
	if lines[0] != "date,category,amount,note" {
		t.Fatalf("unexpected header: %s", lines[0])
	}
	if lines[1] != "2024-01-01,Food,10.00," {
		t.Fatalf("unexpected row: %s", lines[1])
	}
}

func TestAppendThenLoadLast(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "ledger.csv"))
	ctx := context.Background()

	if _, err := s.Append(ctx, testRecord(1, "Food", 1000, "")); err != nil {
		t.Fatalf("append: %v", err)
	}
	last := testRecord(2, "Travel", 2000, "train")
	if _, err := s.Append(ctx, last); err != nil {
		t.Fatalf("append: %v", err)
	}

	records, err := s.LoadAll(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[1] != last {
		t.Fatalf("expected appended record as last element, got %+v", records[1])
	}
}

func TestLoadMissingFileIsEmptyLedger(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "nope.csv"))
	records, err := s.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("expected nil error for missing file, got %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected empty ledger, got %d records", len(records))
	}
}

func TestLoadSkipsMalformedRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.csv")
	content := strings.Join([]string{
		"date,category,amount,note",
		"2024-01-01,Food,10.00,",
		"not-a-date,Food,5.00,",
		"2024-01-02,Food,zero,",
		"2024-01-02,Travel,-3.00,",
		"2024-01-03,Bills,7.50,rent",
	}, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	s := New(path)
	records, err := s.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 valid records, got %d", len(records))
	}
	if s.SkippedRows() != 3 {
		t.Fatalf("expected 3 skipped rows, got %d", s.SkippedRows())
	}
	if records[1].Note != "rent" {
		t.Fatalf("expected valid rows kept in order, got %+v", records)
	}
}

func TestAppendRejectsInvalidRecord(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "ledger.csv"))
	_, err := s.Append(context.Background(), core.Record{
		Date:     core.NewDate(2024, 1, 1),
		Category: "Food",
		Amount:   core.Money{Cents: 0},
	})
	if err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestWriteExportRoundTrip(t *testing.T) {
	records := []core.Record{
		testRecord(1, "Food", 1000, ""),
		testRecord(2, "Travel", 2000, "with, comma"),
	}

	var buf bytes.Buffer
	if err := Write(&buf, records); err != nil {
		t.Fatalf("write: %v", err)
	}

	path := filepath.Join(t.TempDir(), "export.csv")
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	got, err := New(path).LoadAll(context.Background())
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(got) != len(records) {
		t.Fatalf("expected %d records, got %d", len(records), len(got))
	}
	for i := range records {
		if got[i] != records[i] {
			t.Fatalf("record %d mismatch: %+v vs %+v", i, got[i], records[i])
		}
	}
}
