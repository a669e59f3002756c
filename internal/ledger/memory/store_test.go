package memory

import (
	"context"
	"testing"

	"outlay/internal/core"
)

func TestAppendAndLoad(t *testing.T) {
	s := New()
	ctx := context.Background()

	ref, err := s.Append(ctx, core.Record{
		Date:     core.NewDate(2024, 1, 1),
		Category: "Food",
		Amount:   core.Money{Cents: 1000},
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if ref != "mem:1" {
		t.Fatalf("expected mem:1, got %s", ref)
	}

	records, err := s.LoadAll(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(records) != 1 || records[0].Category != "Food" {
		t.Fatalf("unexpected records: %+v", records)
	}

	// The returned slice is a copy
	records[0].Category = "mutated"
	again, _ := s.LoadAll(ctx)
	if again[0].Category != "Food" {
		t.Fatalf("LoadAll leaked internal state")
	}
}

func TestAppendValidates(t *testing.T) {
	s := New()
	if _, err := s.Append(context.Background(), core.Record{}); err == nil {
		t.Fatalf("expected validation error")
	}
}
