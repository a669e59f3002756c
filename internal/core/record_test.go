package core

import (
	"strings"
	"testing"
	"time"
)

func TestDateValidate(t *testing.T) {
	cases := []struct {
		d  Date
		ok bool
	}{
		{NewDate(2024, 1, 1), true},
		{NewDate(2024, 12, 31), true},
		{Date{Time: time.Time{}}, false}, // zero time
	}
	for i, tc := range cases {
		err := tc.d.Validate()
		if tc.ok && err != nil {
			t.Fatalf("case %d expected ok, got %v", i, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-01-02")
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if d.String() != "2024-01-02" {
		t.Fatalf("round trip mismatch: %s", d.String())
	}
	if d.YearMonth() != "2024-01" {
		t.Fatalf("month key mismatch: %s", d.YearMonth())
	}
	if _, err := ParseDate("02/01/2024"); err == nil {
		t.Fatalf("expected error for bad format")
	}
}

func TestMoneyValidate(t *testing.T) {
	if err := (Money{Cents: 1}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Money{Cents: 0}).Validate(); err == nil {
		t.Fatalf("expected error for zero")
	}
	if err := (Money{Cents: -100}).Validate(); err == nil {
		t.Fatalf("expected error for negative")
	}
}

func TestRecordValidate(t *testing.T) {
	good := Record{
		Date:     NewDate(2024, 1, 1),
		Category: "Food",
		Amount:   Money{Cents: 1000},
		Note:     "lunch",
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	// Note is optional
	good.Note = ""
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok without note, got %v", err)
	}

	bads := []Record{
		{Date: Date{}, Category: "Food", Amount: Money{Cents: 1}},
		{Date: NewDate(2024, 1, 1), Category: "", Amount: Money{Cents: 1}},
		{Date: NewDate(2024, 1, 1), Category: "  ", Amount: Money{Cents: 1}},
		{Date: NewDate(2024, 1, 1), Category: "Food", Amount: Money{Cents: 0}},
		{Date: NewDate(2024, 1, 1), Category: "Food", Amount: Money{Cents: 1}, Note: strings.Repeat("x", 201)},
	}
	for i, r := range bads {
		if err := r.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}
