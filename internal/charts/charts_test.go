package charts

import (
	"bytes"
	"testing"

	"outlay/internal/core"
)

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func TestDailyTrend(t *testing.T) {
	days := []core.DayAmount{
		{Date: core.NewDate(2024, 1, 1), Amount: core.Money{Cents: 1000}},
		{Date: core.NewDate(2024, 1, 2), Amount: core.Money{Cents: 2500}},
		{Date: core.NewDate(2024, 1, 5), Amount: core.Money{Cents: 300}},
	}

	var buf bytes.Buffer
	if err := DailyTrend(&buf, days); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), pngSignature) {
		t.Fatalf("output is not a PNG")
	}
}

func TestDailyTrendEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := DailyTrend(&buf, nil); err != nil {
		t.Fatalf("render empty: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatalf("expected a PNG even for an empty ledger")
	}
}

func TestCategoryBars(t *testing.T) {
	cats := []core.CategoryAmount{
		{Name: "Travel", Amount: core.Money{Cents: 2000}},
		{Name: "Food", Amount: core.Money{Cents: 1500}},
	}

	var buf bytes.Buffer
	if err := CategoryBars(&buf, cats); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), pngSignature) {
		t.Fatalf("output is not a PNG")
	}
}
