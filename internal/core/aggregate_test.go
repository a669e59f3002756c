package core

import "testing"

// sampleLedger is the worked example: three records over two days and
// two categories.
func sampleLedger() []Record {
	return []Record{
		{Date: NewDate(2024, 1, 1), Category: "Food", Amount: Money{Cents: 1000}},
		{Date: NewDate(2024, 1, 2), Category: "Food", Amount: Money{Cents: 500}},
		{Date: NewDate(2024, 1, 2), Category: "Travel", Amount: Money{Cents: 2000}, Note: "train"},
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(sampleLedger())
	if s.Total.Cents != 3500 {
		t.Fatalf("expected total 3500, got %d", s.Total.Cents)
	}
	if s.Count != 3 {
		t.Fatalf("expected count 3, got %d", s.Count)
	}
	// 3500/3 = 1166.67, half-up to 1167
	if s.Average.Cents != 1167 {
		t.Fatalf("expected average 1167, got %d", s.Average.Cents)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.Total.Cents != 0 || s.Average.Cents != 0 || s.Count != 0 {
		t.Fatalf("expected zero summary, got %+v", s)
	}
}

func TestFilterRecords(t *testing.T) {
	recs := sampleLedger()

	all := FilterRecords(recs, Filter{})
	if len(all) != len(recs) {
		t.Fatalf("zero filter should keep all records, got %d", len(all))
	}

	food := FilterRecords(recs, Filter{Category: "Food"})
	if len(food) != 2 {
		t.Fatalf("expected 2 Food records, got %d", len(food))
	}
	// Original order preserved
	if food[0].Amount.Cents != 1000 || food[1].Amount.Cents != 500 {
		t.Fatalf("order not preserved: %+v", food)
	}

	jan := FilterRecords(recs, Filter{Month: "2024-01"})
	if len(jan) != 3 {
		t.Fatalf("expected 3 records for 2024-01, got %d", len(jan))
	}
	feb := FilterRecords(recs, Filter{Month: "2024-02"})
	if len(feb) != 0 {
		t.Fatalf("expected no records for 2024-02, got %d", len(feb))
	}

	both := FilterRecords(recs, Filter{Category: "Travel", Month: "2024-01"})
	if len(both) != 1 || both[0].Note != "train" {
		t.Fatalf("combined filter mismatch: %+v", both)
	}
}

func TestByCategory(t *testing.T) {
	cats := ByCategory(sampleLedger())
	if len(cats) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(cats))
	}
	// Largest first
	if cats[0].Name != "Travel" || cats[0].Amount.Cents != 2000 {
		t.Fatalf("expected Travel 2000 first, got %+v", cats[0])
	}
	if cats[1].Name != "Food" || cats[1].Amount.Cents != 1500 {
		t.Fatalf("expected Food 1500 second, got %+v", cats[1])
	}
}

func TestByDay(t *testing.T) {
	days := ByDay(sampleLedger())
	if len(days) != 2 {
		t.Fatalf("expected 2 days, got %d", len(days))
	}
	if days[0].Date.String() != "2024-01-01" || days[0].Amount.Cents != 1000 {
		t.Fatalf("day 0 mismatch: %+v", days[0])
	}
	if days[1].Date.String() != "2024-01-02" || days[1].Amount.Cents != 2500 {
		t.Fatalf("day 1 mismatch: %+v", days[1])
	}
}

func TestByMonth(t *testing.T) {
	recs := append(sampleLedger(),
		Record{Date: NewDate(2023, 12, 31), Category: "Food", Amount: Money{Cents: 700}})
	months := ByMonth(recs)
	if len(months) != 2 {
		t.Fatalf("expected 2 months, got %d", len(months))
	}
	if months[0].Month != "2023-12" || months[0].Amount.Cents != 700 {
		t.Fatalf("month 0 mismatch: %+v", months[0])
	}
	if months[1].Month != "2024-01" || months[1].Amount.Cents != 3500 {
		t.Fatalf("month 1 mismatch: %+v", months[1])
	}
}

func TestTopN(t *testing.T) {
	recs := sampleLedger()

	top1 := TopN(recs, 1)
	if len(top1) != 1 {
		t.Fatalf("expected 1 record, got %d", len(top1))
	}
	if top1[0].Category != "Travel" || top1[0].Amount.Cents != 2000 {
		t.Fatalf("expected Travel 2000, got %+v", top1[0])
	}

	// n larger than ledger: all records, descending
	all := TopN(recs, 10)
	if len(all) != 3 {
		t.Fatalf("expected 3 records, got %d", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i].Amount.Cents > all[i-1].Amount.Cents {
			t.Fatalf("not descending at %d: %+v", i, all)
		}
	}

	// Ties keep original ledger order
	tied := []Record{
		{Date: NewDate(2024, 1, 1), Category: "A", Amount: Money{Cents: 100}, Note: "first"},
		{Date: NewDate(2024, 1, 2), Category: "B", Amount: Money{Cents: 100}, Note: "second"},
	}
	got := TopN(tied, 2)
	if got[0].Note != "first" || got[1].Note != "second" {
		t.Fatalf("tie order not stable: %+v", got)
	}

	if len(TopN(recs, 0)) != 0 {
		t.Fatalf("expected empty for n=0")
	}

	// Input must not be reordered
	if recs[0].Category != "Food" || recs[2].Category != "Travel" {
		t.Fatalf("TopN mutated its input: %+v", recs)
	}
}
