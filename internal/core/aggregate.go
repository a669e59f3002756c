package core

import "sort"

// Filter selects a subsequence of the ledger. Zero-value fields match
// everything, so the zero Filter returns the input unchanged.
type Filter struct {
	Category string // exact match, empty = all
	Month    string // YYYY-MM, empty = all
}

func (f Filter) Matches(r Record) bool {
	if f.Category != "" && r.Category != f.Category {
		return false
	}
	if f.Month != "" && r.Date.YearMonth() != f.Month {
		return false
	}
	return true
}

// FilterRecords returns the matching subsequence in original order.
func FilterRecords(records []Record, f Filter) []Record {
	if f == (Filter{}) {
		return records
	}
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if f.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}

// Summary holds the headline metrics for a filtered view.
type Summary struct {
	Total   Money
	Average Money
	Count   int
}

// Summarize computes total, count and the half-up rounded average.
// An empty input yields the zero Summary (average defined as 0).
func Summarize(records []Record) Summary {
	s := Summary{Count: len(records)}
	for _, r := range records {
		s.Total.Cents += r.Amount.Cents
	}
	if s.Count > 0 {
		n := int64(s.Count)
		s.Average.Cents = (s.Total.Cents + n/2) / n
	}
	return s
}

// CategoryAmount is an amount aggregated under a category name.
type CategoryAmount struct {
	Name   string
	Amount Money
}

// ByCategory sums amounts per category, largest first. Ties are ordered
// by name so renders are stable.
func ByCategory(records []Record) []CategoryAmount {
	sums := make(map[string]int64)
	for _, r := range records {
		sums[r.Category] += r.Amount.Cents
	}
	out := make([]CategoryAmount, 0, len(sums))
	for name, cents := range sums {
		out = append(out, CategoryAmount{Name: name, Amount: Money{Cents: cents}})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount.Cents != out[j].Amount.Cents {
			return out[i].Amount.Cents > out[j].Amount.Cents
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// DayAmount is the total spent on a single date.
type DayAmount struct {
	Date   Date
	Amount Money
}

// ByDay sums amounts per date, ascending by date, for the trend line.
func ByDay(records []Record) []DayAmount {
	sums := make(map[string]int64)
	dates := make(map[string]Date)
	for _, r := range records {
		key := r.Date.String()
		sums[key] += r.Amount.Cents
		dates[key] = r.Date
	}
	out := make([]DayAmount, 0, len(sums))
	for key, cents := range sums {
		out = append(out, DayAmount{Date: dates[key], Amount: Money{Cents: cents}})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date.Time)
	})
	return out
}

// MonthAmount is the total spent in a single YYYY-MM month.
type MonthAmount struct {
	Month  string
	Amount Money
}

// ByMonth sums amounts per month, ascending, for the monthly report.
func ByMonth(records []Record) []MonthAmount {
	sums := make(map[string]int64)
	for _, r := range records {
		sums[r.Date.YearMonth()] += r.Amount.Cents
	}
	out := make([]MonthAmount, 0, len(sums))
	for month, cents := range sums {
		out = append(out, MonthAmount{Month: month, Amount: Money{Cents: cents}})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// TopN returns the n largest records by amount, descending. Ties keep
// their original ledger order. Length is min(n, len(records)).
func TopN(records []Record, n int) []Record {
	if n < 0 {
		n = 0
	}
	out := make([]Record, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Amount.Cents > out[j].Amount.Cents
	})
	if n < len(out) {
		out = out[:n]
	}
	return out
}
