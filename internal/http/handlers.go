package http

import (
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"slices"
	"sort"
	"time"

	"outlay/internal/charts"
	"outlay/internal/core"
	"outlay/internal/ledger/csvfile"
	"outlay/internal/mirror"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", "url", r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	months, err := s.ledgerMonths(r)
	if err != nil {
		slog.ErrorContext(r.Context(), "Ledger months error", "error", err)
	}

	f := parseFilter(r)
	// A bookmarked month may not exist in the ledger yet; keep it
	// selectable so the active filter is still visible.
	if f.Month != "" && !slices.Contains(months, f.Month) {
		months = append(months, f.Month)
		sort.Strings(months)
	}
	data := struct {
		Today      string
		Categories []string
		Months     []string
		Category   string
		Month      string
	}{
		Today:      time.Now().Format("2006-01-02"),
		Categories: s.categories,
		Months:     months,
		Category:   f.Category,
		Month:      f.Month,
	}

	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Index template execution failed", "error", err, "template", "index.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// ledgerMonths returns the distinct YYYY-MM keys present in the ledger,
// ascending, for the month filter selector.
func (s *Server) ledgerMonths(r *http.Request) ([]string, error) {
	records, err := s.store.LoadAll(r.Context())
	if err != nil {
		return nil, err
	}
	byMonth := core.ByMonth(records)
	months := make([]string, len(byMonth))
	for i, m := range byMonth {
		months[i] = m.Month
	}
	return months, nil
}

func (s *Server) handleCreateRecord(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(r.Context(), "Parse form error", "error", err, "method", r.Method, "url", r.URL.Path)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Invalid request format</div>`))
		return
	}

	date, err := core.ParseDate(r.Form.Get("date"))
	if err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Invalid or missing date</div>`))
		return
	}

	category := sanitizeInput(r.Form.Get("category"))
	note := sanitizeInput(r.Form.Get("note"))
	amountStr := sanitizeInput(r.Form.Get("amount"))

	cents, err := core.ParseDecimalToCents(amountStr)
	if err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Invalid amount</div>`))
		return
	}

	rec := core.Record{
		Date:     date,
		Category: category,
		Amount:   core.Money{Cents: cents},
		Note:     note,
	}
	if err := rec.Validate(); err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Invalid record: ` + template.HTMLEscapeString(err.Error()) + `</div>`))
		return
	}

	ref, err := s.store.Append(r.Context(), rec)
	if err != nil {
		slog.ErrorContext(r.Context(), "Record append error", "error", err, "category", rec.Category, "amount", rec.Amount.Cents)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<div class="error">Failed to save the expense</div>`))
		return
	}

	mirror.PublishAppend(r.Context(), s.publisher, rec, ref)

	// Every cached filter view may now be stale.
	s.overviewCache.Purge()

	w.Header().Set("HX-Trigger", `{"record:created": {"month": "`+rec.Date.YearMonth()+`"}}`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`<div class="success">Expense recorded (` + template.HTMLEscapeString(ref) + `): ` +
		template.HTMLEscapeString(rec.Category) +
		` — ` + template.HTMLEscapeString(formatEuros(rec.Amount.Cents)) +
		` on ` + template.HTMLEscapeString(rec.Date.String()) + `</div>`))
}

// handleExport streams the filtered view in the ledger's own CSV format.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	f := parseFilter(r)
	records, err := s.store.LoadAll(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Export load error", "error", err)
		http.Error(w, "failed to load ledger", http.StatusInternalServerError)
		return
	}
	filtered := core.FilterRecords(records, f)

	name := "expenses"
	if f.Month != "" {
		name += "-" + f.Month
	}
	if f.Category != "" {
		name += "-" + f.Category
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+".csv"))

	if err := csvfile.Write(w, filtered); err != nil {
		slog.ErrorContext(r.Context(), "Export write error", "error", err)
	}
}

func (s *Server) handleDailyChart(w http.ResponseWriter, r *http.Request) {
	s.renderChart(w, r, func(records []core.Record) error {
		return charts.DailyTrend(w, core.ByDay(records))
	})
}

func (s *Server) handleCategoryChart(w http.ResponseWriter, r *http.Request) {
	s.renderChart(w, r, func(records []core.Record) error {
		return charts.CategoryBars(w, core.ByCategory(records))
	})
}

func (s *Server) renderChart(w http.ResponseWriter, r *http.Request, render func([]core.Record) error) {
	records, err := s.store.LoadAll(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Chart load error", "error", err)
		http.Error(w, "failed to load ledger", http.StatusInternalServerError)
		return
	}
	filtered := core.FilterRecords(records, parseFilter(r))

	w.Header().Set("Content-Type", "image/png")
	if err := render(filtered); err != nil {
		slog.ErrorContext(r.Context(), "Chart render error", "error", err, "url", r.URL.Path)
	}
}

const topSpendCount = 5

type (
	categoryRow struct {
		Name   string
		Amount string
		Width  int // percent of the largest category, for the bars
	}
	dayRow struct {
		Date   string
		Amount string
	}
	monthRow struct {
		Month  string
		Amount string
	}
	recordRow struct {
		Date     string
		Category string
		Amount   string
		Note     string
	}

	overviewView struct {
		Category string
		Month    string
		Total    string
		Average  string
		Count    int
		Skipped  int
		Rows     []categoryRow
		Days     []dayRow
		Months   []monthRow
		Top      []recordRow
		Records  []recordRow
	}
)

// handleOverview renders the aggregate partial for the current filter.
func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	f := parseFilter(r)
	view, err := s.getOverview(r, f)
	if err != nil {
		slog.ErrorContext(r.Context(), "Overview error", "error", err, "category", f.Category, "month", f.Month)
		_, _ = w.Write([]byte(`<section id="overview" class="overview"><div class="placeholder">Failed to load the overview</div></section>`))
		return
	}

	if s.templates == nil {
		_, _ = w.Write([]byte(`<section id="overview" class="overview"><div class="placeholder">Total: ` + view.Total + `</div></section>`))
		return
	}
	if err := s.templates.ExecuteTemplate(w, "overview.html", view); err != nil {
		slog.ErrorContext(r.Context(), "Template execution error", "error", err, "template", "overview.html")
		_, _ = w.Write([]byte(`<section id="overview" class="overview"><div class="placeholder">Failed to render the overview</div></section>`))
	}
}

func (s *Server) getOverview(r *http.Request, f core.Filter) (overviewView, error) {
	key := f.Category + "|" + f.Month
	if view, found := s.overviewCache.Get(key); found {
		slog.DebugContext(r.Context(), "Overview cache hit", "category", f.Category, "month", f.Month)
		return view, nil
	}

	records, err := s.store.LoadAll(r.Context())
	if err != nil {
		return overviewView{}, fmt.Errorf("load ledger: %w", err)
	}
	filtered := core.FilterRecords(records, f)
	view := buildOverview(f, filtered)

	// The CSV backend counts rows it had to drop; surface that.
	if sk, ok := s.store.(interface{ SkippedRows() int }); ok {
		view.Skipped = sk.SkippedRows()
	}

	s.overviewCache.Set(key, view)
	slog.DebugContext(r.Context(), "Overview cached", "category", f.Category, "month", f.Month, "count", view.Count)
	return view, nil
}

func buildOverview(f core.Filter, records []core.Record) overviewView {
	summary := core.Summarize(records)
	view := overviewView{
		Category: f.Category,
		Month:    f.Month,
		Total:    formatEuros(summary.Total.Cents),
		Average:  formatEuros(summary.Average.Cents),
		Count:    summary.Count,
	}

	cats := core.ByCategory(records)
	var maxCents int64
	for _, c := range cats {
		if c.Amount.Cents > maxCents {
			maxCents = c.Amount.Cents
		}
	}
	for _, c := range cats {
		width := 0
		if maxCents > 0 && c.Amount.Cents > 0 {
			width = int((c.Amount.Cents*100 + maxCents/2) / maxCents) // rounded percent
			if width < 2 {
				width = 2
			}
			if width > 100 {
				width = 100
			}
		}
		view.Rows = append(view.Rows, categoryRow{Name: c.Name, Amount: formatEuros(c.Amount.Cents), Width: width})
	}

	for _, d := range core.ByDay(records) {
		view.Days = append(view.Days, dayRow{Date: d.Date.String(), Amount: formatEuros(d.Amount.Cents)})
	}
	for _, m := range core.ByMonth(records) {
		view.Months = append(view.Months, monthRow{Month: m.Month, Amount: formatEuros(m.Amount.Cents)})
	}
	for _, t := range core.TopN(records, topSpendCount) {
		view.Top = append(view.Top, recordRow{
			Date:     t.Date.String(),
			Category: t.Category,
			Amount:   formatEuros(t.Amount.Cents),
			Note:     t.Note,
		})
	}

	// Individual entries, most recent append first.
	for i := len(records) - 1; i >= 0; i-- {
		r := records[i]
		view.Records = append(view.Records, recordRow{
			Date:     r.Date.String(),
			Category: r.Category,
			Amount:   formatEuros(r.Amount.Cents),
			Note:     r.Note,
		})
	}

	return view
}
