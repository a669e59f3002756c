// Package charts renders the dashboard's PNG charts from aggregated
// ledger data.
package charts

import (
	"fmt"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"outlay/internal/core"
)

const (
	chartWidth  = 7 * vg.Inch
	chartHeight = 4 * vg.Inch
)

// DailyTrend renders the day-by-day spending line as a PNG.
func DailyTrend(w io.Writer, days []core.DayAmount) error {
	p := plot.New()
	p.Title.Text = "Daily Spending"
	p.X.Label.Text = "Date"
	p.Y.Label.Text = "Amount"
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01-02"}

	pts := make(plotter.XYs, len(days))
	for i, d := range days {
		pts[i].X = float64(d.Date.Unix())
		pts[i].Y = float64(d.Amount.Cents) / 100.0
	}

	if err := plotutil.AddLinePoints(p, "Spent", pts); err != nil {
		return fmt.Errorf("add line points: %w", err)
	}

	return writePNG(w, p)
}

// CategoryBars renders per-category totals as a PNG bar chart.
func CategoryBars(w io.Writer, cats []core.CategoryAmount) error {
	p := plot.New()
	p.Title.Text = "Spending by Category"
	p.Y.Label.Text = "Amount"

	values := make(plotter.Values, len(cats))
	names := make([]string, len(cats))
	for i, c := range cats {
		values[i] = float64(c.Amount.Cents) / 100.0
		names[i] = c.Name
	}

	bars, err := plotter.NewBarChart(values, vg.Points(25))
	if err != nil {
		return fmt.Errorf("new bar chart: %w", err)
	}
	bars.LineStyle.Width = 0
	bars.Color = plotutil.Color(0)

	p.Add(bars)
	p.NominalX(names...)

	return writePNG(w, p)
}

func writePNG(w io.Writer, p *plot.Plot) error {
	wt, err := p.WriterTo(chartWidth, chartHeight, "png")
	if err != nil {
		return fmt.Errorf("create png writer: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	return nil
}
