package csvfile

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"outlay/internal/core"
)

// Header is the required first row of a ledger file.
var Header = []string{"date", "category", "amount", "note"}

func encodeRecord(r core.Record) []string {
	return []string{r.Date.String(), r.Category, r.Amount.Decimal(), r.Note}
}

func parseRecord(fields []string) (core.Record, error) {
	if len(fields) < 3 {
		return core.Record{}, fmt.Errorf("expected at least 3 fields, got %d", len(fields))
	}
	date, err := core.ParseDate(fields[0])
	if err != nil {
		return core.Record{}, fmt.Errorf("date %q: %w", fields[0], err)
	}
	cents, err := core.ParseDecimalToCents(fields[2])
	if err != nil {
		return core.Record{}, fmt.Errorf("amount %q: %w", fields[2], err)
	}
	note := ""
	if len(fields) > 3 {
		note = fields[3]
	}
	r := core.Record{
		Date:     date,
		Category: strings.TrimSpace(fields[1]),
		Amount:   core.Money{Cents: cents},
		Note:     note,
	}
	if err := r.Validate(); err != nil {
		return core.Record{}, err
	}
	return r, nil
}

func isHeader(fields []string) bool {
	return len(fields) > 0 && strings.EqualFold(strings.TrimSpace(fields[0]), Header[0])
}

// Write serializes records in the ledger file format, header included.
// The export download uses it to emit the filtered view.
func Write(w io.Writer, records []core.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range records {
		if err := cw.Write(encodeRecord(r)); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
