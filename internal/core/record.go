package core

import (
	"errors"
	"strings"
	"time"
)

type (
	// Date is a calendar date at UTC midnight.
	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// Record is a single ledger entry. Records are immutable once written:
	// the store only appends, never updates or deletes.
	Record struct {
		Date     Date
		Category string
		Amount   Money
		Note     string // optional
	}
)

var (
	ErrInvalidDate   = errors.New("invalid date")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrEmptyCategory = errors.New("empty category")
)

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a date in YYYY-MM-DD format.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// String returns the date in YYYY-MM-DD format.
func (d Date) String() string {
	return d.Format("2006-01-02")
}

// YearMonth returns the month key in YYYY-MM format, used by filters
// and monthly aggregation.
func (d Date) YearMonth() string {
	return d.Format("2006-01")
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (r Record) Validate() error {
	if err := r.Date.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(r.Category) == "" {
		return ErrEmptyCategory
	}
	if err := r.Amount.Validate(); err != nil {
		return err
	}
	if len(r.Note) > 200 {
		return errors.New("note too long (max 200 characters)")
	}
	return nil
}
