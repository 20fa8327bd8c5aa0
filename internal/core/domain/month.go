package domain

import (
	"fmt"
	"time"
)

// Month is a calendar month in a specific location.
type Month struct {
	Year  int
	Month time.Month
	Loc   *time.Location
}

// MonthOf returns the calendar month containing t, in t's location.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month(), Loc: t.Location()}
}

// ParseMonth parses a "YYYY-MM" key in loc. A nil loc means UTC.
func ParseMonth(s string, loc *time.Location) (Month, error) {
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation("2006-01", s, loc)
	if err != nil {
		return Month{}, fmt.Errorf("invalid month %q, expected YYYY-MM: %w", s, err)
	}
	return MonthOf(t), nil
}

func (m Month) location() *time.Location {
	if m.Loc == nil {
		return time.UTC
	}
	return m.Loc
}

// Start is the first instant of the month.
func (m Month) Start() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, m.location())
}

// End is the last instant of the month (inclusive bound).
func (m Month) End() time.Time {
	return m.Start().AddDate(0, 1, 0).Add(-time.Nanosecond)
}

// Contains reports whether t falls in [Start, End].
func (m Month) Contains(t time.Time) bool {
	return !t.Before(m.Start()) && !t.After(m.End())
}

// AddMonths shifts the month by n (negative goes back).
func (m Month) AddMonths(n int) Month {
	shifted := m.Start().AddDate(0, n, 0)
	return Month{Year: shifted.Year(), Month: shifted.Month(), Loc: m.location()}
}

// Key is the "YYYY-MM" form.
func (m Month) Key() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Label is the salary manifest key form, e.g. "March 2025".
func (m Month) Label() string {
	return fmt.Sprintf("%s %d", m.Month.String(), m.Year)
}
