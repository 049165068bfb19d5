package schedule

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for all dates accepted and produced by the
// engine. Dates carry no time component; internally they are pinned to noon
// UTC so day arithmetic never crosses a timezone boundary.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string into a time.Time at 12:00 UTC.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Normalize(d), nil
}

// FormatDate serializes a date back to YYYY-MM-DD.
func FormatDate(d time.Time) string {
	return d.UTC().Format(DateLayout)
}

// Normalize pins a time to noon UTC on the same calendar day.
func Normalize(d time.Time) time.Time {
	d = d.UTC()
	return time.Date(d.Year(), d.Month(), d.Day(), 12, 0, 0, 0, time.UTC)
}

// SameDay reports whether two times fall on the same calendar day in UTC.
func SameDay(a, b time.Time) bool {
	return FormatDate(a) == FormatDate(b)
}

// InRange reports whether d falls within [start, end] inclusive. A zero
// start or end leaves that side unbounded.
func InRange(d, start, end time.Time) bool {
	if !start.IsZero() && d.Before(start) {
		return false
	}
	if !end.IsZero() && d.After(end) {
		return false
	}
	return true
}

// DaysBetween returns the whole number of days from a to b. Negative when b
// precedes a. Both inputs are expected normalized.
func DaysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}

// MonthsBetween returns the number of calendar months from a to b, ignoring
// the day-of-month. Negative when b precedes a.
func MonthsBetween(a, b time.Time) int {
	return (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
}
