package schedule

import (
	"time"
)

// Frequency describes how often a transaction template fires.
type Frequency string

const (
	FrequencyOnce      Frequency = "once"
	FrequencyWeekly    Frequency = "weekly"
	FrequencyBiWeekly  Frequency = "bi-weekly"
	FrequencyMonthly   Frequency = "monthly"
	FrequencyQuarterly Frequency = "quarterly"
	FrequencyYearly    Frequency = "yearly"
)

// monthlyDays are the fixed calendar days a monthly template fires on,
// independent of its anchor day.
var monthlyDays = []int{1, 15}

// Known reports whether f is one of the supported frequencies. Callers treat
// unknown frequencies as never-occurring rather than failing.
func (f Frequency) Known() bool {
	switch f {
	case FrequencyOnce, FrequencyWeekly, FrequencyBiWeekly,
		FrequencyMonthly, FrequencyQuarterly, FrequencyYearly:
		return true
	}
	return false
}

// Dates generates the ascending dates on which a template with the given
// frequency fires, anchored at anchor, up to and including end.
//
// Anchored frequencies (once, weekly, bi-weekly, quarterly, yearly) step from
// the anchor itself. Monthly ignores the anchor's day-of-month and fires on
// the 1st and 15th of every month between anchor and end.
func Dates(f Frequency, anchor, end time.Time) []time.Time {
	anchor = Normalize(anchor)
	end = Normalize(end)

	switch f {
	case FrequencyOnce:
		if anchor.After(end) {
			return nil
		}
		return []time.Time{anchor}
	case FrequencyWeekly:
		return stepDays(anchor, end, 7)
	case FrequencyBiWeekly:
		return stepDays(anchor, end, 14)
	case FrequencyMonthly:
		return monthlyDates(anchor, end)
	case FrequencyQuarterly:
		return stepMonths(anchor, end, 3)
	case FrequencyYearly:
		return stepMonths(anchor, end, 12)
	}
	return nil
}

// FiresOn reports whether a template with the given frequency, anchored at
// anchor, fires on date. Date and anchor are expected normalized. Unknown
// frequencies never fire.
func FiresOn(f Frequency, anchor, date time.Time) bool {
	switch f {
	case FrequencyOnce:
		// Activity already pins a once template to its anchor date.
		return true
	case FrequencyWeekly:
		diff := DaysBetween(anchor, date)
		return diff >= 0 && diff%7 == 0
	case FrequencyBiWeekly:
		diff := DaysBetween(anchor, date)
		return diff >= 0 && diff%14 == 0
	case FrequencyMonthly:
		for _, day := range monthlyDays {
			if date.Day() == day {
				return true
			}
		}
		return false
	case FrequencyQuarterly:
		months := MonthsBetween(anchor, date)
		return months >= 0 && months%3 == 0 && date.Day() == anchor.Day()
	case FrequencyYearly:
		return date.Year() >= anchor.Year() &&
			date.Month() == anchor.Month() && date.Day() == anchor.Day()
	}
	return false
}

func stepDays(anchor, end time.Time, step int) []time.Time {
	var dates []time.Time
	for d := anchor; !d.After(end); d = d.AddDate(0, 0, step) {
		dates = append(dates, d)
	}
	return dates
}

// stepMonths uses calendar month arithmetic from the anchor. Each step is
// computed from the anchor rather than the previous date so a day-of-month
// shift in a short month does not compound.
func stepMonths(anchor, end time.Time, step int) []time.Time {
	var dates []time.Time
	for i := 0; ; i += step {
		d := Normalize(anchor.AddDate(0, i, 0))
		if d.After(end) {
			return dates
		}
		dates = append(dates, d)
	}
}

func monthlyDates(start, end time.Time) []time.Time {
	var dates []time.Time
	// Walk first-of-month so AddDate never skips a short month.
	first := time.Date(start.Year(), start.Month(), 1, 12, 0, 0, 0, time.UTC)
	for cursor := first; !cursor.After(end); cursor = cursor.AddDate(0, 1, 0) {
		for _, day := range monthlyDays {
			d := time.Date(cursor.Year(), cursor.Month(), day, 12, 0, 0, 0, time.UTC)
			if !d.Before(start) && !d.After(end) {
				dates = append(dates, d)
			}
		}
	}
	return dates
}
