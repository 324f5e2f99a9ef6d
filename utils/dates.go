// utils/dates.go
package utils

import "time"

// DateOnly normalizes a timestamp to a UTC calendar date. Route dates and
// last-visit dates are always stored in this form so equality and range
// comparisons behave the same across drivers.
func DateOnly(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DaysBetween counts whole calendar days from start to end. Both ends go
// through DateOnly so a stored UTC date and a local clock reading compare as
// calendar dates, not instants.
func DaysBetween(start, end time.Time) int {
	return int(DateOnly(end).Sub(DateOnly(start)).Hours() / 24)
}

// WeekStart returns the Monday of the week containing t.
func WeekStart(t time.Time) time.Time {
	day := DateOnly(t)
	offset := (int(day.Weekday()) + 6) % 7 // Monday=0 .. Sunday=6
	return day.AddDate(0, 0, -offset)
}

// WeekDates returns the ISO dates Monday through Sunday of the week containing t.
func WeekDates(t time.Time) []string {
	start := WeekStart(t)
	dates := make([]string, 0, 7)
	for i := 0; i < 7; i++ {
		dates = append(dates, start.AddDate(0, 0, i).Format(time.DateOnly))
	}
	return dates
}

// MonthDates returns every ISO date of the month containing t, first through
// last. Iterating while the month matches handles variable month lengths and
// leap years without a lookup table.
func MonthDates(t time.Time) []string {
	day := DateOnly(t)
	current := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
	var dates []string
	for current.Month() == day.Month() {
		dates = append(dates, current.Format(time.DateOnly))
		current = current.AddDate(0, 0, 1)
	}
	return dates
}
