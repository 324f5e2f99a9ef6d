package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWeekStartIsMonday(t *testing.T) {
	wednesday := time.Date(2024, 4, 10, 18, 30, 0, 0, time.UTC)
	require.Equal(t, "2024-04-08", WeekStart(wednesday).Format(time.DateOnly))

	monday := time.Date(2024, 4, 8, 0, 0, 0, 0, time.UTC)
	require.Equal(t, "2024-04-08", WeekStart(monday).Format(time.DateOnly))

	sunday := time.Date(2024, 4, 14, 23, 59, 0, 0, time.UTC)
	require.Equal(t, "2024-04-08", WeekStart(sunday).Format(time.DateOnly))
}

func TestWeekDatesSpanSevenDays(t *testing.T) {
	dates := WeekDates(time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC))
	require.Len(t, dates, 7)
	require.Equal(t, "2024-04-08", dates[0])
	require.Equal(t, "2024-04-14", dates[6])
}

func TestMonthDatesVariableLengths(t *testing.T) {
	april := MonthDates(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC))
	require.Len(t, april, 30)
	require.Equal(t, "2024-04-01", april[0])
	require.Equal(t, "2024-04-30", april[29])

	leapFeb := MonthDates(time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC))
	require.Len(t, leapFeb, 29)

	december := MonthDates(time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC))
	require.Len(t, december, 31)
	require.Equal(t, "2023-12-31", december[30])
}

func TestDaysBetween(t *testing.T) {
	start := time.Date(2024, 4, 1, 23, 0, 0, 0, time.UTC)
	end := time.Date(2024, 4, 11, 1, 0, 0, 0, time.UTC)
	require.Equal(t, 10, DaysBetween(start, end))
}

func TestDaysBetweenMixedLocations(t *testing.T) {
	// Stored dates are UTC midnight; "now" arrives on a local clock.
	lastVisit := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	sydney := time.FixedZone("AEST", 10*3600)
	now := time.Date(2024, 4, 11, 8, 0, 0, 0, sydney)
	require.Equal(t, 10, DaysBetween(lastVisit, now))
}

func TestDateOnlyNormalizesToUTCMidnight(t *testing.T) {
	d := DateOnly(time.Date(2024, 4, 10, 18, 30, 45, 0, time.UTC))
	require.Equal(t, time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC), d)
}
