// Package datetime provides date and time utility functions.
package datetime

import (
	"strings"
	"time"

	"github.com/fagmotorssistemas/KsiNuevos-Frontend-sub001/pkg/constants"
)

const (
	// DateLayout is the format expected in requests and config files and is
	// also the output date format.
	DateLayout = constants.DateLayout
)

// MustParseTime parses a date string using the given layout and panics on error.
// This is intended for use in tests where the date string is known to be valid.
func MustParseTime(layout, dateStr string) time.Time {
	t, err := time.Parse(layout, dateStr)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseDate parses a YYYY-MM-DD date. An empty string yields the zero time
// and no error so callers can fall back to a default.
func ParseDate(date string) (time.Time, error) {
	trimmed := strings.TrimSpace(date)
	if trimmed == "" {
		return time.Time{}, nil
	}
	return time.Parse(DateLayout, trimmed)
}

// Truncate drops the time-of-day component, keeping the location.
func Truncate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// AddMonths moves t forward by the given number of calendar months. When the
// target month is shorter than the source day, the result is clamped to the
// last day of the target month (Jan 31 + 1 month = Feb 28/29).
func AddMonths(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(months), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	if last := DaysIn(first); d > last {
		d = last
	}
	return first.AddDate(0, 0, d-1)
}

// DaysIn returns the number of days in the month of t.
func DaysIn(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}

// FormatDate renders a date in the shared layout.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
