// Package timezone provides day-boundary helpers for the kioku server.
//
// Every operation that reasons about "today" (due counts, daily buckets,
// streaks) goes through this package with the single location configured on
// the profile, so local and UTC day boundaries are never mixed.
package timezone

import (
	"fmt"
	"time"
)

// DateLayout is the canonical calendar-date format used in API payloads.
const DateLayout = "2006-01-02"

// ParseTimezone parses an IANA timezone identifier (e.g., "Asia/Tokyo").
// If the timezone is invalid, returns UTC and an error.
func ParseTimezone(tz string) (*time.Location, error) {
	if tz == "" || tz == "UTC" {
		return time.UTC, nil
	}

	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.UTC, fmt.Errorf("invalid timezone %q: %w", tz, err)
	}

	return loc, nil
}

// StartOfDay returns the start of the day (00:00:00) in the given timezone.
func StartOfDay(t time.Time, tz *time.Location) time.Time {
	if tz == nil {
		tz = time.UTC
	}
	tt := t.In(tz)
	return time.Date(tt.Year(), tt.Month(), tt.Day(), 0, 0, 0, 0, tz)
}

// EndOfDay returns the end of the day (23:59:59.999999999) in the given timezone.
func EndOfDay(t time.Time, tz *time.Location) time.Time {
	if tz == nil {
		tz = time.UTC
	}
	tt := t.In(tz)
	return time.Date(tt.Year(), tt.Month(), tt.Day(), 23, 59, 59, 999999999, tz)
}

// DateOf converts a Unix timestamp to its calendar date in the given timezone,
// normalized to midnight. Two timestamps on the same local day map to the
// same value.
func DateOf(ts int64, tz *time.Location) time.Time {
	return StartOfDay(time.Unix(ts, 0), tz)
}

// FormatDate formats a time as a calendar date string.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
