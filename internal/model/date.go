package model

import "time"

// DateFormat is the wire format for calendar dates. Reservations carry no
// time-of-day component.
const DateFormat = "2006-01-02"

// Day normalizes t to midnight UTC so date comparisons are exact.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDay parses a YYYY-MM-DD calendar date.
func ParseDay(s string) (time.Time, error) {
	return time.Parse(DateFormat, s)
}

// FormatDay renders t as a YYYY-MM-DD calendar date.
func FormatDay(t time.Time) string {
	return t.Format(DateFormat)
}
