package utils

import (
	"fmt"
	"time"
)

// Itinerary clock values are "HH:MM" strings (24h). Stored as minutes since
// midnight for ordering and overlap math.

func ParseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("bad clock value %q: %w", s, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

func FormatClock(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	minutes %= 24 * 60
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ParseClockOr returns fallback when s is empty or malformed. Planner output
// goes through here so a single bad time never sinks a whole day.
func ParseClockOr(s string, fallback int) int {
	m, err := ParseClock(s)
	if err != nil {
		return fallback
	}
	return m
}

func NowUnixSeconds() int64 { return time.Now().Unix() }

// ParseDate accepts the API's date-only format.
func ParseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func FormatRFC3339(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
