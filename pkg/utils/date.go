package utils

import (
	"fmt"
	"time"
)

// MustLoadLocation falls back to UTC when the tz database entry is
// missing instead of taking the process down.
func MustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// ParseClock parses "HH:MM" into minutes since midnight.
func ParseClock(value string) (int, error) {
	t, err := time.Parse("15:04", value)
	if err != nil {
		return 0, fmt.Errorf("invalid clock value %q: %w", value, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

func PrettyDate(date time.Time) string {
	return date.Format("02 Jan 2006 - 15:04 MST")
}
