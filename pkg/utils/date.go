package utils

import (
	"fmt"
	"time"
)

// ParseDate parses a YYYY-MM-DD date. An empty string yields the zero time.
func ParseDate(dateStr string) (time.Time, error) {
	if dateStr == "" {
		return time.Time{}, nil
	}

	date, err := time.Parse(time.DateOnly, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", dateStr)
	}

	return date, nil
}

// LastDays returns the inclusive range of n full days ending the day before ref.
func LastDays(ref time.Time, n int) (time.Time, time.Time) {
	if n < 1 {
		n = 1
	}
	day := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, time.UTC)
	end := day.AddDate(0, 0, -1)
	return end.AddDate(0, 0, -(n - 1)), end
}
