package tracker

import (
	"fmt"
	"time"
)

const (
	// ISODateLayout is the accepted input format for exercise dates.
	ISODateLayout = "2006-01-02"
	// DisplayDateLayout is the human-readable rendering of a calendar date,
	// e.g. "Sun Jan 15 2023".
	DisplayDateLayout = "Mon Jan 02 2006"
)

// ParseDate parses an ISO-8601 calendar date (YYYY-MM-DD) into a UTC
// midnight time.Time.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(ISODateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t.UTC(), nil
}

// FormatDate renders a calendar date in the fixed display format.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DisplayDateLayout)
}

// Today returns the current calendar date, truncated to UTC midnight.
func Today() time.Time {
	return time.Now().UTC().Truncate(24 * time.Hour)
}
