// Package calendar handles the civil dates used by the visit log.
//
// Dates are "2006-01-02" strings with no time of day and no zone. They are
// parsed into UTC midnight purely as a carrier, so formatting and arithmetic
// never shift the day the way a local-time interpretation of a UTC timestamp
// would near midnight.
package calendar

import (
	"fmt"
	"time"
)

// Layout is the wire format of every date in the visit log.
const Layout = "2006-01-02"

// displayLayout renders dates as "Jan 4, 2024".
const displayLayout = "Jan 2, 2006"

// Parse parses a "2006-01-02" string into a civil date.
func Parse(s string) (time.Time, error) {
	t, err := time.ParseInLocation(Layout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("calendar.Parse: %q: %w", s, err)
	}
	return t, nil
}

// Valid reports whether s is a well-formed calendar date.
func Valid(s string) bool {
	_, err := Parse(s)
	return err == nil
}

// Format renders a date string as a short display date ("Jan 4, 2024").
// The empty string is the "no visits yet" sentinel and formats to "".
// Malformed input is returned unchanged so nothing is silently hidden.
func Format(s string) string {
	if s == "" {
		return ""
	}
	t, err := Parse(s)
	if err != nil {
		return s
	}
	return t.Format(displayLayout)
}

// WeekAfter returns the date exactly seven calendar days after s.
// No weekday anchoring is done: a Tuesday input yields a Tuesday.
func WeekAfter(s string) (string, error) {
	t, err := Parse(s)
	if err != nil {
		return "", fmt.Errorf("calendar.WeekAfter: %w", err)
	}
	return t.AddDate(0, 0, 7).Format(Layout), nil
}

// Compare orders two date strings by calendar value and returns -1, 0 or +1.
// Malformed dates (including "") are older than every valid date and equal
// to each other, which makes Compare a total order over all strings.
func Compare(a, b string) int {
	ta, errA := Parse(a)
	tb, errB := Parse(b)
	switch {
	case errA != nil && errB != nil:
		return 0
	case errA != nil:
		return -1
	case errB != nil:
		return 1
	}
	return ta.Compare(tb)
}
