// Package period maps calendar points to the canonical string keys used for
// habit completion tracking. Daily habits are keyed by day, monthly habits by
// month.
package period

import "time"

type Cadence string

const (
	Daily   Cadence = "daily"
	Monthly Cadence = "monthly"
)

const (
	dayLayout   = "2006-01-02"
	monthLayout = "2006-01"
)

// Valid reports whether c is a known cadence.
func Valid(c Cadence) bool {
	return c == Daily || c == Monthly
}

// Key returns the completion key for t at the given cadence:
// YYYY-MM-DD for daily habits, YYYY-MM for monthly ones.
func Key(t time.Time, c Cadence) string {
	if c == Monthly {
		return t.Format(monthLayout)
	}
	return t.Format(dayLayout)
}

// Start truncates t to the beginning of its period.
func Start(t time.Time, c Cadence) time.Time {
	if c == Monthly {
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Prev steps one period back: a calendar day for daily habits, a calendar
// month for monthly ones. Callers walking period chains should start from
// Start(t, c) so that month-length normalization cannot skew the walk.
func Prev(t time.Time, c Cadence) time.Time {
	if c == Monthly {
		return t.AddDate(0, -1, 0)
	}
	return t.AddDate(0, 0, -1)
}
