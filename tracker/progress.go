package tracker

import (
	"math"
	"time"

	"github.com/adarshh247/ListIT-doIT/models"
	"github.com/adarshh247/ListIT-doIT/period"
)

// Streak counts consecutive completed periods ending at (or just before)
// ref. An incomplete current period is skipped without breaking the chain,
// so "done every day through yesterday" still scores. The walk stops at the
// first missing key, bounded by the size of the completion map.
func Streak(h models.Habit, ref time.Time) int {
	cursor := period.Start(ref, h.Cadence)
	if !h.IsComplete(period.Key(cursor, h.Cadence)) {
		cursor = period.Prev(cursor, h.Cadence)
	}

	streak := 0
	for h.IsComplete(period.Key(cursor, h.Cadence)) {
		streak++
		cursor = period.Prev(cursor, h.Cadence)
	}
	return streak
}

// ProgressFractions returns, per column, the percentage of habits completed
// at that column's period key, rounded to the nearest integer. An empty
// habit set yields all zeros.
func ProgressFractions(habits []models.Habit, columns []time.Time) []int {
	fractions := make([]int, len(columns))
	if len(habits) == 0 {
		return fractions
	}

	for i, col := range columns {
		complete := 0
		for _, h := range habits {
			if h.IsComplete(period.Key(col, h.Cadence)) {
				complete++
			}
		}
		fractions[i] = int(math.Round(100 * float64(complete) / float64(len(habits))))
	}
	return fractions
}

// Columns enumerates the n most recent periods ending at ref, oldest first:
// the time axis of the completion grid.
func Columns(ref time.Time, cadence period.Cadence, n int) []time.Time {
	if n <= 0 {
		return nil
	}

	cols := make([]time.Time, n)
	cursor := period.Start(ref, cadence)
	for i := n - 1; i >= 0; i-- {
		cols[i] = cursor
		cursor = period.Prev(cursor, cadence)
	}
	return cols
}
