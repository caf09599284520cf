// Package stats holds the pure computations over habit snapshots:
// current streaks, aggregate statistics, and the weekly series. Nothing
// here owns state; callers pass the full entry list and a reference
// instant on every call.
package stats

import (
	"time"

	"habitchain/internal/dates"
	"habitchain/internal/model"
)

// doneDays collects the set of day keys on which habitID was completed.
// The store guarantees at most one entry per (habit, day), but the set
// dedupes anyway rather than relying on it.
func doneDays(habitID string, entries []model.Entry) map[string]struct{} {
	days := make(map[string]struct{})
	for _, e := range entries {
		if e.HabitID == habitID && e.Done {
			days[e.Date] = struct{}{}
		}
	}
	return days
}

// Streak returns the habit's current consecutive-day streak anchored at
// now. A habit completed yesterday but not yet today still counts as a
// live streak: the streak starts at 1 and counting resumes from the day
// before yesterday. This grace day is deliberate product behavior, not
// an off-by-one.
func Streak(habitID string, entries []model.Entry, now time.Time) int {
	days := doneDays(habitID, entries)
	if len(days) == 0 {
		return 0
	}

	cursor := now
	streak := 0

	if _, ok := days[dates.DayKey(cursor)]; ok {
		streak = 1
		cursor = dates.OffsetDays(cursor, -1)
	} else if _, ok := days[dates.DayKey(dates.OffsetDays(now, -1))]; ok {
		streak = 1
		cursor = dates.OffsetDays(now, -2)
	} else {
		return 0
	}

	for {
		if _, ok := days[dates.DayKey(cursor)]; !ok {
			return streak
		}
		streak++
		cursor = dates.OffsetDays(cursor, -1)
	}
}
