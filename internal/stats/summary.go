package stats

import (
	"math"
	"sort"
	"time"

	"habitchain/internal/dates"
	"habitchain/internal/model"
)

// windowDays is the trailing window for the completion rate, inclusive
// of today.
const windowDays = 30

// Summary holds the aggregate statistics shown on the statistics view.
type Summary struct {
	// ActiveDays is the number of distinct days with at least one
	// completed habit. A day with three completions counts once.
	ActiveDays int

	// LongestStreak is the best consecutive-day run across all habits.
	LongestStreak int

	// CompletionRate is the integer percentage of (habit x day) slots
	// completed over the trailing window. Zero when there are no habits.
	CompletionRate int
}

// Summarize computes the aggregate statistics for all habits and entries
// relative to now.
func Summarize(habits []model.Habit, entries []model.Entry, now time.Time) Summary {
	return Summary{
		ActiveDays:     ActiveDays(entries),
		LongestStreak:  LongestStreak(habits, entries),
		CompletionRate: CompletionRate(len(habits), entries, now),
	}
}

// ActiveDays counts distinct day keys with a completed entry.
func ActiveDays(entries []model.Entry) int {
	days := make(map[string]struct{})
	for _, e := range entries {
		if e.Done {
			days[e.Date] = struct{}{}
		}
	}
	return len(days)
}

// LongestStreak scans each habit's completed days in chronological order
// and returns the longest run of exactly-one-day gaps seen anywhere. A
// habit with no completed days contributes 0; a single day contributes 1.
func LongestStreak(habits []model.Habit, entries []model.Entry) int {
	longest := 0
	for _, h := range habits {
		days := doneDays(h.ID, entries)
		if len(days) == 0 {
			continue
		}

		sorted := make([]string, 0, len(days))
		for d := range days {
			sorted = append(sorted, d)
		}
		sort.Strings(sorted)

		run := 1
		best := 1
		for i := 1; i < len(sorted); i++ {
			gap, err := dates.DayDiff(sorted[i-1], sorted[i])
			if err == nil && gap == 1 {
				run++
				if run > best {
					best = run
				}
			} else {
				run = 1
			}
		}
		if best > longest {
			longest = best
		}
	}
	return longest
}

// CompletionRate returns round(completed / (habitCount * windowDays) * 100)
// over the window ending at now. Defined as 0 when there are no habits.
func CompletionRate(habitCount int, entries []model.Entry, now time.Time) int {
	possible := habitCount * windowDays
	if possible == 0 {
		return 0
	}

	window := make(map[string]struct{}, windowDays)
	for i := 0; i < windowDays; i++ {
		window[dates.DayKey(dates.OffsetDays(now, -i))] = struct{}{}
	}

	completed := 0
	for _, e := range entries {
		if !e.Done {
			continue
		}
		if _, ok := window[e.Date]; ok {
			completed++
		}
	}

	return int(math.Round(float64(completed) / float64(possible) * 100))
}
