package stats

import (
	"testing"
	"time"

	"habitchain/internal/model"
)

func localDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.Local)
}

func doneEntries(habitID string, days ...string) []model.Entry {
	entries := make([]model.Entry, 0, len(days))
	for _, d := range days {
		entries = append(entries, model.Entry{HabitID: habitID, Date: d, Done: true})
	}
	return entries
}

func TestStreakNoEntries(t *testing.T) {
	if got := Streak("h1", nil, localDate(2024, 1, 3)); got != 0 {
		t.Errorf("Streak with no entries = %d, want 0", got)
	}
}

func TestStreakTodayOnly(t *testing.T) {
	entries := doneEntries("h1", "2024-01-03")
	if got := Streak("h1", entries, localDate(2024, 1, 3)); got != 1 {
		t.Errorf("Streak = %d, want 1", got)
	}
}

func TestStreakConsecutiveRun(t *testing.T) {
	entries := doneEntries("h1", "2024-01-01", "2024-01-02", "2024-01-03")
	if got := Streak("h1", entries, localDate(2024, 1, 3)); got != 3 {
		t.Errorf("Streak = %d, want 3", got)
	}
}

// The grace day rule: a habit not yet completed today still reads as a
// live streak when yesterday was completed, and counting continues from
// the day before yesterday.
func TestStreakGraceDay(t *testing.T) {
	tests := []struct {
		name string
		days []string
		want int
	}{
		{"yesterday only", []string{"2024-01-02"}, 1},
		{"yesterday plus run", []string{"2023-12-31", "2024-01-01", "2024-01-02"}, 3},
		{"yesterday with gap before", []string{"2023-12-30", "2024-01-02"}, 1},
	}
	now := localDate(2024, 1, 3)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := doneEntries("h1", tt.days...)
			if got := Streak("h1", entries, now); got != tt.want {
				t.Errorf("Streak = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestStreakBrokenByGap(t *testing.T) {
	// Last completion was Jan 5; neither today (Jan 7) nor yesterday is
	// completed, so the streak is dead.
	entries := doneEntries("h1", "2024-01-01", "2024-01-05")
	if got := Streak("h1", entries, localDate(2024, 1, 7)); got != 0 {
		t.Errorf("Streak = %d, want 0", got)
	}
}

func TestStreakLastCompletionYesterday(t *testing.T) {
	// Jan 5 is yesterday of Jan 6, so the grace day keeps the streak
	// alive at 1 despite the earlier gap.
	entries := doneEntries("h1", "2024-01-01", "2024-01-05")
	if got := Streak("h1", entries, localDate(2024, 1, 6)); got != 1 {
		t.Errorf("Streak = %d, want 1", got)
	}
}

func TestStreakGapCapsRun(t *testing.T) {
	// Only the most recent unbroken run counts.
	entries := doneEntries("h1",
		"2023-12-28", "2023-12-29", // older run, severed by the gap
		"2024-01-02", "2024-01-03")
	if got := Streak("h1", entries, localDate(2024, 1, 3)); got != 2 {
		t.Errorf("Streak = %d, want 2", got)
	}
}

func TestStreakIgnoresOtherHabitsAndUndone(t *testing.T) {
	entries := []model.Entry{
		{HabitID: "h1", Date: "2024-01-03", Done: true},
		{HabitID: "h2", Date: "2024-01-02", Done: true},
		{HabitID: "h1", Date: "2024-01-02", Done: false},
	}
	if got := Streak("h1", entries, localDate(2024, 1, 3)); got != 1 {
		t.Errorf("Streak = %d, want 1", got)
	}
}

func TestStreakDedupesDuplicateDays(t *testing.T) {
	entries := doneEntries("h1", "2024-01-02", "2024-01-02", "2024-01-03")
	if got := Streak("h1", entries, localDate(2024, 1, 3)); got != 2 {
		t.Errorf("Streak = %d, want 2", got)
	}
}
