package stats

import (
	"testing"

	"habitchain/internal/model"
)

func TestWeeklySeriesShape(t *testing.T) {
	// A Wednesday; the trailing week runs Thu..Wed but the series is
	// ordered by calendar position.
	points := WeeklySeries(nil, localDate(2024, 1, 3))

	if len(points) != 7 {
		t.Fatalf("len(points) = %d, want 7", len(points))
	}

	wantLabels := []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
	for i, p := range points {
		if p.Day != wantLabels[i] {
			t.Errorf("points[%d].Day = %s, want %s", i, p.Day, wantLabels[i])
		}
		wantWeekend := i == 5 || i == 6
		if p.IsWeekend != wantWeekend {
			t.Errorf("points[%d].IsWeekend = %v, want %v", i, p.IsWeekend, wantWeekend)
		}
	}
}

func TestWeeklySeriesCounts(t *testing.T) {
	// Sunday 2024-01-07: the window is exactly Mon Jan 1 .. Sun Jan 7.
	now := localDate(2024, 1, 7)
	entries := []model.Entry{
		{HabitID: "h1", Date: "2024-01-01", Done: true}, // Mon
		{HabitID: "h2", Date: "2024-01-01", Done: true}, // Mon
		{HabitID: "h1", Date: "2024-01-06", Done: true}, // Sat
		{HabitID: "h1", Date: "2024-01-07", Done: false},
		{HabitID: "h1", Date: "2023-12-31", Done: true}, // outside window
	}

	points := WeeklySeries(entries, now)

	wantCounts := []int{2, 0, 0, 0, 0, 1, 0}
	for i, want := range wantCounts {
		if points[i].Count != want {
			t.Errorf("%s count = %d, want %d", points[i].Day, points[i].Count, want)
		}
	}
}

func TestWeeklySeriesMidWeekWindow(t *testing.T) {
	// Wednesday 2024-01-03: Thu..Sun counts come from the previous
	// calendar week (Dec 28-31), Mon..Wed from the current one.
	now := localDate(2024, 1, 3)
	entries := []model.Entry{
		{HabitID: "h1", Date: "2023-12-28", Done: true}, // Thu
		{HabitID: "h1", Date: "2023-12-31", Done: true}, // Sun
		{HabitID: "h1", Date: "2024-01-03", Done: true}, // Wed (today)
	}

	points := WeeklySeries(entries, now)

	byDay := make(map[string]int)
	for _, p := range points {
		byDay[p.Day] = p.Count
	}
	if byDay["Thu"] != 1 || byDay["Sun"] != 1 || byDay["Wed"] != 1 {
		t.Errorf("counts = %v, want Thu/Sun/Wed = 1", byDay)
	}
	if byDay["Mon"] != 0 || byDay["Fri"] != 0 {
		t.Errorf("counts = %v, want Mon/Fri = 0", byDay)
	}
}

func TestWeeklySeriesEveryWeekdayOnce(t *testing.T) {
	for offset := 0; offset < 7; offset++ {
		now := localDate(2024, 1, 1).AddDate(0, 0, offset)
		points := WeeklySeries(nil, now)
		seen := make(map[string]bool)
		for _, p := range points {
			if seen[p.Day] {
				t.Fatalf("day %s appears twice for now=%v", p.Day, now)
			}
			seen[p.Day] = true
		}
		if len(seen) != 7 {
			t.Fatalf("saw %d distinct days for now=%v, want 7", len(seen), now)
		}
	}
}
