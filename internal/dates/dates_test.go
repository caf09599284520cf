package dates

import (
	"testing"
	"time"
)

func TestDayKeyZeroPadded(t *testing.T) {
	got := DayKey(time.Date(2024, 3, 5, 9, 30, 0, 0, time.Local))
	if got != "2024-03-05" {
		t.Errorf("DayKey = %q, want zero-padded 2024-03-05", got)
	}
}

func TestTodayMatchesDayKey(t *testing.T) {
	now := time.Date(2024, 1, 3, 23, 59, 59, 0, time.Local)
	if Today(now) != DayKey(now) {
		t.Errorf("Today(%v) = %q, want %q", now, Today(now), DayKey(now))
	}
}

func TestOffsetDays(t *testing.T) {
	base := time.Date(2024, 1, 10, 12, 0, 0, 0, time.Local)

	tests := []struct {
		n    int
		want string
	}{
		{0, "2024-01-10"},
		{1, "2024-01-11"},
		{-1, "2024-01-09"},
		{-10, "2023-12-31"},
		{31, "2024-02-10"},
	}
	for _, tt := range tests {
		if got := DayKey(OffsetDays(base, tt.n)); got != tt.want {
			t.Errorf("OffsetDays(%d) = %s, want %s", tt.n, got, tt.want)
		}
	}
}

func TestDayDiff(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"2024-01-01", "2024-01-02", 1},
		{"2024-01-02", "2024-01-01", -1},
		{"2024-01-01", "2024-01-01", 0},
		{"2023-12-31", "2024-01-01", 1},
		{"2024-02-28", "2024-03-01", 2}, // leap year
		// Spans the typical spring-forward boundary; rounding must keep
		// the diff a whole number of days.
		{"2024-03-09", "2024-03-11", 2},
		{"2024-10-30", "2024-11-05", 6},
	}
	for _, tt := range tests {
		got, err := DayDiff(tt.a, tt.b)
		if err != nil {
			t.Fatalf("DayDiff(%s, %s): %v", tt.a, tt.b, err)
		}
		if got != tt.want {
			t.Errorf("DayDiff(%s, %s) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestDayDiffMalformedKey(t *testing.T) {
	if _, err := DayDiff("2024-1-1", "2024-01-02"); err == nil {
		t.Error("expected error for non-canonical day key")
	}
}
