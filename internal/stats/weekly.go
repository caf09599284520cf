package stats

import (
	"time"

	"habitchain/internal/dates"
	"habitchain/internal/model"
)

// weekdayLabels are the three-letter labels in Monday-first order.
var weekdayLabels = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// WeeklyPoint is one bar of the weekly progress chart.
type WeeklyPoint struct {
	Day       string
	Count     int
	IsWeekend bool
}

// WeeklySeries returns exactly 7 points covering now and the 6 preceding
// days, ordered Monday through Sunday by calendar position. Each trailing
// window of 7 days contains every weekday exactly once, so the placement
// is unambiguous. Count is the number of completed entries across all
// habits on that day.
func WeeklySeries(entries []model.Entry, now time.Time) []WeeklyPoint {
	counts := make(map[string]int)
	for _, e := range entries {
		if e.Done {
			counts[e.Date]++
		}
	}

	points := make([]WeeklyPoint, 7)
	for i := 6; i >= 0; i-- {
		day := dates.OffsetDays(now, -i)
		// time.Weekday numbers Sunday as 0; shift to Monday-first slots.
		slot := (int(day.Weekday()) + 6) % 7
		points[slot] = WeeklyPoint{
			Day:       weekdayLabels[slot],
			Count:     counts[dates.DayKey(day)],
			IsWeekend: day.Weekday() == time.Saturday || day.Weekday() == time.Sunday,
		}
	}
	return points
}
