// Package dates provides the canonical calendar-day keys used throughout
// the application. A day key is a zero-padded YYYY-MM-DD string in the
// user's local time zone; all equality checks are plain string equality,
// so the format must stay canonical.
package dates

import (
	"fmt"
	"math"
	"time"
)

// KeyLayout is the day-key time layout.
const KeyLayout = "2006-01-02"

// DayKey formats an instant as its local calendar-day key.
func DayKey(t time.Time) string {
	return t.Format(KeyLayout)
}

// Today returns the day key for the given reference instant. Callers pass
// time.Now() in production and a fixed instant in tests.
func Today(now time.Time) string {
	return DayKey(now)
}

// OffsetDays shifts an instant by n whole days (n may be negative).
// AddDate works at calendar-day granularity, so DST transitions do not
// introduce sub-day drift in the resulting key.
func OffsetDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// DayDiff returns the number of whole days from key a to key b (b - a).
// Both keys are parsed at local midnight; the hour difference is divided
// by 24 and rounded, which absorbs the one-hour skew a DST boundary
// introduces between midnights.
func DayDiff(a, b string) (int, error) {
	ta, err := time.ParseInLocation(KeyLayout, a, time.Local)
	if err != nil {
		return 0, fmt.Errorf("parsing day key %q: %w", a, err)
	}
	tb, err := time.ParseInLocation(KeyLayout, b, time.Local)
	if err != nil {
		return 0, fmt.Errorf("parsing day key %q: %w", b, err)
	}
	return int(math.Round(tb.Sub(ta).Hours() / 24)), nil
}
