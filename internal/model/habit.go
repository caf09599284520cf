package model

import "time"

// Habit colors supported by the dashboard. Arbitrary color values are
// tolerated when reading from the backend; unknown values render with
// the default style.
const (
	ColorBlue   = "blue"
	ColorPurple = "purple"
	ColorCoral  = "coral"
)

// Habit is a single tracked habit owned by a user.
type Habit struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Name      string    `json:"name" db:"name"`
	Icon      string    `json:"icon" db:"icon"`
	Color     string    `json:"color" db:"color"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// HabitWithStreak is a Habit annotated with derived fields. Streak and
// DoneToday are recomputed from scratch on every refresh and are never
// persisted.
type HabitWithStreak struct {
	Habit

	Streak    int  `json:"streak"`
	DoneToday bool `json:"done_today"`
}
