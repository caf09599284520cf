package model

import "time"

// Entry records a habit's completion state for a single calendar day.
// Date is a canonical YYYY-MM-DD day key; at most one entry exists per
// (habit, day) pair.
type Entry struct {
	ID        string    `json:"id" db:"id"`
	HabitID   string    `json:"habit_id" db:"habit_id"`
	Date      string    `json:"date" db:"date"`
	Done      bool      `json:"done" db:"done"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
