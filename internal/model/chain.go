package model

import "time"

// MaxChainLength is the upper bound on habits in a single chain,
// enforced at the edit surface rather than by the backend.
const MaxChainLength = 5

// Chain is a user-defined ordered grouping of habits. HabitIDs may
// contain duplicates (treated as independent slots) and may reference
// habits that no longer exist; consumers filter missing references.
type Chain struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Name      string    `json:"name" db:"name"`
	HabitIDs  []string  `json:"habit_ids" db:"-"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
