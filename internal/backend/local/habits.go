package local

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"habitchain/internal/model"
)

// ListHabits returns the user's habits ordered by creation time.
func (s *Store) ListHabits(ctx context.Context, userID string) ([]model.Habit, error) {
	rows, err := s.db.QueryxContext(ctx,
		"SELECT * FROM habits WHERE user_id = ? ORDER BY created_at ASC", userID)
	if err != nil {
		return nil, fmt.Errorf("querying habits: %w", err)
	}
	defer rows.Close()

	habits := []model.Habit{}
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

// InsertHabit stores a new habit. Generates a UUID if ID is empty.
func (s *Store) InsertHabit(ctx context.Context, habit model.Habit) (model.Habit, error) {
	if strings.TrimSpace(habit.Name) == "" {
		return model.Habit{}, fmt.Errorf("habit name must not be empty")
	}
	if habit.ID == "" {
		habit.ID = uuid.New().String()
	}
	if habit.Color == "" {
		habit.Color = model.ColorBlue
	}
	habit.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO habits (id, user_id, name, icon, color, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		habit.ID, habit.UserID, habit.Name, habit.Icon, habit.Color, habit.CreatedAt,
	)
	if err != nil {
		return model.Habit{}, fmt.Errorf("creating habit: %w", err)
	}
	return habit, nil
}

// UpdateHabit rewrites the editable fields of an existing habit.
func (s *Store) UpdateHabit(ctx context.Context, habit model.Habit) error {
	if strings.TrimSpace(habit.Name) == "" {
		return fmt.Errorf("habit name must not be empty")
	}

	result, err := s.db.ExecContext(ctx,
		"UPDATE habits SET name = ?, icon = ?, color = ? WHERE id = ?",
		habit.Name, habit.Icon, habit.Color, habit.ID,
	)
	if err != nil {
		return fmt.Errorf("updating habit %s: %w", habit.ID, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("habit %s not found", habit.ID)
	}
	return nil
}

// DeleteHabit removes a habit. Entries cascade via the foreign key.
func (s *Store) DeleteHabit(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM habits WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting habit %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("habit %s not found", id)
	}
	return nil
}

// scanHabit scans a habit row from a sqlx.Rows result set.
func scanHabit(rows *sqlx.Rows) (model.Habit, error) {
	var h model.Habit
	err := rows.Scan(&h.ID, &h.UserID, &h.Name, &h.Icon, &h.Color, &h.CreatedAt)
	if err != nil {
		return model.Habit{}, fmt.Errorf("scanning habit row: %w", err)
	}
	return h, nil
}
