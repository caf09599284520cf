package rest

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"habitchain/internal/model"
)

// habitPayload is the writable subset of a habit row. The server
// assigns id and created_at.
type habitPayload struct {
	UserID string `json:"user_id,omitempty"`
	Name   string `json:"name"`
	Icon   string `json:"icon"`
	Color  string `json:"color"`
}

// ListHabits returns the user's habits ordered by creation time.
func (c *Client) ListHabits(ctx context.Context, userID string) ([]model.Habit, error) {
	path := "/rest/v1/habits?select=*&user_id=eq." + url.QueryEscape(userID) +
		"&order=created_at.asc"

	habits := []model.Habit{}
	if err := c.get(ctx, path, &habits); err != nil {
		return nil, fmt.Errorf("listing habits: %w", err)
	}
	return habits, nil
}

// InsertHabit stores a new habit and returns the server-assigned row.
func (c *Client) InsertHabit(ctx context.Context, habit model.Habit) (model.Habit, error) {
	if strings.TrimSpace(habit.Name) == "" {
		return model.Habit{}, fmt.Errorf("habit name must not be empty")
	}
	if habit.Color == "" {
		habit.Color = model.ColorBlue
	}

	payload := habitPayload{
		UserID: habit.UserID,
		Name:   habit.Name,
		Icon:   habit.Icon,
		Color:  habit.Color,
	}

	// PostgREST echoes inserted rows back as an array.
	created := []model.Habit{}
	if err := c.post(ctx, "/rest/v1/habits", payload, &created); err != nil {
		return model.Habit{}, fmt.Errorf("creating habit: %w", err)
	}
	if len(created) == 0 {
		return model.Habit{}, fmt.Errorf("creating habit: empty response")
	}
	return created[0], nil
}

// UpdateHabit rewrites the editable fields of an existing habit.
func (c *Client) UpdateHabit(ctx context.Context, habit model.Habit) error {
	if strings.TrimSpace(habit.Name) == "" {
		return fmt.Errorf("habit name must not be empty")
	}

	path := "/rest/v1/habits?id=eq." + url.QueryEscape(habit.ID)
	payload := habitPayload{
		Name:  habit.Name,
		Icon:  habit.Icon,
		Color: habit.Color,
	}
	if err := c.patch(ctx, path, payload); err != nil {
		return fmt.Errorf("updating habit %s: %w", habit.ID, err)
	}
	return nil
}

// DeleteHabit removes a habit. Entries cascade server-side.
func (c *Client) DeleteHabit(ctx context.Context, id string) error {
	path := "/rest/v1/habits?id=eq." + url.QueryEscape(id)
	if err := c.delete(ctx, path); err != nil {
		return fmt.Errorf("deleting habit %s: %w", id, err)
	}
	return nil
}
