package rest

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"habitchain/internal/model"
)

// entryPayload is the writable subset of an entry row.
type entryPayload struct {
	HabitID string `json:"habit_id"`
	Date    string `json:"date"`
	Done    bool   `json:"done"`
}

// ListEntries returns every entry for the given habits. An empty id
// list yields an empty slice without a round trip.
func (c *Client) ListEntries(ctx context.Context, habitIDs []string) ([]model.Entry, error) {
	if len(habitIDs) == 0 {
		return []model.Entry{}, nil
	}

	escaped := make([]string, len(habitIDs))
	for i, id := range habitIDs {
		escaped[i] = url.QueryEscape(id)
	}
	path := "/rest/v1/habit_entries?select=*&habit_id=in.(" +
		strings.Join(escaped, ",") + ")&order=date.asc"

	entries := []model.Entry{}
	if err := c.get(ctx, path, &entries); err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}
	return entries, nil
}

// InsertEntry stores a new completion record. The unique index on
// (habit_id, date) rejects a second entry for the same day.
func (c *Client) InsertEntry(ctx context.Context, entry model.Entry) (model.Entry, error) {
	payload := entryPayload{
		HabitID: entry.HabitID,
		Date:    entry.Date,
		Done:    entry.Done,
	}

	created := []model.Entry{}
	if err := c.post(ctx, "/rest/v1/habit_entries", payload, &created); err != nil {
		return model.Entry{}, fmt.Errorf("creating entry for habit %s on %s: %w",
			entry.HabitID, entry.Date, err)
	}
	if len(created) == 0 {
		return model.Entry{}, fmt.Errorf("creating entry: empty response")
	}
	return created[0], nil
}

// SetEntryDone updates the done flag of an existing entry.
func (c *Client) SetEntryDone(ctx context.Context, id string, done bool) error {
	path := "/rest/v1/habit_entries?id=eq." + url.QueryEscape(id)
	payload := struct {
		Done bool `json:"done"`
	}{Done: done}

	if err := c.patch(ctx, path, payload); err != nil {
		return fmt.Errorf("updating entry %s: %w", id, err)
	}
	return nil
}
