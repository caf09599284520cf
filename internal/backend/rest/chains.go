package rest

import (
	"context"
	"fmt"
	"net/url"

	"habitchain/internal/model"
)

// chainPayload is the writable subset of a chain row. habit_ids is a
// jsonb column holding the ordered id list.
type chainPayload struct {
	UserID   string   `json:"user_id"`
	Name     string   `json:"name"`
	HabitIDs []string `json:"habit_ids"`
}

// ListChains returns the user's chains ordered by creation time.
func (c *Client) ListChains(ctx context.Context, userID string) ([]model.Chain, error) {
	path := "/rest/v1/habit_chains?select=*&user_id=eq." + url.QueryEscape(userID) +
		"&order=created_at.asc"

	chains := []model.Chain{}
	if err := c.get(ctx, path, &chains); err != nil {
		return nil, fmt.Errorf("listing chains: %w", err)
	}
	return chains, nil
}

// InsertChain stores a new chain and returns the server-assigned row.
func (c *Client) InsertChain(ctx context.Context, chain model.Chain) (model.Chain, error) {
	payload := chainPayload{
		UserID:   chain.UserID,
		Name:     chain.Name,
		HabitIDs: chain.HabitIDs,
	}
	if payload.HabitIDs == nil {
		payload.HabitIDs = []string{}
	}

	created := []model.Chain{}
	if err := c.post(ctx, "/rest/v1/habit_chains", payload, &created); err != nil {
		return model.Chain{}, fmt.Errorf("creating chain: %w", err)
	}
	if len(created) == 0 {
		return model.Chain{}, fmt.Errorf("creating chain: empty response")
	}
	return created[0], nil
}

// UpdateChain replaces the ordered habit ids of an existing chain.
func (c *Client) UpdateChain(ctx context.Context, id string, habitIDs []string) error {
	if habitIDs == nil {
		habitIDs = []string{}
	}
	path := "/rest/v1/habit_chains?id=eq." + url.QueryEscape(id)
	payload := struct {
		HabitIDs []string `json:"habit_ids"`
	}{HabitIDs: habitIDs}

	if err := c.patch(ctx, path, payload); err != nil {
		return fmt.Errorf("updating chain %s: %w", id, err)
	}
	return nil
}

// DeleteChain removes a chain by ID.
func (c *Client) DeleteChain(ctx context.Context, id string) error {
	path := "/rest/v1/habit_chains?id=eq." + url.QueryEscape(id)
	if err := c.delete(ctx, path); err != nil {
		return fmt.Errorf("deleting chain %s: %w", id, err)
	}
	return nil
}
