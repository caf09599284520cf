package local

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"habitchain/internal/model"
)

// ListChains returns the user's chains ordered by creation time.
func (s *Store) ListChains(ctx context.Context, userID string) ([]model.Chain, error) {
	rows, err := s.db.QueryxContext(ctx,
		"SELECT * FROM habit_chains WHERE user_id = ? ORDER BY created_at ASC", userID)
	if err != nil {
		return nil, fmt.Errorf("querying chains: %w", err)
	}
	defer rows.Close()

	chains := []model.Chain{}
	for rows.Next() {
		c, err := scanChain(rows)
		if err != nil {
			return nil, err
		}
		chains = append(chains, c)
	}
	return chains, rows.Err()
}

// InsertChain stores a new chain. Generates a UUID if ID is empty. The
// habit id list is stored as JSON to preserve order and duplicates.
func (s *Store) InsertChain(ctx context.Context, chain model.Chain) (model.Chain, error) {
	if chain.ID == "" {
		chain.ID = uuid.New().String()
	}
	chain.CreatedAt = time.Now().UTC()

	habitIDs, err := json.Marshal(chain.HabitIDs)
	if err != nil {
		return model.Chain{}, fmt.Errorf("marshaling habit_ids: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO habit_chains (id, user_id, name, habit_ids, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		chain.ID, chain.UserID, chain.Name, string(habitIDs), chain.CreatedAt,
	)
	if err != nil {
		return model.Chain{}, fmt.Errorf("creating chain: %w", err)
	}
	return chain, nil
}

// UpdateChain replaces the ordered habit ids of an existing chain.
func (s *Store) UpdateChain(ctx context.Context, id string, habitIDs []string) error {
	data, err := json.Marshal(habitIDs)
	if err != nil {
		return fmt.Errorf("marshaling habit_ids: %w", err)
	}

	result, err := s.db.ExecContext(ctx,
		"UPDATE habit_chains SET habit_ids = ? WHERE id = ?", string(data), id)
	if err != nil {
		return fmt.Errorf("updating chain %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("chain %s not found", id)
	}
	return nil
}

// DeleteChain removes a chain by ID.
func (s *Store) DeleteChain(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM habit_chains WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting chain %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("chain %s not found", id)
	}
	return nil
}

// scanChain scans a chain row from a sqlx.Rows result set.
func scanChain(rows *sqlx.Rows) (model.Chain, error) {
	var (
		c        model.Chain
		habitIDs string
	)
	err := rows.Scan(&c.ID, &c.UserID, &c.Name, &habitIDs, &c.CreatedAt)
	if err != nil {
		return model.Chain{}, fmt.Errorf("scanning chain row: %w", err)
	}

	if habitIDs != "" {
		if err := json.Unmarshal([]byte(habitIDs), &c.HabitIDs); err != nil {
			return model.Chain{}, fmt.Errorf("unmarshaling habit_ids: %w", err)
		}
	}
	return c, nil
}
