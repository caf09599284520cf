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

// ListEntries returns every entry for the given habits. An empty id list
// yields an empty slice without touching the database.
func (s *Store) ListEntries(ctx context.Context, habitIDs []string) ([]model.Entry, error) {
	if len(habitIDs) == 0 {
		return []model.Entry{}, nil
	}

	placeholders := make([]string, len(habitIDs))
	args := make([]interface{}, len(habitIDs))
	for i, id := range habitIDs {
		placeholders[i] = "?"
		args[i] = id
	}

	query := "SELECT * FROM habit_entries WHERE habit_id IN (" +
		strings.Join(placeholders, ", ") + ") ORDER BY date ASC"

	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying entries: %w", err)
	}
	defer rows.Close()

	entries := []model.Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// InsertEntry stores a new completion record. Generates a UUID if ID is
// empty. The UNIQUE(habit_id, date) constraint rejects a second entry
// for the same day.
func (s *Store) InsertEntry(ctx context.Context, entry model.Entry) (model.Entry, error) {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	entry.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO habit_entries (id, habit_id, date, done, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		entry.ID, entry.HabitID, entry.Date, boolToInt(entry.Done), entry.CreatedAt,
	)
	if err != nil {
		return model.Entry{}, fmt.Errorf("creating entry for habit %s on %s: %w",
			entry.HabitID, entry.Date, err)
	}
	return entry, nil
}

// SetEntryDone updates the done flag of an existing entry.
func (s *Store) SetEntryDone(ctx context.Context, id string, done bool) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE habit_entries SET done = ? WHERE id = ?", boolToInt(done), id)
	if err != nil {
		return fmt.Errorf("updating entry %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("entry %s not found", id)
	}
	return nil
}

// scanEntry scans an entry row from a sqlx.Rows result set.
func scanEntry(rows *sqlx.Rows) (model.Entry, error) {
	var (
		e       model.Entry
		doneInt int
	)
	err := rows.Scan(&e.ID, &e.HabitID, &e.Date, &doneInt, &e.CreatedAt)
	if err != nil {
		return model.Entry{}, fmt.Errorf("scanning entry row: %w", err)
	}
	e.Done = doneInt != 0
	return e, nil
}
