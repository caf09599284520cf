// Package backend defines the persistence collaborator contract: three
// row-oriented collections (habits, habit entries, habit chains) scoped
// by owning user. Implementations auto-assign identifiers and creation
// timestamps on insert and return empty slices, never nil-with-nil-error,
// from reads.
package backend

import (
	"context"
	"errors"
	"fmt"

	"habitchain/internal/model"
)

// AuthError indicates that authentication has failed or expired. It is
// returned by remote implementations when the backend rejects the token.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth error: %s", e.Message)
}

// IsAuthError reports whether err (or any error in its chain) is an AuthError.
func IsAuthError(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}

// Backend is the persistence collaborator. Any operation may fail; the
// caller decides how to surface it. No call spans a transaction with
// another call.
type Backend interface {
	// ListHabits returns the user's habits ordered by creation time.
	ListHabits(ctx context.Context, userID string) ([]model.Habit, error)

	// InsertHabit stores a new habit and returns it with its assigned
	// identifier and creation timestamp.
	InsertHabit(ctx context.Context, habit model.Habit) (model.Habit, error)

	// UpdateHabit rewrites a habit's editable fields (name, icon, color).
	UpdateHabit(ctx context.Context, habit model.Habit) error

	// DeleteHabit removes a habit and all of its entries.
	DeleteHabit(ctx context.Context, id string) error

	// ListEntries returns every entry belonging to any of the given
	// habits. An empty habitIDs slice yields an empty result.
	ListEntries(ctx context.Context, habitIDs []string) ([]model.Entry, error)

	// InsertEntry stores a new completion record and returns it with its
	// assigned identifier and creation timestamp.
	InsertEntry(ctx context.Context, entry model.Entry) (model.Entry, error)

	// SetEntryDone updates the done flag of an existing entry.
	SetEntryDone(ctx context.Context, id string, done bool) error

	// ListChains returns the user's chains.
	ListChains(ctx context.Context, userID string) ([]model.Chain, error)

	// InsertChain stores a new chain and returns it with its assigned
	// identifier and creation timestamp.
	InsertChain(ctx context.Context, chain model.Chain) (model.Chain, error)

	// UpdateChain replaces the ordered habit ids of an existing chain.
	UpdateChain(ctx context.Context, id string, habitIDs []string) error

	// DeleteChain removes a chain. Habits it references are untouched.
	DeleteChain(ctx context.Context, id string) error

	// Close releases any underlying resources.
	Close() error
}
