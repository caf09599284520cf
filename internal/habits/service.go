// Package habits holds the in-memory application state: the habit
// list with derived streaks, every completion entry, and the chains.
// All reads come from the last snapshot; every mutation goes through
// the backend and is followed by a full refetch, so the snapshot never
// drifts from what the backend holds.
package habits

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"habitchain/internal/backend"
	"habitchain/internal/dates"
	"habitchain/internal/model"
	"habitchain/internal/stats"
)

var (
	// ErrEmptyName rejects habits whose name is empty after trimming.
	ErrEmptyName = errors.New("habit name must not be empty")

	// ErrChainTooLong rejects chains holding more habits than allowed.
	ErrChainTooLong = fmt.Errorf("a chain holds at most %d habits", model.MaxChainLength)

	// ErrNoUser is returned by mutations when no user is signed in.
	ErrNoUser = errors.New("no signed-in user")
)

// Snapshot is one consistent view of the user's data. Habits carry
// their derived streak and done-today flag as of the refresh instant.
type Snapshot struct {
	Habits  []model.HabitWithStreak
	Entries []model.Entry
	Chains  []model.Chain
}

// Service owns the snapshot and mediates every backend mutation.
type Service struct {
	backend backend.Backend
	userID  func() string
	now     func() time.Time

	mu   sync.RWMutex
	snap Snapshot
}

// New creates a service. userID reports the current owner of the data;
// it returns the empty string while signed out.
func New(b backend.Backend, userID func() string) *Service {
	return &Service{
		backend: b,
		userID:  userID,
		now:     time.Now,
	}
}

// Snapshot returns the last successfully refreshed state. It is safe
// to read concurrently with refreshes; slices must not be mutated.
func (s *Service) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Refresh refetches habits, entries, and chains and rebuilds derived
// fields. On any failure the previous snapshot is left untouched.
func (s *Service) Refresh(ctx context.Context) (Snapshot, error) {
	uid := s.userID()
	if uid == "" {
		return Snapshot{}, ErrNoUser
	}

	habits, err := s.backend.ListHabits(ctx, uid)
	if err != nil {
		return Snapshot{}, fmt.Errorf("refreshing habits: %w", err)
	}

	ids := make([]string, len(habits))
	for i, h := range habits {
		ids[i] = h.ID
	}
	entries, err := s.backend.ListEntries(ctx, ids)
	if err != nil {
		return Snapshot{}, fmt.Errorf("refreshing entries: %w", err)
	}

	chains, err := s.backend.ListChains(ctx, uid)
	if err != nil {
		return Snapshot{}, fmt.Errorf("refreshing chains: %w", err)
	}

	now := s.now()
	today := dates.Today(now)
	annotated := make([]model.HabitWithStreak, len(habits))
	for i, h := range habits {
		annotated[i] = model.HabitWithStreak{
			Habit:     h,
			Streak:    stats.Streak(h.ID, entries, now),
			DoneToday: doneOn(h.ID, today, entries),
		}
	}

	snap := Snapshot{Habits: annotated, Entries: entries, Chains: chains}
	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()
	return snap, nil
}

func doneOn(habitID, day string, entries []model.Entry) bool {
	for _, e := range entries {
		if e.HabitID == habitID && e.Date == day && e.Done {
			return true
		}
	}
	return false
}

// ToggleToday flips the habit's completion state for today. An
// existing entry is flipped in place; otherwise a done entry is
// inserted. A fresh snapshot is returned on success.
func (s *Service) ToggleToday(ctx context.Context, habitID string) (Snapshot, error) {
	today := dates.Today(s.now())

	var existing *model.Entry
	snap := s.Snapshot()
	for i := range snap.Entries {
		e := snap.Entries[i]
		if e.HabitID == habitID && e.Date == today {
			existing = &e
			break
		}
	}

	if existing != nil {
		if err := s.backend.SetEntryDone(ctx, existing.ID, !existing.Done); err != nil {
			return Snapshot{}, fmt.Errorf("toggling habit %s: %w", habitID, err)
		}
	} else {
		_, err := s.backend.InsertEntry(ctx, model.Entry{
			HabitID: habitID,
			Date:    today,
			Done:    true,
		})
		if err != nil {
			return Snapshot{}, fmt.Errorf("toggling habit %s: %w", habitID, err)
		}
	}

	return s.Refresh(ctx)
}

// AddHabit validates and creates a habit, then refetches.
func (s *Service) AddHabit(ctx context.Context, name, icon, color string) (Snapshot, error) {
	uid := s.userID()
	if uid == "" {
		return Snapshot{}, ErrNoUser
	}
	if strings.TrimSpace(name) == "" {
		return Snapshot{}, ErrEmptyName
	}

	_, err := s.backend.InsertHabit(ctx, model.Habit{
		UserID: uid,
		Name:   strings.TrimSpace(name),
		Icon:   icon,
		Color:  color,
	})
	if err != nil {
		return Snapshot{}, fmt.Errorf("adding habit: %w", err)
	}
	return s.Refresh(ctx)
}

// UpdateHabit rewrites a habit's editable fields, then refetches.
func (s *Service) UpdateHabit(ctx context.Context, habit model.Habit) (Snapshot, error) {
	if strings.TrimSpace(habit.Name) == "" {
		return Snapshot{}, ErrEmptyName
	}
	habit.Name = strings.TrimSpace(habit.Name)

	if err := s.backend.UpdateHabit(ctx, habit); err != nil {
		return Snapshot{}, fmt.Errorf("updating habit: %w", err)
	}
	return s.Refresh(ctx)
}

// DeleteHabit removes a habit and its entries, then refetches. Chains
// referencing the habit keep the stale id; consumers filter it out.
func (s *Service) DeleteHabit(ctx context.Context, id string) (Snapshot, error) {
	if err := s.backend.DeleteHabit(ctx, id); err != nil {
		return Snapshot{}, fmt.Errorf("deleting habit: %w", err)
	}
	return s.Refresh(ctx)
}

// SaveChain creates a chain when id is empty, otherwise replaces the
// existing chain's habit list. The length bound is enforced here, not
// by the backend.
func (s *Service) SaveChain(ctx context.Context, id, name string, habitIDs []string) (Snapshot, error) {
	uid := s.userID()
	if uid == "" {
		return Snapshot{}, ErrNoUser
	}
	if len(habitIDs) > model.MaxChainLength {
		return Snapshot{}, ErrChainTooLong
	}

	if id == "" {
		_, err := s.backend.InsertChain(ctx, model.Chain{
			UserID:   uid,
			Name:     name,
			HabitIDs: habitIDs,
		})
		if err != nil {
			return Snapshot{}, fmt.Errorf("creating chain: %w", err)
		}
	} else {
		if err := s.backend.UpdateChain(ctx, id, habitIDs); err != nil {
			return Snapshot{}, fmt.Errorf("updating chain: %w", err)
		}
	}
	return s.Refresh(ctx)
}

// DeleteChain removes a chain, then refetches.
func (s *Service) DeleteChain(ctx context.Context, id string) (Snapshot, error) {
	if err := s.backend.DeleteChain(ctx, id); err != nil {
		return Snapshot{}, fmt.Errorf("deleting chain: %w", err)
	}
	return s.Refresh(ctx)
}

// Stats aggregates the current snapshot.
func (s *Service) Stats() stats.Summary {
	snap := s.Snapshot()
	habits := make([]model.Habit, len(snap.Habits))
	for i, h := range snap.Habits {
		habits[i] = h.Habit
	}
	return stats.Summarize(habits, snap.Entries, s.now())
}

// WeeklyProgress builds the Monday-first completion series for the
// last seven days from the current snapshot.
func (s *Service) WeeklyProgress() []stats.WeeklyPoint {
	return stats.WeeklySeries(s.Snapshot().Entries, s.now())
}

// ChainHabits resolves a chain's habit ids against the snapshot,
// dropping references to habits that no longer exist.
func (s *Service) ChainHabits(chain model.Chain) []model.HabitWithStreak {
	snap := s.Snapshot()
	byID := make(map[string]model.HabitWithStreak, len(snap.Habits))
	for _, h := range snap.Habits {
		byID[h.ID] = h
	}

	resolved := []model.HabitWithStreak{}
	for _, id := range chain.HabitIDs {
		if h, ok := byID[id]; ok {
			resolved = append(resolved, h)
		}
	}
	return resolved
}
