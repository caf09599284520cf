package local

import (
	"context"
	"testing"

	"habitchain/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := New(":memory:")
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test store: %v", err)
		}
	})
	return s
}

func TestHabitCRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	h, err := s.InsertHabit(ctx, model.Habit{
		UserID: UserID, Name: "Read", Icon: "📚", Color: model.ColorPurple,
	})
	if err != nil {
		t.Fatalf("InsertHabit: %v", err)
	}
	if h.ID == "" || h.CreatedAt.IsZero() {
		t.Errorf("insert did not assign id/created_at: %+v", h)
	}

	habits, err := s.ListHabits(ctx, UserID)
	if err != nil {
		t.Fatalf("ListHabits: %v", err)
	}
	if len(habits) != 1 || habits[0].Name != "Read" {
		t.Fatalf("ListHabits = %+v, want one habit named Read", habits)
	}

	h.Name = "Read more"
	h.Color = model.ColorCoral
	if err := s.UpdateHabit(ctx, h); err != nil {
		t.Fatalf("UpdateHabit: %v", err)
	}
	habits, _ = s.ListHabits(ctx, UserID)
	if habits[0].Name != "Read more" || habits[0].Color != model.ColorCoral {
		t.Errorf("update not applied: %+v", habits[0])
	}

	if err := s.DeleteHabit(ctx, h.ID); err != nil {
		t.Fatalf("DeleteHabit: %v", err)
	}
	habits, _ = s.ListHabits(ctx, UserID)
	if len(habits) != 0 {
		t.Errorf("habit not deleted: %+v", habits)
	}
}

func TestInsertHabitRejectsEmptyName(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.InsertHabit(context.Background(), model.Habit{UserID: UserID, Name: "  "}); err == nil {
		t.Error("expected error for empty habit name")
	}
}

func TestListHabitsEmptyIsNotNil(t *testing.T) {
	s := newTestStore(t)
	habits, err := s.ListHabits(context.Background(), UserID)
	if err != nil {
		t.Fatalf("ListHabits: %v", err)
	}
	if habits == nil {
		t.Error("ListHabits returned nil, want empty slice")
	}
}

func TestEntryUniquePerHabitDay(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	h, err := s.InsertHabit(ctx, model.Habit{UserID: UserID, Name: "Run"})
	if err != nil {
		t.Fatalf("InsertHabit: %v", err)
	}

	e, err := s.InsertEntry(ctx, model.Entry{HabitID: h.ID, Date: "2024-01-03", Done: true})
	if err != nil {
		t.Fatalf("InsertEntry: %v", err)
	}

	if _, err := s.InsertEntry(ctx, model.Entry{HabitID: h.ID, Date: "2024-01-03", Done: true}); err == nil {
		t.Error("expected unique constraint violation for duplicate (habit, day)")
	}

	// Flipping the existing row is the supported path.
	if err := s.SetEntryDone(ctx, e.ID, false); err != nil {
		t.Fatalf("SetEntryDone: %v", err)
	}
	entries, err := s.ListEntries(ctx, []string{h.ID})
	if err != nil {
		t.Fatalf("ListEntries: %v", err)
	}
	if len(entries) != 1 || entries[0].Done {
		t.Errorf("entries = %+v, want single undone entry", entries)
	}
}

func TestListEntriesEmptyHabitIDs(t *testing.T) {
	s := newTestStore(t)
	entries, err := s.ListEntries(context.Background(), nil)
	if err != nil {
		t.Fatalf("ListEntries: %v", err)
	}
	if entries == nil || len(entries) != 0 {
		t.Errorf("ListEntries(nil) = %v, want empty slice", entries)
	}
}

func TestDeleteHabitCascadesEntries(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	h, _ := s.InsertHabit(ctx, model.Habit{UserID: UserID, Name: "Meditate"})
	other, _ := s.InsertHabit(ctx, model.Habit{UserID: UserID, Name: "Stretch"})
	_, _ = s.InsertEntry(ctx, model.Entry{HabitID: h.ID, Date: "2024-01-01", Done: true})
	_, _ = s.InsertEntry(ctx, model.Entry{HabitID: h.ID, Date: "2024-01-02", Done: true})
	_, _ = s.InsertEntry(ctx, model.Entry{HabitID: other.ID, Date: "2024-01-01", Done: true})

	if err := s.DeleteHabit(ctx, h.ID); err != nil {
		t.Fatalf("DeleteHabit: %v", err)
	}

	entries, err := s.ListEntries(ctx, []string{h.ID, other.ID})
	if err != nil {
		t.Fatalf("ListEntries: %v", err)
	}
	if len(entries) != 1 || entries[0].HabitID != other.ID {
		t.Errorf("entries after cascade = %+v, want only the other habit's entry", entries)
	}
}

func TestChainCRUDPreservesOrderAndDuplicates(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	c, err := s.InsertChain(ctx, model.Chain{
		UserID:   UserID,
		Name:     "Morning",
		HabitIDs: []string{"a", "b", "a"},
	})
	if err != nil {
		t.Fatalf("InsertChain: %v", err)
	}

	chains, err := s.ListChains(ctx, UserID)
	if err != nil {
		t.Fatalf("ListChains: %v", err)
	}
	if len(chains) != 1 {
		t.Fatalf("ListChains = %+v, want 1 chain", chains)
	}
	got := chains[0].HabitIDs
	if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "a" {
		t.Errorf("HabitIDs = %v, want order and duplicates preserved", got)
	}

	if err := s.UpdateChain(ctx, c.ID, []string{"c"}); err != nil {
		t.Fatalf("UpdateChain: %v", err)
	}
	chains, _ = s.ListChains(ctx, UserID)
	if len(chains[0].HabitIDs) != 1 || chains[0].HabitIDs[0] != "c" {
		t.Errorf("HabitIDs after update = %v, want [c]", chains[0].HabitIDs)
	}

	if err := s.DeleteChain(ctx, c.ID); err != nil {
		t.Fatalf("DeleteChain: %v", err)
	}
	chains, _ = s.ListChains(ctx, UserID)
	if len(chains) != 0 {
		t.Errorf("chains after delete = %+v, want none", chains)
	}
}

func TestUpdateMissingRowsReportNotFound(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.UpdateHabit(ctx, model.Habit{ID: "nope", Name: "x"}); err == nil {
		t.Error("UpdateHabit on missing row should fail")
	}
	if err := s.SetEntryDone(ctx, "nope", true); err == nil {
		t.Error("SetEntryDone on missing row should fail")
	}
	if err := s.UpdateChain(ctx, "nope", nil); err == nil {
		t.Error("UpdateChain on missing row should fail")
	}
}
