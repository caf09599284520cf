package app

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"habitchain/internal/habits"
	"habitchain/internal/model"
	appsync "habitchain/internal/sync"
)

// newTestModel builds a local-mode root model that has already received
// its terminal size. The refresher is never started.
func newTestModel(t *testing.T) Model {
	t.Helper()
	service := habits.New(nil, func() string { return "local" })
	refresher := appsync.New(service, 0)

	m := New(service, refresher, nil)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return next.(Model)
}

func TestMutationResultAppliesSnapshotToDashboard(t *testing.T) {
	m := newTestModel(t)

	snap := habits.Snapshot{
		Habits: []model.HabitWithStreak{{
			Habit:  model.Habit{ID: "h1", Name: "Read", Icon: "📚"},
			Streak: 2,
		}},
	}
	next, _ := m.Update(mutationResultMsg{snapshot: snap})
	m = next.(Model)

	if !strings.Contains(m.View(), "Read") {
		t.Error("dashboard does not show the habit from the snapshot")
	}
}

func TestMutationErrorSurfacesInStatusBarUntilNextSuccess(t *testing.T) {
	m := newTestModel(t)

	next, _ := m.Update(mutationResultMsg{err: errors.New("backend unreachable")})
	m = next.(Model)
	if !strings.Contains(m.View(), "⚠ backend unreachable") {
		t.Error("error not surfaced in the status bar")
	}

	next, _ = m.Update(mutationResultMsg{snapshot: habits.Snapshot{}})
	m = next.(Model)
	if strings.Contains(m.View(), "backend unreachable") {
		t.Error("stale error still shown after a successful mutation")
	}
}

func TestLocalModeSkipsAuthView(t *testing.T) {
	m := newTestModel(t)
	if m.currentView != ViewDashboard {
		t.Errorf("currentView = %v, want ViewDashboard", m.currentView)
	}
}
