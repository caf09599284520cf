package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestContentHeightAccountsForBars(t *testing.T) {
	l := NewLayout(80, 24)
	if got := l.ContentHeight(); got != 22 {
		t.Errorf("ContentHeight = %d, want 22", got)
	}
	if got := l.ContentWidth(); got != 80 {
		t.Errorf("ContentWidth = %d, want 80", got)
	}
}

func TestRenderStatusBarErrorPreemptsHints(t *testing.T) {
	l := NewLayout(80, 24)

	bar := l.RenderStatusBar("q quit", "")
	if !strings.Contains(bar, "q quit") {
		t.Errorf("status bar missing hints: %q", bar)
	}

	bar = l.RenderStatusBar("q quit", "backend unreachable")
	if !strings.Contains(bar, "⚠ backend unreachable") {
		t.Errorf("status bar missing error: %q", bar)
	}
	if strings.Contains(bar, "q quit") {
		t.Errorf("error did not preempt hints: %q", bar)
	}
}

func TestBarsSpanFullWidth(t *testing.T) {
	l := NewLayout(60, 24)

	for _, line := range []string{
		l.RenderHeader("habitchain", "local"),
		l.RenderStatusBar("q quit", ""),
		l.RenderStatusBar("q quit", "boom"),
	} {
		if got := lipgloss.Width(line); got != 60 {
			t.Errorf("bar width = %d, want 60: %q", got, line)
		}
	}
}

func TestRenderHeaderKeepsBothEnds(t *testing.T) {
	header := NewLayout(80, 24).RenderHeader("habitchain", "synced 09:15")
	if !strings.Contains(header, "habitchain") || !strings.Contains(header, "synced 09:15") {
		t.Errorf("header missing title or status: %q", header)
	}
}
