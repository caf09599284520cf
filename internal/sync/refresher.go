// Package sync runs the background refresh loop that keeps the
// snapshot current while the UI is open, bridging results into the
// Bubble Tea runtime as messages.
package sync

import (
	"context"
	gosync "sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"habitchain/internal/backend"
	"habitchain/internal/habits"
)

// RefreshState represents the current state of the refresh loop.
type RefreshState int

const (
	RefreshIdle RefreshState = iota
	RefreshRunning
	RefreshError
)

// RefreshResultMsg is a tea.Msg sent when a refresh completes.
type RefreshResultMsg struct {
	Snapshot habits.Snapshot
	Error    error

	// AuthExpired is set when the backend rejected the session token.
	// The UI should route back to sign-in.
	AuthExpired bool
}

// refreshTimeout bounds a single refresh round trip.
const refreshTimeout = 30 * time.Second

// Refresher periodically refetches the snapshot and forwards results
// to the UI.
type Refresher struct {
	service  *habits.Service
	interval time.Duration

	resultCh  chan RefreshResultMsg
	triggerCh chan struct{}
	stopCh    chan struct{}

	mu       gosync.Mutex
	state    RefreshState
	lastSync time.Time
	running  bool
}

// New creates a refresher polling at the given interval. Non-positive
// intervals fall back to two minutes.
func New(service *habits.Service, interval time.Duration) *Refresher {
	if interval <= 0 {
		interval = 120 * time.Second
	}
	return &Refresher{
		service:   service,
		interval:  interval,
		resultCh:  make(chan RefreshResultMsg, 16),
		triggerCh: make(chan struct{}, 16),
		stopCh:    make(chan struct{}),
	}
}

// Start launches the refresh goroutine and returns the subscription
// command that feeds results to the Bubble Tea runtime. Calling Start
// twice returns nil the second time.
func (r *Refresher) Start() tea.Cmd {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return nil
	}
	r.running = true
	r.mu.Unlock()

	go r.loop()

	return r.WaitForResult()
}

// Stop halts the refresh goroutine.
func (r *Refresher) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.running {
		return
	}
	close(r.stopCh)
	r.running = false
}

// TriggerNow requests an immediate refresh without waiting for the
// next tick.
func (r *Refresher) TriggerNow() tea.Cmd {
	select {
	case r.triggerCh <- struct{}{}:
	default:
		// A trigger is already queued.
	}
	return nil
}

// Status returns the loop state and the time of the last successful
// refresh.
func (r *Refresher) Status() (RefreshState, time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state, r.lastSync
}

func (r *Refresher) loop() {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	// Initial fetch immediately.
	r.refreshOnce()

	for {
		select {
		case <-r.stopCh:
			return
		case <-ticker.C:
			r.refreshOnce()
		case <-r.triggerCh:
			r.refreshOnce()
		}
	}
}

func (r *Refresher) refreshOnce() {
	r.setState(RefreshRunning, false)

	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	snap, err := r.service.Refresh(ctx)
	if err != nil {
		r.setState(RefreshError, false)
		r.sendResult(RefreshResultMsg{
			Error:       err,
			AuthExpired: backend.IsAuthError(err),
		})
		return
	}

	r.setState(RefreshIdle, true)
	r.sendResult(RefreshResultMsg{Snapshot: snap})
}

func (r *Refresher) setState(state RefreshState, synced bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = state
	if synced {
		r.lastSync = time.Now()
	}
}

// sendResult sends without blocking; a full channel drops the result.
func (r *Refresher) sendResult(msg RefreshResultMsg) {
	select {
	case r.resultCh <- msg:
	default:
	}
}

// WaitForResult returns a tea.Cmd that waits for the next refresh
// result. The UI re-issues it after each message to keep listening.
func (r *Refresher) WaitForResult() tea.Cmd {
	return func() tea.Msg {
		result, ok := <-r.resultCh
		if !ok {
			return nil
		}
		return result
	}
}
