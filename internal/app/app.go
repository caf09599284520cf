// Package app holds the root Bubble Tea model: view routing, the
// keyboard surface, and the glue between the UI components and the
// habit service.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"habitchain/internal/auth"
	"habitchain/internal/habits"
	"habitchain/internal/keys"
	"habitchain/internal/model"
	appsync "habitchain/internal/sync"
	"habitchain/internal/ui"
	"habitchain/internal/ui/authview"
	"habitchain/internal/ui/chainform"
	"habitchain/internal/ui/chainlist"
	"habitchain/internal/ui/habitform"
	"habitchain/internal/ui/habitlist"
	helpview "habitchain/internal/ui/help"
	"habitchain/internal/ui/statsview"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewAuth ViewState = iota
	ViewDashboard
	ViewChains
	ViewStats
	ViewHabitForm
	ViewChainForm
	ViewHelp
)

// opTimeout bounds a single user-initiated mutation round trip.
const opTimeout = 15 * time.Second

// authResultMsg carries the outcome of an auth operation.
type authResultMsg struct {
	err    error
	notice string
}

// signedOutMsg is sent when sign-out finishes, successfully or not.
type signedOutMsg struct {
	err error
}

// mutationResultMsg carries the outcome of a habit or chain mutation.
type mutationResultMsg struct {
	snapshot habits.Snapshot
	err      error
}

// Model is the root Bubble Tea model.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout

	service   *habits.Service
	authMgr   *auth.Manager
	refresher *appsync.Refresher
	keys      *keys.KeyMap

	authView  authview.Model
	habitList habitlist.Model
	chainList chainlist.Model
	statsView statsview.Model
	habitForm habitform.Model
	chainForm chainform.Model
	helpView  helpview.Model

	ready        bool
	started      bool
	errorMessage string
}

// New creates the root model. authMgr is nil in local mode; the app
// then skips the auth screen entirely.
func New(service *habits.Service, refresher *appsync.Refresher, authMgr *auth.Manager) Model {
	k := keys.DefaultKeyMap()

	initial := ViewDashboard
	if authMgr != nil && !authMgr.SignedIn() {
		initial = ViewAuth
	}

	return Model{
		currentView: initial,
		service:     service,
		authMgr:     authMgr,
		refresher:   refresher,
		keys:        k,
		authView:    authview.New(80, 24),
		habitList:   habitlist.New(k, 80, 24),
		chainList:   chainlist.New(k, 80, 24),
		statsView:   statsview.New(80, 24),
		habitForm:   habitform.New(80, 24),
		chainForm:   chainform.New(80, 24),
		helpView:    helpview.New(k, 80, 24),
	}
}

// Init starts either the auth form or the refresh loop.
func (m Model) Init() tea.Cmd {
	if m.currentView == ViewAuth {
		return m.authView.Start()
	}
	return m.startRefreshing()
}

func (m *Model) startRefreshing() tea.Cmd {
	if m.started {
		return tea.Batch(m.refresher.TriggerNow(), m.refresher.WaitForResult())
	}
	m.started = true
	return m.refresher.Start()
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		w, h := m.layout.ContentWidth(), m.layout.ContentHeight()
		m.authView.SetSize(w, h)
		m.habitList.SetSize(w, h)
		m.chainList.SetSize(w, h)
		m.statsView.SetSize(w, h)
		m.habitForm.SetSize(w, h)
		m.chainForm.SetSize(w, h)
		m.helpView.SetSize(w, h)
		// Forward to the active view so huh forms can lay themselves out.
		return m.updateActiveView(msg)

	case appsync.RefreshResultMsg:
		waitCmd := m.refresher.WaitForResult()
		if m.currentView == ViewAuth {
			// Stale results from before sign-out; keep listening.
			return m, waitCmd
		}
		if msg.Error != nil {
			if msg.AuthExpired {
				m.currentView = ViewAuth
				m.authView.SetStatus("Session expired, sign in again.")
				return m, tea.Batch(waitCmd, m.authView.Start())
			}
			m.errorMessage = msg.Error.Error()
			return m, waitCmd
		}
		m.errorMessage = ""
		return m, tea.Batch(waitCmd, m.applySnapshot(msg.Snapshot))

	case mutationResultMsg:
		if msg.err != nil {
			m.errorMessage = msg.err.Error()
			return m, nil
		}
		m.errorMessage = ""
		return m, m.applySnapshot(msg.snapshot)

	case authResultMsg:
		if msg.err != nil {
			m.authView.SetStatus(msg.err.Error())
			return m, nil
		}
		if msg.notice != "" {
			m.authView.SetStatus(msg.notice)
			return m, nil
		}
		m.currentView = ViewDashboard
		return m, m.startRefreshing()

	case signedOutMsg:
		m.currentView = ViewAuth
		cmd := m.authView.Start()
		if msg.err != nil {
			m.authView.SetStatus("Signed out locally; remote revocation failed.")
		}
		return m, cmd

	case authview.SubmitMsg:
		return m, m.runAuth(msg)

	case habitlist.ToggleHabitMsg:
		return m, m.toggleHabit(msg.HabitID)

	case habitlist.EditHabitMsg:
		m.previousView = m.currentView
		m.currentView = ViewHabitForm
		return m, m.habitForm.StartEdit(msg.Habit)

	case habitlist.DeleteHabitMsg:
		return m, m.deleteHabit(msg.HabitID)

	case habitform.HabitSubmittedMsg:
		m.currentView = ViewDashboard
		return m, m.saveHabit(msg.Habit)

	case habitform.HabitFormCancelMsg:
		m.currentView = m.previousView
		return m, nil

	case chainlist.EditChainMsg:
		m.previousView = m.currentView
		m.currentView = ViewChainForm
		m.chainForm.SetHabits(m.service.Snapshot().Habits)
		return m, m.chainForm.StartEdit(msg.Chain)

	case chainlist.DeleteChainMsg:
		return m, m.deleteChain(msg.ChainID)

	case chainform.ChainSubmittedMsg:
		m.currentView = ViewChains
		return m, m.saveChain(msg.ID, msg.Name, msg.HabitIDs)

	case chainform.ChainFormCancelMsg:
		m.currentView = m.previousView
		return m, nil

	case tea.KeyMsg:
		if model, cmd, handled := m.handleGlobalKeys(msg); handled {
			return model, cmd
		}
	}

	return m.updateActiveView(msg)
}

// handleGlobalKeys processes keys that work regardless of the view the
// user is in. Form views keep full keyboard focus.
func (m Model) handleGlobalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	inForm := m.currentView == ViewAuth ||
		m.currentView == ViewHabitForm ||
		m.currentView == ViewChainForm

	if msg.String() == "ctrl+c" {
		m.refresher.Stop()
		return m, tea.Quit, true
	}
	if inForm {
		return m, nil, false
	}

	switch msg.String() {
	case "q":
		m.refresher.Stop()
		return m, tea.Quit, true

	case "?":
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
			return m, nil, true
		}
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return m, nil, true

	case "esc":
		switch m.currentView {
		case ViewChains, ViewStats, ViewHelp:
			m.currentView = ViewDashboard
			return m, nil, true
		}

	case "a":
		if m.currentView == ViewDashboard {
			m.previousView = m.currentView
			m.currentView = ViewHabitForm
			return m, m.habitForm.StartCreate(), true
		}

	case "c":
		if m.currentView == ViewDashboard {
			m.currentView = ViewChains
			return m, nil, true
		}

	case "n":
		if m.currentView == ViewChains {
			m.previousView = m.currentView
			m.currentView = ViewChainForm
			m.chainForm.SetHabits(m.service.Snapshot().Habits)
			return m, m.chainForm.StartCreate(), true
		}

	case "s":
		if m.currentView == ViewDashboard || m.currentView == ViewChains {
			m.previousView = m.currentView
			m.currentView = ViewStats
			return m, nil, true
		}

	case "r":
		return m, m.refresher.TriggerNow(), true

	case "ctrl+o":
		if m.authMgr != nil {
			return m, m.signOut(), true
		}
	}

	return m, nil, false
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewAuth:
		m.authView, cmd = m.authView.Update(msg)
	case ViewDashboard:
		m.habitList, cmd = m.habitList.Update(msg)
	case ViewChains:
		m.chainList, cmd = m.chainList.Update(msg)
	case ViewStats:
		m.statsView, cmd = m.statsView.Update(msg)
	case ViewHabitForm:
		m.habitForm, cmd = m.habitForm.Update(msg)
	case ViewChainForm:
		m.chainForm, cmd = m.chainForm.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	}

	return m, cmd
}

// applySnapshot pushes fresh data into every data-bearing view and
// returns the list's follow-up command.
func (m *Model) applySnapshot(snap habits.Snapshot) tea.Cmd {
	cmd := m.habitList.SetHabits(snap.Habits)
	m.chainList.SetData(snap.Chains, snap.Habits)
	m.statsView.SetData(m.service.Stats(), m.service.WeeklyProgress())
	return cmd
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader("habitchain", m.headerStatus())
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.keyHints(), m.errorMessage)

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewAuth:
		return m.authView.View()
	case ViewDashboard:
		return m.habitList.View()
	case ViewChains:
		return m.chainList.View()
	case ViewStats:
		return m.statsView.View()
	case ViewHabitForm:
		return m.habitForm.View()
	case ViewChainForm:
		return m.chainForm.View()
	case ViewHelp:
		return m.helpView.View()
	default:
		return ""
	}
}

// headerStatus describes the account and refresh state.
func (m Model) headerStatus() string {
	var account string
	if m.authMgr != nil {
		if u := m.authMgr.User(); u.ID != "" {
			account = u.Email
		} else {
			account = "signed out"
		}
	} else {
		account = "local"
	}

	state, lastSync := m.refresher.Status()
	switch state {
	case appsync.RefreshRunning:
		return account + " | syncing"
	case appsync.RefreshError:
		return account + " | ⚠ sync failed"
	default:
		if lastSync.IsZero() {
			return account
		}
		return fmt.Sprintf("%s | synced %s", account, lastSync.Format("15:04"))
	}
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	switch m.currentView {
	case ViewAuth:
		return "enter submit | ctrl+c quit"
	case ViewHelp:
		return "? close help | esc back"
	case ViewChains:
		return "n new | enter edit | d delete | s stats | esc back"
	case ViewStats:
		return "esc back | r refresh"
	case ViewHabitForm, ViewChainForm:
		return "enter submit | esc cancel"
	default:
		return "space toggle | a add | e edit | d delete | c chains | s stats | ? help | q quit"
	}
}

// runAuth executes the submitted auth operation off the UI thread.
func (m Model) runAuth(msg authview.SubmitMsg) tea.Cmd {
	mgr := m.authMgr
	if mgr == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		switch msg.Mode {
		case authview.ModeSignUp:
			err := mgr.SignUp(ctx, msg.Email, msg.Password)
			if errors.Is(err, auth.ErrConfirmationPending) {
				return authResultMsg{notice: err.Error()}
			}
			return authResultMsg{err: err}
		case authview.ModeReset:
			if err := mgr.ResetPassword(ctx, msg.Email); err != nil {
				return authResultMsg{err: err}
			}
			return authResultMsg{notice: "Recovery email sent."}
		default:
			return authResultMsg{err: mgr.SignIn(ctx, msg.Email, msg.Password)}
		}
	}
}

func (m Model) signOut() tea.Cmd {
	mgr := m.authMgr
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()
		err := mgr.SignOut(ctx)
		if errors.Is(err, auth.ErrNotSignedIn) {
			err = nil
		}
		return signedOutMsg{err: err}
	}
}

func (m Model) toggleHabit(habitID string) tea.Cmd {
	svc := m.service
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()
		snap, err := svc.ToggleToday(ctx, habitID)
		return mutationResultMsg{snapshot: snap, err: err}
	}
}

func (m Model) saveHabit(habit model.Habit) tea.Cmd {
	svc := m.service
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		var (
			snap habits.Snapshot
			err  error
		)
		if habit.ID == "" {
			snap, err = svc.AddHabit(ctx, habit.Name, habit.Icon, habit.Color)
		} else {
			snap, err = svc.UpdateHabit(ctx, habit)
		}
		return mutationResultMsg{snapshot: snap, err: err}
	}
}

func (m Model) deleteHabit(id string) tea.Cmd {
	svc := m.service
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()
		snap, err := svc.DeleteHabit(ctx, id)
		return mutationResultMsg{snapshot: snap, err: err}
	}
}

func (m Model) saveChain(id, name string, habitIDs []string) tea.Cmd {
	svc := m.service
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()
		snap, err := svc.SaveChain(ctx, id, name, habitIDs)
		return mutationResultMsg{snapshot: snap, err: err}
	}
}

func (m Model) deleteChain(id string) tea.Cmd {
	svc := m.service
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()
		snap, err := svc.DeleteChain(ctx, id)
		return mutationResultMsg{snapshot: snap, err: err}
	}
}
