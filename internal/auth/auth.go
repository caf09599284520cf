// Package auth manages the signed-in session: sign-up, sign-in,
// sign-out, password recovery, and restoring a persisted session on
// startup. The session itself is threaded into backend calls by the
// caller; nothing here is global.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"habitchain/internal/credential"
	"habitchain/internal/model"
)

// ErrConfirmationPending is returned by SignUp when the account was
// created but the project requires the user to confirm their email
// before a session is issued.
var ErrConfirmationPending = errors.New("confirmation email sent, sign in after confirming")

// ErrNotSignedIn is returned by operations that require a session.
var ErrNotSignedIn = errors.New("not signed in")

// Client is the remote auth surface the manager drives. It matches the
// rest client's auth methods plus the token hook used to authorize
// subsequent data requests.
type Client interface {
	SignUp(ctx context.Context, email, password string) (model.Session, error)
	SignIn(ctx context.Context, email, password string) (model.Session, error)
	RefreshSession(ctx context.Context, refreshToken string) (model.Session, error)
	SignOut(ctx context.Context) error
	ResetPassword(ctx context.Context, email string) error
	SetAccessToken(token string)
}

// Manager tracks the current session and keeps it persisted across
// restarts.
type Manager struct {
	client Client

	// Persistence hooks, overridable in tests.
	save  func(model.Session) error
	load  func() (model.Session, error)
	clear func() error

	mu        sync.RWMutex
	session   model.Session
	subs      map[int]func(model.Session)
	nextSubID int
}

// NewManager creates a manager persisting sessions in the system
// keyring.
func NewManager(client Client) *Manager {
	return &Manager{
		client: client,
		save:   credential.SaveSession,
		load:   credential.LoadSession,
		clear:  credential.ClearSession,
	}
}

// Session returns a copy of the current session. The zero session
// means signed out.
func (m *Manager) Session() model.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session
}

// SignedIn reports whether a session with a user is held.
func (m *Manager) SignedIn() bool {
	return m.Session().User.ID != ""
}

// User returns the signed-in user, or the zero User when signed out.
func (m *Manager) User() model.User {
	return m.Session().User
}

// Subscribe registers fn to run on every session change: sign-in,
// restore, refresh, and sign-out (with the zero session). The returned
// function removes the subscription.
func (m *Manager) Subscribe(fn func(model.Session)) func() {
	m.mu.Lock()
	if m.subs == nil {
		m.subs = make(map[int]func(model.Session))
	}
	id := m.nextSubID
	m.nextSubID++
	m.subs[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.subs, id)
		m.mu.Unlock()
	}
}

func (m *Manager) install(session model.Session) {
	m.mu.Lock()
	m.session = session
	subs := make([]func(model.Session), 0, len(m.subs))
	for _, fn := range m.subs {
		subs = append(subs, fn)
	}
	m.mu.Unlock()

	m.client.SetAccessToken(session.AccessToken)
	for _, fn := range subs {
		fn(session)
	}
}

// Restore loads a persisted session, refreshing it when expired. It
// returns false when no usable session exists; that is not an error.
func (m *Manager) Restore(ctx context.Context) (bool, error) {
	session, err := m.load()
	if err != nil {
		return false, fmt.Errorf("loading stored session: %w", err)
	}
	if session.User.ID == "" {
		return false, nil
	}

	if session.Expired() {
		if session.RefreshToken == "" {
			return false, nil
		}
		session, err = m.client.RefreshSession(ctx, session.RefreshToken)
		if err != nil {
			// A dead refresh token just means signing in again.
			_ = m.clear()
			return false, nil
		}
		if err := m.save(session); err != nil {
			return false, fmt.Errorf("persisting refreshed session: %w", err)
		}
	}

	m.install(session)
	return true, nil
}

// SignUp registers a new account and, when the project issues tokens
// immediately, signs in with them. Returns ErrConfirmationPending when
// email confirmation is required first.
func (m *Manager) SignUp(ctx context.Context, email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return fmt.Errorf("email and password must not be empty")
	}

	session, err := m.client.SignUp(ctx, email, password)
	if err != nil {
		return err
	}
	if session.AccessToken == "" {
		return ErrConfirmationPending
	}

	if err := m.save(session); err != nil {
		return fmt.Errorf("persisting session: %w", err)
	}
	m.install(session)
	return nil
}

// SignIn exchanges credentials for a session and persists it.
func (m *Manager) SignIn(ctx context.Context, email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return fmt.Errorf("email and password must not be empty")
	}

	session, err := m.client.SignIn(ctx, email, password)
	if err != nil {
		return err
	}

	if err := m.save(session); err != nil {
		return fmt.Errorf("persisting session: %w", err)
	}
	m.install(session)
	return nil
}

// SignOut revokes the session remotely and forgets it locally. The
// local state is cleared even when the remote revocation fails.
func (m *Manager) SignOut(ctx context.Context) error {
	if !m.SignedIn() {
		return ErrNotSignedIn
	}

	revokeErr := m.client.SignOut(ctx)

	m.install(model.Session{})
	if err := m.clear(); err != nil {
		return fmt.Errorf("clearing stored session: %w", err)
	}
	return revokeErr
}

// ResetPassword requests a password recovery email.
func (m *Manager) ResetPassword(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("email must not be empty")
	}
	return m.client.ResetPassword(ctx, email)
}
