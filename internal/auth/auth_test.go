package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"habitchain/internal/model"
)

type fakeClient struct {
	sessions  map[string]model.Session
	refreshed model.Session
	token     string

	refreshErr error
	signOutErr error
	recovered  []string
}

func (f *fakeClient) SignUp(_ context.Context, email, _ string) (model.Session, error) {
	s, ok := f.sessions[email]
	if !ok {
		return model.Session{}, nil
	}
	return s, nil
}

func (f *fakeClient) SignIn(_ context.Context, email, password string) (model.Session, error) {
	s, ok := f.sessions[email]
	if !ok || password == "wrong" {
		return model.Session{}, errors.New("invalid credentials")
	}
	return s, nil
}

func (f *fakeClient) RefreshSession(_ context.Context, _ string) (model.Session, error) {
	if f.refreshErr != nil {
		return model.Session{}, f.refreshErr
	}
	return f.refreshed, nil
}

func (f *fakeClient) SignOut(_ context.Context) error { return f.signOutErr }

func (f *fakeClient) ResetPassword(_ context.Context, email string) error {
	f.recovered = append(f.recovered, email)
	return nil
}

func (f *fakeClient) SetAccessToken(token string) { f.token = token }

// newTestManager wires a manager to a fake client and an in-memory
// session store.
func newTestManager(client *fakeClient) (*Manager, *model.Session) {
	stored := &model.Session{}
	m := NewManager(client)
	m.save = func(s model.Session) error { *stored = s; return nil }
	m.load = func() (model.Session, error) { return *stored, nil }
	m.clear = func() error { *stored = model.Session{}; return nil }
	return m, stored
}

func validSession(email string) model.Session {
	return model.Session{
		AccessToken:  "access-" + email,
		RefreshToken: "refresh-" + email,
		ExpiresAt:    time.Now().Add(time.Hour),
		User:         model.User{ID: "user-" + email, Email: email},
	}
}

func TestSignInPersistsAndInstallsSession(t *testing.T) {
	client := &fakeClient{sessions: map[string]model.Session{
		"a@example.com": validSession("a@example.com"),
	}}
	m, stored := newTestManager(client)

	if m.SignedIn() {
		t.Fatal("signed in before SignIn")
	}
	if err := m.SignIn(context.Background(), "a@example.com", "pw"); err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if !m.SignedIn() {
		t.Error("not signed in after SignIn")
	}
	if m.User().Email != "a@example.com" {
		t.Errorf("User = %+v", m.User())
	}
	if client.token != "access-a@example.com" {
		t.Errorf("access token not installed on client: %q", client.token)
	}
	if stored.User.ID == "" {
		t.Error("session not persisted")
	}
}

func TestSignInRejectsBadCredentials(t *testing.T) {
	client := &fakeClient{sessions: map[string]model.Session{
		"a@example.com": validSession("a@example.com"),
	}}
	m, _ := newTestManager(client)

	if err := m.SignIn(context.Background(), "a@example.com", "wrong"); err == nil {
		t.Error("expected error for bad password")
	}
	if err := m.SignIn(context.Background(), "", ""); err == nil {
		t.Error("expected error for empty credentials")
	}
	if m.SignedIn() {
		t.Error("signed in after failed attempts")
	}
}

func TestSignUpConfirmationPending(t *testing.T) {
	m, _ := newTestManager(&fakeClient{sessions: map[string]model.Session{}})

	err := m.SignUp(context.Background(), "new@example.com", "pw")
	if !errors.Is(err, ErrConfirmationPending) {
		t.Errorf("err = %v, want ErrConfirmationPending", err)
	}
	if m.SignedIn() {
		t.Error("signed in without tokens")
	}
}

func TestRestoreValidSession(t *testing.T) {
	client := &fakeClient{}
	m, stored := newTestManager(client)
	*stored = validSession("a@example.com")

	ok, err := m.Restore(context.Background())
	if err != nil || !ok {
		t.Fatalf("Restore = %v, %v; want true, nil", ok, err)
	}
	if !m.SignedIn() || client.token == "" {
		t.Error("restored session not installed")
	}
}

func TestRestoreRefreshesExpiredSession(t *testing.T) {
	fresh := validSession("a@example.com")
	client := &fakeClient{refreshed: fresh}
	m, stored := newTestManager(client)

	expired := fresh
	expired.AccessToken = "stale"
	expired.ExpiresAt = time.Now().Add(-time.Hour)
	*stored = expired

	ok, err := m.Restore(context.Background())
	if err != nil || !ok {
		t.Fatalf("Restore = %v, %v; want true, nil", ok, err)
	}
	if m.Session().AccessToken != fresh.AccessToken {
		t.Errorf("session not refreshed: %+v", m.Session())
	}
	if stored.AccessToken != fresh.AccessToken {
		t.Error("refreshed session not persisted")
	}
}

func TestRestoreDeadRefreshTokenMeansSignedOut(t *testing.T) {
	client := &fakeClient{refreshErr: errors.New("refresh token revoked")}
	m, stored := newTestManager(client)

	expired := validSession("a@example.com")
	expired.ExpiresAt = time.Now().Add(-time.Hour)
	*stored = expired

	ok, err := m.Restore(context.Background())
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if ok || m.SignedIn() {
		t.Error("expected signed-out state after failed refresh")
	}
	if stored.User.ID != "" {
		t.Error("dead session not cleared from store")
	}
}

func TestRestoreEmptyStore(t *testing.T) {
	m, _ := newTestManager(&fakeClient{})
	ok, err := m.Restore(context.Background())
	if err != nil || ok {
		t.Errorf("Restore = %v, %v; want false, nil", ok, err)
	}
}

func TestSignOutClearsEvenWhenRevokeFails(t *testing.T) {
	client := &fakeClient{
		sessions:   map[string]model.Session{"a@example.com": validSession("a@example.com")},
		signOutErr: errors.New("network down"),
	}
	m, stored := newTestManager(client)
	if err := m.SignIn(context.Background(), "a@example.com", "pw"); err != nil {
		t.Fatalf("SignIn: %v", err)
	}

	err := m.SignOut(context.Background())
	if err == nil {
		t.Error("expected revocation error to surface")
	}
	if m.SignedIn() {
		t.Error("still signed in after SignOut")
	}
	if client.token != "" {
		t.Errorf("client token not cleared: %q", client.token)
	}
	if stored.User.ID != "" {
		t.Error("stored session not cleared")
	}
}

func TestSignOutWithoutSession(t *testing.T) {
	m, _ := newTestManager(&fakeClient{})
	if err := m.SignOut(context.Background()); !errors.Is(err, ErrNotSignedIn) {
		t.Errorf("err = %v, want ErrNotSignedIn", err)
	}
}

func TestSubscribeFiresOnSessionChanges(t *testing.T) {
	client := &fakeClient{sessions: map[string]model.Session{
		"a@example.com": validSession("a@example.com"),
	}}
	m, _ := newTestManager(client)

	var seen []string
	unsubscribe := m.Subscribe(func(s model.Session) {
		seen = append(seen, s.User.ID)
	})

	if err := m.SignIn(context.Background(), "a@example.com", "pw"); err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if err := m.SignOut(context.Background()); err != nil {
		t.Fatalf("SignOut: %v", err)
	}
	if len(seen) != 2 || seen[0] != "user-a@example.com" || seen[1] != "" {
		t.Errorf("seen = %v, want sign-in then zero session", seen)
	}

	unsubscribe()
	if err := m.SignIn(context.Background(), "a@example.com", "pw"); err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if len(seen) != 2 {
		t.Errorf("subscriber fired after unsubscribe: %v", seen)
	}
}

func TestResetPassword(t *testing.T) {
	client := &fakeClient{}
	m, _ := newTestManager(client)

	if err := m.ResetPassword(context.Background(), " a@example.com "); err != nil {
		t.Fatalf("ResetPassword: %v", err)
	}
	if len(client.recovered) != 1 || client.recovered[0] != "a@example.com" {
		t.Errorf("recovered = %v", client.recovered)
	}
	if err := m.ResetPassword(context.Background(), "  "); err == nil {
		t.Error("expected error for empty email")
	}
}
