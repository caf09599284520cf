package rest

import (
	"context"
	"fmt"
	"time"

	"habitchain/internal/model"
)

// credentials is the request body for GoTrue signup and password
// grants.
type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// tokenResponse is the GoTrue session shape.
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	User         struct {
		ID           string `json:"id"`
		Email        string `json:"email"`
		UserMetadata struct {
			Name string `json:"name"`
		} `json:"user_metadata"`
	} `json:"user"`
}

func (r tokenResponse) toSession() model.Session {
	return model.Session{
		AccessToken:  r.AccessToken,
		RefreshToken: r.RefreshToken,
		ExpiresAt:    time.Now().Add(time.Duration(r.ExpiresIn) * time.Second),
		User: model.User{
			ID:    r.User.ID,
			Email: r.User.Email,
			Name:  r.User.UserMetadata.Name,
		},
	}
}

// SignUp registers a new account. When the project requires email
// confirmation GoTrue returns no tokens; the caller must treat an empty
// session as "confirmation pending".
func (c *Client) SignUp(ctx context.Context, email, password string) (model.Session, error) {
	var resp tokenResponse
	err := c.post(ctx, "/auth/v1/signup", credentials{Email: email, Password: password}, &resp)
	if err != nil {
		return model.Session{}, fmt.Errorf("signing up %s: %w", email, err)
	}
	if resp.AccessToken == "" {
		return model.Session{}, nil
	}
	return resp.toSession(), nil
}

// SignIn exchanges an email and password for a session.
func (c *Client) SignIn(ctx context.Context, email, password string) (model.Session, error) {
	var resp tokenResponse
	err := c.post(ctx, "/auth/v1/token?grant_type=password",
		credentials{Email: email, Password: password}, &resp)
	if err != nil {
		return model.Session{}, fmt.Errorf("signing in %s: %w", email, err)
	}
	return resp.toSession(), nil
}

// RefreshSession exchanges a refresh token for a fresh session.
func (c *Client) RefreshSession(ctx context.Context, refreshToken string) (model.Session, error) {
	body := struct {
		RefreshToken string `json:"refresh_token"`
	}{RefreshToken: refreshToken}

	var resp tokenResponse
	err := c.post(ctx, "/auth/v1/token?grant_type=refresh_token", body, &resp)
	if err != nil {
		return model.Session{}, fmt.Errorf("refreshing session: %w", err)
	}
	return resp.toSession(), nil
}

// SignOut revokes the current access token server-side.
func (c *Client) SignOut(ctx context.Context) error {
	if err := c.post(ctx, "/auth/v1/logout", struct{}{}, nil); err != nil {
		return fmt.Errorf("signing out: %w", err)
	}
	return nil
}

// ResetPassword asks GoTrue to send a password recovery email.
func (c *Client) ResetPassword(ctx context.Context, email string) error {
	body := struct {
		Email string `json:"email"`
	}{Email: email}

	if err := c.post(ctx, "/auth/v1/recover", body, nil); err != nil {
		return fmt.Errorf("requesting password reset for %s: %w", email, err)
	}
	return nil
}
