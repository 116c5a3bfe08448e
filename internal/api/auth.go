package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"sportify-admin/internal/apiclient"
	"sportify-admin/internal/model"
)

// Session is the part of the session store the auth module drives.
// *session.Store satisfies it.
type Session interface {
	Login(ctx context.Context, user model.User, accessToken string, refreshToken string) error
	Logout(ctx context.Context) error
	Refresh(ctx context.Context, accessToken string, refreshToken string) error
	SetUser(ctx context.Context, user model.User) error
	SetLoading(loading bool)
	RefreshToken() string
}

type Auth struct {
	resource
	session Session
}

// Login posts credentials and, on success, installs the new session and
// drops every cached read from the previous one. A 401 here means bad
// credentials and never enters the refresh flow.
func (a *Auth) Login(ctx context.Context, credentials model.LoginCredentials) (*model.LoginResponse, error) {
	a.session.SetLoading(true)
	defer a.session.SetLoading(false)

	req := apiclient.NewRequest(http.MethodPost, "/auth/login").
		WithBody(credentials).
		WithoutRefresh()

	envelope, err := apiclient.Send[model.LoginResponse](ctx, a.client, req)
	if err != nil {
		return nil, err
	}

	login := envelope.Data
	if err := a.session.Login(ctx, login.User, login.AccessToken, login.RefreshToken); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	a.clear()

	slog.Info("logged in", "user_id", login.User.ID, "email", login.User.Email)
	return &login, nil
}

// Logout tells the backend, then clears local state regardless of the
// backend's answer.
func (a *Auth) Logout(ctx context.Context) error {
	req := apiclient.NewRequest(http.MethodPost, "/auth/logout").WithoutRefresh()
	if _, err := apiclient.Send[any](ctx, a.client, req); err != nil {
		slog.Warn("backend logout failed", "error", err)
	}

	a.clear()
	if err := a.session.Logout(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Refresh exchanges the stored refresh token for a new access token
// explicitly, outside the 401 flow.
func (a *Auth) Refresh(ctx context.Context) (*model.RefreshResponse, error) {
	refreshToken := a.session.RefreshToken()
	if refreshToken == "" {
		return nil, fmt.Errorf("no refresh token stored")
	}

	req := apiclient.NewRequest(http.MethodPost, "/auth/refresh").
		WithBody(model.RefreshRequest{RefreshToken: refreshToken}).
		WithoutRefresh()

	envelope, err := apiclient.Send[model.RefreshResponse](ctx, a.client, req)
	if err != nil {
		return nil, err
	}

	tokens := envelope.Data
	if err := a.session.Refresh(ctx, tokens.Access(), tokens.RefreshToken); err != nil {
		return nil, fmt.Errorf("store refreshed token: %w", err)
	}
	return &tokens, nil
}

// Me fetches the current user and syncs it into the session.
func (a *Auth) Me(ctx context.Context) (*model.Envelope[model.User], error) {
	envelope, err := apiclient.Get[model.User](ctx, a.client, "/auth/me", nil)
	if err != nil {
		return nil, err
	}

	if err := a.session.SetUser(ctx, envelope.Data); err != nil {
		return nil, fmt.Errorf("store user: %w", err)
	}
	return envelope, nil
}
