package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"coachpanel/internal/adapters/api"
	"coachpanel/internal/domain/admin"
)

// AuthClientForLogin defines the backend calls needed by Login.
type AuthClientForLogin interface {
	Login(ctx context.Context, username, password string) (api.LoginResponse, error)
}

// SessionCreator persists a new admin session.
type SessionCreator interface {
	Create(ctx context.Context, bearerToken string, profile admin.Profile) (string, error)
}

// LoginInput carries input for the login orchestrator.
type LoginInput struct {
	Username string
	Password string
}

// LoginResult carries the result of a successful login.
type LoginResult struct {
	SessionToken string
	Admin        admin.Profile
}

// LoginDeps holds dependencies for Login.
type LoginDeps struct {
	Auth     AuthClientForLogin
	Sessions SessionCreator
}

var ErrMissingCredentials = errors.New("username and password are required")

// ExecuteLogin exchanges credentials for a backend bearer token and opens a
// local session around it.
// PRE: Username and password provided
// POST: On success a session row exists and its cookie token is returned
func ExecuteLogin(ctx context.Context, input LoginInput, deps LoginDeps) (LoginResult, error) {
	if input.Username == "" || input.Password == "" {
		return LoginResult{}, ErrMissingCredentials
	}

	resp, err := deps.Auth.Login(ctx, input.Username, input.Password)
	if err != nil {
		slog.Info("auth_event", "event", "login_failed", "username", input.Username)
		return LoginResult{}, err
	}

	token, err := deps.Sessions.Create(ctx, resp.Token, resp.Admin)
	if err != nil {
		return LoginResult{}, err
	}

	slog.Info("auth_event", "event", "login_success", "username", input.Username, "admin_id", resp.Admin.ID)

	return LoginResult{SessionToken: token, Admin: resp.Admin}, nil
}
