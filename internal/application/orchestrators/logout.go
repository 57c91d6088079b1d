package orchestrators

import (
	"context"
	"log/slog"
)

// SessionDeleter removes a persisted session.
type SessionDeleter interface {
	Delete(ctx context.Context, token string) error
}

// LogoutDeps holds dependencies for Logout.
type LogoutDeps struct {
	Sessions SessionDeleter
}

// ExecuteLogout destroys the session. The backend bearer token is simply
// forgotten; the backend keeps its own token lifetimes.
// PRE: token is the session cookie value (may be stale)
// POST: No session row with that token remains
func ExecuteLogout(ctx context.Context, token string, deps LogoutDeps) error {
	if token == "" {
		return nil
	}
	if err := deps.Sessions.Delete(ctx, token); err != nil {
		return err
	}
	slog.Info("auth_event", "event", "logout")
	return nil
}
