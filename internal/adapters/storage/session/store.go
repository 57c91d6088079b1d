package session

import (
	"context"
	"errors"
	"time"

	"coachpanel/internal/domain/admin"
)

// ErrNotFound is returned when no session matches the given token.
var ErrNotFound = errors.New("session not found")

// Session is one signed-in admin: the opaque cookie token, the backend
// bearer token it maps to, and the cached admin profile. There is no expiry
// tracking — presence of the row is the sole signal of "logged in", and a
// stale bearer token persists until a protected backend call fails.
type Session struct {
	Token       string // cookie value, crypto/rand hex
	BearerToken string // backend credential, sealed at rest
	Admin       admin.Profile
	CreatedAt   time.Time
}

// Store persists admin sessions across restarts.
type Store interface {
	Create(ctx context.Context, bearerToken string, profile admin.Profile) (string, error)
	Get(ctx context.Context, token string) (Session, error)
	UpdateProfile(ctx context.Context, token string, profile admin.Profile) error
	Delete(ctx context.Context, token string) error
}
