package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"coachpanel/internal/domain/admin"
)

// AuthClientForSettings defines the backend calls needed by UpdateSettings.
type AuthClientForSettings interface {
	ChangePassword(ctx context.Context, currentPassword, newPassword string) error
	UpdateProfile(ctx context.Context, name, email string) error
	Profile(ctx context.Context) (admin.Profile, error)
}

// SessionProfileUpdater refreshes the cached profile on a session.
type SessionProfileUpdater interface {
	UpdateProfile(ctx context.Context, token string, profile admin.Profile) error
}

// UpdateSettingsInput carries the settings form fields. Password fields are
// optional; leaving all three empty skips the password change.
type UpdateSettingsInput struct {
	SessionToken    string
	Name            string
	Email           string
	CurrentPassword string
	NewPassword     string
	ConfirmPassword string
}

// UpdateSettingsDeps holds dependencies for UpdateSettings.
type UpdateSettingsDeps struct {
	Auth     AuthClientForSettings
	Sessions SessionProfileUpdater
}

var ErrMissingCurrentPassword = errors.New("current password is required to change your password")

// ExecuteUpdateSettings saves profile changes, changing the password first
// when one was entered. A failed password change aborts the whole save so
// the admin never ends up with half the form applied.
// PRE: Name and email pass admin.ValidateUpdate
// POST: On success the backend and the session cache agree on the profile
func ExecuteUpdateSettings(ctx context.Context, input UpdateSettingsInput, deps UpdateSettingsDeps) (admin.Profile, error) {
	profile := admin.Profile{Name: input.Name, Email: input.Email}
	if err := profile.ValidateUpdate(); err != nil {
		return admin.Profile{}, err
	}

	wantsPasswordChange := input.NewPassword != "" || input.ConfirmPassword != "" || input.CurrentPassword != ""
	if wantsPasswordChange {
		if input.CurrentPassword == "" {
			return admin.Profile{}, ErrMissingCurrentPassword
		}
		if input.NewPassword == "" || input.ConfirmPassword == "" {
			return admin.Profile{}, ErrMissingPassword
		}
		if input.NewPassword != input.ConfirmPassword {
			return admin.Profile{}, ErrPasswordMismatch
		}
		if err := deps.Auth.ChangePassword(ctx, input.CurrentPassword, input.NewPassword); err != nil {
			slog.Info("auth_event", "event", "password_change_failed")
			return admin.Profile{}, err
		}
		slog.Info("auth_event", "event", "password_changed")
	}

	if err := deps.Auth.UpdateProfile(ctx, input.Name, input.Email); err != nil {
		return admin.Profile{}, err
	}

	updated, err := deps.Auth.Profile(ctx)
	if err != nil {
		// Profile save succeeded; fall back to the submitted values.
		updated = profile
	}
	if err := deps.Sessions.UpdateProfile(ctx, input.SessionToken, updated); err != nil {
		slog.Warn("session_profile_refresh_failed", "error", err)
	}
	return updated, nil
}
