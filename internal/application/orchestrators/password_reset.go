package orchestrators

import (
	"context"
	"errors"
	"log/slog"
)

// AuthClientForReset defines the backend calls needed by the reset flow.
type AuthClientForReset interface {
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, otp, newPassword, confirmPassword string) error
}

var (
	ErrMissingEmail     = errors.New("email is required")
	ErrMissingOTP       = errors.New("enter the code from your email")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrMissingPassword  = errors.New("enter and confirm the new password")
)

// ForgotPasswordDeps holds dependencies for RequestPasswordReset.
type ForgotPasswordDeps struct {
	Auth AuthClientForReset
}

// ExecuteForgotPassword asks the backend to email a one-time passcode.
// PRE: Email provided
// POST: Backend has queued the OTP email (backend decides whether the address exists)
func ExecuteForgotPassword(ctx context.Context, email string, deps ForgotPasswordDeps) error {
	if email == "" {
		return ErrMissingEmail
	}
	if err := deps.Auth.ForgotPassword(ctx, email); err != nil {
		return err
	}
	slog.Info("auth_event", "event", "otp_requested", "email", email)
	return nil
}

// ResetPasswordInput carries input for the reset confirmation step.
type ResetPasswordInput struct {
	Email           string
	OTP             string
	NewPassword     string
	ConfirmPassword string
}

// ResetPasswordDeps holds dependencies for ResetPassword.
type ResetPasswordDeps struct {
	Auth AuthClientForReset
}

// ExecuteResetPassword confirms an OTP reset. The password-match check runs
// before any network call so a typo never costs a round trip.
// PRE: All four fields provided
// POST: On success the backend has replaced the password; the OTP is spent
func ExecuteResetPassword(ctx context.Context, input ResetPasswordInput, deps ResetPasswordDeps) error {
	if input.Email == "" {
		return ErrMissingEmail
	}
	if input.OTP == "" {
		return ErrMissingOTP
	}
	if input.NewPassword == "" || input.ConfirmPassword == "" {
		return ErrMissingPassword
	}
	if input.NewPassword != input.ConfirmPassword {
		return ErrPasswordMismatch
	}
	if err := deps.Auth.ResetPassword(ctx, input.Email, input.OTP, input.NewPassword, input.ConfirmPassword); err != nil {
		slog.Info("auth_event", "event", "reset_failed", "email", input.Email)
		return err
	}
	slog.Info("auth_event", "event", "reset_success", "email", input.Email)
	return nil
}
