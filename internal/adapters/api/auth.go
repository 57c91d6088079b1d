package api

import (
	"context"
	"net/http"

	"coachpanel/internal/domain/admin"
)

// LoginResponse is the POST /admin/login success payload.
type LoginResponse struct {
	Admin admin.Profile `json:"admin"`
	Token string        `json:"token"`
}

// Login posts credentials and returns the bearer token plus admin profile.
// PRE: username and password are non-empty
// POST: On success the returned token authenticates subsequent calls
func (c *Client) Login(ctx context.Context, username, password string) (LoginResponse, error) {
	var out LoginResponse
	payload := map[string]string{"username": username, "password": password}
	if err := c.sendJSONInto(ctx, http.MethodPost, "/admin/login", payload, &out); err != nil {
		return LoginResponse{}, err
	}
	return out, nil
}

// ForgotPassword asks the backend to email a one-time passcode.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	return c.sendJSON(ctx, http.MethodPost, "/admin/forgot-password", map[string]string{"email": email})
}

// ResetPassword confirms an OTP reset. The backend validates the OTP and the
// password match; all four fields are posted as received.
func (c *Client) ResetPassword(ctx context.Context, email, otp, newPassword, confirmPassword string) error {
	return c.sendJSON(ctx, http.MethodPost, "/admin/reset-password", map[string]string{
		"email":           email,
		"otp":             otp,
		"newPassword":     newPassword,
		"confirmPassword": confirmPassword,
	})
}

// ChangePassword updates the signed-in admin's password.
func (c *Client) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	return c.sendJSON(ctx, http.MethodPut, "/admin/change-password", map[string]string{
		"currentPassword": currentPassword,
		"newPassword":     newPassword,
	})
}

// Profile fetches the signed-in admin's profile from GET /admin/me.
func (c *Client) Profile(ctx context.Context) (admin.Profile, error) {
	var out struct {
		Admin admin.Profile `json:"admin"`
	}
	if err := c.getJSON(ctx, "/admin/me", &out); err != nil {
		return admin.Profile{}, err
	}
	return out.Admin, nil
}

// UpdateProfile saves the admin's display name and email.
func (c *Client) UpdateProfile(ctx context.Context, name, email string) error {
	return c.sendJSON(ctx, http.MethodPut, "/admin/me", map[string]string{
		"name":  name,
		"email": email,
	})
}
