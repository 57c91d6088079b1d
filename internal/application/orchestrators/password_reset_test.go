package orchestrators

import (
	"context"
	"errors"
	"testing"

	"coachpanel/internal/adapters/api"
)

type mockResetClient struct {
	forgotCalls []string
	forgotErr   error
	resetCalled bool
	resetErr    error
	resetArgs   [4]string
}

func (m *mockResetClient) ForgotPassword(_ context.Context, email string) error {
	m.forgotCalls = append(m.forgotCalls, email)
	return m.forgotErr
}

func (m *mockResetClient) ResetPassword(_ context.Context, email, otp, newPassword, confirmPassword string) error {
	m.resetCalled = true
	m.resetArgs = [4]string{email, otp, newPassword, confirmPassword}
	return m.resetErr
}

func TestExecuteForgotPassword(t *testing.T) {
	auth := &mockResetClient{}
	if err := ExecuteForgotPassword(context.Background(), "admin@example.com", ForgotPasswordDeps{Auth: auth}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(auth.forgotCalls) != 1 || auth.forgotCalls[0] != "admin@example.com" {
		t.Errorf("forgot calls = %v", auth.forgotCalls)
	}

	if err := ExecuteForgotPassword(context.Background(), "", ForgotPasswordDeps{Auth: auth}); !errors.Is(err, ErrMissingEmail) {
		t.Errorf("empty email: err = %v, want ErrMissingEmail", err)
	}
}

func TestExecuteResetPassword_Success(t *testing.T) {
	auth := &mockResetClient{}
	input := ResetPasswordInput{
		Email:           "admin@example.com",
		OTP:             "123456",
		NewPassword:     "newpw",
		ConfirmPassword: "newpw",
	}
	if err := ExecuteResetPassword(context.Background(), input, ResetPasswordDeps{Auth: auth}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := [4]string{"admin@example.com", "123456", "newpw", "newpw"}
	if auth.resetArgs != want {
		t.Errorf("reset args = %v, want %v", auth.resetArgs, want)
	}
}

func TestExecuteResetPassword_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input ResetPasswordInput
		want  error
	}{
		{"missing email", ResetPasswordInput{OTP: "1", NewPassword: "a", ConfirmPassword: "a"}, ErrMissingEmail},
		{"missing otp", ResetPasswordInput{Email: "e", NewPassword: "a", ConfirmPassword: "a"}, ErrMissingOTP},
		{"missing password", ResetPasswordInput{Email: "e", OTP: "1"}, ErrMissingPassword},
		{"mismatch", ResetPasswordInput{Email: "e", OTP: "1", NewPassword: "a", ConfirmPassword: "b"}, ErrPasswordMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := &mockResetClient{}
			err := ExecuteResetPassword(context.Background(), tt.input, ResetPasswordDeps{Auth: auth})
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
			if auth.resetCalled {
				t.Error("backend called despite validation failure")
			}
		})
	}
}

func TestExecuteResetPassword_BackendError(t *testing.T) {
	auth := &mockResetClient{resetErr: &api.Error{Status: 400, Message: "Invalid or expired OTP"}}
	input := ResetPasswordInput{Email: "e", OTP: "000000", NewPassword: "a", ConfirmPassword: "a"}
	err := ExecuteResetPassword(context.Background(), input, ResetPasswordDeps{Auth: auth})
	var apiErr *api.Error
	if !errors.As(err, &apiErr) || apiErr.Message != "Invalid or expired OTP" {
		t.Fatalf("expected backend error passed through, got %v", err)
	}
}
