package orchestrators

import (
	"context"
	"errors"
	"testing"

	"coachpanel/internal/adapters/api"
	"coachpanel/internal/domain/admin"
)

type mockAuthClient struct {
	loginResp api.LoginResponse
	loginErr  error
	loginCall struct {
		username string
		password string
	}
}

func (m *mockAuthClient) Login(_ context.Context, username, password string) (api.LoginResponse, error) {
	m.loginCall.username = username
	m.loginCall.password = password
	if m.loginErr != nil {
		return api.LoginResponse{}, m.loginErr
	}
	return m.loginResp, nil
}

type mockSessionStore struct {
	created struct {
		bearer  string
		profile admin.Profile
	}
	createErr error
	deleted   []string
	updated   map[string]admin.Profile
}

func newMockSessionStore() *mockSessionStore {
	return &mockSessionStore{updated: make(map[string]admin.Profile)}
}

func (m *mockSessionStore) Create(_ context.Context, bearer string, profile admin.Profile) (string, error) {
	if m.createErr != nil {
		return "", m.createErr
	}
	m.created.bearer = bearer
	m.created.profile = profile
	return "session-token", nil
}

func (m *mockSessionStore) Delete(_ context.Context, token string) error {
	m.deleted = append(m.deleted, token)
	return nil
}

func (m *mockSessionStore) UpdateProfile(_ context.Context, token string, profile admin.Profile) error {
	m.updated[token] = profile
	return nil
}

func TestExecuteLogin_Success(t *testing.T) {
	auth := &mockAuthClient{loginResp: api.LoginResponse{
		Admin: admin.Profile{ID: "a1", Username: "coach", Name: "Coach"},
		Token: "bearer-xyz",
	}}
	sessions := newMockSessionStore()

	result, err := ExecuteLogin(context.Background(), LoginInput{Username: "coach", Password: "pw"}, LoginDeps{Auth: auth, Sessions: sessions})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.SessionToken != "session-token" {
		t.Errorf("session token = %q", result.SessionToken)
	}
	if result.Admin.ID != "a1" {
		t.Errorf("admin id = %q, want a1", result.Admin.ID)
	}
	if sessions.created.bearer != "bearer-xyz" {
		t.Errorf("stored bearer = %q, want bearer-xyz", sessions.created.bearer)
	}
}

func TestExecuteLogin_MissingFields(t *testing.T) {
	deps := LoginDeps{Auth: &mockAuthClient{}, Sessions: newMockSessionStore()}
	for _, input := range []LoginInput{
		{Username: "", Password: "pw"},
		{Username: "coach", Password: ""},
		{},
	} {
		_, err := ExecuteLogin(context.Background(), input, deps)
		if !errors.Is(err, ErrMissingCredentials) {
			t.Errorf("input %+v: err = %v, want ErrMissingCredentials", input, err)
		}
	}
}

func TestExecuteLogin_BackendRejects(t *testing.T) {
	backendErr := &api.Error{Status: 401, Message: "Invalid credentials"}
	auth := &mockAuthClient{loginErr: backendErr}
	sessions := newMockSessionStore()

	_, err := ExecuteLogin(context.Background(), LoginInput{Username: "coach", Password: "bad"}, LoginDeps{Auth: auth, Sessions: sessions})
	var apiErr *api.Error
	if !errors.As(err, &apiErr) || apiErr.Message != "Invalid credentials" {
		t.Fatalf("expected backend error passed through, got %v", err)
	}
	if sessions.created.bearer != "" {
		t.Error("session created despite failed login")
	}
}

func TestExecuteLogin_SessionStoreFails(t *testing.T) {
	auth := &mockAuthClient{loginResp: api.LoginResponse{Token: "bearer-xyz"}}
	sessions := newMockSessionStore()
	sessions.createErr = errors.New("disk full")

	_, err := ExecuteLogin(context.Background(), LoginInput{Username: "coach", Password: "pw"}, LoginDeps{Auth: auth, Sessions: sessions})
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestExecuteLogout(t *testing.T) {
	sessions := newMockSessionStore()
	if err := ExecuteLogout(context.Background(), "tok", LogoutDeps{Sessions: sessions}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sessions.deleted) != 1 || sessions.deleted[0] != "tok" {
		t.Errorf("deleted = %v, want [tok]", sessions.deleted)
	}

	// Empty token is a no-op, not an error.
	if err := ExecuteLogout(context.Background(), "", LogoutDeps{Sessions: sessions}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sessions.deleted) != 1 {
		t.Error("delete called for empty token")
	}
}
