package admin

import (
	"errors"
	"strings"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength = 100
)

// Domain errors
var (
	ErrNameRequired  = errors.New("name cannot be empty")
	ErrEmailRequired = errors.New("a valid email is required")
)

// Profile is the panel's cached copy of the backend admin record. The backend
// owns the authoritative record; this copy is refreshed from GET /admin/me.
type Profile struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
}

// DisplayName returns the best available human-readable name.
func (p Profile) DisplayName() string {
	if strings.TrimSpace(p.Name) != "" {
		return p.Name
	}
	return p.Username
}

// ValidateUpdate checks the fields an admin may edit on the settings page.
// PRE: Profile carries the edited values
// POST: Returns error if validation fails, nil otherwise
func (p Profile) ValidateUpdate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrNameRequired
	}
	if len(p.Name) > MaxNameLength {
		return errors.New("name cannot exceed 100 characters")
	}
	if !strings.Contains(p.Email, "@") {
		return ErrEmailRequired
	}
	return nil
}
