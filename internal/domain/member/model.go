package member

import (
	"strings"
	"time"
)

// Payment statuses the backend derives for a membership. The panel never
// computes status itself; it only offers the constrained transition set.
const (
	StatusPaid      = "paid"
	StatusPending   = "pending"
	StatusFailed    = "failed"
	StatusCancelled = "cancelled"
	StatusInactive  = "inactive"
)

// Membership is the backend-owned subscription state of a member.
type Membership struct {
	PaymentStatus string `json:"paymentStatus"`
	Plan          string `json:"plan,omitempty"`
}

// Member is the panel's transient copy of a backend user record.
type Member struct {
	ID         string      `json:"_id"`
	FirstName  string      `json:"firstName"`
	LastName   string      `json:"lastName"`
	Email      string      `json:"email"`
	Membership *Membership `json:"membership"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}

// Name returns the member's full name.
func (m Member) Name() string {
	return strings.TrimSpace(m.FirstName + " " + m.LastName)
}

// EffectiveStatus returns the status to display. A member whose record has no
// membership (or a membership with no payment status) is always "inactive".
// PRE: Member is a decoded backend record
// POST: Returns one of the Status* constants
func (m Member) EffectiveStatus() string {
	if m.Membership == nil || m.Membership.PaymentStatus == "" {
		return StatusInactive
	}
	return m.Membership.PaymentStatus
}

// StatusEditable reports whether the status control is enabled for this
// member. Members without an active membership cannot be transitioned.
func (m Member) StatusEditable() bool {
	return m.Membership != nil && m.Membership.PaymentStatus != ""
}

// ValidStatus reports whether s is in the constrained transition set offered
// by the panel.
func ValidStatus(s string) bool {
	switch s {
	case StatusPaid, StatusPending, StatusFailed, StatusCancelled, StatusInactive:
		return true
	}
	return false
}

// DestructiveStatus reports whether selecting s requires an extra
// confirmation step. "inactive" cancels the membership outright.
func DestructiveStatus(s string) bool {
	return s == StatusInactive
}
