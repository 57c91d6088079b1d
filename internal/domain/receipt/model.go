package receipt

import (
	"strings"
	"time"
)

// Review statuses for an uploaded bank-transfer receipt. Approve and reject
// are one-way actions on the backend; the panel does not model terminality.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Uploader is the member who submitted the receipt.
type Uploader struct {
	ID        string `json:"_id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// Receipt is the panel's transient copy of a bank-transfer proof record.
// Image is a backend-relative path served through an authenticated proxy.
type Receipt struct {
	ID        string    `json:"_id"`
	User      *Uploader `json:"user"`
	PriceID   string    `json:"priceId"`
	Image     string    `json:"receipt"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UploaderName returns the uploader's full name, or a placeholder when the
// user record was deleted.
func (r Receipt) UploaderName() string {
	if r.User == nil {
		return "Deleted user"
	}
	return strings.TrimSpace(r.User.FirstName + " " + r.User.LastName)
}

// UploaderEmail returns the uploader's email, or empty for deleted users.
func (r Receipt) UploaderEmail() string {
	if r.User == nil {
		return ""
	}
	return r.User.Email
}

// Pending reports whether the receipt still awaits review.
func (r Receipt) Pending() bool {
	return r.Status == StatusPending
}

// ValidStatus reports whether s is a known review status.
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}
