package purchase

import (
	"strings"
	"time"
)

// Buyer is the purchasing user; nil when the user was deleted after purchase.
type Buyer struct {
	ID        string `json:"_id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// Purchase is a read-only record of a completed payment.
type Purchase struct {
	ID              string    `json:"_id"`
	User            *Buyer    `json:"user"`
	ItemType        string    `json:"itemType"`
	ItemName        string    `json:"itemName"`
	Amount          float64   `json:"amount"`
	Date            time.Time `json:"date"`
	StripePaymentID string    `json:"stripePaymentId"`
}

// BuyerName returns the buyer's full name, or a placeholder when the user
// record no longer exists.
func (p Purchase) BuyerName() string {
	if p.User == nil {
		return "Deleted user"
	}
	return strings.TrimSpace(p.User.FirstName + " " + p.User.LastName)
}

// BuyerEmail returns the buyer's email, or empty for deleted users.
func (p Purchase) BuyerEmail() string {
	if p.User == nil {
		return ""
	}
	return p.User.Email
}
