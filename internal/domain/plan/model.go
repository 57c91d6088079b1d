package plan

import (
	"errors"
	"strings"
)

// Billing intervals supported by the coaching plans.
const (
	IntervalMonth = "month"
	IntervalYear  = "year"
)

// Domain errors
var (
	ErrNameRequired = errors.New("plan name is required")
	ErrBadInterval  = errors.New("interval must be 'month' or 'year'")
)

// Plan is the panel's transient copy of a coaching plan, including the
// Stripe price metadata the backend attaches to it.
type Plan struct {
	ID            string   `json:"_id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Price         float64  `json:"price"`
	Currency      string   `json:"currency"`
	Interval      string   `json:"interval"`
	StripePriceID string   `json:"priceId"`
	Features      []string `json:"features"`
	Active        bool     `json:"active"`
}

// Validate checks the user-editable fields before submission.
// PRE: Plan carries form values
// POST: Returns error if validation fails, nil otherwise
func (p Plan) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrNameRequired
	}
	if p.Interval != IntervalMonth && p.Interval != IntervalYear {
		return ErrBadInterval
	}
	if p.Price < 0 {
		return errors.New("price cannot be negative")
	}
	return nil
}
