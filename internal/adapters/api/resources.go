package api

import (
	"context"
	"net/http"
	"net/url"

	"coachpanel/internal/domain/certificate"
	"coachpanel/internal/domain/ebook"
	"coachpanel/internal/domain/member"
	"coachpanel/internal/domain/plan"
	"coachpanel/internal/domain/purchase"
	"coachpanel/internal/domain/receipt"
	"coachpanel/internal/domain/video"
)

// NewVideos returns the workout-library collection client.
func NewVideos(c *Client) *Collection[video.Video] {
	return NewCollection[video.Video](c, "/workout-library", "videos")
}

// NewCategories returns the workout-categories collection client.
// Categories are read-only from the panel's perspective.
func NewCategories(c *Client) *Collection[video.Category] {
	return NewCollection[video.Category](c, "/workout-categories", "categories")
}

// NewEbooks returns the e-book collection client.
func NewEbooks(c *Client) *Collection[ebook.Ebook] {
	return NewCollection[ebook.Ebook](c, "/ebooks", "ebooks")
}

// NewCertificates returns the certificate collection client.
func NewCertificates(c *Client) *Collection[certificate.Certificate] {
	return NewCollection[certificate.Certificate](c, "/certificates", "certificates")
}

// PlansClient manages coaching plans. Listing goes through the Stripe
// metadata endpoint; mutations use the plain collection endpoint.
type PlansClient struct {
	c   *Client
	col *Collection[plan.Plan]
}

// NewPlans returns the coaching-plan client.
func NewPlans(c *Client) *PlansClient {
	return &PlansClient{c: c, col: NewCollection[plan.Plan](c, "/coachingplans", "plans")}
}

// List fetches plan metadata joined with Stripe price data.
func (p *PlansClient) List(ctx context.Context) ([]plan.Plan, error) {
	var raw struct {
		Plans []plan.Plan `json:"plans"`
	}
	if err := p.c.getJSON(ctx, "/coachingplans/stripe", &raw); err != nil {
		return nil, err
	}
	if raw.Plans == nil {
		return []plan.Plan{}, nil
	}
	return raw.Plans, nil
}

// Create submits a new plan.
func (p *PlansClient) Create(ctx context.Context, f Form) error { return p.col.Create(ctx, f) }

// Update submits changed plan fields.
func (p *PlansClient) Update(ctx context.Context, id string, f Form) error {
	return p.col.Update(ctx, id, f)
}

// Delete removes a plan.
func (p *PlansClient) Delete(ctx context.Context, id string) error { return p.col.Delete(ctx, id) }

// MembersClient reads the user directory and applies constrained
// payment-status transitions. Status itself is backend-derived.
type MembersClient struct {
	c *Client
}

// NewMembers returns the member directory client.
func NewMembers(c *Client) *MembersClient {
	return &MembersClient{c: c}
}

// List fetches all platform users.
func (m *MembersClient) List(ctx context.Context) ([]member.Member, error) {
	var raw struct {
		Users []member.Member `json:"users"`
	}
	if err := m.c.getJSON(ctx, "/users", &raw); err != nil {
		return nil, err
	}
	if raw.Users == nil {
		return []member.Member{}, nil
	}
	return raw.Users, nil
}

// UpdateStatus applies one transition from the constrained set.
// PRE: status passed member.ValidStatus
// POST: Backend recomputed the member record
func (m *MembersClient) UpdateStatus(ctx context.Context, id, status string) error {
	return m.c.sendJSON(ctx, http.MethodPut, "/members/"+url.PathEscape(id), map[string]string{
		"paymentStatus": status,
	})
}

// PurchasesClient reads the purchase log. Purchases are read-only from the
// panel's perspective.
type PurchasesClient struct {
	c *Client
}

// NewPurchases returns the purchase log client.
func NewPurchases(c *Client) *PurchasesClient {
	return &PurchasesClient{c: c}
}

// List fetches all purchases.
func (p *PurchasesClient) List(ctx context.Context) ([]purchase.Purchase, error) {
	var raw struct {
		Purchases []purchase.Purchase `json:"purchases"`
	}
	if err := p.c.getJSON(ctx, "/purchases", &raw); err != nil {
		return nil, err
	}
	if raw.Purchases == nil {
		return []purchase.Purchase{}, nil
	}
	return raw.Purchases, nil
}

// ReceiptsClient reviews uploaded bank-transfer receipts.
type ReceiptsClient struct {
	c *Client
}

// NewReceipts returns the receipt review client.
func NewReceipts(c *Client) *ReceiptsClient {
	return &ReceiptsClient{c: c}
}

// List fetches all uploaded receipts.
func (r *ReceiptsClient) List(ctx context.Context) ([]receipt.Receipt, error) {
	var raw struct {
		Receipts []receipt.Receipt `json:"receipts"`
	}
	if err := r.c.getJSON(ctx, "/receipts", &raw); err != nil {
		return nil, err
	}
	if raw.Receipts == nil {
		return []receipt.Receipt{}, nil
	}
	return raw.Receipts, nil
}

// Approve marks a receipt approved. One-way on the backend.
func (r *ReceiptsClient) Approve(ctx context.Context, id string) error {
	return r.c.sendJSON(ctx, http.MethodPost, "/receipts/"+url.PathEscape(id)+"/approve", struct{}{})
}

// Reject marks a receipt rejected. One-way on the backend.
func (r *ReceiptsClient) Reject(ctx context.Context, id string) error {
	return r.c.sendJSON(ctx, http.MethodPost, "/receipts/"+url.PathEscape(id)+"/reject", struct{}{})
}
