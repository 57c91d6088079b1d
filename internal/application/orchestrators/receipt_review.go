package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"

	emailAdapter "coachpanel/internal/adapters/email"
	"coachpanel/internal/domain/receipt"
)

// ReceiptDecider applies an approve/reject decision on the backend.
type ReceiptDecider interface {
	Approve(ctx context.Context, id string) error
	Reject(ctx context.Context, id string) error
}

// ReceiptDecisionInput carries input for the review decision.
type ReceiptDecisionInput struct {
	Receipt  receipt.Receipt
	Decision string // receipt.StatusApproved or receipt.StatusRejected
}

// ReceiptDecisionDeps holds dependencies for ReceiptDecision.
type ReceiptDecisionDeps struct {
	Receipts    ReceiptDecider
	EmailSender emailAdapter.Sender // nil disables notifications
}

var (
	ErrMissingReceiptID  = errors.New("receipt id is required")
	ErrReceiptNotPending = errors.New("receipt has already been reviewed")
	ErrInvalidDecision   = errors.New("decision must be approved or rejected")
)

// ExecuteReceiptDecision approves or rejects a pending receipt and notifies
// the uploader. The email is best effort: the decision stands even when the
// notification fails.
// PRE: Receipt is pending; decision is approved or rejected
// POST: Backend recorded the decision; uploader notified when possible
func ExecuteReceiptDecision(ctx context.Context, input ReceiptDecisionInput, deps ReceiptDecisionDeps) error {
	if input.Receipt.ID == "" {
		return ErrMissingReceiptID
	}
	if !input.Receipt.Pending() {
		return ErrReceiptNotPending
	}

	switch input.Decision {
	case receipt.StatusApproved:
		if err := deps.Receipts.Approve(ctx, input.Receipt.ID); err != nil {
			return err
		}
	case receipt.StatusRejected:
		if err := deps.Receipts.Reject(ctx, input.Receipt.ID); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: %q", ErrInvalidDecision, input.Decision)
	}

	slog.Info("receipt_decided", "receipt_id", input.Receipt.ID, "decision", input.Decision)

	if deps.EmailSender != nil {
		if to := input.Receipt.UploaderEmail(); to != "" {
			req := decisionEmail(to, input.Receipt.UploaderName(), input.Decision)
			if _, err := deps.EmailSender.Send(ctx, req); err != nil {
				slog.Warn("receipt_notification_failed", "receipt_id", input.Receipt.ID, "error", err)
			}
		}
	}
	return nil
}

// decisionEmail builds the uploader notification for a review decision.
func decisionEmail(to, name, decision string) emailAdapter.SendRequest {
	safeName := html.EscapeString(name)
	if decision == receipt.StatusApproved {
		return emailAdapter.SendRequest{
			To:      []string{to},
			Subject: "Your payment receipt was approved",
			HTML: fmt.Sprintf(
				"<p>Hi %s,</p><p>Your bank transfer receipt has been approved and your membership is active.</p>",
				safeName),
		}
	}
	return emailAdapter.SendRequest{
		To:      []string{to},
		Subject: "Your payment receipt could not be verified",
		HTML: fmt.Sprintf(
			"<p>Hi %s,</p><p>We could not verify your bank transfer receipt. Please upload a clearer copy or contact support.</p>",
			safeName),
	}
}
