package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"coachpanel/internal/domain/member"
)

// MemberStatusUpdater applies a payment-status transition on the backend.
type MemberStatusUpdater interface {
	UpdateStatus(ctx context.Context, id, status string) error
}

// UpdateMemberStatusInput carries input for the status change.
type UpdateMemberStatusInput struct {
	MemberID string
	Status   string
	// Confirmed is the extra acknowledgement required for destructive
	// transitions (cancelling a membership).
	Confirmed bool
}

// UpdateMemberStatusDeps holds dependencies for UpdateMemberStatus.
type UpdateMemberStatusDeps struct {
	Members MemberStatusUpdater
}

var (
	ErrMissingMemberID       = errors.New("member id is required")
	ErrConfirmationRequired  = errors.New("this change deactivates the membership and must be confirmed")
	ErrInvalidStatusSelected = errors.New("invalid payment status")
)

// ExecuteUpdateMemberStatus validates and applies a payment-status change.
// PRE: Status is one of the constrained set
// POST: Backend recomputed the member; caller re-reads the list to display it
func ExecuteUpdateMemberStatus(ctx context.Context, input UpdateMemberStatusInput, deps UpdateMemberStatusDeps) error {
	if input.MemberID == "" {
		return ErrMissingMemberID
	}
	if !member.ValidStatus(input.Status) {
		return fmt.Errorf("%w: %q", ErrInvalidStatusSelected, input.Status)
	}
	if member.DestructiveStatus(input.Status) && !input.Confirmed {
		return ErrConfirmationRequired
	}
	if err := deps.Members.UpdateStatus(ctx, input.MemberID, input.Status); err != nil {
		return err
	}
	slog.Info("member_status_changed", "member_id", input.MemberID, "status", input.Status)
	return nil
}
