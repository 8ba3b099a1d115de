package workflow

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"fleetbook/internal/api"
	"fleetbook/internal/approval"
	"fleetbook/internal/audit"
	"fleetbook/internal/booking"
	"fleetbook/internal/notify"
	"fleetbook/internal/user"
	"fleetbook/pkg/db"
)

// Outcome reports the result of resolving an approval.
type Outcome struct {
	Approval      *approval.Approval `json:"approval"`
	BookingStatus booking.Status     `json:"bookingStatus"`
}

// Approve resolves the approval as approved and advances the booking:
// level 1 moves it to approved_1, level 2 to approved. Level 2 is gated on
// level 1 having approved. Authorization is by level capability, not by the
// named approver. All mutations commit atomically.
func (w *Workflow) Approve(ctx context.Context, approvalID string, actingUser *user.User, notes string) (*Outcome, error) {
	var out Outcome

	err := db.WithTx(ctx, w.DB, func(tx pgx.Tx) error {
		a, err := approval.GetForUpdate(ctx, tx, approvalID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return api.NotFound("approval not found")
			}
			return err
		}

		if !actingUser.HasLevelCapability(a.Level) {
			return api.Unauthorized(fmt.Sprintf("you are not authorized to approve at level %d", a.Level))
		}
		if gerr := resolvedGuard(a); gerr != nil {
			return gerr
		}

		b, err := booking.GetForUpdate(ctx, tx, a.BookingID)
		if err != nil {
			return err
		}

		if a.Level == approval.Level2 {
			level1, err := approval.GetByBookingAndLevel(ctx, tx, b.ID, approval.Level1)
			if err != nil && !errors.Is(err, pgx.ErrNoRows) {
				return err
			}
			if gerr := level2ApproveGate(level1); gerr != nil {
				return gerr
			}
		}

		next := nextOnApprove(a.Level)
		if !booking.CanTransition(b.Status, next) {
			// The booking was rejected or cancelled while this approval was
			// still pending.
			return api.Conflict("booking is no longer awaiting this approval")
		}

		if err := approval.ResolveTx(ctx, tx, a.ID, approval.StatusApproved, notes); err != nil {
			return err
		}
		if err := booking.UpdateStatusTx(ctx, tx, b.ID, next); err != nil {
			return err
		}

		_ = audit.Insert(ctx, tx, &actingUser.ID, "approve", "approvals", &a.ID,
			fmt.Sprintf("Approved booking (level %d). Booking ID: %s", a.Level, b.ID))

		a.Status = approval.StatusApproved
		a.Notes = notes
		out = Outcome{Approval: a, BookingStatus: next}
		return nil
	})
	if err != nil {
		w.notifyOnError(ctx, actingUser.ID, err, "Failed to process approval")
		return nil, err
	}

	w.Notifier.Notify(ctx, actingUser.ID, "Approval processed successfully", notify.SeveritySuccess)
	return &out, nil
}

// Reject resolves the approval as rejected and terminates the booking,
// regardless of the other level's state. Level-2 rejection requires level 1
// to have resolved, and is blocked when level 1 already rejected.
func (w *Workflow) Reject(ctx context.Context, approvalID string, actingUser *user.User, notes string) (*Outcome, error) {
	var out Outcome

	err := db.WithTx(ctx, w.DB, func(tx pgx.Tx) error {
		a, err := approval.GetForUpdate(ctx, tx, approvalID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return api.NotFound("approval not found")
			}
			return err
		}

		if !actingUser.HasLevelCapability(a.Level) {
			return api.Unauthorized(fmt.Sprintf("you are not authorized to reject at level %d", a.Level))
		}
		if gerr := resolvedGuard(a); gerr != nil {
			return gerr
		}

		b, err := booking.GetForUpdate(ctx, tx, a.BookingID)
		if err != nil {
			return err
		}

		if a.Level == approval.Level2 {
			level1, err := approval.GetByBookingAndLevel(ctx, tx, b.ID, approval.Level1)
			if err != nil && !errors.Is(err, pgx.ErrNoRows) {
				return err
			}
			if gerr := level2RejectGate(level1); gerr != nil {
				return gerr
			}
		}

		if !booking.CanTransition(b.Status, booking.StatusRejected) {
			return api.Conflict("booking is already rejected")
		}

		if err := approval.ResolveTx(ctx, tx, a.ID, approval.StatusRejected, notes); err != nil {
			return err
		}
		if err := booking.UpdateStatusTx(ctx, tx, b.ID, booking.StatusRejected); err != nil {
			return err
		}

		_ = audit.Insert(ctx, tx, &actingUser.ID, "reject", "approvals", &a.ID,
			fmt.Sprintf("Rejected booking (level %d). Booking ID: %s", a.Level, b.ID))

		a.Status = approval.StatusRejected
		a.Notes = notes
		out = Outcome{Approval: a, BookingStatus: booking.StatusRejected}
		return nil
	})
	if err != nil {
		w.notifyOnError(ctx, actingUser.ID, err, "Failed to process rejection")
		return nil, err
	}

	w.Notifier.Notify(ctx, actingUser.ID, "Booking rejected", notify.SeveritySuccess)
	return &out, nil
}
