package workflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"fleetbook/internal/api"
	"fleetbook/internal/approval"
	"fleetbook/internal/audit"
	"fleetbook/internal/booking"
	"fleetbook/internal/driver"
	"fleetbook/internal/notify"
	"fleetbook/internal/user"
	"fleetbook/internal/vehicle"
	"fleetbook/pkg/db"
)

// Workflow coordinates the booking lifecycle: creation, two-level approval,
// rejection, and cancellation. Every multi-step mutation runs inside a
// single transaction; a reader never observes an approval resolved while its
// booking status is stale.
type Workflow struct {
	DB        *pgxpool.Pool
	Bookings  *booking.Repository
	Approvals *approval.Repository
	Users     *user.Repository
	Notifier  notify.Sink
	Log       *zap.Logger
}

// Postgres error codes surfaced by the schema-level booking backstops.
const (
	pgExclusionViolation = "23P01"
	pgUniqueViolation    = "23505"
)

// CreateBooking validates the request, serializes against concurrent
// requests for the same vehicle and driver, runs the conflict checks, and
// inserts the booking with its two pending approvals as one atomic unit.
// Vehicle and driver status is untouched here; the status refresher owns it.
func (w *Workflow) CreateBooking(ctx context.Context, actingUser *user.User, in CreateInput) (*booking.Booking, error) {
	if verr := ValidateCreate(in, time.Now()); verr != nil {
		return nil, verr
	}

	for _, a := range []struct {
		id    string
		level int
	}{
		{in.ApproverLevel1ID, approval.Level1},
		{in.ApproverLevel2ID, approval.Level2},
	} {
		u, err := w.Users.GetByID(ctx, a.id)
		if err != nil {
			return nil, api.ValidationFailed(fmt.Sprintf("unknown level %d approver", a.level))
		}
		if !u.HasRole(user.ApproverRole(a.level)) {
			return nil, api.ValidationFailed(fmt.Sprintf("selected level %d approver does not hold the %s role", a.level, user.ApproverRole(a.level)))
		}
	}

	b := &booking.Booking{
		ID:        uuid.NewString(),
		UserID:    actingUser.ID,
		VehicleID: in.VehicleID,
		DriverID:  in.DriverID,
		StartDate: truncateToDate(in.StartDate),
		EndDate:   truncateToDate(in.EndDate),
		Purpose:   in.Purpose,
		Status:    booking.StatusPending,
	}

	err := db.WithTx(ctx, w.DB, func(tx pgx.Tx) error {
		// Lock the resource rows first: this serializes the
		// conflict-check-then-insert per vehicle and per driver, so the
		// second of two concurrent overlapping requests blocks here and
		// then fails its conflict check.
		if _, err := vehicle.GetForUpdate(ctx, tx, in.VehicleID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return api.ValidationFailed("unknown vehicle")
			}
			return err
		}
		if _, err := driver.GetForUpdate(ctx, tx, in.DriverID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return api.ValidationFailed("unknown driver")
			}
			return err
		}

		conflict, err := booking.HasConflict(ctx, tx, booking.ResourceVehicle, in.VehicleID, b.StartDate, b.EndDate, "")
		if err != nil {
			return err
		}
		if conflict {
			return api.Conflict("vehicle is already booked during the selected date range")
		}
		conflict, err = booking.HasConflict(ctx, tx, booking.ResourceDriver, in.DriverID, b.StartDate, b.EndDate, "")
		if err != nil {
			return err
		}
		if conflict {
			return api.Conflict("driver is already booked during the selected date range")
		}

		if err := booking.InsertTx(ctx, tx, b); err != nil {
			return err
		}
		for _, a := range []approval.Approval{
			{ID: uuid.NewString(), BookingID: b.ID, ApproverID: in.ApproverLevel1ID, Level: approval.Level1, Status: approval.StatusPending},
			{ID: uuid.NewString(), BookingID: b.ID, ApproverID: in.ApproverLevel2ID, Level: approval.Level2, Status: approval.StatusPending},
		} {
			a := a
			if err := approval.InsertTx(ctx, tx, &a); err != nil {
				return err
			}
		}

		_ = audit.Insert(ctx, tx, &actingUser.ID, "create", "bookings", &b.ID,
			fmt.Sprintf("Created booking for vehicle %s and driver %s", b.VehicleID, b.DriverID))
		return nil
	})
	if err != nil {
		if isBookingOverlapViolation(err) {
			// The exclusion constraint caught a race the row locks did not
			// cover (e.g. direct writes bypassing this path).
			return nil, api.Conflict("resource is already booked during the selected date range")
		}
		w.notifyOnError(ctx, actingUser.ID, err, "Failed to create booking")
		return nil, err
	}

	w.Notifier.Notify(ctx, actingUser.ID, "Booking request submitted", notify.SeveritySuccess)
	return b, nil
}

// Cancel terminates a booking from any non-terminal state and releases its
// vehicle and driver back to available. Only the requester or an admin may
// cancel.
func (w *Workflow) Cancel(ctx context.Context, bookingID string, actingUser *user.User) error {
	err := db.WithTx(ctx, w.DB, func(tx pgx.Tx) error {
		b, err := booking.GetForUpdate(ctx, tx, bookingID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return api.NotFound("booking not found")
			}
			return err
		}

		if b.UserID != actingUser.ID && !actingUser.IsAdmin() {
			return api.Unauthorized("only the requester or an admin may cancel a booking")
		}
		if !booking.CanTransition(b.Status, booking.StatusRejected) {
			return api.Conflict("booking is already rejected")
		}

		if err := booking.UpdateStatusTx(ctx, tx, b.ID, booking.StatusRejected); err != nil {
			return err
		}
		if err := vehicle.SetStatusTx(ctx, tx, b.VehicleID, vehicle.StatusAvailable); err != nil {
			return err
		}
		if err := driver.SetStatusTx(ctx, tx, b.DriverID, driver.StatusAvailable); err != nil {
			return err
		}

		_ = audit.Insert(ctx, tx, &actingUser.ID, "cancel", "bookings", &b.ID,
			fmt.Sprintf("Cancelled booking %s; released vehicle %s and driver %s", b.ID, b.VehicleID, b.DriverID))
		return nil
	})
	if err != nil {
		w.notifyOnError(ctx, actingUser.ID, err, "Failed to cancel booking")
		return err
	}

	w.Notifier.Notify(ctx, actingUser.ID, "Booking cancelled", notify.SeveritySuccess)
	return nil
}

func isBookingOverlapViolation(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == pgExclusionViolation || pgErr.Code == pgUniqueViolation
}

// notifyOnError raises a user-facing notification for business-rule
// failures. Infrastructure errors are logged instead; the caller still sees
// them as internal.
func (w *Workflow) notifyOnError(ctx context.Context, userID string, err error, fallback string) {
	var werr *api.Error
	if errors.As(err, &werr) {
		w.Notifier.Notify(ctx, userID, werr.Message, notify.SeverityError)
		return
	}
	w.Log.Error(fallback, zap.Error(err))
	w.Notifier.Notify(ctx, userID, fallback, notify.SeverityError)
}
