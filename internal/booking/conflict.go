package booking

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
)

type ResourceKind string

const (
	ResourceVehicle ResourceKind = "vehicle"
	ResourceDriver  ResourceKind = "driver"
)

// HasConflict reports whether any other non-rejected booking for the same
// resource overlaps [start, end]. Bounds are inclusive: two bookings sharing
// a boundary date conflict.
//
// The checker takes no locks itself. Booking creation must hold the resource
// row locks (vehicle.GetForUpdate / driver.GetForUpdate) before calling it,
// so that two concurrent requests cannot both pass the check and commit.
func HasConflict(ctx context.Context, tx pgx.Tx, kind ResourceKind, resourceID string, start, end time.Time, excludeBookingID string) (bool, error) {
	col := "vehicle_id"
	if kind == ResourceDriver {
		col = "driver_id"
	}

	q := `
SELECT EXISTS (
	SELECT 1
	FROM bookings
	WHERE ` + col + ` = $1
	  AND status <> 'rejected'
	  AND start_date <= $2
	  AND end_date >= $3
	  AND id <> $4
)
`
	var exists bool
	if err := tx.QueryRow(ctx, q, resourceID, end, start, excludeBookingID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
