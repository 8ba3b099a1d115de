package statusrefresh

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"fleetbook/pkg/db"
)

// Refresher reconciles vehicle and driver status with active bookings: a
// blunt reset-then-reapply pass, so after a run a resource is on_duty iff it
// has an approved booking whose date range includes now. Vehicles under
// maintenance (`service`) are left alone.
//
// This job is the sole mechanism that flips resources to on_duty; the
// approval workflow never touches resource status, and cancellation only
// releases.
type Refresher struct {
	DB  *pgxpool.Pool
	Log *zap.Logger
}

func (r *Refresher) Run(ctx context.Context) error {
	now := time.Now()

	var vehicles, drivers int
	err := db.WithTx(ctx, r.DB, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `UPDATE vehicles SET status = 'available', updated_at = NOW() WHERE status <> 'service'`); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `UPDATE drivers SET status = 'available', updated_at = NOW()`); err != nil {
			return err
		}

		const qVehicles = `
UPDATE vehicles v
SET status = 'on_duty', updated_at = NOW()
FROM bookings b
WHERE b.vehicle_id = v.id
  AND b.status = 'approved'
  AND b.start_date <= $1 AND b.end_date >= $1
  AND v.status <> 'service'
`
		ct, err := tx.Exec(ctx, qVehicles, now)
		if err != nil {
			return err
		}
		vehicles = int(ct.RowsAffected())

		const qDrivers = `
UPDATE drivers d
SET status = 'on_duty', updated_at = NOW()
FROM bookings b
WHERE b.driver_id = d.id
  AND b.status = 'approved'
  AND b.start_date <= $1 AND b.end_date >= $1
`
		ct, err = tx.Exec(ctx, qDrivers, now)
		if err != nil {
			return err
		}
		drivers = int(ct.RowsAffected())
		return nil
	})
	if err != nil {
		return err
	}

	r.Log.Info("resource statuses refreshed",
		zap.Int("vehicles_on_duty", vehicles),
		zap.Int("drivers_on_duty", drivers),
	)
	return nil
}

// RunEvery runs a refresh pass at the given cadence until ctx is cancelled.
// A failed pass is logged and retried at the next tick.
func (r *Refresher) RunEvery(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if err := r.Run(ctx); err != nil {
			r.Log.Error("status refresh failed", zap.Error(err))
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
