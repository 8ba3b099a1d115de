package booking

import (
	"context"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Booking struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	VehicleID string    `json:"vehicleId"`
	DriverID  string    `json:"driverId"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	Purpose   string    `json:"purpose"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ListFilter struct {
	UserID   string
	Status   Status
	DateFrom time.Time
	DateTo   time.Time
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const cols = `id, user_id, vehicle_id, driver_id, start_date, end_date, purpose, status, created_at, updated_at`

func scan(row pgx.Row) (*Booking, error) {
	var b Booking
	if err := row.Scan(&b.ID, &b.UserID, &b.VehicleID, &b.DriverID, &b.StartDate, &b.EndDate, &b.Purpose, &b.Status, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*Booking, error) {
	const q = `SELECT ` + cols + ` FROM bookings WHERE id = $1`
	return scan(r.db.QueryRow(ctx, q, id))
}

// GetForUpdate locks the booking row so approval resolution and cancellation
// serialize per booking.
func GetForUpdate(ctx context.Context, tx pgx.Tx, id string) (*Booking, error) {
	const q = `SELECT ` + cols + ` FROM bookings WHERE id = $1 FOR UPDATE`
	return scan(tx.QueryRow(ctx, q, id))
}

func (r *Repository) List(ctx context.Context, f ListFilter) ([]Booking, error) {
	q := `SELECT ` + cols + ` FROM bookings WHERE 1=1`
	args := []any{}
	if f.UserID != "" {
		args = append(args, f.UserID)
		q += ` AND user_id = $` + strconv.Itoa(len(args))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		q += ` AND status = $` + strconv.Itoa(len(args))
	}
	if !f.DateFrom.IsZero() {
		args = append(args, f.DateFrom)
		q += ` AND start_date >= $` + strconv.Itoa(len(args))
	}
	if !f.DateTo.IsZero() {
		args = append(args, f.DateTo)
		q += ` AND end_date <= $` + strconv.Itoa(len(args))
	}
	q += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Booking
	for rows.Next() {
		b, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

func InsertTx(ctx context.Context, tx pgx.Tx, b *Booking) error {
	const q = `
INSERT INTO bookings (id, user_id, vehicle_id, driver_id, start_date, end_date, purpose, status)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`
	_, err := tx.Exec(ctx, q, b.ID, b.UserID, b.VehicleID, b.DriverID, b.StartDate, b.EndDate, b.Purpose, b.Status)
	return err
}

func UpdateStatusTx(ctx context.Context, tx pgx.Tx, id string, next Status) error {
	const q = `UPDATE bookings SET status = $1, updated_at = NOW() WHERE id = $2`
	_, err := tx.Exec(ctx, q, string(next), id)
	return err
}

// ListActiveAt returns approved bookings whose date range includes the given
// instant. Used by the status refresher.
func (r *Repository) ListActiveAt(ctx context.Context, at time.Time) ([]Booking, error) {
	const q = `
SELECT ` + cols + `
FROM bookings
WHERE status = 'approved' AND start_date <= $1 AND end_date >= $1
`
	rows, err := r.db.Query(ctx, q, at)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Booking
	for rows.Next() {
		b, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

