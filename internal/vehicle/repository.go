package vehicle

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type Vehicle struct {
	ID              string          `json:"id"`
	LicensePlate    string          `json:"licensePlate"`
	Type            string          `json:"type"`
	FuelConsumption decimal.Decimal `json:"fuelConsumption"`
	Status          Status          `json:"status"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const cols = `id, license_plate, type, fuel_consumption::text, status, created_at, updated_at`

func scan(row pgx.Row) (*Vehicle, error) {
	var v Vehicle
	if err := row.Scan(&v.ID, &v.LicensePlate, &v.Type, &v.FuelConsumption, &v.Status, &v.CreatedAt, &v.UpdatedAt); err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *Repository) List(ctx context.Context, status Status) ([]Vehicle, error) {
	q := `SELECT ` + cols + ` FROM vehicles ORDER BY license_plate ASC`
	args := []any{}
	if status != "" {
		q = `SELECT ` + cols + ` FROM vehicles WHERE status = $1 ORDER BY license_plate ASC`
		args = append(args, status)
	}
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Vehicle
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	return out, rows.Err()
}

func (r *Repository) GetByID(ctx context.Context, id string) (*Vehicle, error) {
	const q = `SELECT ` + cols + ` FROM vehicles WHERE id = $1`
	return scan(r.db.QueryRow(ctx, q, id))
}

// GetForUpdate locks the vehicle row for the rest of the transaction. Booking
// creation takes this lock before running its conflict check, so concurrent
// requests for the same vehicle serialize.
func GetForUpdate(ctx context.Context, tx pgx.Tx, id string) (*Vehicle, error) {
	const q = `SELECT ` + cols + ` FROM vehicles WHERE id = $1 FOR UPDATE`
	return scan(tx.QueryRow(ctx, q, id))
}

func (r *Repository) Create(ctx context.Context, licensePlate, vehicleType string, fuelConsumption decimal.Decimal) (*Vehicle, error) {
	id := uuid.NewString()
	const q = `
INSERT INTO vehicles (id, license_plate, type, fuel_consumption, status)
VALUES ($1, $2, $3, $4, 'available')
`
	if _, err := r.db.Exec(ctx, q, id, licensePlate, vehicleType, fuelConsumption); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *Repository) Update(ctx context.Context, id, licensePlate, vehicleType string, fuelConsumption decimal.Decimal) error {
	const q = `
UPDATE vehicles
SET license_plate = $1, type = $2, fuel_consumption = $3, updated_at = NOW()
WHERE id = $4
`
	ct, err := r.db.Exec(ctx, q, licensePlate, vehicleType, fuelConsumption, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	ct, err := r.db.Exec(ctx, `DELETE FROM vehicles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *Repository) SetStatus(ctx context.Context, id string, status Status) error {
	const q = `UPDATE vehicles SET status = $1, updated_at = NOW() WHERE id = $2`
	ct, err := r.db.Exec(ctx, q, status, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func SetStatusTx(ctx context.Context, tx pgx.Tx, id string, status Status) error {
	const q = `UPDATE vehicles SET status = $1, updated_at = NOW() WHERE id = $2`
	_, err := tx.Exec(ctx, q, status, id)
	return err
}
