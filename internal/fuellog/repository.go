package fuellog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type Record struct {
	ID        string          `json:"id"`
	VehicleID string          `json:"vehicleId"`
	Amount    decimal.Decimal `json:"amount"`
	LogDate   time.Time       `json:"logDate"`
	Notes     string          `json:"notes,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

func (r *Repository) ListByVehicle(ctx context.Context, vehicleID string) ([]Record, error) {
	const q = `
SELECT id, vehicle_id, amount::text, log_date, COALESCE(notes,''), created_at
FROM fuel_logs
WHERE vehicle_id = $1
ORDER BY log_date DESC
`
	rows, err := r.db.Query(ctx, q, vehicleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.VehicleID, &rec.Amount, &rec.LogDate, &rec.Notes, &rec.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *Repository) Create(ctx context.Context, vehicleID string, amount decimal.Decimal, logDate time.Time, notes string) (*Record, error) {
	rec := &Record{
		ID:        uuid.NewString(),
		VehicleID: vehicleID,
		Amount:    amount,
		LogDate:   logDate,
		Notes:     notes,
	}
	const q = `
INSERT INTO fuel_logs (id, vehicle_id, amount, log_date, notes)
VALUES ($1, $2, $3, $4, NULLIF($5, ''))
RETURNING created_at
`
	if err := r.db.QueryRow(ctx, q, rec.ID, rec.VehicleID, rec.Amount, rec.LogDate, rec.Notes).Scan(&rec.CreatedAt); err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	ct, err := r.db.Exec(ctx, `DELETE FROM fuel_logs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// TotalAmount sums fuel amounts for a summary line; decimal arithmetic keeps
// fractional liters exact.
func TotalAmount(logs []Record) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range logs {
		sum = sum.Add(l.Amount)
	}
	return sum
}
