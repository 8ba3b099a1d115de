package servicelog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type Record struct {
	ID          string          `json:"id"`
	VehicleID   string          `json:"vehicleId"`
	ServiceDate time.Time       `json:"serviceDate"`
	ServiceType string          `json:"serviceType"`
	Description string          `json:"description,omitempty"`
	Cost        decimal.Decimal `json:"cost"`
	CreatedAt   time.Time       `json:"createdAt"`
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

func (r *Repository) ListByVehicle(ctx context.Context, vehicleID string) ([]Record, error) {
	const q = `
SELECT id, vehicle_id, service_date, service_type, COALESCE(description,''), cost::text, created_at
FROM service_logs
WHERE vehicle_id = $1
ORDER BY service_date DESC
`
	rows, err := r.db.Query(ctx, q, vehicleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.VehicleID, &rec.ServiceDate, &rec.ServiceType, &rec.Description, &rec.Cost, &rec.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *Repository) Create(ctx context.Context, vehicleID string, serviceDate time.Time, serviceType, description string, cost decimal.Decimal) (*Record, error) {
	rec := &Record{
		ID:          uuid.NewString(),
		VehicleID:   vehicleID,
		ServiceDate: serviceDate,
		ServiceType: serviceType,
		Description: description,
		Cost:        cost,
	}
	const q = `
INSERT INTO service_logs (id, vehicle_id, service_date, service_type, description, cost)
VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6)
RETURNING created_at
`
	if err := r.db.QueryRow(ctx, q, rec.ID, rec.VehicleID, rec.ServiceDate, rec.ServiceType, rec.Description, rec.Cost).Scan(&rec.CreatedAt); err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	ct, err := r.db.Exec(ctx, `DELETE FROM service_logs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
