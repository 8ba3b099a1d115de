package usagelog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// Record captures the odometer and fuel figures for a completed booking.
// One record per booking.
type Record struct {
	ID        string          `json:"id"`
	BookingID string          `json:"bookingId"`
	StartKM   int64           `json:"startKm"`
	EndKM     int64           `json:"endKm"`
	FuelUsed  decimal.Decimal `json:"fuelUsed"`
	Notes     string          `json:"notes,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

func (r Record) Distance() int64 {
	return r.EndKM - r.StartKM
}

// Efficiency returns kilometers per unit of fuel, rounded to two places.
// Zero fuel reads as zero efficiency rather than a division error.
func (r Record) Efficiency() decimal.Decimal {
	if r.FuelUsed.IsZero() {
		return decimal.Zero
	}
	return decimal.NewFromInt(r.Distance()).Div(r.FuelUsed).Round(2)
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetByBooking(ctx context.Context, bookingID string) (*Record, error) {
	const q = `
SELECT id, booking_id, start_km, end_km, fuel_used::text, COALESCE(notes,''), created_at
FROM usage_logs
WHERE booking_id = $1
`
	var rec Record
	if err := r.db.QueryRow(ctx, q, bookingID).Scan(
		&rec.ID, &rec.BookingID, &rec.StartKM, &rec.EndKM, &rec.FuelUsed, &rec.Notes, &rec.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *Repository) Create(ctx context.Context, bookingID string, startKM, endKM int64, fuelUsed decimal.Decimal, notes string) (*Record, error) {
	rec := &Record{
		ID:        uuid.NewString(),
		BookingID: bookingID,
		StartKM:   startKM,
		EndKM:     endKM,
		FuelUsed:  fuelUsed,
		Notes:     notes,
	}
	const q = `
INSERT INTO usage_logs (id, booking_id, start_km, end_km, fuel_used, notes)
VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''))
RETURNING created_at
`
	if err := r.db.QueryRow(ctx, q, rec.ID, rec.BookingID, rec.StartKM, rec.EndKM, rec.FuelUsed, rec.Notes).Scan(&rec.CreatedAt); err != nil {
		return nil, err
	}
	return rec, nil
}
