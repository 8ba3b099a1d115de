package approval

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Approval struct {
	ID         string    `json:"id"`
	BookingID  string    `json:"bookingId"`
	ApproverID string    `json:"approverId"`
	Level      int       `json:"level"`
	Status     Status    `json:"status"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const cols = `id, booking_id, approver_id, level, status, COALESCE(notes,''), created_at, updated_at`

func scan(row pgx.Row) (*Approval, error) {
	var a Approval
	if err := row.Scan(&a.ID, &a.BookingID, &a.ApproverID, &a.Level, &a.Status, &a.Notes, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*Approval, error) {
	const q = `SELECT ` + cols + ` FROM approvals WHERE id = $1`
	return scan(r.db.QueryRow(ctx, q, id))
}

func GetForUpdate(ctx context.Context, tx pgx.Tx, id string) (*Approval, error) {
	const q = `SELECT ` + cols + ` FROM approvals WHERE id = $1 FOR UPDATE`
	return scan(tx.QueryRow(ctx, q, id))
}

// GetByBookingAndLevel reads the sibling approval inside the workflow
// transaction; the booking row lock is already held at that point.
func GetByBookingAndLevel(ctx context.Context, tx pgx.Tx, bookingID string, level int) (*Approval, error) {
	const q = `SELECT ` + cols + ` FROM approvals WHERE booking_id = $1 AND level = $2`
	return scan(tx.QueryRow(ctx, q, bookingID, level))
}

func (r *Repository) ListByBooking(ctx context.Context, bookingID string) ([]Approval, error) {
	const q = `SELECT ` + cols + ` FROM approvals WHERE booking_id = $1 ORDER BY level ASC`
	rows, err := r.db.Query(ctx, q, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Approval
	for rows.Next() {
		a, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

// ListPendingForLevels returns pending approvals at any of the given levels,
// newest first. Feeds the approver's work queue.
func (r *Repository) ListPendingForLevels(ctx context.Context, levels []int) ([]Approval, error) {
	if len(levels) == 0 {
		return nil, nil
	}
	const q = `
SELECT ` + cols + `
FROM approvals
WHERE status = 'pending' AND level = ANY($1)
ORDER BY created_at DESC
`
	rows, err := r.db.Query(ctx, q, levels)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Approval
	for rows.Next() {
		a, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

func InsertTx(ctx context.Context, tx pgx.Tx, a *Approval) error {
	const q = `
INSERT INTO approvals (id, booking_id, approver_id, level, status)
VALUES ($1, $2, $3, $4, $5)
`
	_, err := tx.Exec(ctx, q, a.ID, a.BookingID, a.ApproverID, a.Level, a.Status)
	return err
}

// ResolveTx moves the approval to a terminal status.
func ResolveTx(ctx context.Context, tx pgx.Tx, id string, status Status, notes string) error {
	const q = `
UPDATE approvals
SET status = $1, notes = NULLIF($2, ''), updated_at = NOW()
WHERE id = $3
`
	_, err := tx.Exec(ctx, q, string(status), notes, id)
	return err
}
