package driver

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Driver struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	LicenseNumber string    `json:"licenseNumber"`
	Status        Status    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const cols = `id, name, license_number, status, created_at, updated_at`

func scan(row pgx.Row) (*Driver, error) {
	var d Driver
	if err := row.Scan(&d.ID, &d.Name, &d.LicenseNumber, &d.Status, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *Repository) List(ctx context.Context, status Status) ([]Driver, error) {
	q := `SELECT ` + cols + ` FROM drivers ORDER BY name ASC`
	args := []any{}
	if status != "" {
		q = `SELECT ` + cols + ` FROM drivers WHERE status = $1 ORDER BY name ASC`
		args = append(args, status)
	}
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Driver
	for rows.Next() {
		d, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, rows.Err()
}

func (r *Repository) GetByID(ctx context.Context, id string) (*Driver, error) {
	const q = `SELECT ` + cols + ` FROM drivers WHERE id = $1`
	return scan(r.db.QueryRow(ctx, q, id))
}

// GetForUpdate locks the driver row for the rest of the transaction, pairing
// with the vehicle-row lock to serialize conflict-check-then-insert.
func GetForUpdate(ctx context.Context, tx pgx.Tx, id string) (*Driver, error) {
	const q = `SELECT ` + cols + ` FROM drivers WHERE id = $1 FOR UPDATE`
	return scan(tx.QueryRow(ctx, q, id))
}

func (r *Repository) Create(ctx context.Context, name, licenseNumber string) (*Driver, error) {
	id := uuid.NewString()
	const q = `
INSERT INTO drivers (id, name, license_number, status)
VALUES ($1, $2, $3, 'available')
`
	if _, err := r.db.Exec(ctx, q, id, name, licenseNumber); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *Repository) Update(ctx context.Context, id, name, licenseNumber string) error {
	const q = `
UPDATE drivers
SET name = $1, license_number = $2, updated_at = NOW()
WHERE id = $3
`
	ct, err := r.db.Exec(ctx, q, name, licenseNumber, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	ct, err := r.db.Exec(ctx, `DELETE FROM drivers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *Repository) SetStatus(ctx context.Context, id string, status Status) error {
	const q = `UPDATE drivers SET status = $1, updated_at = NOW() WHERE id = $2`
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
	const q = `UPDATE drivers SET status = $1, updated_at = NOW() WHERE id = $2`
	_, err := tx.Exec(ctx, q, status, id)
	return err
}
