package audit

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Record struct {
	ID          int64     `json:"id"`
	UserID      *string   `json:"userId,omitempty"`
	Action      string    `json:"action"`
	TableName   string    `json:"tableName"`
	RecordID    *string   `json:"recordId,omitempty"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Insert writes an audit record inside the caller's transaction. Callers
// treat it as best-effort: an audit failure must not roll back the business
// mutation, so call sites discard the error.
func Insert(ctx context.Context, tx pgx.Tx, userID *string, action, tableName string, recordID *string, description string) error {
	const q = `
INSERT INTO system_logs (user_id, action, table_name, record_id, description)
VALUES ($1, $2, $3, $4, $5)
`
	_, err := tx.Exec(ctx, q, userID, action, tableName, recordID, description)
	return err
}

func (r *Repository) ListRecent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	const q = `
SELECT id, user_id, action, table_name, record_id, description, created_at
FROM system_logs
ORDER BY created_at DESC
LIMIT $1
`
	rows, err := r.db.Query(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Action, &rec.TableName, &rec.RecordID, &rec.Description, &rec.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
