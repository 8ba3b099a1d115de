package user

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetByID(ctx context.Context, id string) (*User, error) {
	const q = `
SELECT id, name, email, password_hash, roles
FROM users
WHERE id = $1
`
	var u User
	if err := r.db.QueryRow(ctx, q, id).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Roles); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	const q = `
SELECT id, name, email, password_hash, roles
FROM users
WHERE lower(email) = lower($1)
`
	var u User
	if err := r.db.QueryRow(ctx, q, email).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Roles); err != nil {
		return nil, err
	}
	return &u, nil
}

// ListByRole returns users holding the given role, for approver pickers.
func (r *Repository) ListByRole(ctx context.Context, role string) ([]User, error) {
	const q = `
SELECT id, name, email, password_hash, roles
FROM users
WHERE $1 = ANY(roles)
ORDER BY name ASC
`
	rows, err := r.db.Query(ctx, q, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Roles); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *Repository) Create(ctx context.Context, name, email, passwordHash string, roles []string) (*User, error) {
	u := &User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Roles:        roles,
	}
	const q = `
INSERT INTO users (id, name, email, password_hash, roles)
VALUES ($1, $2, $3, $4, $5)
`
	if _, err := r.db.Exec(ctx, q, u.ID, u.Name, u.Email, u.PasswordHash, u.Roles); err != nil {
		return nil, err
	}
	return u, nil
}
