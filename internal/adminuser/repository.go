package adminuser

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const adminColumns = `id, username, password_hash, COALESCE(email,''), COALESCE(full_name,''),
       COALESCE(role,'admin'), is_active, last_login, created_at, updated_at`

func scanAdmin(row pgx.Row) (*Admin, error) {
	a := &Admin{}
	if err := row.Scan(
		&a.ID, &a.Username, &a.PasswordHash, &a.Email, &a.FullName,
		&a.Role, &a.IsActive, &a.LastLogin, &a.CreatedAt, &a.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return a, nil
}

func (r *Repository) FindByUsername(ctx context.Context, username string) (*Admin, error) {
	const q = `SELECT ` + adminColumns + ` FROM admin_users WHERE username = $1`
	return scanAdmin(r.db.QueryRow(ctx, q, username))
}

func (r *Repository) GetByID(ctx context.Context, id string) (*Admin, error) {
	const q = `SELECT ` + adminColumns + ` FROM admin_users WHERE id = $1`
	return scanAdmin(r.db.QueryRow(ctx, q, id))
}

func (r *Repository) TouchLastLogin(ctx context.Context, id string) error {
	const q = `UPDATE admin_users SET last_login = $1, updated_at = NOW() WHERE id = $2`
	_, err := r.db.Exec(ctx, q, time.Now(), id)
	return err
}

// Upsert is the seed/bootstrap path used by cmd/dev/seedadmin.
func (r *Repository) Upsert(ctx context.Context, username, passwordHash, email, fullName, role string) (*Admin, error) {
	const q = `
INSERT INTO admin_users (username, password_hash, email, full_name, role, is_active)
VALUES ($1, $2, $3, $4, $5, TRUE)
ON CONFLICT (username) DO UPDATE SET
  password_hash = EXCLUDED.password_hash,
  email = EXCLUDED.email,
  full_name = EXCLUDED.full_name,
  role = EXCLUDED.role,
  is_active = TRUE,
  updated_at = NOW()
RETURNING ` + adminColumns
	return scanAdmin(r.db.QueryRow(ctx, q, username, passwordHash, email, fullName, role))
}
