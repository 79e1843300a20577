package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

func (r *Repository) CreateIdentity(ctx context.Context, email, passwordHash, fullName, phone string) (*Identity, error) {
	const q = `
INSERT INTO auth_users (email, password_hash, full_name, phone)
VALUES ($1, $2, $3, $4)
RETURNING id, email, password_hash, full_name, phone, email_confirmed, created_at
`
	id := &Identity{}
	err := r.db.QueryRow(ctx, q, email, passwordHash, fullName, phone).Scan(
		&id.ID, &id.Email, &id.PasswordHash, &id.FullName, &id.Phone, &id.EmailConfirmed, &id.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return id, nil
}

func (r *Repository) FindByEmail(ctx context.Context, email string) (*Identity, error) {
	const q = `
SELECT id, email, password_hash, full_name, phone, email_confirmed, created_at
FROM auth_users
WHERE email = $1
`
	id := &Identity{}
	if err := r.db.QueryRow(ctx, q, email).Scan(
		&id.ID, &id.Email, &id.PasswordHash, &id.FullName, &id.Phone, &id.EmailConfirmed, &id.CreatedAt,
	); err != nil {
		return nil, err
	}
	return id, nil
}

func (r *Repository) MarkEmailConfirmed(ctx context.Context, authUserID string) error {
	const q = `UPDATE auth_users SET email_confirmed = TRUE WHERE id = $1`
	_, err := r.db.Exec(ctx, q, authUserID)
	return err
}

// CreateConfirmation issues a single-use email confirmation token.
func (r *Repository) CreateConfirmation(ctx context.Context, authUserID string) (string, error) {
	token := uuid.NewString()
	const q = `INSERT INTO user_confirmations (token, auth_user_id) VALUES ($1, $2)`
	if _, err := r.db.Exec(ctx, q, token, authUserID); err != nil {
		return "", err
	}
	return token, nil
}

// ConsumeConfirmation marks the token used and returns the identity it
// belongs to. A token can be consumed only once.
func (r *Repository) ConsumeConfirmation(ctx context.Context, token string) (string, error) {
	const q = `
UPDATE user_confirmations
SET confirmed_at = NOW()
WHERE token = $1 AND confirmed_at IS NULL
RETURNING auth_user_id
`
	var authUserID string
	if err := r.db.QueryRow(ctx, q, token).Scan(&authUserID); err != nil {
		return "", err
	}
	return authUserID, nil
}
