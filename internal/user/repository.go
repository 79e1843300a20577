package user

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

const profileColumns = `id, COALESCE(auth_user_id::text,''), full_name, email, phone,
       COALESCE(emergency_contact,''), COALESCE(emergency_phone,''),
       email_confirmed, last_login, created_at, updated_at`

func scanProfile(row pgx.Row) (*Profile, error) {
	p := &Profile{}
	if err := row.Scan(
		&p.ID, &p.AuthUserID, &p.FullName, &p.Email, &p.Phone,
		&p.EmergencyContact, &p.EmergencyPhone,
		&p.EmailConfirmed, &p.LastLogin, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *Repository) GetByAuthUserID(ctx context.Context, authUserID string) (*Profile, error) {
	const q = `SELECT ` + profileColumns + ` FROM users WHERE auth_user_id = $1`
	return scanProfile(r.db.QueryRow(ctx, q, authUserID))
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (*Profile, error) {
	const q = `SELECT ` + profileColumns + ` FROM users WHERE email = $1`
	return scanProfile(r.db.QueryRow(ctx, q, email))
}

// CreateFromIdentity inserts a profile row for an existing identity. Used at
// registration and as the sign-in repair path when the registration-time
// insert did not land. A guest-booking profile with the same email is claimed
// by the identity instead of colliding on the unique email.
func (r *Repository) CreateFromIdentity(ctx context.Context, authUserID, fullName, email, phone string, emailConfirmed bool) (*Profile, error) {
	const q = `
INSERT INTO users (auth_user_id, full_name, email, phone, email_confirmed)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (email) DO UPDATE SET
  auth_user_id = EXCLUDED.auth_user_id,
  full_name = EXCLUDED.full_name,
  phone = EXCLUDED.phone,
  email_confirmed = EXCLUDED.email_confirmed,
  updated_at = NOW()
RETURNING ` + profileColumns
	return scanProfile(r.db.QueryRow(ctx, q, authUserID, fullName, email, phone, emailConfirmed))
}

// UpsertByEmail is the booking path: a booking must always have a resolvable
// user reference, whether or not the customer ever registered.
func UpsertByEmail(ctx context.Context, tx pgx.Tx, fullName, email, phone, emergencyContact, emergencyPhone string) (*Profile, error) {
	const q = `
INSERT INTO users (full_name, email, phone, emergency_contact, emergency_phone)
VALUES ($1, $2, $3, NULLIF($4,''), NULLIF($5,''))
ON CONFLICT (email) DO UPDATE SET
  full_name = EXCLUDED.full_name,
  phone = EXCLUDED.phone,
  emergency_contact = COALESCE(EXCLUDED.emergency_contact, users.emergency_contact),
  emergency_phone = COALESCE(EXCLUDED.emergency_phone, users.emergency_phone),
  updated_at = NOW()
RETURNING ` + profileColumns
	return scanProfile(tx.QueryRow(ctx, q, fullName, email, phone, emergencyContact, emergencyPhone))
}

func (r *Repository) TouchLastLogin(ctx context.Context, id string) error {
	const q = `UPDATE users SET last_login = $1, updated_at = NOW() WHERE id = $2`
	_, err := r.db.Exec(ctx, q, time.Now(), id)
	return err
}

func (r *Repository) MarkEmailConfirmed(ctx context.Context, authUserID string) error {
	const q = `UPDATE users SET email_confirmed = TRUE, updated_at = NOW() WHERE auth_user_id = $1`
	_, err := r.db.Exec(ctx, q, authUserID)
	return err
}
