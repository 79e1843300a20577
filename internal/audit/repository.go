package audit

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Insert records an admin action inside the caller's transaction, so the log
// entry commits or rolls back with the change itself.
func Insert(ctx context.Context, tx pgx.Tx, adminID, bookingID string, action Action, metadata any) error {
	var s *string
	if metadata != nil {
		b, _ := json.Marshal(metadata)
		str := string(b)
		s = &str
	}
	const q = `
INSERT INTO admin_audit_logs (admin_id, booking_id, action, metadata)
VALUES ($1, NULLIF($2,'')::uuid, $3, CAST($4 AS jsonb))
`
	_, err := tx.Exec(ctx, q, adminID, bookingID, string(action), s)
	return err
}

// ListRecent returns the newest entries for the back-office activity view.
func (r *Repository) ListRecent(ctx context.Context, limit int) ([]Entry, error) {
	const q = `
SELECT id, admin_id, COALESCE(booking_id::text,''), action, COALESCE(metadata,'null'), created_at
FROM admin_audit_logs
ORDER BY created_at DESC
LIMIT $1
`
	rows, err := r.db.Query(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.AdminID, &e.BookingID, &e.Action, &e.Metadata, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
