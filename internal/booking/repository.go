package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const bookingColumns = `b.id, b.booking_ref, b.user_id, b.booking_type,
       COALESCE(b.package_id::text, b.trail_id::text, b.eco_stay_id::text),
       b.participants, b.booking_date, COALESCE(b.special_requests,''),
       b.total_amount::text, b.status, b.payment_status, COALESCE(b.admin_notes,''),
       b.confirmation_sent, b.created_at, b.updated_at`

func scanBooking(row pgx.Row) (*Booking, error) {
	b := &Booking{}
	if err := row.Scan(
		&b.ID, &b.Ref, &b.UserID, &b.Target.Type, &b.Target.ItemID,
		&b.Participants, &b.Date, &b.SpecialRequests,
		&b.TotalAmount, &b.Status, &b.PaymentStatus, &b.AdminNotes,
		&b.ConfirmationSent, &b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return b, nil
}

// Insert creates the booking row inside the create-booking transaction.
// The target column is chosen by the discriminator; the CHECK constraint on
// bookings backs up the exactly-one-reference invariant.
func Insert(ctx context.Context, tx pgx.Tx, userID, ref string, target Target, participants int, date time.Time, specialRequests string, total decimal.Decimal) (*Booking, error) {
	col, err := target.Column()
	if err != nil {
		return nil, err
	}

	q := fmt.Sprintf(`
INSERT INTO bookings AS b (booking_ref, user_id, %s, booking_type, participants, booking_date,
                           special_requests, total_amount, status, payment_status)
VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7,''), $8, 'Pending', 'Pending')
RETURNING `+bookingColumns, col)

	return scanBooking(tx.QueryRow(ctx, q,
		ref, userID, target.ItemID, string(target.Type), participants, date, specialRequests, total.StringFixed(2),
	))
}

// GetByRefForEmail is the guest lookup. The booking email acts as a second
// key: references are short and time-derived, so a ref alone must not open
// someone else's booking.
func (r *Repository) GetByRefForEmail(ctx context.Context, ref, email string) (*Booking, error) {
	const q = `
SELECT ` + bookingColumns + `
FROM bookings b
JOIN users u ON u.id = b.user_id
WHERE b.booking_ref = $1 AND u.email = $2
`
	return scanBooking(r.db.QueryRow(ctx, q, ref, email))
}

func (r *Repository) ListByUser(ctx context.Context, userID string) ([]Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings b WHERE b.user_id = $1 ORDER BY b.created_at DESC`
	rows, err := r.db.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

// Filter narrows the admin listing. Both predicates are pushed down to SQL;
// empty values match everything.
type Filter struct {
	Status Status
	Search string
}

const adminRowColumns = bookingColumns + `,
       u.full_name, u.email, u.phone,
       COALESCE(p.title, t.name, e.name, '')`

// ListAdmin returns the back-office view: bookings joined with customers and
// item titles, newest first, filtered by exact status and a text search over
// customer name, email, and booking reference.
func (r *Repository) ListAdmin(ctx context.Context, f Filter) ([]AdminRow, error) {
	const q = `
SELECT ` + adminRowColumns + `
FROM bookings b
JOIN users u ON u.id = b.user_id
LEFT JOIN packages p ON p.id = b.package_id
LEFT JOIN trails t ON t.id = b.trail_id
LEFT JOIN eco_stays e ON e.id = b.eco_stay_id
WHERE ($1 = '' OR b.status = $1)
  AND ($2 = '' OR u.full_name ILIKE '%' || $2 || '%'
              OR u.email ILIKE '%' || $2 || '%'
              OR b.booking_ref ILIKE '%' || $2 || '%')
ORDER BY b.created_at DESC
`
	rows, err := r.db.Query(ctx, q, string(f.Status), f.Search)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AdminRow
	for rows.Next() {
		var row AdminRow
		if err := rows.Scan(
			&row.ID, &row.Ref, &row.UserID, &row.Target.Type, &row.Target.ItemID,
			&row.Participants, &row.Date, &row.SpecialRequests,
			&row.TotalAmount, &row.Status, &row.PaymentStatus, &row.AdminNotes,
			&row.ConfirmationSent, &row.CreatedAt, &row.UpdatedAt,
			&row.CustomerName, &row.CustomerEmail, &row.CustomerPhone,
			&row.ItemTitle,
		); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// GetAdminRowByID loads one booking with customer and item context, used to
// build notification payloads after a status transition commits.
func (r *Repository) GetAdminRowByID(ctx context.Context, id string) (*AdminRow, error) {
	const q = `
SELECT ` + adminRowColumns + `
FROM bookings b
JOIN users u ON u.id = b.user_id
LEFT JOIN packages p ON p.id = b.package_id
LEFT JOIN trails t ON t.id = b.trail_id
LEFT JOIN eco_stays e ON e.id = b.eco_stay_id
WHERE b.id = $1
`
	var row AdminRow
	if err := r.db.QueryRow(ctx, q, id).Scan(
		&row.ID, &row.Ref, &row.UserID, &row.Target.Type, &row.Target.ItemID,
		&row.Participants, &row.Date, &row.SpecialRequests,
		&row.TotalAmount, &row.Status, &row.PaymentStatus, &row.AdminNotes,
		&row.ConfirmationSent, &row.CreatedAt, &row.UpdatedAt,
		&row.CustomerName, &row.CustomerEmail, &row.CustomerPhone,
		&row.ItemTitle,
	); err != nil {
		return nil, err
	}
	return &row, nil
}

func GetForUpdate(ctx context.Context, tx pgx.Tx, id string) (*Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings b WHERE b.id = $1 FOR UPDATE`
	return scanBooking(tx.QueryRow(ctx, q, id))
}

// UpdateStatus is the only mutation path for status, admin_notes, and
// confirmation_sent. Callers decide confirmationSent from the transition;
// notes are only overwritten when non-empty.
func UpdateStatus(ctx context.Context, tx pgx.Tx, id string, next Status, adminNotes string, confirmationSent bool) error {
	const q = `
UPDATE bookings
SET status = $1,
    admin_notes = COALESCE(NULLIF($2,''), admin_notes),
    confirmation_sent = $3,
    updated_at = NOW()
WHERE id = $4
`
	_, err := tx.Exec(ctx, q, string(next), adminNotes, confirmationSent, id)
	return err
}
