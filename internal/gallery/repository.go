package gallery

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const photoColumns = `id, title, image_url, COALESCE(caption,''), sort_order, active, created_at`

func scanPhoto(row pgx.Row) (*Photo, error) {
	p := &Photo{}
	if err := row.Scan(&p.ID, &p.Title, &p.ImageURL, &p.Caption, &p.SortOrder, &p.Active, &p.CreatedAt); err != nil {
		return nil, err
	}
	return p, nil
}

// ListActive returns the public gallery in display order.
func (r *Repository) ListActive(ctx context.Context) ([]Photo, error) {
	const q = `SELECT ` + photoColumns + ` FROM gallery_photos WHERE active ORDER BY sort_order, created_at`
	return collect(r.db.Query(ctx, q))
}

func (r *Repository) ListAll(ctx context.Context) ([]Photo, error) {
	const q = `SELECT ` + photoColumns + ` FROM gallery_photos ORDER BY sort_order, created_at`
	return collect(r.db.Query(ctx, q))
}

func collect(rows pgx.Rows, err error) ([]Photo, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Photo
	for rows.Next() {
		p, err := scanPhoto(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

type PhotoInput struct {
	Title     string
	ImageURL  string
	Caption   string
	SortOrder int
	Active    bool
}

func (r *Repository) Create(ctx context.Context, in PhotoInput) (*Photo, error) {
	const q = `
INSERT INTO gallery_photos (title, image_url, caption, sort_order, active)
VALUES ($1, $2, NULLIF($3,''), $4, $5)
RETURNING ` + photoColumns
	return scanPhoto(r.db.QueryRow(ctx, q, in.Title, in.ImageURL, in.Caption, in.SortOrder, in.Active))
}

func (r *Repository) Update(ctx context.Context, id string, in PhotoInput) (*Photo, error) {
	const q = `
UPDATE gallery_photos
SET title = $1, image_url = $2, caption = NULLIF($3,''), sort_order = $4, active = $5
WHERE id = $6
RETURNING ` + photoColumns
	return scanPhoto(r.db.QueryRow(ctx, q, in.Title, in.ImageURL, in.Caption, in.SortOrder, in.Active, id))
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM gallery_photos WHERE id = $1`
	ct, err := r.db.Exec(ctx, q, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
