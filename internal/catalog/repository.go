package catalog

import (
	"context"
	"fmt"

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

const packageColumns = `id, title, COALESCE(description,''), COALESCE(image_url,''),
       price::text, COALESCE(original_price::text,''), duration, group_size, location,
       difficulty, COALESCE(category,''), highlights, inclusions, exclusions, itinerary,
       rating, review_count, booking_count, status, created_at, updated_at`

func scanPackage(row pgx.Row) (*Package, error) {
	p := &Package{}
	if err := row.Scan(
		&p.ID, &p.Title, &p.Description, &p.ImageURL,
		&p.Price, &p.OriginalPrice, &p.Duration, &p.GroupSize, &p.Location,
		&p.Difficulty, &p.Category, &p.Highlights, &p.Inclusions, &p.Exclusions, &p.Itinerary,
		&p.Rating, &p.ReviewCount, &p.BookingCount, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return p, nil
}

// ListPackages returns the public view: Active only, newest first.
func (r *Repository) ListPackages(ctx context.Context) ([]Package, error) {
	const q = `SELECT ` + packageColumns + ` FROM packages WHERE status = 'Active' ORDER BY created_at DESC`
	return collectPackages(r.db.Query(ctx, q))
}

// ListAllPackages is the admin view, unfiltered.
func (r *Repository) ListAllPackages(ctx context.Context) ([]Package, error) {
	const q = `SELECT ` + packageColumns + ` FROM packages ORDER BY created_at DESC`
	return collectPackages(r.db.Query(ctx, q))
}

func collectPackages(rows pgx.Rows, err error) ([]Package, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Package
	for rows.Next() {
		p, err := scanPackage(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *Repository) GetPackage(ctx context.Context, id string) (*Package, error) {
	const q = `SELECT ` + packageColumns + ` FROM packages WHERE id = $1`
	return scanPackage(r.db.QueryRow(ctx, q, id))
}

// optionalAmount renders a nullable price for pgx; decimals always travel as
// fixed-point strings.
func optionalAmount(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := d.StringFixed(2)
	return &s
}

type PackageInput struct {
	Title         string
	Description   string
	ImageURL      string
	Price         decimal.Decimal
	OriginalPrice *decimal.Decimal
	Duration      string
	GroupSize     string
	Location      string
	Difficulty    Difficulty
	Category      string
	Highlights    []string
	Inclusions    []string
	Exclusions    []string
	Itinerary     []byte
	Status        ItemStatus
}

func (r *Repository) CreatePackage(ctx context.Context, in PackageInput) (*Package, error) {
	const q = `
INSERT INTO packages (title, description, image_url, price, original_price, duration, group_size,
                      location, difficulty, category, highlights, inclusions, exclusions, itinerary, status)
VALUES ($1, NULLIF($2,''), NULLIF($3,''), $4, $5, $6, $7, $8, $9, NULLIF($10,''), $11, $12, $13, $14, $15)
RETURNING ` + packageColumns
	return scanPackage(r.db.QueryRow(ctx, q,
		in.Title, in.Description, in.ImageURL, in.Price.StringFixed(2), optionalAmount(in.OriginalPrice), in.Duration, in.GroupSize,
		in.Location, string(in.Difficulty), in.Category, in.Highlights, in.Inclusions, in.Exclusions, in.Itinerary, string(in.Status),
	))
}

func (r *Repository) UpdatePackage(ctx context.Context, id string, in PackageInput) (*Package, error) {
	const q = `
UPDATE packages
SET title = $1, description = NULLIF($2,''), image_url = NULLIF($3,''), price = $4, original_price = $5,
    duration = $6, group_size = $7, location = $8, difficulty = $9, category = NULLIF($10,''),
    highlights = $11, inclusions = $12, exclusions = $13, itinerary = $14, status = $15, updated_at = NOW()
WHERE id = $16
RETURNING ` + packageColumns
	return scanPackage(r.db.QueryRow(ctx, q,
		in.Title, in.Description, in.ImageURL, in.Price.StringFixed(2), optionalAmount(in.OriginalPrice), in.Duration, in.GroupSize,
		in.Location, string(in.Difficulty), in.Category, in.Highlights, in.Inclusions, in.Exclusions, in.Itinerary, string(in.Status), id,
	))
}

func (r *Repository) SetPackageImage(ctx context.Context, id, imageURL string) error {
	const q = `UPDATE packages SET image_url = NULLIF($1,''), updated_at = NOW() WHERE id = $2`
	ct, err := r.db.Exec(ctx, q, imageURL, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *Repository) DeletePackage(ctx context.Context, id string) error {
	const q = `DELETE FROM packages WHERE id = $1`
	ct, err := r.db.Exec(ctx, q, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

const trailColumns = `id, name, COALESCE(description,''), COALESCE(image_url,''),
       difficulty, duration, elevation, location, features, status, created_at, updated_at`

func scanTrail(row pgx.Row) (*Trail, error) {
	t := &Trail{}
	if err := row.Scan(
		&t.ID, &t.Name, &t.Description, &t.ImageURL,
		&t.Difficulty, &t.Duration, &t.Elevation, &t.Location, &t.Features, &t.Status,
		&t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return t, nil
}

func (r *Repository) ListTrails(ctx context.Context) ([]Trail, error) {
	const q = `SELECT ` + trailColumns + ` FROM trails WHERE status = 'Active' ORDER BY created_at DESC`
	return collectTrails(r.db.Query(ctx, q))
}

func (r *Repository) ListAllTrails(ctx context.Context) ([]Trail, error) {
	const q = `SELECT ` + trailColumns + ` FROM trails ORDER BY created_at DESC`
	return collectTrails(r.db.Query(ctx, q))
}

func collectTrails(rows pgx.Rows, err error) ([]Trail, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Trail
	for rows.Next() {
		t, err := scanTrail(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

func (r *Repository) GetTrail(ctx context.Context, id string) (*Trail, error) {
	const q = `SELECT ` + trailColumns + ` FROM trails WHERE id = $1`
	return scanTrail(r.db.QueryRow(ctx, q, id))
}

type TrailInput struct {
	Name        string
	Description string
	ImageURL    string
	Difficulty  Difficulty
	Duration    string
	Elevation   string
	Location    string
	Features    []string
	Status      ItemStatus
}

func (r *Repository) CreateTrail(ctx context.Context, in TrailInput) (*Trail, error) {
	const q = `
INSERT INTO trails (name, description, image_url, difficulty, duration, elevation, location, features, status)
VALUES ($1, NULLIF($2,''), NULLIF($3,''), $4, $5, $6, $7, $8, $9)
RETURNING ` + trailColumns
	return scanTrail(r.db.QueryRow(ctx, q,
		in.Name, in.Description, in.ImageURL, string(in.Difficulty), in.Duration, in.Elevation, in.Location, in.Features, string(in.Status),
	))
}

func (r *Repository) UpdateTrail(ctx context.Context, id string, in TrailInput) (*Trail, error) {
	const q = `
UPDATE trails
SET name = $1, description = NULLIF($2,''), image_url = NULLIF($3,''), difficulty = $4,
    duration = $5, elevation = $6, location = $7, features = $8, status = $9, updated_at = NOW()
WHERE id = $10
RETURNING ` + trailColumns
	return scanTrail(r.db.QueryRow(ctx, q,
		in.Name, in.Description, in.ImageURL, string(in.Difficulty), in.Duration, in.Elevation, in.Location, in.Features, string(in.Status), id,
	))
}

func (r *Repository) DeleteTrail(ctx context.Context, id string) error {
	const q = `DELETE FROM trails WHERE id = $1`
	ct, err := r.db.Exec(ctx, q, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

const ecoStayColumns = `id, name, COALESCE(description,''), COALESCE(image_url,''),
       price::text, COALESCE(original_price::text,''), location, amenities, eco_features,
       rating, review_count, booking_count, status, created_at, updated_at`

func scanEcoStay(row pgx.Row) (*EcoStay, error) {
	e := &EcoStay{}
	if err := row.Scan(
		&e.ID, &e.Name, &e.Description, &e.ImageURL,
		&e.Price, &e.OriginalPrice, &e.Location, &e.Amenities, &e.EcoFeatures,
		&e.Rating, &e.ReviewCount, &e.BookingCount, &e.Status, &e.CreatedAt, &e.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return e, nil
}

func (r *Repository) ListEcoStays(ctx context.Context) ([]EcoStay, error) {
	const q = `SELECT ` + ecoStayColumns + ` FROM eco_stays WHERE status = 'Active' ORDER BY created_at DESC`
	return collectEcoStays(r.db.Query(ctx, q))
}

func (r *Repository) ListAllEcoStays(ctx context.Context) ([]EcoStay, error) {
	const q = `SELECT ` + ecoStayColumns + ` FROM eco_stays ORDER BY created_at DESC`
	return collectEcoStays(r.db.Query(ctx, q))
}

func collectEcoStays(rows pgx.Rows, err error) ([]EcoStay, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []EcoStay
	for rows.Next() {
		e, err := scanEcoStay(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

func (r *Repository) GetEcoStay(ctx context.Context, id string) (*EcoStay, error) {
	const q = `SELECT ` + ecoStayColumns + ` FROM eco_stays WHERE id = $1`
	return scanEcoStay(r.db.QueryRow(ctx, q, id))
}

type EcoStayInput struct {
	Name          string
	Description   string
	ImageURL      string
	Price         decimal.Decimal
	OriginalPrice *decimal.Decimal
	Location      string
	Amenities     []string
	EcoFeatures   []string
	Status        ItemStatus
}

func (r *Repository) CreateEcoStay(ctx context.Context, in EcoStayInput) (*EcoStay, error) {
	const q = `
INSERT INTO eco_stays (name, description, image_url, price, original_price, location, amenities, eco_features, status)
VALUES ($1, NULLIF($2,''), NULLIF($3,''), $4, $5, $6, $7, $8, $9)
RETURNING ` + ecoStayColumns
	return scanEcoStay(r.db.QueryRow(ctx, q,
		in.Name, in.Description, in.ImageURL, in.Price.StringFixed(2), optionalAmount(in.OriginalPrice), in.Location, in.Amenities, in.EcoFeatures, string(in.Status),
	))
}

func (r *Repository) UpdateEcoStay(ctx context.Context, id string, in EcoStayInput) (*EcoStay, error) {
	const q = `
UPDATE eco_stays
SET name = $1, description = NULLIF($2,''), image_url = NULLIF($3,''), price = $4, original_price = $5,
    location = $6, amenities = $7, eco_features = $8, status = $9, updated_at = NOW()
WHERE id = $10
RETURNING ` + ecoStayColumns
	return scanEcoStay(r.db.QueryRow(ctx, q,
		in.Name, in.Description, in.ImageURL, in.Price.StringFixed(2), optionalAmount(in.OriginalPrice), in.Location, in.Amenities, in.EcoFeatures, string(in.Status), id,
	))
}

func (r *Repository) DeleteEcoStay(ctx context.Context, id string) error {
	const q = `DELETE FROM eco_stays WHERE id = $1`
	ct, err := r.db.Exec(ctx, q, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// BookableItem is what the booking path needs from a catalog row: the
// server-side price authority and a display title.
type BookableItem struct {
	ID        string
	Title     string
	UnitPrice decimal.Decimal
}

var bookableQueries = map[string]string{
	"package":  `SELECT id, title, price::text FROM packages WHERE id = $1 AND status = 'Active'`,
	"trail":    `SELECT id, name, 0::text FROM trails WHERE id = $1 AND status = 'Active'`,
	"eco_stay": `SELECT id, name, price::text FROM eco_stays WHERE id = $1 AND status = 'Active'`,
}

// GetBookable resolves an Active catalog item by booking type. Trails carry no
// price; a trail booking totals to zero (guided trails are paid on site).
func (r *Repository) GetBookable(ctx context.Context, bookingType, id string) (*BookableItem, error) {
	q, ok := bookableQueries[bookingType]
	if !ok {
		return nil, fmt.Errorf("unknown booking type: %s", bookingType)
	}

	var item BookableItem
	var price string
	if err := r.db.QueryRow(ctx, q, id).Scan(&item.ID, &item.Title, &price); err != nil {
		return nil, err
	}
	unit, err := decimal.NewFromString(price)
	if err != nil {
		return nil, err
	}
	item.UnitPrice = unit
	return &item, nil
}

var bookingCountTables = map[string]string{
	"package":  "packages",
	"trail":    "",
	"eco_stay": "eco_stays",
}

// IncrementBookingCount bumps the per-item booking counter inside the booking
// transaction. Trails have no counter.
func IncrementBookingCount(ctx context.Context, tx pgx.Tx, bookingType, id string) error {
	table := bookingCountTables[bookingType]
	if table == "" {
		return nil
	}
	q := fmt.Sprintf(`UPDATE %s SET booking_count = booking_count + 1, updated_at = NOW() WHERE id = $1`, table)
	_, err := tx.Exec(ctx, q, id)
	return err
}
