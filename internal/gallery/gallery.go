package gallery

import "time"

// Photo is one entry on the public gallery page. Ordering is explicit via
// sort_order so the admin controls the layout.
type Photo struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	ImageURL  string    `json:"imageUrl"`
	Caption   string    `json:"caption,omitempty"`
	SortOrder int       `json:"sortOrder"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}
