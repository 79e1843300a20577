package admin

import (
	"context"
	"log"
	"net/http"

	"golang.org/x/sync/errgroup"

	"trekbooking/internal/api"
	"trekbooking/internal/booking"
)

type DashboardStats struct {
	TotalBookings   int                `json:"totalBookings"`
	PendingBookings int                `json:"pendingBookings"`
	TotalRevenue    string             `json:"totalRevenue"`
	TotalUsers      int                `json:"totalUsers"`
	TotalPackages   int                `json:"totalPackages"`
	ActivePackages  int                `json:"activePackages"`
	TotalTrails     int                `json:"totalTrails"`
	TotalEcoStays   int                `json:"totalEcoStays"`
	RecentBookings  []booking.AdminRow `json:"recentBookings"`
}

// Stats fans out the dashboard reads concurrently. Each statistic degrades to
// zero/empty on its own failure; one broken query never blanks the whole view.
func (h Handlers) Stats(w http.ResponseWriter, r *http.Request) {
	stats := DashboardStats{TotalRevenue: "0", RecentBookings: []booking.AdminRow{}}

	g, ctx := errgroup.WithContext(r.Context())

	g.Go(func() error {
		const q = `
SELECT COUNT(*),
       COUNT(*) FILTER (WHERE status = 'Pending'),
       COALESCE(SUM(total_amount) FILTER (WHERE status IN ('Confirmed','Completed')), 0)::text
FROM bookings`
		if err := h.DB.QueryRow(ctx, q).Scan(&stats.TotalBookings, &stats.PendingBookings, &stats.TotalRevenue); err != nil {
			log.Printf("stats: bookings aggregate failed: %v", err)
			stats.TotalBookings, stats.PendingBookings, stats.TotalRevenue = 0, 0, "0"
		}
		return nil
	})

	g.Go(func() error {
		if err := h.DB.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&stats.TotalUsers); err != nil {
			log.Printf("stats: users count failed: %v", err)
			stats.TotalUsers = 0
		}
		return nil
	})

	g.Go(func() error {
		const q = `SELECT COUNT(*), COUNT(*) FILTER (WHERE status = 'Active') FROM packages`
		if err := h.DB.QueryRow(ctx, q).Scan(&stats.TotalPackages, &stats.ActivePackages); err != nil {
			log.Printf("stats: packages count failed: %v", err)
			stats.TotalPackages, stats.ActivePackages = 0, 0
		}
		return nil
	})

	g.Go(func() error {
		if err := h.DB.QueryRow(ctx, `SELECT COUNT(*) FROM trails`).Scan(&stats.TotalTrails); err != nil {
			log.Printf("stats: trails count failed: %v", err)
			stats.TotalTrails = 0
		}
		return nil
	})

	g.Go(func() error {
		if err := h.DB.QueryRow(ctx, `SELECT COUNT(*) FROM eco_stays`).Scan(&stats.TotalEcoStays); err != nil {
			log.Printf("stats: eco stays count failed: %v", err)
			stats.TotalEcoStays = 0
		}
		return nil
	})

	g.Go(func() error {
		rows, err := h.recentBookings(ctx, 5)
		if err != nil {
			log.Printf("stats: recent bookings failed: %v", err)
			return nil
		}
		stats.RecentBookings = rows
		return nil
	})

	_ = g.Wait()

	api.WriteJSON(w, http.StatusOK, stats)
}

func (h Handlers) recentBookings(ctx context.Context, limit int) ([]booking.AdminRow, error) {
	items, err := h.Bookings.ListAdmin(ctx, booking.Filter{})
	if err != nil {
		return nil, err
	}
	if len(items) > limit {
		items = items[:limit]
	}
	if items == nil {
		items = []booking.AdminRow{}
	}
	return items, nil
}
