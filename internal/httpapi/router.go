package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"

	"trekbooking/internal/admin"
	"trekbooking/internal/adminuser"
	"trekbooking/internal/api"
	"trekbooking/internal/audit"
	"trekbooking/internal/auth"
	"trekbooking/internal/booking"
	"trekbooking/internal/catalog"
	"trekbooking/internal/gallery"
	"trekbooking/internal/notify"
	"trekbooking/internal/session"
	"trekbooking/internal/storage"
	"trekbooking/internal/user"
	"trekbooking/pkg/config"
	"trekbooking/pkg/metrics"
)

type Deps struct {
	Cfg      config.Config
	DB       *pgxpool.Pool
	Cache    *session.Cache
	Storage  *storage.Client
	Notifier notify.Notifier

	Users    *user.Repository
	Admins   *adminuser.Repository
	Catalog  *catalog.Repository
	Bookings *booking.Repository
	Gallery  *gallery.Repository
	Audit    *audit.Repository
	Auth     *auth.Service
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(api.CORSMiddleware(api.CORSOptions{AllowedOrigins: d.Cfg.AllowedOrigins}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	catalogPublic := catalog.PublicHandlers{Catalog: d.Catalog}
	catalogAdmin := catalog.AdminHandlers{Catalog: d.Catalog, Storage: d.Storage}
	galleryH := gallery.Handlers{Photos: d.Gallery}
	bookingH := booking.Handlers{DB: d.DB, Catalog: d.Catalog, Bookings: d.Bookings, Notifier: d.Notifier}
	authH := auth.Handlers{Cfg: d.Cfg, Cache: d.Cache, Service: d.Auth}
	adminH := admin.Handlers{Cfg: d.Cfg, DB: d.DB, Admins: d.Admins, Bookings: d.Bookings, Audit: d.Audit, Notifier: d.Notifier}

	userAuth := api.UserAuth(d.Cfg, d.Cache, d.Users)
	adminAuth := api.AdminAuth(d.Cfg, d.Admins)

	r.Route("/v1", func(r chi.Router) {
		// Public catalog.
		r.Get("/packages", catalogPublic.ListPackages)
		r.Get("/packages/{id}", catalogPublic.GetPackage)
		r.Get("/trails", catalogPublic.ListTrails)
		r.Get("/eco-stays", catalogPublic.ListEcoStays)
		r.Get("/gallery", galleryH.List)

		// Bookings: creation and lookup by reference are open to guests.
		r.Post("/bookings", bookingH.Create)
		r.Get("/bookings/{ref}", bookingH.GetByRef)

		// Customer accounts.
		r.Post("/auth/register", authH.Register)
		r.Post("/auth/login", authH.Login)
		r.Post("/auth/logout", authH.Logout)
		r.Post("/auth/confirm", authH.Confirm)

		r.Group(func(r chi.Router) {
			r.Use(userAuth)
			r.Get("/me", authH.Me)
			r.Get("/me/bookings", bookingH.MyBookings)
		})

		// Back office.
		r.Post("/admin/login", adminH.Login)

		r.Route("/admin", func(r chi.Router) {
			r.Use(adminAuth)

			r.Get("/me", adminH.Me)
			r.Get("/stats", adminH.Stats)
			r.Get("/activity", adminH.Activity)

			r.Get("/bookings", adminH.ListBookings)
			r.Get("/bookings/export", adminH.ExportBookings)
			r.Patch("/bookings/{id}/status", adminH.UpdateBookingStatus)

			r.Get("/packages", catalogAdmin.ListPackages)
			r.Post("/packages", catalogAdmin.CreatePackage)
			r.Get("/packages/{id}", catalogAdmin.GetPackage)
			r.Put("/packages/{id}", catalogAdmin.UpdatePackage)
			r.Delete("/packages/{id}", catalogAdmin.DeletePackage)
			r.Post("/packages/{id}/image", catalogAdmin.UploadPackageImage)

			r.Get("/trails", catalogAdmin.ListTrails)
			r.Post("/trails", catalogAdmin.CreateTrail)
			r.Put("/trails/{id}", catalogAdmin.UpdateTrail)
			r.Delete("/trails/{id}", catalogAdmin.DeleteTrail)

			r.Get("/eco-stays", catalogAdmin.ListEcoStays)
			r.Post("/eco-stays", catalogAdmin.CreateEcoStay)
			r.Put("/eco-stays/{id}", catalogAdmin.UpdateEcoStay)
			r.Delete("/eco-stays/{id}", catalogAdmin.DeleteEcoStay)

			r.Get("/gallery", galleryH.ListAll)
			r.Post("/gallery", galleryH.Create)
			r.Put("/gallery/{id}", galleryH.Update)
			r.Delete("/gallery/{id}", galleryH.Delete)
		})
	})

	return r
}
