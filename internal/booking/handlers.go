package booking

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"trekbooking/internal/api"
	"trekbooking/internal/catalog"
	"trekbooking/internal/notify"
	"trekbooking/internal/user"
	"trekbooking/pkg/db"
)

type Handlers struct {
	DB       *pgxpool.Pool
	Catalog  *catalog.Repository
	Bookings *Repository
	Notifier notify.Notifier
}

type ContactInfo struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	EmergencyContact string `json:"emergencyContact"`
	EmergencyPhone   string `json:"emergencyPhone"`
}

type CreateRequest struct {
	ItemType        string      `json:"itemType"`
	ItemID          string      `json:"itemId"`
	Participants    int         `json:"participants"`
	Date            string      `json:"date"` // YYYY-MM-DD
	SpecialRequests string      `json:"specialRequests"`
	Contact         ContactInfo `json:"contact"`
}

func (h Handlers) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}

	bookingType, err := ParseType(req.ItemType)
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid item type")
		return
	}
	if strings.TrimSpace(req.ItemID) == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "itemId is required")
		return
	}
	if req.Participants < 1 {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "participants must be at least 1")
		return
	}
	// Well-formed date only; past dates are accepted as in the original flow.
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid date, expected YYYY-MM-DD")
		return
	}
	if strings.TrimSpace(req.Contact.Name) == "" || strings.TrimSpace(req.Contact.Email) == "" || strings.TrimSpace(req.Contact.Phone) == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "contact name, email and phone are required")
		return
	}

	// Price authority is the catalog row, not the client. Only Active items
	// are bookable.
	item, err := h.Catalog.GetBookable(r.Context(), string(bookingType), req.ItemID)
	if err != nil {
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "item not found or not bookable")
		return
	}
	total := Total(item.UnitPrice, req.Participants)

	target := Target{Type: bookingType, ItemID: item.ID}

	var created *Booking
	err = db.WithTx(r.Context(), h.DB, func(tx pgx.Tx) error {
		// A booking must always reference a resolvable user, registered or not.
		profile, err := user.UpsertByEmail(r.Context(), tx,
			strings.TrimSpace(req.Contact.Name),
			strings.ToLower(strings.TrimSpace(req.Contact.Email)),
			strings.TrimSpace(req.Contact.Phone),
			strings.TrimSpace(req.Contact.EmergencyContact),
			strings.TrimSpace(req.Contact.EmergencyPhone),
		)
		if err != nil {
			return err
		}

		created, err = Insert(r.Context(), tx, profile.ID, NewRef(time.Now()), target,
			req.Participants, date, strings.TrimSpace(req.SpecialRequests), total)
		if err != nil {
			return err
		}

		return catalog.IncrementBookingCount(r.Context(), tx, string(bookingType), item.ID)
	})
	if err != nil {
		log.Printf("booking create failed type=%s item=%s err=%v", bookingType, req.ItemID, err)
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to create booking")
		return
	}

	if err := h.Notifier.BookingCreated(r.Context(), notify.Event{
		BookingRef:    created.Ref,
		BookingType:   string(bookingType),
		ItemTitle:     item.Title,
		CustomerName:  req.Contact.Name,
		CustomerEmail: req.Contact.Email,
		Participants:  created.Participants,
		BookingDate:   created.Date.Format("2006-01-02"),
		TotalAmount:   created.TotalAmount,
	}); err != nil {
		log.Printf("booking created notification failed ref=%s err=%v", created.Ref, err)
	}

	api.WriteJSON(w, http.StatusCreated, created)
}

// GetByRef serves the guest "my booking" lookup. The booking email is
// required alongside the reference; a ref alone is guessable.
func (h Handlers) GetByRef(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "ref")
	if ref == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "missing booking reference")
		return
	}
	email := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("email")))
	if email == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "email is required")
		return
	}

	b, err := h.Bookings.GetByRefForEmail(r.Context(), ref, email)
	if err != nil {
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "booking not found")
		return
	}
	api.WriteJSON(w, http.StatusOK, b)
}

// MyBookings lists the signed-in customer's bookings.
func (h Handlers) MyBookings(w http.ResponseWriter, r *http.Request) {
	p := api.UserFromContext(r.Context())
	if p == nil {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing user identity")
		return
	}

	items, err := h.Bookings.ListByUser(r.Context(), p.ID)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	if items == nil {
		items = []Booking{}
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}
