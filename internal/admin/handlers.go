package admin

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
	"trekbooking/internal/adminuser"
	"trekbooking/internal/audit"
	"trekbooking/internal/booking"
	"trekbooking/internal/notify"
	"trekbooking/internal/session"
	"trekbooking/pkg/config"
	"trekbooking/pkg/db"
)

type Handlers struct {
	Cfg      config.Config
	DB       *pgxpool.Pool
	Admins   *adminuser.Repository
	Bookings *booking.Repository
	Audit    *audit.Repository
	Notifier notify.Notifier
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "username and password are required")
		return
	}

	a, err := Login(r.Context(), h.Admins, req.Username, req.Password)
	if err != nil {
		// One message for every failure mode.
		api.WriteError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", ErrInvalidLogin.Error())
		return
	}

	ttl := time.Duration(h.Cfg.Session.TTLHours) * time.Hour
	token, _, err := session.Issue(h.Cfg.Session.Secret, a.ID, session.RoleAdmin, ttl, time.Now())
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "login failed, please try again")
		return
	}

	api.WriteJSON(w, http.StatusOK, map[string]any{
		"token": token,
		"user":  a,
	})
}

// Me lets the admin frontend re-validate its cached session.
func (h Handlers) Me(w http.ResponseWriter, r *http.Request) {
	a := api.AdminFromContext(r.Context())
	if a == nil {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing admin identity")
		return
	}
	api.WriteJSON(w, http.StatusOK, a)
}

func bookingFilter(r *http.Request) (booking.Filter, error) {
	var f booking.Filter
	if s := strings.TrimSpace(r.URL.Query().Get("status")); s != "" {
		st, err := booking.ParseStatus(s)
		if err != nil {
			return f, err
		}
		f.Status = st
	}
	f.Search = strings.TrimSpace(r.URL.Query().Get("q"))
	return f, nil
}

func (h Handlers) ListBookings(w http.ResponseWriter, r *http.Request) {
	f, err := bookingFilter(r)
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid status filter")
		return
	}

	items, err := h.Bookings.ListAdmin(r.Context(), f)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	if items == nil {
		items = []booking.AdminRow{}
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}

// Activity shows the recent admin action trail.
func (h Handlers) Activity(w http.ResponseWriter, r *http.Request) {
	items, err := h.Audit.ListRecent(r.Context(), 50)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	if items == nil {
		items = []audit.Entry{}
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}

type UpdateStatusRequest struct {
	Status     string `json:"status"`
	AdminNotes string `json:"adminNotes"`
}

// UpdateBookingStatus is the only mutation path for booking status,
// admin_notes, and confirmation_sent.
func (h Handlers) UpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "missing id")
		return
	}

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}

	next, err := booking.ParseStatus(req.Status)
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid status")
		return
	}

	actor := api.AdminFromContext(r.Context())
	if actor == nil {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing admin identity")
		return
	}

	confirmed := false
	err = db.WithTx(r.Context(), h.DB, func(tx pgx.Tx) error {
		b, err := booking.GetForUpdate(r.Context(), tx, id)
		if err != nil {
			return err
		}

		if !booking.CanTransition(b.Status, next) {
			api.WriteError(w, http.StatusConflict, "INVALID_STATE_TRANSITION", "invalid state transition")
			return pgx.ErrTxCommitRollback
		}

		var confirmationSent bool
		confirmationSent, confirmed = booking.ConfirmationAfter(next, b.ConfirmationSent)

		if err := booking.UpdateStatus(r.Context(), tx, b.ID, next, strings.TrimSpace(req.AdminNotes), confirmationSent); err != nil {
			return err
		}

		return audit.Insert(r.Context(), tx, actor.ID, b.ID, audit.ActionBookingStatusChange, map[string]string{
			"from": string(b.Status),
			"to":   string(next),
		})
	})
	if err != nil {
		if err == pgx.ErrTxCommitRollback {
			return
		}
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "booking not found")
		return
	}

	row, err := h.Bookings.GetAdminRowByID(r.Context(), id)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}

	if confirmed {
		if err := h.Notifier.BookingConfirmed(r.Context(), notify.Event{
			BookingRef:    row.Ref,
			BookingType:   string(row.Target.Type),
			ItemTitle:     row.ItemTitle,
			CustomerName:  row.CustomerName,
			CustomerEmail: row.CustomerEmail,
			Participants:  row.Participants,
			BookingDate:   row.Date.Format("2006-01-02"),
			TotalAmount:   row.TotalAmount,
			AdminNotes:    row.AdminNotes,
		}); err != nil {
			log.Printf("booking confirmed notification failed ref=%s err=%v", row.Ref, err)
		}
	}

	api.WriteJSON(w, http.StatusOK, row)
}
