package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"trekbooking/internal/api"
	"trekbooking/internal/session"
	"trekbooking/pkg/config"
)

type Handlers struct {
	Cfg     config.Config
	Cache   *session.Cache
	Service *Service
}

type RegisterRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

func (h Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}

	req.FullName = strings.TrimSpace(req.FullName)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Phone = strings.TrimSpace(req.Phone)
	if req.FullName == "" || req.Email == "" || req.Phone == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "full name, email and phone are required")
		return
	}
	if len(req.Password) < 6 {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "password must be at least 6 characters")
		return
	}

	profile, needsConfirmation, err := h.Service.Register(r.Context(), req.FullName, req.Email, req.Phone, req.Password)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			api.WriteError(w, http.StatusConflict, "EMAIL_TAKEN", "this email is already registered")
			return
		}
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "registration failed, please try again")
		return
	}

	api.WriteJSON(w, http.StatusCreated, map[string]any{
		"user":              profile,
		"needsConfirmation": needsConfirmation,
	})
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	profile, err := h.Service.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailNotConfirmed):
			api.WriteError(w, http.StatusForbidden, "EMAIL_NOT_CONFIRMED", "please confirm your email before signing in")
		case errors.Is(err, ErrInvalidCredentials):
			api.WriteError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid email or password")
		default:
			api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "sign-in failed, please try again")
		}
		return
	}

	ttl := time.Duration(h.Cfg.Session.TTLHours) * time.Hour
	token, claims, err := session.Issue(h.Cfg.Session.Secret, profile.AuthUserID, session.RoleCustomer, ttl, time.Now())
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "sign-in failed, please try again")
		return
	}

	// Advisory cache; middleware falls back to Postgres on a miss.
	_ = h.Cache.PutProfile(r.Context(), claims.ID, profile)

	api.WriteJSON(w, http.StatusOK, map[string]any{
		"token": token,
		"user":  profile,
	})
}

func (h Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	authz := strings.TrimSpace(r.Header.Get("Authorization"))
	if strings.HasPrefix(strings.ToLower(authz), "bearer ") {
		token := strings.TrimSpace(authz[7:])
		if claims, err := session.Verify(token, h.Cfg.Session.Secret, session.RoleCustomer, time.Now()); err == nil {
			_ = h.Cache.Drop(r.Context(), claims.ID)
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

type ConfirmRequest struct {
	Token string `json:"token"`
}

func (h Handlers) Confirm(w http.ResponseWriter, r *http.Request) {
	var req ConfirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}
	if strings.TrimSpace(req.Token) == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "token is required")
		return
	}

	if err := h.Service.ConfirmEmail(r.Context(), strings.TrimSpace(req.Token)); err != nil {
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "confirmation token is invalid or already used")
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"success": true, "message": "email confirmed"})
}

// Me returns the profile resolved by the UserAuth middleware.
func (h Handlers) Me(w http.ResponseWriter, r *http.Request) {
	p := api.UserFromContext(r.Context())
	if p == nil {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing user identity")
		return
	}
	api.WriteJSON(w, http.StatusOK, p)
}
