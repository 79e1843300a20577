package gallery

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"

	"trekbooking/internal/api"
)

type Handlers struct {
	Photos *Repository
}

func (h Handlers) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.Photos.ListActive(r.Context())
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	if items == nil {
		items = []Photo{}
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (h Handlers) ListAll(w http.ResponseWriter, r *http.Request) {
	items, err := h.Photos.ListAll(r.Context())
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	if items == nil {
		items = []Photo{}
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}

type PhotoRequest struct {
	Title     string `json:"title"`
	ImageURL  string `json:"imageUrl"`
	Caption   string `json:"caption"`
	SortOrder int    `json:"sortOrder"`
	Active    bool   `json:"active"`
}

func (req PhotoRequest) toInput() (PhotoInput, error) {
	in := PhotoInput{
		Title:     strings.TrimSpace(req.Title),
		ImageURL:  strings.TrimSpace(req.ImageURL),
		Caption:   strings.TrimSpace(req.Caption),
		SortOrder: req.SortOrder,
		Active:    req.Active,
	}
	if in.Title == "" || in.ImageURL == "" {
		return in, errors.New("title and imageUrl are required")
	}
	return in, nil
}

func (h Handlers) Create(w http.ResponseWriter, r *http.Request) {
	var req PhotoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}
	in, err := req.toInput()
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
		return
	}

	p, err := h.Photos.Create(r.Context(), in)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to create photo")
		return
	}
	api.WriteJSON(w, http.StatusCreated, p)
}

func (h Handlers) Update(w http.ResponseWriter, r *http.Request) {
	var req PhotoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}
	in, err := req.toInput()
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
		return
	}

	p, err := h.Photos.Update(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "photo not found")
			return
		}
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to update photo")
		return
	}
	api.WriteJSON(w, http.StatusOK, p)
}

func (h Handlers) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Photos.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "photo not found")
			return
		}
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to delete photo")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
