package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"trekbooking/internal/api"
	"trekbooking/internal/storage"
)

// PublicHandlers serves the visitor-facing catalog: Active items only.
type PublicHandlers struct {
	Catalog *Repository
}

func (h PublicHandlers) ListPackages(w http.ResponseWriter, r *http.Request) {
	items, err := h.Catalog.ListPackages(r.Context())
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	if items == nil {
		items = []Package{}
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (h PublicHandlers) GetPackage(w http.ResponseWriter, r *http.Request) {
	p, err := h.Catalog.GetPackage(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "package not found")
		return
	}
	if p.Status != ItemActive {
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "package not found")
		return
	}
	api.WriteJSON(w, http.StatusOK, p)
}

func (h PublicHandlers) ListTrails(w http.ResponseWriter, r *http.Request) {
	items, err := h.Catalog.ListTrails(r.Context())
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	if items == nil {
		items = []Trail{}
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (h PublicHandlers) ListEcoStays(w http.ResponseWriter, r *http.Request) {
	items, err := h.Catalog.ListEcoStays(r.Context())
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	if items == nil {
		items = []EcoStay{}
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}

// AdminHandlers covers the back-office CRUD for all three catalog kinds plus
// package image management.
type AdminHandlers struct {
	Catalog *Repository
	Storage *storage.Client
}

type PackageRequest struct {
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	ImageURL      string          `json:"imageUrl"`
	Price         string          `json:"price"`
	OriginalPrice string          `json:"originalPrice"`
	Duration      string          `json:"duration"`
	GroupSize     string          `json:"groupSize"`
	Location      string          `json:"location"`
	Difficulty    string          `json:"difficulty"`
	Category      string          `json:"category"`
	Highlights    []string        `json:"highlights"`
	Inclusions    []string        `json:"inclusions"`
	Exclusions    []string        `json:"exclusions"`
	Itinerary     json.RawMessage `json:"itinerary"`
	Status        string          `json:"status"`
}

func (req PackageRequest) toInput() (PackageInput, error) {
	var in PackageInput

	in.Title = strings.TrimSpace(req.Title)
	if in.Title == "" {
		return in, errors.New("title is required")
	}
	if strings.TrimSpace(req.Duration) == "" || strings.TrimSpace(req.Location) == "" {
		return in, errors.New("duration and location are required")
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil || price.IsNegative() {
		return in, errors.New("price must be a non-negative number")
	}
	in.Price = price

	if req.OriginalPrice != "" {
		op, err := decimal.NewFromString(req.OriginalPrice)
		if err != nil || op.IsNegative() {
			return in, errors.New("originalPrice must be a non-negative number")
		}
		in.OriginalPrice = &op
	}

	in.Difficulty, err = ParseDifficulty(req.Difficulty)
	if err != nil {
		return in, err
	}
	in.Status = ItemDraft
	if req.Status != "" {
		in.Status, err = ParseItemStatus(req.Status)
		if err != nil {
			return in, err
		}
	}

	in.Description = strings.TrimSpace(req.Description)
	in.ImageURL = strings.TrimSpace(req.ImageURL)
	in.Duration = strings.TrimSpace(req.Duration)
	in.GroupSize = strings.TrimSpace(req.GroupSize)
	in.Location = strings.TrimSpace(req.Location)
	in.Category = strings.TrimSpace(req.Category)
	in.Highlights = emptyIfNil(req.Highlights)
	in.Inclusions = emptyIfNil(req.Inclusions)
	in.Exclusions = emptyIfNil(req.Exclusions)
	in.Itinerary = normalizeJSON(req.Itinerary)
	return in, nil
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// normalizeJSON keeps the itinerary column valid: absent input becomes an
// empty array rather than NULL or the string "null".
func normalizeJSON(raw json.RawMessage) []byte {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return []byte("[]")
	}
	return raw
}

func (h AdminHandlers) ListPackages(w http.ResponseWriter, r *http.Request) {
	items, err := h.Catalog.ListAllPackages(r.Context())
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	if items == nil {
		items = []Package{}
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (h AdminHandlers) GetPackage(w http.ResponseWriter, r *http.Request) {
	p, err := h.Catalog.GetPackage(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "package not found")
		return
	}
	api.WriteJSON(w, http.StatusOK, p)
}

func (h AdminHandlers) CreatePackage(w http.ResponseWriter, r *http.Request) {
	var req PackageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}
	in, err := req.toInput()
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
		return
	}

	p, err := h.Catalog.CreatePackage(r.Context(), in)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to create package")
		return
	}
	api.WriteJSON(w, http.StatusCreated, p)
}

func (h AdminHandlers) UpdatePackage(w http.ResponseWriter, r *http.Request) {
	var req PackageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}
	in, err := req.toInput()
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
		return
	}

	p, err := h.Catalog.UpdatePackage(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "package not found")
			return
		}
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to update package")
		return
	}
	api.WriteJSON(w, http.StatusOK, p)
}

// DeletePackage removes the stored image first. If the image delete fails the
// row stays, so the admin can retry instead of leaking an orphaned object.
func (h AdminHandlers) DeletePackage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, err := h.Catalog.GetPackage(r.Context(), id)
	if err != nil {
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "package not found")
		return
	}

	if objectPath, ok := h.Storage.ObjectPath(p.ImageURL); ok {
		if err := h.Storage.Delete(r.Context(), objectPath); err != nil {
			log.Printf("package image delete failed id=%s path=%s err=%v", id, objectPath, err)
			api.WriteError(w, http.StatusBadGateway, "STORAGE_FAILED", "failed to delete package image, package not removed")
			return
		}
	}

	if err := h.Catalog.DeletePackage(r.Context(), id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "package not found")
			return
		}
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to delete package")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

const maxImageUpload = 10 << 20 // 10 MiB

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// UploadPackageImage accepts a multipart "image" part, stores it under
// packages/<id>/, and records the public URL on the row. A previous image in
// our bucket is deleted best-effort after the swap.
func (h AdminHandlers) UploadPackageImage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, err := h.Catalog.GetPackage(r.Context(), id)
	if err != nil {
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "package not found")
		return
	}

	if err := r.ParseMultipartForm(maxImageUpload); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "image file is required")
		return
	}
	defer file.Close()

	contentType, ext, err := imageType(header)
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
		return
	}

	objectPath := fmt.Sprintf("packages/%s/%s%s", id, uuid.NewString(), ext)
	publicURL, err := h.Storage.Upload(r.Context(), objectPath, contentType, file)
	if err != nil {
		log.Printf("package image upload failed id=%s err=%v", id, err)
		api.WriteError(w, http.StatusBadGateway, "STORAGE_FAILED", "failed to upload image")
		return
	}

	if err := h.Catalog.SetPackageImage(r.Context(), id, publicURL); err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to record image")
		return
	}

	if old, ok := h.Storage.ObjectPath(p.ImageURL); ok && old != objectPath {
		if err := h.Storage.Delete(r.Context(), old); err != nil {
			log.Printf("stale package image delete failed id=%s path=%s err=%v", id, old, err)
		}
	}

	api.WriteJSON(w, http.StatusOK, map[string]string{"imageUrl": publicURL})
}

func imageType(header *multipart.FileHeader) (contentType, ext string, err error) {
	contentType = header.Header.Get("Content-Type")
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		// Some clients omit the part content type; fall back to the filename.
		switch strings.ToLower(path.Ext(header.Filename)) {
		case ".jpg", ".jpeg":
			return "image/jpeg", ".jpg", nil
		case ".png":
			return "image/png", ".png", nil
		case ".webp":
			return "image/webp", ".webp", nil
		}
		return "", "", fmt.Errorf("unsupported image type: %s", contentType)
	}
	return contentType, ext, nil
}

type TrailRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	ImageURL    string   `json:"imageUrl"`
	Difficulty  string   `json:"difficulty"`
	Duration    string   `json:"duration"`
	Elevation   string   `json:"elevation"`
	Location    string   `json:"location"`
	Features    []string `json:"features"`
	Status      string   `json:"status"`
}

func (req TrailRequest) toInput() (TrailInput, error) {
	var in TrailInput

	in.Name = strings.TrimSpace(req.Name)
	if in.Name == "" {
		return in, errors.New("name is required")
	}
	if strings.TrimSpace(req.Location) == "" {
		return in, errors.New("location is required")
	}

	var err error
	in.Difficulty, err = ParseDifficulty(req.Difficulty)
	if err != nil {
		return in, err
	}
	in.Status = ItemDraft
	if req.Status != "" {
		in.Status, err = ParseItemStatus(req.Status)
		if err != nil {
			return in, err
		}
	}

	in.Description = strings.TrimSpace(req.Description)
	in.ImageURL = strings.TrimSpace(req.ImageURL)
	in.Duration = strings.TrimSpace(req.Duration)
	in.Elevation = strings.TrimSpace(req.Elevation)
	in.Location = strings.TrimSpace(req.Location)
	in.Features = emptyIfNil(req.Features)
	return in, nil
}

func (h AdminHandlers) ListTrails(w http.ResponseWriter, r *http.Request) {
	items, err := h.Catalog.ListAllTrails(r.Context())
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	if items == nil {
		items = []Trail{}
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (h AdminHandlers) CreateTrail(w http.ResponseWriter, r *http.Request) {
	var req TrailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}
	in, err := req.toInput()
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
		return
	}

	t, err := h.Catalog.CreateTrail(r.Context(), in)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to create trail")
		return
	}
	api.WriteJSON(w, http.StatusCreated, t)
}

func (h AdminHandlers) UpdateTrail(w http.ResponseWriter, r *http.Request) {
	var req TrailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}
	in, err := req.toInput()
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
		return
	}

	t, err := h.Catalog.UpdateTrail(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "trail not found")
			return
		}
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to update trail")
		return
	}
	api.WriteJSON(w, http.StatusOK, t)
}

func (h AdminHandlers) DeleteTrail(w http.ResponseWriter, r *http.Request) {
	if err := h.Catalog.DeleteTrail(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "trail not found")
			return
		}
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to delete trail")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type EcoStayRequest struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	ImageURL      string   `json:"imageUrl"`
	Price         string   `json:"price"`
	OriginalPrice string   `json:"originalPrice"`
	Location      string   `json:"location"`
	Amenities     []string `json:"amenities"`
	EcoFeatures   []string `json:"ecoFeatures"`
	Status        string   `json:"status"`
}

func (req EcoStayRequest) toInput() (EcoStayInput, error) {
	var in EcoStayInput

	in.Name = strings.TrimSpace(req.Name)
	if in.Name == "" {
		return in, errors.New("name is required")
	}
	if strings.TrimSpace(req.Location) == "" {
		return in, errors.New("location is required")
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil || price.IsNegative() {
		return in, errors.New("price must be a non-negative number")
	}
	in.Price = price

	if req.OriginalPrice != "" {
		op, err := decimal.NewFromString(req.OriginalPrice)
		if err != nil || op.IsNegative() {
			return in, errors.New("originalPrice must be a non-negative number")
		}
		in.OriginalPrice = &op
	}

	in.Status = ItemDraft
	if req.Status != "" {
		in.Status, err = ParseItemStatus(req.Status)
		if err != nil {
			return in, err
		}
	}

	in.Description = strings.TrimSpace(req.Description)
	in.ImageURL = strings.TrimSpace(req.ImageURL)
	in.Location = strings.TrimSpace(req.Location)
	in.Amenities = emptyIfNil(req.Amenities)
	in.EcoFeatures = emptyIfNil(req.EcoFeatures)
	return in, nil
}

func (h AdminHandlers) ListEcoStays(w http.ResponseWriter, r *http.Request) {
	items, err := h.Catalog.ListAllEcoStays(r.Context())
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	if items == nil {
		items = []EcoStay{}
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (h AdminHandlers) CreateEcoStay(w http.ResponseWriter, r *http.Request) {
	var req EcoStayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}
	in, err := req.toInput()
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
		return
	}

	e, err := h.Catalog.CreateEcoStay(r.Context(), in)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to create eco stay")
		return
	}
	api.WriteJSON(w, http.StatusCreated, e)
}

func (h AdminHandlers) UpdateEcoStay(w http.ResponseWriter, r *http.Request) {
	var req EcoStayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}
	in, err := req.toInput()
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
		return
	}

	e, err := h.Catalog.UpdateEcoStay(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "eco stay not found")
			return
		}
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to update eco stay")
		return
	}
	api.WriteJSON(w, http.StatusOK, e)
}

func (h AdminHandlers) DeleteEcoStay(w http.ResponseWriter, r *http.Request) {
	if err := h.Catalog.DeleteEcoStay(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "eco stay not found")
			return
		}
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to delete eco stay")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
