package booking

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

// The guest lookup must demand the booking email before touching storage:
// references are short and time-derived, so a ref alone is guessable. The
// handler runs with no repository wired; reaching the database would panic.
func TestGetByRef_RequiresEmail(t *testing.T) {
	h := Handlers{}
	router := chi.NewRouter()
	router.Get("/bookings/{ref}", h.GetByRef)

	req := httptest.NewRequest(http.MethodGet, "/bookings/BK600123", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without email, got %d", rec.Code)
	}

	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("unexpected body: %v", err)
	}
	if body.Error.Code != "VALIDATION_FAILED" {
		t.Fatalf("expected VALIDATION_FAILED, got %q", body.Error.Code)
	}
}
