package api

import (
	"net/http"
	"strings"
	"time"

	"trekbooking/internal/adminuser"
	"trekbooking/internal/session"
	"trekbooking/internal/user"
	"trekbooking/pkg/config"
)

func bearerToken(r *http.Request) string {
	authz := strings.TrimSpace(r.Header.Get("Authorization"))
	if strings.HasPrefix(strings.ToLower(authz), "bearer ") {
		return strings.TrimSpace(authz[7:])
	}
	return ""
}

// UserAuth resolves a customer session token to a profile. The Redis cache is
// consulted first; a miss falls back to Postgres. Either way the profile ends
// up in the request context.
func UserAuth(cfg config.Config, cache *session.Cache, users *user.Repository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing session token")
				return
			}

			claims, err := session.Verify(token, cfg.Session.Secret, session.RoleCustomer, time.Now())
			if err != nil {
				WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid session token")
				return
			}

			p, err := cache.GetProfile(r.Context(), claims.ID)
			if err != nil {
				p, err = users.GetByAuthUserID(r.Context(), claims.Subject)
				if err != nil {
					WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "unknown user")
					return
				}
				// Refill; the cache entry may simply have expired.
				_ = cache.PutProfile(r.Context(), claims.ID, p)
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), p)))
		})
	}
}

// AdminAuth gates the back office. The cached session is advisory only: the
// admin row is re-read on every request and must still be active.
func AdminAuth(cfg config.Config, admins *adminuser.Repository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing session token")
				return
			}

			claims, err := session.Verify(token, cfg.Session.Secret, session.RoleAdmin, time.Now())
			if err != nil {
				WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid session token")
				return
			}

			a, err := admins.GetByID(r.Context(), claims.Subject)
			if err != nil || !a.IsActive {
				WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid session token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithAdmin(r.Context(), a)))
		})
	}
}
