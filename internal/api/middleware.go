package api

import (
	"net/http"
	"strings"
	"time"

	"fleetbook/internal/user"
	"fleetbook/pkg/config"
	"fleetbook/pkg/session"
)

// SessionAuth validates the bearer session token and attaches the
// authenticated user to the request context.
//
// Expected header:
// - Authorization: Bearer <JWT>
func SessionAuth(cfg config.Config, users *user.Repository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authz := strings.TrimSpace(r.Header.Get("Authorization"))
			if !strings.HasPrefix(strings.ToLower(authz), "bearer ") {
				WriteError(w, http.StatusUnauthorized, CodeUnauthorized, "missing session token")
				return
			}

			claims, err := session.VerifyToken(strings.TrimSpace(authz[7:]), cfg.JWTSecret, time.Now())
			if err != nil {
				WriteError(w, http.StatusUnauthorized, CodeUnauthorized, "invalid session token")
				return
			}

			u, err := users.GetByID(r.Context(), claims.UserID)
			if err != nil {
				WriteError(w, http.StatusUnauthorized, CodeUnauthorized, "unknown user")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
		})
	}
}
