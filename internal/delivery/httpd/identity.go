package httpd

import (
	"context"
	"net/http"

	"github.com/campushub/submission-service/internal/models"
)

type contextKey string

const identityKey contextKey = "identity"

// RequireIdentity surfaces the gateway-verified caller into the request
// context. The gateway authenticates; this service only reads the result.
// Requests without identity headers never reach the handlers.
func RequireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get("X-User-ID")
		role := r.Header.Get("X-User-Role")

		if userID == "" || !models.IsValidRole(role) {
			writeError(w, http.StatusUnauthorized, "Unauthorized", "verified identity headers are required")
			return
		}

		identity := models.Identity{UserID: userID, Role: models.Role(role)}
		ctx := context.WithValue(r.Context(), identityKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func identityFromRequest(r *http.Request) models.Identity {
	identity, _ := r.Context().Value(identityKey).(models.Identity)
	return identity
}
