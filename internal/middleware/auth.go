package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// TokenVerifier validates a bearer token and returns the user id it binds.
// Satisfied by *auth.Issuer.
type TokenVerifier interface {
	Verify(token string) (uuid.UUID, error)
}

// ctxKey is unexported so other packages cannot collide with our context keys.
type ctxKey int

const userIDKey ctxKey = iota

// UserID returns the authenticated user id stored by RequireAuth,
// or uuid.Nil when the request was not authenticated.
func UserID(ctx context.Context) uuid.UUID {
	id, _ := ctx.Value(userIDKey).(uuid.UUID)
	return id
}

// WithUserID returns a context carrying the given user id.
// Exported for handler tests that bypass the middleware.
func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// NewRequireAuth returns a middleware that rejects requests lacking a valid
// "Authorization: Bearer <token>" header with 401, and otherwise stores the
// token's user id in the request context for handlers to read via UserID.
func NewRequireAuth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				unauthorized(w, "missing bearer token")
				return
			}

			userID, err := verifier.Verify(parts[1])
			if err != nil {
				unauthorized(w, "invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

// unauthorized writes the standard error envelope with a 401 status.
func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{"code": "unauthorized", "message": message},
	})
}
