package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/teamnote/teamnote/internal/api/response"
	"github.com/teamnote/teamnote/internal/auth"
)

const identityKey contextKey = "identity"

// Auth is middleware that extracts the Authorization bearer token and
// resolves it to an Identity via the auth service. Missing or invalid tokens
// return 401.
func Auth(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := GetRequestID(r.Context())

			header := r.Header.Get("Authorization")
			if header == "" {
				response.Err(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authorization header is required", requestID)
				return
			}

			tokenStr, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || tokenStr == "" {
				response.Err(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authorization header must be a bearer token", requestID)
				return
			}

			identity, err := authService.Authenticate(r.Context(), tokenStr)
			if err != nil {
				if errors.Is(err, auth.ErrInvalidToken) {
					response.Err(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or expired token", requestID)
					return
				}
				response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Authentication failed", requestID)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		})
	}
}

// WithIdentity returns a context carrying the given Identity. Used by the
// Auth middleware and by tests that exercise handlers directly.
func WithIdentity(ctx context.Context, identity *auth.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// GetIdentity retrieves the authenticated Identity from the request context.
func GetIdentity(ctx context.Context) *auth.Identity {
	if id, ok := ctx.Value(identityKey).(*auth.Identity); ok {
		return id
	}
	return nil
}
