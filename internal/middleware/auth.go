package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/fieldlog/fieldlog/internal/authz"
	"github.com/fieldlog/fieldlog/internal/domain"
)

// TokenVerifier validates a raw bearer token and returns the user id it
// identifies. Satisfied by *token.Issuer.
type TokenVerifier interface {
	Verify(raw string) (uuid.UUID, error)
}

// UserLoader fetches a user by id. Satisfied by repo.UserRepo. The middleware
// loads the user on every request rather than trusting role claims baked into
// the token, so a role change or account deletion takes effect immediately.
type UserLoader interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)
}

// requesterKey is the context key under which the authenticated requester is
// stored. Unexported type so no other package can collide with it.
type requesterKey struct{}

// RequesterFrom extracts the authenticated requester attached by RequireAuth.
// The second return is false on requests that never passed the middleware.
func RequesterFrom(ctx context.Context) (authz.Requester, bool) {
	req, ok := ctx.Value(requesterKey{}).(authz.Requester)
	return req, ok
}

// WithRequester returns a copy of ctx carrying the given requester.
// Exported for handler tests, which stand in for the middleware.
func WithRequester(ctx context.Context, req authz.Requester) context.Context {
	return context.WithValue(ctx, requesterKey{}, req)
}

// RequireAuth returns a middleware that authenticates requests via the
// Authorization: Bearer header. On success the requester (id + role) is
// attached to the request context; on any failure the request is terminated
// with 401 and a flat {"error": ...} body, before reaching the handler.
func RequireAuth(tokens TokenVerifier, users UserLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				unauthorized(w, "No token provided")
				return
			}

			userID, err := tokens.Verify(raw)
			if err != nil {
				unauthorized(w, "Invalid token")
				return
			}

			// The token only proves identity; the role comes from the store.
			// A token for a since-deleted user is treated as invalid.
			user, err := users.GetByID(r.Context(), userID)
			if err != nil {
				unauthorized(w, "Invalid token")
				return
			}

			ctx := WithRequester(r.Context(), authz.Requester{UserID: user.ID, Role: user.Role})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header. The scheme comparison is case-insensitive.
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

// unauthorized writes a 401 with the flat error body the API uses everywhere.
func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
