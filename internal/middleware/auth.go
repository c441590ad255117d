// Package middleware provides HTTP middlewares for authentication and logging.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/vknyazev/passvault/internal/models"
)

type ctxKey string

const userKey ctxKey = "user"

// Authenticator resolves a bearer token to the user it was issued for.
type Authenticator interface {
	ResolveToken(ctx context.Context, token string) (*models.User, error)
}

// BearerAuth is a middleware that enforces bearer-token authentication.
//
// It expects an "Authorization: Bearer <token>" header, verifies the token
// and resolves it to an existing user, which is stored in the request
// context for downstream handlers.
//
// The middleware fails closed: a missing or malformed header, an invalid
// or expired token, an unknown user and a store error all produce the
// same bare 401 response, so no internal detail can leak through the
// authorization path.
func BearerAuth(authn Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || token == "" {
				unauthorized(w)
				return
			}

			user, err := authn.ResolveToken(r.Context(), token)
			if err != nil {
				unauthorized(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithUser(r.Context(), user)))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"Unauthorized"}`))
}

// ContextWithUser returns a copy of ctx carrying the authenticated user.
func ContextWithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFromContext extracts the authenticated user stored by BearerAuth.
// Returns nil if the request did not pass through the middleware.
func UserFromContext(ctx context.Context) *models.User {
	if u, ok := ctx.Value(userKey).(*models.User); ok {
		return u
	}
	return nil
}
