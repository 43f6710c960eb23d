package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/dcastellm/taskboard/internal/auth"
	"github.com/dcastellm/taskboard/pkg/response"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// PrincipalKey is the context key for the authenticated principal
	PrincipalKey ContextKey = "principal"
)

// TokenVerifier verifies a bearer token and resolves its principal.
type TokenVerifier interface {
	Parse(token string) (*auth.Principal, error)
}

// RequireAuth rejects requests without a valid bearer token. A missing
// token is a 403 (not provided) while a token that fails verification is a
// 401; existing clients distinguish the two.
func RequireAuth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				response.Forbidden(w, "Token not provided")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				response.Forbidden(w, "Token not provided")
				return
			}

			principal, err := verifier.Parse(parts[1])
			if err != nil {
				response.Unauthorized(w, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), PrincipalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetPrincipal extracts the authenticated principal from the request context
func GetPrincipal(ctx context.Context) (*auth.Principal, bool) {
	p, ok := ctx.Value(PrincipalKey).(*auth.Principal)
	return p, ok
}
