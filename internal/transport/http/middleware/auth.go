package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/otp-auth-api/internal/domain"
)

// TokenValidator is the slice of the auth service the middleware consumes.
type TokenValidator interface {
	ValidateAccessToken(token string) (*domain.Principal, error)
}

type contextKey string

const PrincipalKey contextKey = "principal"

// Auth returns middleware that validates the Bearer access token and injects
// the resulting Principal into the request context. Validation is stateless —
// no store is consulted.
func Auth(v TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				writeJSONError(w, http.StatusUnauthorized, "missing or invalid authorization header")
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
			principal, err := v.ValidateAccessToken(tokenStr)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}
			ctx := context.WithValue(r.Context(), PrincipalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PrincipalFromContext extracts the validated Principal from the request context.
func PrincipalFromContext(ctx context.Context) (*domain.Principal, bool) {
	p, ok := ctx.Value(PrincipalKey).(*domain.Principal)
	return p, ok
}
