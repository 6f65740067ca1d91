package middleware

import (
	"context"
	"net/http"
	"strings"

	staffauth "github.com/peoplekit/staffauth"
)

type identityContextKey struct{}

// IdentityFromContext returns the verified identity stored by Guard.
func IdentityFromContext(ctx context.Context) (*staffauth.Identity, bool) {
	id, ok := ctx.Value(identityContextKey{}).(*staffauth.Identity)
	return id, ok
}

// Guard wraps a handler with the access-token gate. Revoked tokens and
// tokens in a two-factor-transitional state are rejected before the handler
// runs; everything else surfaces as a plain 401 so the response leaks
// nothing about which check failed.
func Guard(engine *staffauth.Engine) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if engine == nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			token, ok := BearerToken(r.Header.Get("Authorization"))
			if !ok {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			identity, err := engine.Authenticate(r.Context(), token)
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), identityContextKey{}, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(value string) (string, bool) {
	const bearer = "Bearer "
	if !strings.HasPrefix(value, bearer) {
		return "", false
	}

	token := value[len(bearer):]
	if token == "" {
		return "", false
	}

	return token, true
}
