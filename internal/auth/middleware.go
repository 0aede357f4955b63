package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/fieldsafe/ramspack/pkg/handlers"
)

type contextKey struct{}

// IdentityFromContext returns the verified identity attached by Require,
// if any.
func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(contextKey{}).(*Identity)
	return id, ok
}

// Exempt marks a route as public within a guarded module.
type Exempt struct {
	Method string
	Prefix string
}

// Require wraps a handler with bearer token verification. Exempt routes
// pass through unverified; when auth is disabled everything does.
func Require(sys System, exempt ...Exempt) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !sys.Enabled() {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, e := range exempt {
				if r.Method == e.Method && strings.HasPrefix(r.URL.Path, e.Prefix) {
					next.ServeHTTP(w, r)
					return
				}
			}

			raw := bearerToken(r)
			if raw == "" {
				handlers.RespondError(w, nil, http.StatusUnauthorized, ErrUnauthorized)
				return
			}

			identity, err := sys.Verify(r.Context(), raw)
			if err != nil {
				handlers.RespondError(w, nil, MapHTTPStatus(err), err)
				return
			}

			ctx := context.WithValue(r.Context(), contextKey{}, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}

	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
