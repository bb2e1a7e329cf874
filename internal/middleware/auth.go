package middleware

import (
	"net/http"
	"strings"

	"fitness-tracker/backend/internal/authctx"
	"fitness-tracker/backend/internal/httpjson"
	"fitness-tracker/backend/internal/token"

	"go.uber.org/zap"
)

// TokenParser verifies a raw bearer token.
type TokenParser interface {
	Parse(raw string) (*token.Claims, error)
}

// WithAuth attaches the caller identity when a bearer token is present.
// Requests without an Authorization header pass through anonymously so that
// public routes share the same chain; a malformed or invalid token is always
// rejected.
func WithAuth(tokens TokenParser, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := r.Header.Get("Authorization")
			if h == "" {
				next.ServeHTTP(w, r)
				return
			}
			if !strings.HasPrefix(strings.ToLower(h), "bearer ") {
				httpjson.Error(w, http.StatusUnauthorized, "unauthorized access")
				return
			}
			raw := strings.TrimSpace(h[len("Bearer "):])

			claims, err := tokens.Parse(raw)
			if err != nil {
				log.Debug("rejected bearer token", zap.Error(err))
				httpjson.Error(w, http.StatusUnauthorized, "unauthorized access")
				return
			}

			ctx := authctx.WithIdentity(r.Context(), authctx.Identity{Email: claims.Email})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects anonymous requests.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := authctx.FromContext(r.Context()); !ok {
			httpjson.Error(w, http.StatusUnauthorized, "unauthorized access")
			return
		}
		next.ServeHTTP(w, r)
	})
}
