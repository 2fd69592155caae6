package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/user/recipe-service/internal/entity"
	"github.com/user/recipe-service/internal/usecase"
)

// SessionCookieName is the cookie holding the opaque session token.
const SessionCookieName = "sid"

type contextKey struct{}

var userKey = contextKey{}

// WithUser returns a copy of ctx carrying the authenticated user.
func WithUser(ctx context.Context, user *entity.SessionUser) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFromContext returns the authenticated user, or nil for anonymous callers.
func UserFromContext(ctx context.Context) *entity.SessionUser {
	user, _ := ctx.Value(userKey).(*entity.SessionUser)
	return user
}

// SessionToken returns the session cookie value, if any.
func SessionToken(r *http.Request) string {
	c, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

// Authenticate resolves the session cookie and attaches the user to the
// request context. Anonymous requests pass through untouched.
func Authenticate(auth usecase.Authenticator, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := SessionToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			user, err := auth.Resolve(r.Context(), token)
			if err != nil {
				if !errors.Is(err, usecase.ErrNotAuthenticated) {
					logger.Error("failed to resolve session", zap.Error(err))
				}
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// RequireAuth rejects anonymous callers with 401.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if UserFromContext(r.Context()) == nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "Not authenticated"})
			return
		}
		next.ServeHTTP(w, r)
	})
}
