// internal/app/system/auth/auth.go
package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/clubhub/internal/app/system/respond"
	"github.com/dalemusser/clubhub/internal/domain/models"
	"go.uber.org/zap"
)

// SessionUser is the authenticated identity injected into r.Context()
// by the token middleware.
type SessionUser struct {
	ID    string
	Name  string
	Email string
	Role  string
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the user & "found?" flag.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*SessionUser)
	return u, ok
}

func withUser(r *http.Request, u *SessionUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

// WithTestUser injects a user into the request context for handler
// tests, bypassing token verification.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	return withUser(r, u)
}

// TokenVerifier resolves an API token to a user record. The user store
// satisfies this.
type TokenVerifier interface {
	GetByAuthToken(ctx context.Context, token string) (*models.User, error)
}

// RequireToken authenticates the Bearer token on every request and
// injects the resolved user into context. Requests without a valid
// token get a 401 and never reach the handlers.
func RequireToken(users TokenVerifier, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				respond.Fail(w, r, http.StatusUnauthorized, "No token provided")
				return
			}

			token := ""
			if strings.HasPrefix(header, "Bearer ") {
				token = strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
			}
			if token == "" {
				respond.Fail(w, r, http.StatusUnauthorized, "No token provided")
				return
			}

			u, err := users.GetByAuthToken(r.Context(), token)
			if err != nil {
				logger.Warn("token verification failed", zap.Error(err))
				respond.Fail(w, r, http.StatusForbidden, "Access denied. Invalid token.")
				return
			}

			next.ServeHTTP(w, withUser(r, &SessionUser{
				ID:    u.ID.Hex(),
				Name:  u.Name,
				Email: u.Email,
				Role:  u.Role,
			}))
		})
	}
}

// RequireRole ensures the authenticated user holds one of the allowed
// roles. Mount after RequireToken.
func RequireRole(allowed ...string) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		set[strings.ToUpper(strings.TrimSpace(role))] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := CurrentUser(r)
			if !ok {
				respond.Fail(w, r, http.StatusUnauthorized, "No token provided")
				return
			}
			if _, allowed := set[strings.ToUpper(u.Role)]; !allowed {
				respond.Fail(w, r, http.StatusForbidden, "Access denied. Unauthorized role.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
