package testutil

import (
	"context"
	"net/http"
	"time"

	"github.com/dalemusser/clubhub/internal/app/system/auth"
	"github.com/dalemusser/clubhub/internal/app/system/hierarchy"
	"github.com/dalemusser/clubhub/internal/domain/models"
)

// TestContext returns a context with a timeout suitable for a single
// test against a live database.
func TestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

// AsUser injects the given user into the request context the way the
// token middleware would, so handlers see an authenticated session.
func AsUser(r *http.Request, u models.User) *http.Request {
	return auth.WithTestUser(r, &auth.SessionUser{
		ID:    u.ID.Hex(),
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	})
}

// AsAdmin injects a synthetic ADMIN session for handler tests that
// only care about the role.
func AsAdmin(r *http.Request) *http.Request {
	return auth.WithTestUser(r, &auth.SessionUser{
		ID:    "000000000000000000000000",
		Name:  "Test Admin",
		Email: "admin@test.local",
		Role:  hierarchy.RoleAdmin,
	})
}
