// internal/app/features/accounts/routes.go
package accounts

import (
	"github.com/go-chi/chi/v5"
)

// PublicRoutes are the unauthenticated signup and login endpoints.
func PublicRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/register", h.HandleRegister)
	r.Post("/login", h.HandleLogin)
	r.Post("/forgot-password", h.HandleForgotPassword)
	r.Post("/reset-password", h.HandleResetPassword)
	return r
}

// UserRoutes require a valid token.
func UserRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/logout", h.HandleLogout)
	r.Get("/me", h.HandleMe)
	return r
}

// AdminRoutes require the admin role.
// Typically: r.Mount("/users", accounts.AdminRoutes(handler))
func AdminRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.HandleList)
	r.Delete("/{id}", h.HandleDelete)
	return r
}
