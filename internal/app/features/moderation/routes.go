// internal/app/features/moderation/routes.go
package moderation

import (
	"github.com/go-chi/chi/v5"
)

// Routes mounts the block/unblock endpoints. The caller wraps the
// mount point with token auth and an admin role gate.
// Typically: r.Mount("/blocked-emails", moderation.Routes(handler))
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/block", h.HandleBlock)
	r.Post("/unblock", h.HandleUnblock)
	r.Get("/", h.HandleList)

	return r
}
