// internal/app/features/ranks/routes.go
package ranks

import (
	"github.com/go-chi/chi/v5"
)

// Routes mounts the promote/demote endpoints. The caller wraps the
// mount point with token auth and an admin role gate.
// Typically: r.Mount("/ranks", ranks.Routes(handler))
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Put("/promote/{id}", h.HandlePromote)
	r.Put("/demote/{id}", h.HandleDemote)

	return r
}
