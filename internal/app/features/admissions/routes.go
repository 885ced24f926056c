// internal/app/features/admissions/routes.go
package admissions

import (
	"github.com/go-chi/chi/v5"
)

// Routes mounts the allowlist admission endpoints. The caller is
// expected to wrap the mount point with token auth and an admin role
// gate. Typically: r.Mount("/allowed-emails", admissions.Routes(handler))
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.HandleAdd)
	r.Post("/upload-csv", h.HandleUploadCSV)
	r.Get("/", h.HandleList)
	r.Delete("/{id}", h.HandleDelete)

	return r
}
