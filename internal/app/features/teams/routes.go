// internal/app/features/teams/routes.go
package teams

import (
	"github.com/go-chi/chi/v5"
)

// Routes mounts the team management endpoints. The caller wraps the
// mount point with token auth and an admin role gate.
// Typically: r.Mount("/teams", teams.Routes(handler))
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.HandleCreate)
	r.Get("/", h.HandleList)
	r.Put("/size", h.HandleSetTeamSize)
	r.Put("/{id}", h.HandleRename)
	r.Delete("/{id}", h.HandleDelete)
	r.Put("/{id}/members/{userID}", h.HandleAddMember)
	r.Delete("/{id}/members/{userID}", h.HandleRemoveMember)

	return r
}
