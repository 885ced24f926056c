// internal/app/features/ranks/handler.go
package ranks

import (
	"net/http"

	"github.com/dalemusser/clubhub/internal/app/system/apperr"
	"github.com/dalemusser/clubhub/internal/app/system/authz"
	"github.com/dalemusser/clubhub/internal/app/system/respond"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Handler exposes the rank engine over the admin API.
type Handler struct {
	Log *zap.Logger
	Svc *Service
}

func NewHandler(svc *Service, logger *zap.Logger) *Handler {
	return &Handler{Log: logger, Svc: svc}
}

// HandlePromote handles PUT /ranks/promote/{id}.
func (h *Handler) HandlePromote(w http.ResponseWriter, r *http.Request) {
	actorID, targetID, err := actorAndTarget(r)
	if err != nil {
		respond.Err(w, r, err)
		return
	}

	role, err := h.Svc.Promote(r.Context(), actorID, targetID)
	if err != nil {
		respond.Err(w, r, err)
		return
	}
	respond.OK(w, r, "User promoted successfully!", map[string]string{"role": role})
}

// HandleDemote handles PUT /ranks/demote/{id}.
func (h *Handler) HandleDemote(w http.ResponseWriter, r *http.Request) {
	actorID, targetID, err := actorAndTarget(r)
	if err != nil {
		respond.Err(w, r, err)
		return
	}

	role, err := h.Svc.Demote(r.Context(), actorID, targetID)
	if err != nil {
		respond.Err(w, r, err)
		return
	}
	respond.OK(w, r, "User demoted successfully!", map[string]string{"role": role})
}

func actorAndTarget(r *http.Request) (actorID, targetID primitive.ObjectID, err error) {
	_, _, actorID, ok := authz.UserCtx(r)
	if !ok {
		return actorID, targetID, apperr.New(apperr.Unauthorized, "No token provided")
	}
	targetID, idErr := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if idErr != nil {
		return actorID, targetID, apperr.New(apperr.InvalidInput, "Invalid or missing id")
	}
	return actorID, targetID, nil
}
