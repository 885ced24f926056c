// internal/app/features/teams/handler.go
package teams

import (
	"net/http"

	"github.com/dalemusser/clubhub/internal/app/system/apperr"
	"github.com/dalemusser/clubhub/internal/app/system/authz"
	"github.com/dalemusser/clubhub/internal/app/system/respond"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Handler exposes the team engine over the admin API.
type Handler struct {
	Log *zap.Logger
	Svc *Service
}

func NewHandler(svc *Service, logger *zap.Logger) *Handler {
	return &Handler{Log: logger, Svc: svc}
}

type teamNameRequest struct {
	TeamName string `json:"team_name"`
}

// HandleCreate handles POST /teams.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req teamNameRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		respond.Err(w, r, apperr.Wrap(apperr.InvalidInput, "Team name is required", err))
		return
	}

	team, err := h.Svc.Create(r.Context(), req.TeamName)
	if err != nil {
		respond.Err(w, r, err)
		return
	}
	respond.OK(w, r, "Team created successfully!", team)
}

// HandleRename handles PUT /teams/{id}.
func (h *Handler) HandleRename(w http.ResponseWriter, r *http.Request) {
	teamID, err := pathID(r, "id")
	if err != nil {
		respond.Err(w, r, err)
		return
	}

	var req teamNameRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		respond.Err(w, r, apperr.Wrap(apperr.InvalidInput, "Team name is required", err))
		return
	}

	if err := h.Svc.Rename(r.Context(), teamID, req.TeamName); err != nil {
		respond.Err(w, r, err)
		return
	}
	respond.OK(w, r, "Team updated successfully!", nil)
}

// HandleDelete handles DELETE /teams/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	teamID, err := pathID(r, "id")
	if err != nil {
		respond.Err(w, r, err)
		return
	}

	if err := h.Svc.Delete(r.Context(), teamID); err != nil {
		respond.Err(w, r, err)
		return
	}
	respond.OK(w, r, "Team deleted successfully!", nil)
}

// HandleAddMember handles PUT /teams/{id}/members/{userID}.
func (h *Handler) HandleAddMember(w http.ResponseWriter, r *http.Request) {
	teamID, userID, err := teamAndUserIDs(r)
	if err != nil {
		respond.Err(w, r, err)
		return
	}

	if err := h.Svc.AddMember(r.Context(), teamID, userID); err != nil {
		respond.Err(w, r, err)
		return
	}
	respond.OK(w, r, "Member added successfully!", nil)
}

// HandleRemoveMember handles DELETE /teams/{id}/members/{userID}.
func (h *Handler) HandleRemoveMember(w http.ResponseWriter, r *http.Request) {
	teamID, userID, err := teamAndUserIDs(r)
	if err != nil {
		respond.Err(w, r, err)
		return
	}

	if err := h.Svc.RemoveMember(r.Context(), teamID, userID); err != nil {
		respond.Err(w, r, err)
		return
	}
	respond.OK(w, r, "Member removed successfully!", nil)
}

// HandleList handles GET /teams.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	teams, err := h.Svc.List(r.Context())
	if err != nil {
		respond.Err(w, r, err)
		return
	}
	respond.OK(w, r, "Teams fetched successfully!", teams)
}

type teamSizeRequest struct {
	TeamSize int `json:"team_size"`
}

// HandleSetTeamSize handles PUT /teams/size.
func (h *Handler) HandleSetTeamSize(w http.ResponseWriter, r *http.Request) {
	_, name, actorID, ok := authz.UserCtx(r)
	if !ok {
		respond.Err(w, r, apperr.New(apperr.Unauthorized, "No token provided"))
		return
	}

	var req teamSizeRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		respond.Err(w, r, apperr.Wrap(apperr.InvalidInput, "Team size is required", err))
		return
	}

	if err := h.Svc.SetTeamSize(r.Context(), req.TeamSize, actorID, name); err != nil {
		respond.Err(w, r, err)
		return
	}
	respond.OK(w, r, "Team size updated successfully!", map[string]int{"team_size": req.TeamSize})
}

func pathID(r *http.Request, key string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, key))
	if err != nil {
		return primitive.NilObjectID, apperr.New(apperr.InvalidInput, "Invalid or missing id")
	}
	return id, nil
}

func teamAndUserIDs(r *http.Request) (teamID, userID primitive.ObjectID, err error) {
	if teamID, err = pathID(r, "id"); err != nil {
		return
	}
	userID, err = pathID(r, "userID")
	return
}
