// internal/app/features/progress/handler.go
package progress

import (
	"net/http"

	"github.com/dalemusser/clubhub/internal/app/system/apperr"
	"github.com/dalemusser/clubhub/internal/app/system/respond"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Handler exposes solved-count updates over the API.
type Handler struct {
	Log *zap.Logger
	Svc *Service
}

func NewHandler(svc *Service, logger *zap.Logger) *Handler {
	return &Handler{Log: logger, Svc: svc}
}

type solvedRequest struct {
	SolvedQuestionsCount int `json:"solved_questions_count"`
}

// HandleUpdateSolved handles PUT /solved-count/{id}.
func (h *Handler) HandleUpdateSolved(w http.ResponseWriter, r *http.Request) {
	userID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.Err(w, r, apperr.New(apperr.InvalidInput, "Invalid or missing id"))
		return
	}

	var req solvedRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		respond.Err(w, r, apperr.Wrap(apperr.InvalidInput, "Solved count is required", err))
		return
	}

	if err := h.Svc.UpdateSolvedCount(r.Context(), userID, req.SolvedQuestionsCount); err != nil {
		respond.Err(w, r, err)
		return
	}
	respond.OK(w, r, "Solved count updated successfully!", map[string]int{
		"solved_questions_count": req.SolvedQuestionsCount,
	})
}

// Routes mounts the progress endpoints. Solved counts feed the team
// leaderboard, so the caller wraps the mount point with token auth and
// an admin role gate.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Put("/solved-count/{id}", h.HandleUpdateSolved)
	return r
}
