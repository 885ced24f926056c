// internal/app/features/moderation/handler.go
package moderation

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/clubhub/internal/app/system/apperr"
	"github.com/dalemusser/clubhub/internal/app/system/paging"
	"github.com/dalemusser/clubhub/internal/app/system/respond"
	"github.com/dalemusser/clubhub/internal/domain/models"
	"github.com/go-chi/render"
	"go.uber.org/zap"
)

// DenyLister is the slice of the blocklist store the list endpoint
// needs.
type DenyLister interface {
	List(ctx context.Context, page, limit int64, search string) ([]models.BlockedEmail, int64, error)
}

// Handler exposes the block/unblock engine over the admin API.
type Handler struct {
	Log     *zap.Logger
	Svc     *Service
	Blocked DenyLister
}

func NewHandler(svc *Service, blocked DenyLister, logger *zap.Logger) *Handler {
	return &Handler{Log: logger, Svc: svc, Blocked: blocked}
}

type emailRequest struct {
	Email string `json:"email"`
}

// HandleBlock handles POST /blocked-emails/block.
func (h *Handler) HandleBlock(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		respond.Err(w, r, apperr.Wrap(apperr.InvalidInput, "Email is required", err))
		return
	}

	if err := h.Svc.Block(r.Context(), req.Email); err != nil {
		respond.Err(w, r, err)
		return
	}
	respond.OK(w, r, "Email blocked successfully!", nil)
}

// HandleUnblock handles POST /blocked-emails/unblock.
func (h *Handler) HandleUnblock(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		respond.Err(w, r, apperr.Wrap(apperr.InvalidInput, "Email is required", err))
		return
	}

	if err := h.Svc.Unblock(r.Context(), req.Email); err != nil {
		respond.Err(w, r, err)
		return
	}
	respond.OK(w, r, "Email unblocked successfully!", nil)
}

type listPage struct {
	Entries     []models.BlockedEmail `json:"data"`
	TotalPages  int64                 `json:"total_pages"`
	CurrentPage int64                 `json:"current_page"`
	Limit       int64                 `json:"limit"`
}

// HandleList handles GET /blocked-emails.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	p := paging.FromRequest(r)
	search := strings.TrimSpace(r.URL.Query().Get("search"))

	entries, total, err := h.Blocked.List(r.Context(), p.Page, p.Limit, search)
	if err != nil {
		h.Log.Error("list blocked emails failed", zap.Error(err))
		respond.Err(w, r, apperr.Wrap(apperr.Internal, "internal server error", err))
		return
	}

	respond.OK(w, r, "Blocked emails fetched successfully!", listPage{
		Entries:     entries,
		TotalPages:  paging.TotalPages(total, p.Limit),
		CurrentPage: p.Page,
		Limit:       p.Limit,
	})
}
