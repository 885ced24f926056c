// internal/app/features/admissions/handler.go
package admissions

import (
	"context"
	"net/http"
	"strings"

	"github.com/dalemusser/clubhub/internal/app/system/apperr"
	"github.com/dalemusser/clubhub/internal/app/system/paging"
	"github.com/dalemusser/clubhub/internal/app/system/respond"
	"github.com/dalemusser/clubhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// InviteAdmin is the slice of the allowlist store the list/delete
// endpoints need.
type InviteAdmin interface {
	List(ctx context.Context, page, limit int64, search string) ([]models.AllowedEmail, int64, error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
}

// Handler exposes the admission engine over the admin API.
type Handler struct {
	Log     *zap.Logger
	Svc     *Service
	Invites InviteAdmin
}

func NewHandler(svc *Service, invites InviteAdmin, logger *zap.Logger) *Handler {
	return &Handler{Log: logger, Svc: svc, Invites: invites}
}

type addRequest struct {
	Emails []string `json:"emails"`
}

// HandleAdd handles POST /allowed-emails with a literal email list.
func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	var req addRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		respond.Err(w, r, apperr.Wrap(apperr.InvalidInput, "No emails provided or invalid input", err))
		return
	}

	result, err := h.Svc.AdmitBatch(r.Context(), req.Emails)
	if err != nil {
		respond.Err(w, r, err)
		return
	}
	respond.OK(w, r, "Emails processed successfully", result)
}

// HandleUploadCSV handles POST /allowed-emails/upload-csv with a
// multipart CSV file carrying an Email column. Malformed imports are
// rejected before any mail is sent.
func (h *Handler) HandleUploadCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(MaxUploadSize); err != nil {
		respond.Err(w, r, apperr.Wrap(apperr.InvalidInput, "No file uploaded", err))
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		respond.Err(w, r, apperr.Wrap(apperr.InvalidInput, "No file uploaded", err))
		return
	}
	defer file.Close()

	emails, err := ParseEmailsCSV(file)
	if err != nil {
		respond.Err(w, r, err)
		return
	}

	result, err := h.Svc.AdmitBatch(r.Context(), emails)
	if err != nil {
		respond.Err(w, r, err)
		return
	}
	respond.OK(w, r, "Emails processed successfully", result)
}

type listPage struct {
	Entries     []models.AllowedEmail `json:"data"`
	TotalPages  int64                 `json:"total_pages"`
	CurrentPage int64                 `json:"current_page"`
	Limit       int64                 `json:"limit"`
}

// HandleList handles GET /allowed-emails with page, limit
// and search query parameters.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	p := paging.FromRequest(r)
	search := strings.TrimSpace(r.URL.Query().Get("search"))

	entries, total, err := h.Invites.List(r.Context(), p.Page, p.Limit, search)
	if err != nil {
		h.Log.Error("list allowed emails failed", zap.Error(err))
		respond.Err(w, r, apperr.Wrap(apperr.Internal, "internal server error", err))
		return
	}

	respond.OK(w, r, "Allowed emails fetched successfully!", listPage{
		Entries:     entries,
		TotalPages:  paging.TotalPages(total, p.Limit),
		CurrentPage: p.Page,
		Limit:       p.Limit,
	})
}

// HandleDelete handles DELETE /allowed-emails/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.Err(w, r, apperr.New(apperr.InvalidInput, "Invalid or missing id"))
		return
	}

	deleted, err := h.Invites.Delete(r.Context(), id)
	if err != nil {
		h.Log.Error("delete allowed email failed", zap.Error(err))
		respond.Err(w, r, apperr.Wrap(apperr.Internal, "internal server error", err))
		return
	}
	if deleted == 0 {
		respond.Err(w, r, apperr.New(apperr.NotFound, "Invitation not found or already deleted"))
		return
	}
	respond.OK(w, r, "Email deleted successfully!", map[string]int64{"deleted_count": deleted})
}
