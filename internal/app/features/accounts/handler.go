// internal/app/features/accounts/handler.go
package accounts

import (
	"net/http"
	"strings"

	"github.com/dalemusser/clubhub/internal/app/system/apperr"
	"github.com/dalemusser/clubhub/internal/app/system/authz"
	"github.com/dalemusser/clubhub/internal/app/system/paging"
	"github.com/dalemusser/clubhub/internal/app/system/respond"
	"github.com/dalemusser/clubhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Handler exposes registration, login and account administration.
type Handler struct {
	Log *zap.Logger
	Svc *Service
}

func NewHandler(svc *Service, logger *zap.Logger) *Handler {
	return &Handler{Log: logger, Svc: svc}
}

// HandleRegister handles POST /auth/register.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var in RegisterInput
	if err := render.DecodeJSON(r.Body, &in); err != nil {
		respond.Err(w, r, apperr.Wrap(apperr.InvalidInput, "Invalid registration payload", err))
		return
	}

	user, err := h.Svc.Register(r.Context(), in)
	if err != nil {
		respond.Err(w, r, err)
		return
	}
	respond.OK(w, r, "Registered successfully!", user)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// HandleLogin handles POST /auth/login.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		respond.Err(w, r, apperr.Wrap(apperr.InvalidInput, "Email and password are required", err))
		return
	}

	user, token, err := h.Svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respond.Err(w, r, err)
		return
	}
	respond.OK(w, r, "Logged in successfully!", loginResponse{Token: token, User: user})
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// HandleForgotPassword handles POST /auth/forgot-password.
func (h *Handler) HandleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		respond.Err(w, r, apperr.Wrap(apperr.InvalidInput, "Email is required", err))
		return
	}

	if err := h.Svc.ForgotPassword(r.Context(), req.Email); err != nil {
		respond.Err(w, r, err)
		return
	}
	respond.OK(w, r, "If the email is registered, a reset code has been sent.", nil)
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	OTP         string `json:"otp"`
	NewPassword string `json:"new_password"`
}

// HandleResetPassword handles POST /auth/reset-password.
func (h *Handler) HandleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		respond.Err(w, r, apperr.Wrap(apperr.InvalidInput, "Email, OTP and new password are required", err))
		return
	}

	if err := h.Svc.ResetPassword(r.Context(), req.Email, req.OTP, req.NewPassword); err != nil {
		respond.Err(w, r, err)
		return
	}
	respond.OK(w, r, "Password reset successfully!", nil)
}

// HandleLogout handles POST /logout.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		respond.Err(w, r, apperr.New(apperr.Unauthorized, "No token provided"))
		return
	}

	if err := h.Svc.Logout(r.Context(), userID); err != nil {
		respond.Err(w, r, err)
		return
	}
	respond.OK(w, r, "Logged out successfully!", nil)
}

// HandleMe handles GET /me.
func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		respond.Err(w, r, apperr.New(apperr.Unauthorized, "No token provided"))
		return
	}

	user, err := h.Svc.Me(r.Context(), userID)
	if err != nil {
		respond.Err(w, r, err)
		return
	}
	respond.OK(w, r, "Profile fetched successfully!", user)
}

// HandleDelete handles DELETE /users/{id} (admin).
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	_, _, actorID, ok := authz.UserCtx(r)
	if !ok {
		respond.Err(w, r, apperr.New(apperr.Unauthorized, "No token provided"))
		return
	}
	targetID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.Err(w, r, apperr.New(apperr.InvalidInput, "Invalid or missing id"))
		return
	}

	if err := h.Svc.DeleteUser(r.Context(), actorID, targetID); err != nil {
		respond.Err(w, r, err)
		return
	}
	respond.OK(w, r, "User deleted successfully!", nil)
}

type userPage struct {
	Users       []models.User `json:"data"`
	TotalPages  int64         `json:"total_pages"`
	CurrentPage int64         `json:"current_page"`
	Limit       int64         `json:"limit"`
}

// HandleList handles GET /users (admin).
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	p := paging.FromRequest(r)
	search := strings.TrimSpace(r.URL.Query().Get("search"))

	users, total, err := h.Svc.ListUsers(r.Context(), p.Page, p.Limit, search)
	if err != nil {
		respond.Err(w, r, err)
		return
	}

	respond.OK(w, r, "Users fetched successfully!", userPage{
		Users:       users,
		TotalPages:  paging.TotalPages(total, p.Limit),
		CurrentPage: p.Page,
		Limit:       p.Limit,
	})
}
