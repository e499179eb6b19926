package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/finance-dashboard/internal/dto"
	"github.com/GregMSThompson/finance-dashboard/internal/middleware"
	"github.com/GregMSThompson/finance-dashboard/internal/models"
	"github.com/GregMSThompson/finance-dashboard/internal/response"
)

type authService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (dto.AuthResponse, time.Time, error)
	Login(ctx context.Context, req dto.LoginRequest) (dto.AuthResponse, time.Time, error)
	Me(ctx context.Context, userID int64) (models.User, error)
}

type authHandlers struct {
	ResponseHandler response.ResponseHandler
	AuthSvc         authService
	CookieSecure    bool
}

func NewAuthHandlers(deps *Deps) *authHandlers {
	return &authHandlers{
		ResponseHandler: deps.ResponseHandler,
		AuthSvc:         deps.AuthSvc,
		CookieSecure:    deps.CookieSecure,
	}
}

// AuthRoutes serves login and registration publicly; protect guards /me.
func (h *authHandlers) AuthRoutes(protect func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/login", h.Login)
	r.Put("/login", h.Register)
	r.Post("/logout", h.Logout)
	r.With(protect).Get("/me", h.Me)
	return r
}

func (h *authHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	resp, expires, err := h.AuthSvc.Login(r.Context(), req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.setSession(w, resp.Token, expires)
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, resp)
}

func (h *authHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	resp, expires, err := h.AuthSvc.Register(r.Context(), req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.setSession(w, resp.Token, expires)
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, resp)
}

func (h *authHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	h.setSession(w, "", time.Unix(0, 0))
	h.ResponseHandler.WriteSuccess(w, r, http.StatusNoContent, nil)
}

func (h *authHandlers) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.AuthSvc.Me(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, dto.UserResponse{User: user})
}

func (h *authHandlers) setSession(w http.ResponseWriter, token string, expires time.Time) {
	c := &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
	if token == "" {
		c.MaxAge = -1
	}
	http.SetCookie(w, c)
}
