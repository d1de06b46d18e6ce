package authhandlers

import (
	"log/slog"
	"net/http"

	authservice "github.com/Black-And-White-Club/campus-clubs/app/modules/auth/application"
	"github.com/Black-And-White-Club/campus-clubs/app/shared/httpx"
)

// Handlers exposes the account endpoints.
type Handlers interface {
	HandleRegister(w http.ResponseWriter, r *http.Request)
	HandleLogin(w http.ResponseWriter, r *http.Request)
	HandleRefresh(w http.ResponseWriter, r *http.Request)
	HandleLogout(w http.ResponseWriter, r *http.Request)
}

type AuthHandlers struct {
	service authservice.Service
	logger  *slog.Logger
}

func NewAuthHandlers(service authservice.Service, logger *slog.Logger) Handlers {
	return &AuthHandlers{service: service, logger: logger}
}

func (h *AuthHandlers) HandleRegister(w http.ResponseWriter, r *http.Request) {
	f, err := httpx.DecodeFields(r)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}

	session, err := h.service.Register(r.Context(), authservice.RegisterRequest{
		UserName: f.Get("userName"),
		Email:    f.Get("email"),
		Password: f.Get("password"),
		Phone:    f.Get("phone"),
		RoleName: f.Get("roleName"),
	})
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, session)
}

func (h *AuthHandlers) HandleLogin(w http.ResponseWriter, r *http.Request) {
	f, err := httpx.DecodeFields(r)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}

	session, err := h.service.Login(r.Context(), f.Get("email"), f.Get("password"))
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, session)
}

func (h *AuthHandlers) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	f, err := httpx.DecodeFields(r)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}

	session, err := h.service.Refresh(r.Context(), f.Get("refreshToken"))
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, session)
}

func (h *AuthHandlers) HandleLogout(w http.ResponseWriter, r *http.Request) {
	f, err := httpx.DecodeFields(r)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}

	if err := h.service.Logout(r.Context(), f.Get("refreshToken")); err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteOK(w)
}
