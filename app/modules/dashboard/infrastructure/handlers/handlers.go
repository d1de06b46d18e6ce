package dashboardhandlers

import (
	"log/slog"
	"net/http"

	authdomain "github.com/Black-And-White-Club/campus-clubs/app/modules/auth/domain"
	authhandlers "github.com/Black-And-White-Club/campus-clubs/app/modules/auth/infrastructure/handlers"
	dashboardservice "github.com/Black-And-White-Club/campus-clubs/app/modules/dashboard/application"
	"github.com/Black-And-White-Club/campus-clubs/app/shared/httpx"
	"github.com/go-chi/chi/v5"
)

type Handlers interface {
	HandleAdminDashboard(w http.ResponseWriter, r *http.Request)
	HandleLeaderDashboard(w http.ResponseWriter, r *http.Request)
	HandleStudentDashboard(w http.ResponseWriter, r *http.Request)
}

type DashboardHandlers struct {
	service dashboardservice.Service
	logger  *slog.Logger
}

func NewDashboardHandlers(service dashboardservice.Service, logger *slog.Logger) Handlers {
	return &DashboardHandlers{service: service, logger: logger}
}

func (h *DashboardHandlers) HandleAdminDashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.service.AdminDashboard(r.Context(), authdomain.ActorFromContext(r.Context()))
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, d)
}

func (h *DashboardHandlers) HandleLeaderDashboard(w http.ResponseWriter, r *http.Request) {
	actor := authdomain.ActorFromContext(r.Context())
	leaderID, err := httpx.QueryInt64Or(r, "clubLeaderId", actor.UserID)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}

	d, err := h.service.LeaderDashboard(r.Context(), actor, leaderID)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, d)
}

func (h *DashboardHandlers) HandleStudentDashboard(w http.ResponseWriter, r *http.Request) {
	actor := authdomain.ActorFromContext(r.Context())
	studentID, err := httpx.QueryInt64Or(r, "studentId", actor.UserID)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}

	d, err := h.service.StudentDashboard(r.Context(), actor, studentID)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, d)
}

// RegisterRoutes mounts one dashboard per role on an authenticated router.
func RegisterRoutes(r chi.Router, h Handlers) {
	r.With(authhandlers.RequireRole(authdomain.RoleAdmin)).Get("/api/admin/Dashboard", h.HandleAdminDashboard)
	r.With(authhandlers.RequireRole(authdomain.RoleClubLeader)).Get("/api/clubleader/Dashboard", h.HandleLeaderDashboard)
	r.With(authhandlers.RequireRole(authdomain.RoleStudent)).Get("/api/student/Dashboard", h.HandleStudentDashboard)
}
