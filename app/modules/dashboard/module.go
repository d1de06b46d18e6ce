package dashboard

import (
	"context"

	dashboardservice "github.com/Black-And-White-Club/campus-clubs/app/modules/dashboard/application"
	dashboardhandlers "github.com/Black-And-White-Club/campus-clubs/app/modules/dashboard/infrastructure/handlers"
	dashboarddb "github.com/Black-And-White-Club/campus-clubs/app/modules/dashboard/infrastructure/repositories"
	"github.com/Black-And-White-Club/campus-clubs/app/observability"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
)

// Module represents the read-only dashboard module.
type Module struct {
	Service  dashboardservice.Service
	handlers dashboardhandlers.Handlers
}

func NewDashboardModule(ctx context.Context, obs observability.Observability, db *bun.DB) *Module {
	obs.Logger.InfoContext(ctx, "dashboard.NewDashboardModule initializing")

	service := dashboardservice.NewDashboardService(dashboarddb.NewRepository(db), obs.Logger, obs.Metrics, obs.Tracer, db)
	return &Module{
		Service:  service,
		handlers: dashboardhandlers.NewDashboardHandlers(service, obs.Logger),
	}
}

func (m *Module) RegisterRoutes(r chi.Router) {
	dashboardhandlers.RegisterRoutes(r, m.handlers)
}
