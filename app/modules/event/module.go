package event

import (
	"context"

	"github.com/Black-And-White-Club/campus-clubs/app/eventbus"
	clubdb "github.com/Black-And-White-Club/campus-clubs/app/modules/club/infrastructure/repositories"
	eventservice "github.com/Black-And-White-Club/campus-clubs/app/modules/event/application"
	eventhandlers "github.com/Black-And-White-Club/campus-clubs/app/modules/event/infrastructure/handlers"
	eventdb "github.com/Black-And-White-Club/campus-clubs/app/modules/event/infrastructure/repositories"
	userdb "github.com/Black-And-White-Club/campus-clubs/app/modules/user/infrastructure/repositories"
	"github.com/Black-And-White-Club/campus-clubs/app/observability"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
)

// Module represents the event module.
type Module struct {
	Service  eventservice.Service
	handlers eventhandlers.Handlers
	obs      observability.Observability
}

// NewEventModule wires the event module around repo, which the club module
// also uses to cascade club deletes and kicks.
func NewEventModule(
	ctx context.Context,
	obs observability.Observability,
	db *bun.DB,
	repo eventdb.Repository,
	clubs clubdb.Repository,
	users userdb.Repository,
	publisher eventbus.Publisher,
	times eventhandlers.TimeParser,
) *Module {
	logger := obs.Logger
	logger.InfoContext(ctx, "event.NewEventModule initializing")

	service := eventservice.NewEventService(repo, clubs, users, publisher, logger, obs.Metrics, obs.Tracer, db)

	return &Module{
		Service:  service,
		handlers: eventhandlers.NewEventHandlers(service, times, logger),
		obs:      obs,
	}
}

// RegisterRoutes mounts the event endpoints on an authenticated router.
func (m *Module) RegisterRoutes(r chi.Router) {
	eventhandlers.RegisterRoutes(r, m.handlers)
}
