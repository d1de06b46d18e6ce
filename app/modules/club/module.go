package club

import (
	"context"

	"github.com/Black-And-White-Club/campus-clubs/app/eventbus"
	clubservice "github.com/Black-And-White-Club/campus-clubs/app/modules/club/application"
	clubhandlers "github.com/Black-And-White-Club/campus-clubs/app/modules/club/infrastructure/handlers"
	clubdb "github.com/Black-And-White-Club/campus-clubs/app/modules/club/infrastructure/repositories"
	userdb "github.com/Black-And-White-Club/campus-clubs/app/modules/user/infrastructure/repositories"
	"github.com/Black-And-White-Club/campus-clubs/app/observability"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
)

// Module represents the club module.
type Module struct {
	Service  clubservice.Service
	Repo     clubdb.Repository
	handlers clubhandlers.Handlers
	obs      observability.Observability
}

// NewClubModule creates and initializes a new club module. events removes the
// event side of a club on delete and kick.
func NewClubModule(
	ctx context.Context,
	obs observability.Observability,
	db *bun.DB,
	users userdb.Repository,
	events clubservice.EventCleaner,
	publisher eventbus.Publisher,
) *Module {
	logger := obs.Logger
	logger.InfoContext(ctx, "club.NewClubModule initializing")

	repo := clubdb.NewRepository(db)
	service := clubservice.NewClubService(repo, users, events, publisher, logger, obs.Metrics, obs.Tracer, db)

	return &Module{
		Service:  service,
		Repo:     repo,
		handlers: clubhandlers.NewClubHandlers(service, logger),
		obs:      obs,
	}
}

// RegisterRoutes mounts the club endpoints on an authenticated router.
func (m *Module) RegisterRoutes(r chi.Router) {
	clubhandlers.RegisterRoutes(r, m.handlers)
}
