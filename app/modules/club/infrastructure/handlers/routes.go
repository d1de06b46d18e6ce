package clubhandlers

import (
	authdomain "github.com/Black-And-White-Club/campus-clubs/app/modules/auth/domain"
	authhandlers "github.com/Black-And-White-Club/campus-clubs/app/modules/auth/infrastructure/handlers"
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts the club endpoints on r, which must already
// authenticate callers.
func RegisterRoutes(r chi.Router, h Handlers) {
	r.Get("/api/club/GetAllClubs", h.HandleGetAllClubs)
	r.Get("/api/club/GetClub", h.HandleGetClub)

	r.Group(func(r chi.Router) {
		r.Use(authhandlers.RequireRole(authdomain.RoleStudent))
		r.Post("/api/club/JoinClub/{clubId}", h.HandleJoinClub)
	})

	r.Group(func(r chi.Router) {
		r.Use(authhandlers.RequireRole(authdomain.RoleClubLeader))
		r.Post("/api/club", h.HandleCreateClub)
		r.Put("/api/club", h.HandleUpdateClub)
		r.Delete("/api/club", h.HandleDeleteClub)

		r.Get("/api/clubleader/PendingJoinClubRequest", h.HandlePendingJoinRequests)
		r.Put("/api/clubleader/AcceptJoinClubRequest", h.HandleAcceptJoinRequest)
		r.Put("/api/clubleader/RejectJoinClubRequest", h.HandleRejectJoinRequest)
		r.Delete("/api/clubleader/KickClubMember/{memberId}", h.HandleKickMember)
	})

	r.Group(func(r chi.Router) {
		r.Use(authhandlers.RequireRole(authdomain.RoleAdmin))
		r.Get("/api/admin/PendingClubs", h.HandlePendingClubs)
		r.Put("/api/admin/AcceptClubRequest", h.HandleAcceptClub)
		r.Put("/api/admin/RejectClubRequest", h.HandleRejectClub)
	})
}
