package eventhandlers

import (
	authdomain "github.com/Black-And-White-Club/campus-clubs/app/modules/auth/domain"
	authhandlers "github.com/Black-And-White-Club/campus-clubs/app/modules/auth/infrastructure/handlers"
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts the event endpoints on r, which must already
// authenticate callers.
func RegisterRoutes(r chi.Router, h Handlers) {
	r.Get("/api/event/GetAllEvents", h.HandleGetAllEvents)

	r.Group(func(r chi.Router) {
		r.Use(authhandlers.RequireRole(authdomain.RoleStudent))
		r.Post("/api/event/JoinEvent/{eventId}", h.HandleJoinEvent)
	})

	r.Group(func(r chi.Router) {
		r.Use(authhandlers.RequireRole(authdomain.RoleClubLeader))
		r.Post("/api/event", h.HandleCreateEvent)
		r.Put("/api/event", h.HandleUpdateEvent)
		r.Delete("/api/event", h.HandleDeleteEvent)

		r.Get("/api/clubleader/PendingJoinEventRequest", h.HandlePendingJoinRequests)
		r.Put("/api/clubleader/AcceptJoinEventRequest", h.HandleAcceptJoinRequest)
		r.Put("/api/clubleader/RejectJoinEventRequest", h.HandleRejectJoinRequest)
		r.Delete("/api/clubleader/KickEventMember/{memberId}", h.HandleKickMember)
	})

	r.Group(func(r chi.Router) {
		r.Use(authhandlers.RequireRole(authdomain.RoleAdmin))
		r.Get("/api/admin/PendingEvents", h.HandlePendingEvents)
		r.Put("/api/admin/AcceptEventRequest", h.HandleAcceptEvent)
		r.Put("/api/admin/RejectEventRequest", h.HandleRejectEvent)
	})
}
