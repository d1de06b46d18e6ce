package eventhandlers

import (
	"log/slog"
	"net/http"
	"time"

	authdomain "github.com/Black-And-White-Club/campus-clubs/app/modules/auth/domain"
	eventservice "github.com/Black-And-White-Club/campus-clubs/app/modules/event/application"
	eventdb "github.com/Black-And-White-Club/campus-clubs/app/modules/event/infrastructure/repositories"
	"github.com/Black-And-White-Club/campus-clubs/app/shared/apperrors"
	"github.com/Black-And-White-Club/campus-clubs/app/shared/httpx"
	"github.com/Black-And-White-Club/campus-clubs/app/shared/status"
)

// Handlers exposes the event, club leader and admin event endpoints.
type Handlers interface {
	HandleGetAllEvents(w http.ResponseWriter, r *http.Request)
	HandleCreateEvent(w http.ResponseWriter, r *http.Request)
	HandleUpdateEvent(w http.ResponseWriter, r *http.Request)
	HandleDeleteEvent(w http.ResponseWriter, r *http.Request)
	HandleJoinEvent(w http.ResponseWriter, r *http.Request)

	HandlePendingJoinRequests(w http.ResponseWriter, r *http.Request)
	HandleAcceptJoinRequest(w http.ResponseWriter, r *http.Request)
	HandleRejectJoinRequest(w http.ResponseWriter, r *http.Request)
	HandleKickMember(w http.ResponseWriter, r *http.Request)

	HandlePendingEvents(w http.ResponseWriter, r *http.Request)
	HandleAcceptEvent(w http.ResponseWriter, r *http.Request)
	HandleRejectEvent(w http.ResponseWriter, r *http.Request)
}

// TimeParser turns a startAt or endAt field into an absolute time.
type TimeParser interface {
	Parse(input string) (time.Time, error)
}

type EventHandlers struct {
	service eventservice.Service
	times   TimeParser
	logger  *slog.Logger
}

func NewEventHandlers(service eventservice.Service, times TimeParser, logger *slog.Logger) Handlers {
	return &EventHandlers{service: service, times: times, logger: logger}
}

func (h *EventHandlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	httpx.WriteError(w, r, h.logger, err)
}

// parseTime returns the zero time for an empty field.
func (h *EventHandlers) parseTime(f httpx.Fields, name string) (time.Time, error) {
	raw := f.Get(name)
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := h.times.Parse(raw)
	if err != nil {
		return time.Time{}, apperrors.Validation("%s: could not recognize time %q", name, raw)
	}
	return t, nil
}

func (h *EventHandlers) schedule(f httpx.Fields) (start, end time.Time, err error) {
	if start, err = h.parseTime(f, "startAt"); err != nil {
		return
	}
	end, err = h.parseTime(f, "endAt")
	return
}

func (h *EventHandlers) HandleGetAllEvents(w http.ResponseWriter, r *http.Request) {
	clubID, err := httpx.OptionalQueryInt64(r, "clubId")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	leaderID, err := httpx.OptionalQueryInt64(r, "clubLeaderId")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	events, err := h.service.ListEvents(r.Context(), eventdb.ListFilter{ClubID: clubID, LeaderID: leaderID})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, events)
}

func (h *EventHandlers) HandleCreateEvent(w http.ResponseWriter, r *http.Request) {
	f, err := httpx.DecodeFields(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	clubID, err := f.Int64("clubId")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	start, end, err := h.schedule(f)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	event, err := h.service.CreateEvent(r.Context(), authdomain.ActorFromContext(r.Context()), eventservice.CreateEventRequest{
		ClubID:      clubID,
		Name:        f.Get("eventName"),
		Description: f.Get("desc"),
		StartAt:     start,
		EndAt:       end,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, event)
}

func (h *EventHandlers) HandleUpdateEvent(w http.ResponseWriter, r *http.Request) {
	f, err := httpx.DecodeFields(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	eventID, err := f.Int64("eventId")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	start, end, err := h.schedule(f)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	err = h.service.UpdateEvent(r.Context(), authdomain.ActorFromContext(r.Context()), eventservice.UpdateEventRequest{
		EventID:     eventID,
		Name:        f.Get("eventName"),
		Description: f.Get("desc"),
		StartAt:     start,
		EndAt:       end,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteOK(w)
}

func (h *EventHandlers) HandleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	eventID, err := httpx.QueryInt64(r, "eventId")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.service.DeleteEvent(r.Context(), authdomain.ActorFromContext(r.Context()), eventID); err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteOK(w)
}

func (h *EventHandlers) HandleJoinEvent(w http.ResponseWriter, r *http.Request) {
	actor := authdomain.ActorFromContext(r.Context())
	eventID, err := httpx.PathInt64(r, "eventId")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	studentID, err := httpx.QueryInt64Or(r, "studentId", actor.UserID)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if err := h.service.RequestJoinEvent(r.Context(), actor, studentID, eventID); err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteOK(w)
}

func (h *EventHandlers) HandlePendingJoinRequests(w http.ResponseWriter, r *http.Request) {
	actor := authdomain.ActorFromContext(r.Context())
	leaderID, err := httpx.QueryInt64Or(r, "clubLeaderId", actor.UserID)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	requests, err := h.service.ListPendingEventRequests(r.Context(), actor, leaderID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, requests)
}

func (h *EventHandlers) HandleAcceptJoinRequest(w http.ResponseWriter, r *http.Request) {
	h.decideJoinRequest(w, r, status.Approve)
}

func (h *EventHandlers) HandleRejectJoinRequest(w http.ResponseWriter, r *http.Request) {
	h.decideJoinRequest(w, r, status.Reject)
}

func (h *EventHandlers) decideJoinRequest(w http.ResponseWriter, r *http.Request, decision status.Decision) {
	memberID, err := httpx.QueryInt64(r, "memberId")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	eventID, err := httpx.QueryInt64(r, "eventId")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if err := h.service.DecideEventRequest(r.Context(), authdomain.ActorFromContext(r.Context()), memberID, eventID, decision); err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteOK(w)
}

func (h *EventHandlers) HandleKickMember(w http.ResponseWriter, r *http.Request) {
	memberID, err := httpx.PathInt64(r, "memberId")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	eventID, err := httpx.QueryInt64(r, "eventId")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if err := h.service.KickEventMember(r.Context(), authdomain.ActorFromContext(r.Context()), memberID, eventID); err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteOK(w)
}

func (h *EventHandlers) HandlePendingEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.service.ListPendingEvents(r.Context(), authdomain.ActorFromContext(r.Context()))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, events)
}

func (h *EventHandlers) HandleAcceptEvent(w http.ResponseWriter, r *http.Request) {
	h.decideEvent(w, r, status.Approve)
}

func (h *EventHandlers) HandleRejectEvent(w http.ResponseWriter, r *http.Request) {
	h.decideEvent(w, r, status.Reject)
}

func (h *EventHandlers) decideEvent(w http.ResponseWriter, r *http.Request, decision status.Decision) {
	eventID, err := httpx.QueryInt64(r, "eventId")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.service.DecideEvent(r.Context(), authdomain.ActorFromContext(r.Context()), eventID, decision); err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteOK(w)
}
