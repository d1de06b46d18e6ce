package clubhandlers

import (
	"log/slog"
	"net/http"

	authdomain "github.com/Black-And-White-Club/campus-clubs/app/modules/auth/domain"
	clubservice "github.com/Black-And-White-Club/campus-clubs/app/modules/club/application"
	"github.com/Black-And-White-Club/campus-clubs/app/shared/httpx"
	"github.com/Black-And-White-Club/campus-clubs/app/shared/status"
)

// Handlers exposes the club, club leader and admin club endpoints.
type Handlers interface {
	HandleGetAllClubs(w http.ResponseWriter, r *http.Request)
	HandleGetClub(w http.ResponseWriter, r *http.Request)
	HandleCreateClub(w http.ResponseWriter, r *http.Request)
	HandleUpdateClub(w http.ResponseWriter, r *http.Request)
	HandleDeleteClub(w http.ResponseWriter, r *http.Request)
	HandleJoinClub(w http.ResponseWriter, r *http.Request)

	HandlePendingJoinRequests(w http.ResponseWriter, r *http.Request)
	HandleAcceptJoinRequest(w http.ResponseWriter, r *http.Request)
	HandleRejectJoinRequest(w http.ResponseWriter, r *http.Request)
	HandleKickMember(w http.ResponseWriter, r *http.Request)

	HandlePendingClubs(w http.ResponseWriter, r *http.Request)
	HandleAcceptClub(w http.ResponseWriter, r *http.Request)
	HandleRejectClub(w http.ResponseWriter, r *http.Request)
}

type ClubHandlers struct {
	service clubservice.Service
	logger  *slog.Logger
}

func NewClubHandlers(service clubservice.Service, logger *slog.Logger) Handlers {
	return &ClubHandlers{service: service, logger: logger}
}

func (h *ClubHandlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	httpx.WriteError(w, r, h.logger, err)
}

func (h *ClubHandlers) HandleGetAllClubs(w http.ResponseWriter, r *http.Request) {
	clubs, err := h.service.ListAcceptedClubs(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, clubs)
}

func (h *ClubHandlers) HandleGetClub(w http.ResponseWriter, r *http.Request) {
	actor := authdomain.ActorFromContext(r.Context())
	leaderID, err := httpx.QueryInt64Or(r, "clubLeaderId", actor.UserID)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	club, err := h.service.GetLeaderClub(r.Context(), leaderID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, club)
}

func (h *ClubHandlers) HandleCreateClub(w http.ResponseWriter, r *http.Request) {
	f, err := httpx.DecodeFields(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	actor := authdomain.ActorFromContext(r.Context())

	leaderID, err := f.OptionalInt64("clubLeaderId")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if leaderID == 0 {
		leaderID = actor.UserID
	}

	club, err := h.service.CreateClub(r.Context(), actor, clubservice.CreateClubRequest{
		LeaderID:    leaderID,
		Name:        f.Get("clubName"),
		Description: f.Get("desc"),
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, club)
}

func (h *ClubHandlers) HandleUpdateClub(w http.ResponseWriter, r *http.Request) {
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

	err = h.service.UpdateClub(r.Context(), authdomain.ActorFromContext(r.Context()), clubservice.UpdateClubRequest{
		ClubID:      clubID,
		Name:        f.Get("clubName"),
		Description: f.Get("desc"),
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteOK(w)
}

func (h *ClubHandlers) HandleDeleteClub(w http.ResponseWriter, r *http.Request) {
	clubID, err := httpx.QueryInt64(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.service.DeleteClub(r.Context(), authdomain.ActorFromContext(r.Context()), clubID); err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteOK(w)
}

func (h *ClubHandlers) HandleJoinClub(w http.ResponseWriter, r *http.Request) {
	actor := authdomain.ActorFromContext(r.Context())
	clubID, err := httpx.PathInt64(r, "clubId")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	studentID, err := httpx.QueryInt64Or(r, "studentId", actor.UserID)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if err := h.service.RequestJoinClub(r.Context(), actor, studentID, clubID); err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteOK(w)
}

func (h *ClubHandlers) HandlePendingJoinRequests(w http.ResponseWriter, r *http.Request) {
	actor := authdomain.ActorFromContext(r.Context())
	leaderID, err := httpx.QueryInt64Or(r, "clubLeaderId", actor.UserID)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	requests, err := h.service.ListPendingClubRequests(r.Context(), actor, leaderID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, requests)
}

func (h *ClubHandlers) HandleAcceptJoinRequest(w http.ResponseWriter, r *http.Request) {
	h.decideJoinRequest(w, r, status.Approve)
}

func (h *ClubHandlers) HandleRejectJoinRequest(w http.ResponseWriter, r *http.Request) {
	h.decideJoinRequest(w, r, status.Reject)
}

func (h *ClubHandlers) decideJoinRequest(w http.ResponseWriter, r *http.Request, decision status.Decision) {
	actor := authdomain.ActorFromContext(r.Context())
	memberID, err := httpx.QueryInt64(r, "memberId")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	leaderID, err := httpx.QueryInt64Or(r, "clubLeaderId", actor.UserID)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if err := h.service.DecideClubRequest(r.Context(), actor, leaderID, memberID, decision); err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteOK(w)
}

func (h *ClubHandlers) HandleKickMember(w http.ResponseWriter, r *http.Request) {
	actor := authdomain.ActorFromContext(r.Context())
	memberID, err := httpx.PathInt64(r, "memberId")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	leaderID, err := httpx.QueryInt64Or(r, "clubLeaderId", actor.UserID)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	removed, err := h.service.KickClubMember(r.Context(), actor, leaderID, memberID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]int64{"removedEventMemberships": removed})
}

func (h *ClubHandlers) HandlePendingClubs(w http.ResponseWriter, r *http.Request) {
	clubs, err := h.service.ListPendingClubs(r.Context(), authdomain.ActorFromContext(r.Context()))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, clubs)
}

func (h *ClubHandlers) HandleAcceptClub(w http.ResponseWriter, r *http.Request) {
	h.decideClub(w, r, status.Approve)
}

func (h *ClubHandlers) HandleRejectClub(w http.ResponseWriter, r *http.Request) {
	h.decideClub(w, r, status.Reject)
}

func (h *ClubHandlers) decideClub(w http.ResponseWriter, r *http.Request, decision status.Decision) {
	clubID, err := httpx.QueryInt64(r, "clubId")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.service.DecideClub(r.Context(), authdomain.ActorFromContext(r.Context()), clubID, decision); err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.WriteOK(w)
}
