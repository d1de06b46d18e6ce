package clubservice

import (
	"context"
	"time"

	authdomain "github.com/Black-And-White-Club/campus-clubs/app/modules/auth/domain"
	"github.com/Black-And-White-Club/campus-clubs/app/shared/status"
	"github.com/uptrace/bun"
)

// Service defines the club lifecycle and club membership operations. Every
// mutating operation checks the actor before touching the store.
type Service interface {
	// CreateClub registers a Pending club owned by req.LeaderID.
	CreateClub(ctx context.Context, actor authdomain.Actor, req CreateClubRequest) (*ClubSummary, error)

	// UpdateClub renames or re-describes a club and records an audit row.
	UpdateClub(ctx context.Context, actor authdomain.Actor, req UpdateClubRequest) error

	// DeleteClub removes the club together with its events, memberships and audit rows.
	DeleteClub(ctx context.Context, actor authdomain.Actor, clubID int64) error

	ListAcceptedClubs(ctx context.Context) ([]ClubSummary, error)

	// GetLeaderClub returns the leader's Accepted club with all of its members.
	GetLeaderClub(ctx context.Context, leaderID int64) (*ClubDetail, error)

	ListPendingClubs(ctx context.Context, actor authdomain.Actor) ([]ClubSummary, error)
	DecideClub(ctx context.Context, actor authdomain.Actor, clubID int64, decision status.Decision) error

	RequestJoinClub(ctx context.Context, actor authdomain.Actor, studentID, clubID int64) error
	ListPendingClubRequests(ctx context.Context, actor authdomain.Actor, leaderID int64) ([]JoinRequest, error)

	// DecideClubRequest approves or rejects memberID's request to the club
	// led by leaderID.
	DecideClubRequest(ctx context.Context, actor authdomain.Actor, leaderID, memberID int64, decision status.Decision) error

	// KickClubMember removes an Accepted member and their memberships of the
	// club's events. It returns how many event memberships were removed.
	KickClubMember(ctx context.Context, actor authdomain.Actor, leaderID, memberID int64) (int64, error)
}

// EventCleaner removes the event side of a club. It is satisfied by the
// event repository.
type EventCleaner interface {
	DeleteUserMembershipsInClub(ctx context.Context, db bun.IDB, userID, clubID int64) (int64, error)
	DeleteEventsByClub(ctx context.Context, db bun.IDB, clubID int64) error
}

type CreateClubRequest struct {
	LeaderID    int64
	Name        string
	Description string
}

type UpdateClubRequest struct {
	ClubID      int64
	Name        string
	Description string
}

type ClubSummary struct {
	ID          int64         `json:"id"`
	Name        string        `json:"clubName"`
	Description string        `json:"description"`
	LeaderID    int64         `json:"clubLeaderId"`
	LeaderName  string        `json:"userName"`
	Status      status.Status `json:"status"`
	CreatedAt   time.Time     `json:"createdAt"`
}

type MemberInfo struct {
	UserID   int64         `json:"userId"`
	UserName string        `json:"userName"`
	Status   status.Status `json:"status"`
}

type ClubDetail struct {
	ClubSummary
	Members []MemberInfo `json:"members"`
}

// JoinRequest is a Pending membership as the club leader sees it.
type JoinRequest struct {
	UserID      int64     `json:"userId"`
	UserName    string    `json:"userName"`
	ClubID      int64     `json:"clubId"`
	ClubName    string    `json:"clubName"`
	RequestedAt time.Time `json:"requestedAt"`
}
