package dashboardservice

import (
	"context"
	"time"

	authdomain "github.com/Black-And-White-Club/campus-clubs/app/modules/auth/domain"
	"github.com/Black-And-White-Club/campus-clubs/app/shared/status"
)

// Service builds the read-only per-role dashboards.
type Service interface {
	AdminDashboard(ctx context.Context, actor authdomain.Actor) (*AdminDashboard, error)
	LeaderDashboard(ctx context.Context, actor authdomain.Actor, leaderID int64) (*LeaderDashboard, error)
	StudentDashboard(ctx context.Context, actor authdomain.Actor, studentID int64) (*StudentDashboard, error)
}

// NoClub is the clubStatus reported for a leader without a club.
const NoClub = "no_club"

type AdminDashboard struct {
	AcceptedClubs    int `json:"acceptedClubs"`
	PendingClubs     int `json:"pendingClubs"`
	AcceptedEvents   int `json:"acceptedEvents"`
	PendingEvents    int `json:"pendingEvents"`
	TotalClubLeaders int `json:"totalClubLeaders"`
	TotalStudents    int `json:"totalStudents"`
}

type LeaderDashboard struct {
	ClubName             string `json:"clubName,omitempty"`
	ClubStatus           string `json:"clubStatus"`
	TotalMembers         int    `json:"totalMembers"`
	PendingRequests      int    `json:"pendingRequests"`
	TotalEvents          int    `json:"totalEvents"`
	PendingEvents        int    `json:"pendingEvents"`
	AcceptedEventMembers int    `json:"acceptedEventMembers"`
	PendingEventRequests int    `json:"pendingEventRequests"`
}

type StudentDashboard struct {
	JoinedClubs          int            `json:"joinedClubs"`
	PendingClubRequests  int            `json:"pendingClubRequests"`
	JoinedEvents         int            `json:"joinedEvents"`
	PendingEventRequests int            `json:"pendingEventRequests"`
	Clubs                []StudentClub  `json:"clubs"`
	Events               []StudentEvent `json:"events"`
}

type StudentClub struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Status      status.Status `json:"status"`
}

type StudentEvent struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	ClubName    string        `json:"clubName"`
	StartAt     time.Time     `json:"startAt"`
	EndAt       time.Time     `json:"endAt"`
	Status      status.Status `json:"status"`
}
