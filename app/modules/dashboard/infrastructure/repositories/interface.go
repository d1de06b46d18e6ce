package dashboarddb

import (
	"context"

	clubdb "github.com/Black-And-White-Club/campus-clubs/app/modules/club/infrastructure/repositories"
	eventdb "github.com/Black-And-White-Club/campus-clubs/app/modules/event/infrastructure/repositories"
	"github.com/Black-And-White-Club/campus-clubs/app/shared/status"
	"github.com/uptrace/bun"
)

// Repository holds the read-only aggregate queries behind the dashboards.
// It reads the club, event and user tables but never writes them.
type Repository interface {
	CountClubs(ctx context.Context, db bun.IDB, st status.Status) (int, error)
	CountEvents(ctx context.Context, db bun.IDB, st status.Status) (int, error)
	CountUsersByRole(ctx context.Context, db bun.IDB, role string) (int, error)

	// GetLeaderClub returns the leader's club in any status, or ErrNotFound.
	GetLeaderClub(ctx context.Context, db bun.IDB, leaderID int64) (*clubdb.Club, error)
	CountClubMembers(ctx context.Context, db bun.IDB, clubID int64, st status.Status) (int, error)
	CountClubEvents(ctx context.Context, db bun.IDB, clubID int64, st status.Status) (int, error)
	// CountClubEventMembers counts event memberships in st across every event of the club.
	CountClubEventMembers(ctx context.Context, db bun.IDB, clubID int64, st status.Status) (int, error)

	ListClubMemberships(ctx context.Context, db bun.IDB, userID int64) ([]*clubdb.ClubMember, error)
	ListEventMemberships(ctx context.Context, db bun.IDB, userID int64) ([]*eventdb.EventMember, error)
}
