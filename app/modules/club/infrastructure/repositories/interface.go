package clubdb

import (
	"context"
	"time"

	"github.com/Black-And-White-Club/campus-clubs/app/shared/status"
	"github.com/uptrace/bun"
)

// Repository defines the persistence contract for clubs, their memberships
// and their audit trail.
//
// Error semantics:
//   - ErrNotFound: requested record does not exist (Get* methods)
//   - ErrDuplicateClubName, ErrLeaderHasClub, ErrDuplicateMembership:
//     a unique index rejected the write
//   - ErrNoRowsAffected: UPDATE/DELETE matched no rows, including a status
//     update whose expected current status no longer holds
//   - other errors: infrastructure failures
type Repository interface {
	CreateClub(ctx context.Context, db bun.IDB, club *Club) error
	GetClubByID(ctx context.Context, db bun.IDB, id int64) (*Club, error)
	GetClubByLeader(ctx context.Context, db bun.IDB, leaderID int64) (*Club, error)
	GetClubWithMembers(ctx context.Context, db bun.IDB, leaderID int64, st status.Status) (*Club, error)
	ListClubsByStatus(ctx context.Context, db bun.IDB, st status.Status) ([]*Club, error)
	UpdateClubDetails(ctx context.Context, db bun.IDB, club *Club) error
	UpdateClubStatus(ctx context.Context, db bun.IDB, id int64, from, to status.Status) error
	DeleteClub(ctx context.Context, db bun.IDB, id int64) error

	InsertClubUpdate(ctx context.Context, db bun.IDB, update *ClubUpdate) error
	DeleteClubUpdates(ctx context.Context, db bun.IDB, clubID int64) error

	CreateMembership(ctx context.Context, db bun.IDB, member *ClubMember) error
	GetMembership(ctx context.Context, db bun.IDB, userID, clubID int64) (*ClubMember, error)
	ListMembershipsByStatus(ctx context.Context, db bun.IDB, clubID int64, st status.Status) ([]*ClubMember, error)
	UpdateMembershipStatus(ctx context.Context, db bun.IDB, userID, clubID int64, from, to status.Status, at time.Time) error
	DeleteMembership(ctx context.Context, db bun.IDB, userID, clubID int64) error
	DeleteMembershipsByClub(ctx context.Context, db bun.IDB, clubID int64) (int64, error)
}
