package dashboardservice

import (
	"context"

	clubdb "github.com/Black-And-White-Club/campus-clubs/app/modules/club/infrastructure/repositories"
	dashboarddb "github.com/Black-And-White-Club/campus-clubs/app/modules/dashboard/infrastructure/repositories"
	eventdb "github.com/Black-And-White-Club/campus-clubs/app/modules/event/infrastructure/repositories"
	"github.com/Black-And-White-Club/campus-clubs/app/shared/status"
	"github.com/uptrace/bun"
)

type clubCount struct {
	clubID int64
	status status.Status
}

// FakeRepository serves canned counts. Err, when set, fails every query.
type FakeRepository struct {
	Clubs            map[status.Status]int
	Events           map[status.Status]int
	Roles            map[string]int
	LeaderClubs      map[int64]*clubdb.Club
	ClubMembers      map[clubCount]int
	ClubEvents       map[clubCount]int
	ClubEventMembers map[clubCount]int
	ClubMemberships  map[int64][]*clubdb.ClubMember
	EventMemberships map[int64][]*eventdb.EventMember
	Err              error
}

func (f *FakeRepository) CountClubs(ctx context.Context, db bun.IDB, st status.Status) (int, error) {
	return f.Clubs[st], f.Err
}

func (f *FakeRepository) CountEvents(ctx context.Context, db bun.IDB, st status.Status) (int, error) {
	return f.Events[st], f.Err
}

func (f *FakeRepository) CountUsersByRole(ctx context.Context, db bun.IDB, role string) (int, error) {
	return f.Roles[role], f.Err
}

func (f *FakeRepository) GetLeaderClub(ctx context.Context, db bun.IDB, leaderID int64) (*clubdb.Club, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	if c, ok := f.LeaderClubs[leaderID]; ok {
		return c, nil
	}
	return nil, dashboarddb.ErrNotFound
}

func (f *FakeRepository) CountClubMembers(ctx context.Context, db bun.IDB, clubID int64, st status.Status) (int, error) {
	return f.ClubMembers[clubCount{clubID, st}], f.Err
}

func (f *FakeRepository) CountClubEvents(ctx context.Context, db bun.IDB, clubID int64, st status.Status) (int, error) {
	return f.ClubEvents[clubCount{clubID, st}], f.Err
}

func (f *FakeRepository) CountClubEventMembers(ctx context.Context, db bun.IDB, clubID int64, st status.Status) (int, error) {
	return f.ClubEventMembers[clubCount{clubID, st}], f.Err
}

func (f *FakeRepository) ListClubMemberships(ctx context.Context, db bun.IDB, userID int64) ([]*clubdb.ClubMember, error) {
	return f.ClubMemberships[userID], f.Err
}

func (f *FakeRepository) ListEventMemberships(ctx context.Context, db bun.IDB, userID int64) ([]*eventdb.EventMember, error) {
	return f.EventMemberships[userID], f.Err
}

var _ dashboarddb.Repository = (*FakeRepository)(nil)
