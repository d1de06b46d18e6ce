package clubhandlers

import (
	"context"

	authdomain "github.com/Black-And-White-Club/campus-clubs/app/modules/auth/domain"
	clubservice "github.com/Black-And-White-Club/campus-clubs/app/modules/club/application"
	"github.com/Black-And-White-Club/campus-clubs/app/shared/status"
)

// FakeService is a programmable clubservice.Service. Unset funcs succeed
// with zero values.
type FakeService struct {
	CreateClubFunc              func(ctx context.Context, actor authdomain.Actor, req clubservice.CreateClubRequest) (*clubservice.ClubSummary, error)
	UpdateClubFunc              func(ctx context.Context, actor authdomain.Actor, req clubservice.UpdateClubRequest) error
	DeleteClubFunc              func(ctx context.Context, actor authdomain.Actor, clubID int64) error
	ListAcceptedClubsFunc       func(ctx context.Context) ([]clubservice.ClubSummary, error)
	GetLeaderClubFunc           func(ctx context.Context, leaderID int64) (*clubservice.ClubDetail, error)
	ListPendingClubsFunc        func(ctx context.Context, actor authdomain.Actor) ([]clubservice.ClubSummary, error)
	DecideClubFunc              func(ctx context.Context, actor authdomain.Actor, clubID int64, decision status.Decision) error
	RequestJoinClubFunc         func(ctx context.Context, actor authdomain.Actor, studentID, clubID int64) error
	ListPendingClubRequestsFunc func(ctx context.Context, actor authdomain.Actor, leaderID int64) ([]clubservice.JoinRequest, error)
	DecideClubRequestFunc       func(ctx context.Context, actor authdomain.Actor, leaderID, memberID int64, decision status.Decision) error
	KickClubMemberFunc          func(ctx context.Context, actor authdomain.Actor, leaderID, memberID int64) (int64, error)
}

func (f *FakeService) CreateClub(ctx context.Context, actor authdomain.Actor, req clubservice.CreateClubRequest) (*clubservice.ClubSummary, error) {
	if f.CreateClubFunc != nil {
		return f.CreateClubFunc(ctx, actor, req)
	}
	return &clubservice.ClubSummary{}, nil
}

func (f *FakeService) UpdateClub(ctx context.Context, actor authdomain.Actor, req clubservice.UpdateClubRequest) error {
	if f.UpdateClubFunc != nil {
		return f.UpdateClubFunc(ctx, actor, req)
	}
	return nil
}

func (f *FakeService) DeleteClub(ctx context.Context, actor authdomain.Actor, clubID int64) error {
	if f.DeleteClubFunc != nil {
		return f.DeleteClubFunc(ctx, actor, clubID)
	}
	return nil
}

func (f *FakeService) ListAcceptedClubs(ctx context.Context) ([]clubservice.ClubSummary, error) {
	if f.ListAcceptedClubsFunc != nil {
		return f.ListAcceptedClubsFunc(ctx)
	}
	return []clubservice.ClubSummary{}, nil
}

func (f *FakeService) GetLeaderClub(ctx context.Context, leaderID int64) (*clubservice.ClubDetail, error) {
	if f.GetLeaderClubFunc != nil {
		return f.GetLeaderClubFunc(ctx, leaderID)
	}
	return &clubservice.ClubDetail{}, nil
}

func (f *FakeService) ListPendingClubs(ctx context.Context, actor authdomain.Actor) ([]clubservice.ClubSummary, error) {
	if f.ListPendingClubsFunc != nil {
		return f.ListPendingClubsFunc(ctx, actor)
	}
	return []clubservice.ClubSummary{}, nil
}

func (f *FakeService) DecideClub(ctx context.Context, actor authdomain.Actor, clubID int64, decision status.Decision) error {
	if f.DecideClubFunc != nil {
		return f.DecideClubFunc(ctx, actor, clubID, decision)
	}
	return nil
}

func (f *FakeService) RequestJoinClub(ctx context.Context, actor authdomain.Actor, studentID, clubID int64) error {
	if f.RequestJoinClubFunc != nil {
		return f.RequestJoinClubFunc(ctx, actor, studentID, clubID)
	}
	return nil
}

func (f *FakeService) ListPendingClubRequests(ctx context.Context, actor authdomain.Actor, leaderID int64) ([]clubservice.JoinRequest, error) {
	if f.ListPendingClubRequestsFunc != nil {
		return f.ListPendingClubRequestsFunc(ctx, actor, leaderID)
	}
	return []clubservice.JoinRequest{}, nil
}

func (f *FakeService) DecideClubRequest(ctx context.Context, actor authdomain.Actor, leaderID, memberID int64, decision status.Decision) error {
	if f.DecideClubRequestFunc != nil {
		return f.DecideClubRequestFunc(ctx, actor, leaderID, memberID, decision)
	}
	return nil
}

func (f *FakeService) KickClubMember(ctx context.Context, actor authdomain.Actor, leaderID, memberID int64) (int64, error) {
	if f.KickClubMemberFunc != nil {
		return f.KickClubMemberFunc(ctx, actor, leaderID, memberID)
	}
	return 0, nil
}

var _ clubservice.Service = (*FakeService)(nil)
