package clubservice

import (
	"context"
	"errors"

	"github.com/Black-And-White-Club/frolf-bot-shared/utils/results"
	"github.com/Black-And-White-Club/campus-clubs/app/eventbus"
	authdomain "github.com/Black-And-White-Club/campus-clubs/app/modules/auth/domain"
	clubdb "github.com/Black-And-White-Club/campus-clubs/app/modules/club/infrastructure/repositories"
	userdb "github.com/Black-And-White-Club/campus-clubs/app/modules/user/infrastructure/repositories"
	"github.com/Black-And-White-Club/campus-clubs/app/shared/operation"
	"github.com/Black-And-White-Club/campus-clubs/app/shared/status"
	"github.com/uptrace/bun"
)

func (s *ClubService) RequestJoinClub(ctx context.Context, actor authdomain.Actor, studentID, clubID int64) error {
	_, err := operation.Run(s.runner, ctx, "RequestJoinClub", id(studentID), func(ctx context.Context, db bun.IDB) (results.OperationResult[struct{}, error], error) {
		if !actor.Is(studentID) {
			return operation.Failure[struct{}](ErrForbidden)
		}

		student, err := s.users.GetUserByID(ctx, db, studentID)
		if err != nil {
			if errors.Is(err, userdb.ErrNotFound) {
				return operation.Failure[struct{}](ErrStudentNotFound)
			}
			return results.OperationResult[struct{}, error]{}, err
		}
		if student.RoleName() != authdomain.RoleStudent.String() {
			return operation.Failure[struct{}](ErrNotAStudent)
		}

		club, err := s.repo.GetClubByID(ctx, db, clubID)
		if err != nil {
			if errors.Is(err, clubdb.ErrNotFound) {
				return operation.Failure[struct{}](ErrClubNotFound)
			}
			return results.OperationResult[struct{}, error]{}, err
		}
		if club.Status != status.Accepted {
			return operation.Failure[struct{}](ErrClubNotAccepted)
		}

		member := &clubdb.ClubMember{UserID: studentID, ClubID: clubID, Status: status.Pending}
		if err := s.repo.CreateMembership(ctx, db, member); err != nil {
			if errors.Is(err, clubdb.ErrDuplicateMembership) {
				return operation.Failure[struct{}](ErrDuplicateRequest)
			}
			return results.OperationResult[struct{}, error]{}, err
		}
		return operation.Success(struct{}{})
	})
	if err != nil {
		return err
	}

	eventbus.Notify(ctx, s.publisher, s.logger, eventbus.ClubMembershipChangedV1, eventbus.ClubMembershipChangedPayload{
		UserID: studentID,
		ClubID: clubID,
		Status: status.Pending.String(),
	})
	return nil
}

func (s *ClubService) ListPendingClubRequests(ctx context.Context, actor authdomain.Actor, leaderID int64) ([]JoinRequest, error) {
	return operation.Run(s.runner, ctx, "ListPendingClubRequests", id(leaderID), func(ctx context.Context, db bun.IDB) (results.OperationResult[[]JoinRequest, error], error) {
		club, failure, err := s.leaderClub(ctx, db, actor, leaderID)
		if err != nil {
			return results.OperationResult[[]JoinRequest, error]{}, err
		}
		if failure != nil {
			return operation.Failure[[]JoinRequest](failure)
		}

		members, err := s.repo.ListMembershipsByStatus(ctx, db, club.ID, status.Pending)
		if err != nil {
			return results.OperationResult[[]JoinRequest, error]{}, err
		}

		out := make([]JoinRequest, 0, len(members))
		for _, m := range members {
			req := JoinRequest{UserID: m.UserID, ClubID: club.ID, ClubName: club.Name, RequestedAt: m.RequestedAt}
			if m.User != nil {
				req.UserName = m.User.UserName
			}
			out = append(out, req)
		}
		return operation.Success(out)
	})
}

func (s *ClubService) DecideClubRequest(ctx context.Context, actor authdomain.Actor, leaderID, memberID int64, decision status.Decision) error {
	type outcome struct {
		clubID int64
		status status.Status
	}

	res, err := operation.Run(s.runner, ctx, "DecideClubRequest", id(memberID), func(ctx context.Context, db bun.IDB) (results.OperationResult[outcome, error], error) {
		club, failure, err := s.leaderClub(ctx, db, actor, leaderID)
		if err != nil {
			return results.OperationResult[outcome, error]{}, err
		}
		if failure != nil {
			return operation.Failure[outcome](failure)
		}

		member, err := s.repo.GetMembership(ctx, db, memberID, club.ID)
		if err != nil {
			if errors.Is(err, clubdb.ErrNotFound) {
				return operation.Failure[outcome](ErrMemberNotPending)
			}
			return results.OperationResult[outcome, error]{}, err
		}

		next, err := member.Status.Decide(decision)
		if err != nil {
			if errors.Is(err, status.ErrInvalidDecision) {
				return operation.Failure[outcome](ErrInvalidDecisionArg)
			}
			return operation.Failure[outcome](ErrMemberNotPending)
		}

		if err := s.repo.UpdateMembershipStatus(ctx, db, memberID, club.ID, member.Status, next, s.now().UTC()); err != nil {
			if errors.Is(err, clubdb.ErrNoRowsAffected) {
				return operation.Failure[outcome](ErrMemberNotPending)
			}
			return results.OperationResult[outcome, error]{}, err
		}
		return operation.Success(outcome{clubID: club.ID, status: next})
	})
	if err != nil {
		return err
	}

	eventbus.Notify(ctx, s.publisher, s.logger, eventbus.ClubMembershipChangedV1, eventbus.ClubMembershipChangedPayload{
		UserID: memberID,
		ClubID: res.clubID,
		Status: res.status.String(),
	})
	return nil
}

func (s *ClubService) KickClubMember(ctx context.Context, actor authdomain.Actor, leaderID, memberID int64) (int64, error) {
	type outcome struct {
		clubID  int64
		removed int64
	}

	res, err := operation.Run(s.runner, ctx, "KickClubMember", id(memberID), func(ctx context.Context, db bun.IDB) (results.OperationResult[outcome, error], error) {
		club, failure, err := s.leaderClub(ctx, db, actor, leaderID)
		if err != nil {
			return results.OperationResult[outcome, error]{}, err
		}
		if failure != nil {
			return operation.Failure[outcome](failure)
		}

		member, err := s.repo.GetMembership(ctx, db, memberID, club.ID)
		if err != nil {
			if errors.Is(err, clubdb.ErrNotFound) {
				return operation.Failure[outcome](ErrMemberNotAccepted)
			}
			return results.OperationResult[outcome, error]{}, err
		}
		if err := member.Status.Removable(); err != nil {
			return operation.Failure[outcome](ErrMemberNotAccepted)
		}

		var removed int64
		if s.events != nil {
			removed, err = s.events.DeleteUserMembershipsInClub(ctx, db, memberID, club.ID)
			if err != nil {
				return results.OperationResult[outcome, error]{}, err
			}
		}
		if err := s.repo.DeleteMembership(ctx, db, memberID, club.ID); err != nil {
			if errors.Is(err, clubdb.ErrNoRowsAffected) {
				return operation.Failure[outcome](ErrMemberNotAccepted)
			}
			return results.OperationResult[outcome, error]{}, err
		}
		return operation.Success(outcome{clubID: club.ID, removed: removed})
	})
	if err != nil {
		return 0, err
	}

	eventbus.Notify(ctx, s.publisher, s.logger, eventbus.ClubMembershipChangedV1, eventbus.ClubMembershipChangedPayload{
		UserID: memberID,
		ClubID: res.clubID,
		Status: eventbus.MembershipRemoved,
	})
	return res.removed, nil
}

// leaderClub resolves the club led by leaderID after checking the actor may
// act for that leader. failure is a domain failure, err an infrastructure one.
func (s *ClubService) leaderClub(ctx context.Context, db bun.IDB, actor authdomain.Actor, leaderID int64) (club *clubdb.Club, failure, err error) {
	if !actor.Is(leaderID) {
		return nil, ErrForbidden, nil
	}
	club, err = s.repo.GetClubByLeader(ctx, db, leaderID)
	if err != nil {
		if errors.Is(err, clubdb.ErrNotFound) {
			return nil, ErrNoClub, nil
		}
		return nil, nil, err
	}
	return club, nil, nil
}
