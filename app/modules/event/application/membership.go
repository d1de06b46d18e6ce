package eventservice

import (
	"context"
	"errors"

	"github.com/Black-And-White-Club/frolf-bot-shared/utils/results"
	"github.com/Black-And-White-Club/campus-clubs/app/eventbus"
	authdomain "github.com/Black-And-White-Club/campus-clubs/app/modules/auth/domain"
	eventdb "github.com/Black-And-White-Club/campus-clubs/app/modules/event/infrastructure/repositories"
	userdb "github.com/Black-And-White-Club/campus-clubs/app/modules/user/infrastructure/repositories"
	"github.com/Black-And-White-Club/campus-clubs/app/shared/operation"
	"github.com/Black-And-White-Club/campus-clubs/app/shared/status"
	"github.com/uptrace/bun"
)

func (s *EventService) RequestJoinEvent(ctx context.Context, actor authdomain.Actor, studentID, eventID int64) error {
	_, err := operation.Run(s.runner, ctx, "RequestJoinEvent", id(studentID), func(ctx context.Context, db bun.IDB) (results.OperationResult[struct{}, error], error) {
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

		event, err := s.repo.GetEventByID(ctx, db, eventID)
		if err != nil {
			if errors.Is(err, eventdb.ErrNotFound) {
				return operation.Failure[struct{}](ErrEventNotFound)
			}
			return results.OperationResult[struct{}, error]{}, err
		}
		if event.Status != status.Accepted {
			return operation.Failure[struct{}](ErrEventNotAccepted)
		}

		member := &eventdb.EventMember{UserID: studentID, EventID: eventID, Status: status.Pending}
		if err := s.repo.CreateMembership(ctx, db, member); err != nil {
			if errors.Is(err, eventdb.ErrDuplicateMembership) {
				return operation.Failure[struct{}](ErrDuplicateRequest)
			}
			return results.OperationResult[struct{}, error]{}, err
		}
		return operation.Success(struct{}{})
	})
	if err != nil {
		return err
	}

	s.notifyMembership(ctx, studentID, eventID, status.Pending.String())
	return nil
}

func (s *EventService) ListPendingEventRequests(ctx context.Context, actor authdomain.Actor, leaderID int64) ([]EventJoinRequest, error) {
	return operation.Run(s.runner, ctx, "ListPendingEventRequests", id(leaderID), func(ctx context.Context, db bun.IDB) (results.OperationResult[[]EventJoinRequest, error], error) {
		if !actor.Is(leaderID) {
			return operation.Failure[[]EventJoinRequest](ErrForbidden)
		}

		members, err := s.repo.ListPendingMembershipsByLeader(ctx, db, leaderID)
		if err != nil {
			return results.OperationResult[[]EventJoinRequest, error]{}, err
		}

		out := make([]EventJoinRequest, 0, len(members))
		for _, m := range members {
			req := EventJoinRequest{UserID: m.UserID, EventID: m.EventID, RequestedAt: m.RequestedAt}
			if m.User != nil {
				req.UserName = m.User.UserName
			}
			if m.Event != nil {
				req.EventName = m.Event.Name
			}
			out = append(out, req)
		}
		return operation.Success(out)
	})
}

func (s *EventService) DecideEventRequest(ctx context.Context, actor authdomain.Actor, memberID, eventID int64, decision status.Decision) error {
	next, err := operation.Run(s.runner, ctx, "DecideEventRequest", id(memberID), func(ctx context.Context, db bun.IDB) (results.OperationResult[status.Status, error], error) {
		member, failure, err := s.ownedMembership(ctx, db, actor, memberID, eventID, ErrMemberNotPending)
		if err != nil {
			return results.OperationResult[status.Status, error]{}, err
		}
		if failure != nil {
			return operation.Failure[status.Status](failure)
		}

		next, err := member.Status.Decide(decision)
		if err != nil {
			if errors.Is(err, status.ErrInvalidDecision) {
				return operation.Failure[status.Status](ErrInvalidDecisionArg)
			}
			return operation.Failure[status.Status](ErrMemberNotPending)
		}

		if err := s.repo.UpdateMembershipStatus(ctx, db, memberID, eventID, member.Status, next, s.now().UTC()); err != nil {
			if errors.Is(err, eventdb.ErrNoRowsAffected) {
				return operation.Failure[status.Status](ErrMemberNotPending)
			}
			return results.OperationResult[status.Status, error]{}, err
		}
		return operation.Success(next)
	})
	if err != nil {
		return err
	}

	s.notifyMembership(ctx, memberID, eventID, next.String())
	return nil
}

func (s *EventService) KickEventMember(ctx context.Context, actor authdomain.Actor, memberID, eventID int64) error {
	_, err := operation.Run(s.runner, ctx, "KickEventMember", id(memberID), func(ctx context.Context, db bun.IDB) (results.OperationResult[struct{}, error], error) {
		member, failure, err := s.ownedMembership(ctx, db, actor, memberID, eventID, ErrMemberNotAccepted)
		if err != nil {
			return results.OperationResult[struct{}, error]{}, err
		}
		if failure != nil {
			return operation.Failure[struct{}](failure)
		}
		if err := member.Status.Removable(); err != nil {
			return operation.Failure[struct{}](ErrMemberNotAccepted)
		}

		if err := s.repo.DeleteMembership(ctx, db, memberID, eventID); err != nil {
			if errors.Is(err, eventdb.ErrNoRowsAffected) {
				return operation.Failure[struct{}](ErrMemberNotAccepted)
			}
			return results.OperationResult[struct{}, error]{}, err
		}
		return operation.Success(struct{}{})
	})
	if err != nil {
		return err
	}

	s.notifyMembership(ctx, memberID, eventID, eventbus.MembershipRemoved)
	return nil
}

// ownedMembership loads the (memberID, eventID) membership after checking the
// actor leads the event's club. A missing event or membership reports missing.
func (s *EventService) ownedMembership(
	ctx context.Context,
	db bun.IDB,
	actor authdomain.Actor,
	memberID, eventID int64,
	missing error,
) (member *eventdb.EventMember, failure, err error) {
	event, err := s.repo.GetEventByID(ctx, db, eventID)
	if err != nil {
		if errors.Is(err, eventdb.ErrNotFound) {
			return nil, missing, nil
		}
		return nil, nil, err
	}
	if event.Club == nil || !actor.Is(event.Club.LeaderID) {
		return nil, ErrForbidden, nil
	}

	member, err = s.repo.GetMembership(ctx, db, memberID, eventID)
	if err != nil {
		if errors.Is(err, eventdb.ErrNotFound) {
			return nil, missing, nil
		}
		return nil, nil, err
	}
	return member, nil, nil
}

func (s *EventService) notifyMembership(ctx context.Context, userID, eventID int64, st string) {
	eventbus.Notify(ctx, s.publisher, s.logger, eventbus.EventMembershipChangedV1, eventbus.EventMembershipChangedPayload{
		UserID:  userID,
		EventID: eventID,
		Status:  st,
	})
}
