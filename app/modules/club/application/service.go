package clubservice

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Black-And-White-Club/frolf-bot-shared/utils/results"
	"github.com/Black-And-White-Club/campus-clubs/app/eventbus"
	authdomain "github.com/Black-And-White-Club/campus-clubs/app/modules/auth/domain"
	clubdb "github.com/Black-And-White-Club/campus-clubs/app/modules/club/infrastructure/repositories"
	userdb "github.com/Black-And-White-Club/campus-clubs/app/modules/user/infrastructure/repositories"
	"github.com/Black-And-White-Club/campus-clubs/app/shared/metrics"
	"github.com/Black-And-White-Club/campus-clubs/app/shared/operation"
	"github.com/Black-And-White-Club/campus-clubs/app/shared/status"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"
)

// ClubService implements Service.
type ClubService struct {
	repo      clubdb.Repository
	users     userdb.Repository
	events    EventCleaner
	publisher eventbus.Publisher
	logger    *slog.Logger
	runner    *operation.Runner
	now       func() time.Time
}

// NewClubService creates a new ClubService.
func NewClubService(
	repo clubdb.Repository,
	users userdb.Repository,
	events EventCleaner,
	publisher eventbus.Publisher,
	logger *slog.Logger,
	m metrics.OperationMetrics,
	tracer trace.Tracer,
	db *bun.DB,
) *ClubService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ClubService{
		repo:      repo,
		users:     users,
		events:    events,
		publisher: publisher,
		logger:    logger,
		runner:    operation.NewRunner("ClubService", logger, m, tracer, db),
		now:       time.Now,
	}
}

var _ Service = (*ClubService)(nil)

func id(v int64) string { return strconv.FormatInt(v, 10) }

func validateClubName(name string) error {
	if name == "" {
		return ErrClubNameRequired
	}
	if utf8.RuneCountInString(name) > maxClubNameLength {
		return ErrClubNameTooLong
	}
	return nil
}

func (s *ClubService) CreateClub(ctx context.Context, actor authdomain.Actor, req CreateClubRequest) (*ClubSummary, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)

	return operation.Run(s.runner, ctx, "CreateClub", id(req.LeaderID), func(ctx context.Context, db bun.IDB) (results.OperationResult[*ClubSummary, error], error) {
		if !actor.Is(req.LeaderID) {
			return operation.Failure[*ClubSummary](ErrForbidden)
		}
		if err := validateClubName(req.Name); err != nil {
			return operation.Failure[*ClubSummary](err)
		}

		leader, err := s.users.GetUserByID(ctx, db, req.LeaderID)
		if err != nil {
			if errors.Is(err, userdb.ErrNotFound) {
				return operation.Failure[*ClubSummary](ErrLeaderNotFound)
			}
			return results.OperationResult[*ClubSummary, error]{}, err
		}
		if leader.RoleName() != authdomain.RoleClubLeader.String() {
			return operation.Failure[*ClubSummary](ErrNotAClubLeader)
		}

		// The leader check runs first so a leader who also picks a taken
		// name is told about the club they already have.
		if _, err := s.repo.GetClubByLeader(ctx, db, req.LeaderID); err == nil {
			return operation.Failure[*ClubSummary](ErrLeaderHasClub)
		} else if !errors.Is(err, clubdb.ErrNotFound) {
			return results.OperationResult[*ClubSummary, error]{}, err
		}

		club := &clubdb.Club{
			Name:        req.Name,
			Description: req.Description,
			LeaderID:    req.LeaderID,
			Status:      status.Pending,
			Leader:      leader,
		}
		if err := s.repo.CreateClub(ctx, db, club); err != nil {
			switch {
			case errors.Is(err, clubdb.ErrDuplicateClubName):
				return operation.Failure[*ClubSummary](ErrDuplicateClubName)
			case errors.Is(err, clubdb.ErrLeaderHasClub):
				return operation.Failure[*ClubSummary](ErrLeaderHasClub)
			}
			return results.OperationResult[*ClubSummary, error]{}, err
		}

		summary := toSummary(club)
		return operation.Success(&summary)
	})
}

func (s *ClubService) UpdateClub(ctx context.Context, actor authdomain.Actor, req UpdateClubRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)

	_, err := operation.Run(s.runner, ctx, "UpdateClub", id(req.ClubID), func(ctx context.Context, db bun.IDB) (results.OperationResult[struct{}, error], error) {
		if err := validateClubName(req.Name); err != nil {
			return operation.Failure[struct{}](err)
		}

		club, err := s.repo.GetClubByID(ctx, db, req.ClubID)
		if err != nil {
			if errors.Is(err, clubdb.ErrNotFound) {
				return operation.Failure[struct{}](ErrClubNotFound)
			}
			return results.OperationResult[struct{}, error]{}, err
		}
		if !actor.Is(club.LeaderID) {
			return operation.Failure[struct{}](ErrForbidden)
		}

		audit := &clubdb.ClubUpdate{
			ClubID:         club.ID,
			OldName:        club.Name,
			NewName:        req.Name,
			OldDescription: club.Description,
			NewDescription: req.Description,
			UpdatedBy:      actor.UserID,
		}

		club.Name = req.Name
		club.Description = req.Description
		if err := s.repo.UpdateClubDetails(ctx, db, club); err != nil {
			switch {
			case errors.Is(err, clubdb.ErrDuplicateClubName):
				return operation.Failure[struct{}](ErrDuplicateClubName)
			case errors.Is(err, clubdb.ErrNoRowsAffected):
				return operation.Failure[struct{}](ErrClubNotFound)
			}
			return results.OperationResult[struct{}, error]{}, err
		}
		if err := s.repo.InsertClubUpdate(ctx, db, audit); err != nil {
			return results.OperationResult[struct{}, error]{}, err
		}
		return operation.Success(struct{}{})
	})
	return err
}

func (s *ClubService) DeleteClub(ctx context.Context, actor authdomain.Actor, clubID int64) error {
	_, err := operation.Run(s.runner, ctx, "DeleteClub", id(clubID), func(ctx context.Context, db bun.IDB) (results.OperationResult[struct{}, error], error) {
		club, err := s.repo.GetClubByID(ctx, db, clubID)
		if err != nil {
			if errors.Is(err, clubdb.ErrNotFound) {
				return operation.Failure[struct{}](ErrClubNotFound)
			}
			return results.OperationResult[struct{}, error]{}, err
		}
		if !actor.Is(club.LeaderID) {
			return operation.Failure[struct{}](ErrForbidden)
		}

		if s.events != nil {
			if err := s.events.DeleteEventsByClub(ctx, db, clubID); err != nil {
				return results.OperationResult[struct{}, error]{}, err
			}
		}
		if _, err := s.repo.DeleteMembershipsByClub(ctx, db, clubID); err != nil {
			return results.OperationResult[struct{}, error]{}, err
		}
		if err := s.repo.DeleteClubUpdates(ctx, db, clubID); err != nil {
			return results.OperationResult[struct{}, error]{}, err
		}
		if err := s.repo.DeleteClub(ctx, db, clubID); err != nil {
			if errors.Is(err, clubdb.ErrNoRowsAffected) {
				return operation.Failure[struct{}](ErrClubNotFound)
			}
			return results.OperationResult[struct{}, error]{}, err
		}
		return operation.Success(struct{}{})
	})
	return err
}

func (s *ClubService) ListAcceptedClubs(ctx context.Context) ([]ClubSummary, error) {
	return operation.Run(s.runner, ctx, "ListAcceptedClubs", "all", func(ctx context.Context, db bun.IDB) (results.OperationResult[[]ClubSummary, error], error) {
		clubs, err := s.repo.ListClubsByStatus(ctx, db, status.Accepted)
		if err != nil {
			return results.OperationResult[[]ClubSummary, error]{}, err
		}
		return operation.Success(toSummaries(clubs))
	})
}

func (s *ClubService) GetLeaderClub(ctx context.Context, leaderID int64) (*ClubDetail, error) {
	return operation.Run(s.runner, ctx, "GetLeaderClub", id(leaderID), func(ctx context.Context, db bun.IDB) (results.OperationResult[*ClubDetail, error], error) {
		club, err := s.repo.GetClubWithMembers(ctx, db, leaderID, status.Accepted)
		if err != nil {
			if errors.Is(err, clubdb.ErrNotFound) {
				return operation.Failure[*ClubDetail](ErrNoClub)
			}
			return results.OperationResult[*ClubDetail, error]{}, err
		}

		detail := &ClubDetail{ClubSummary: toSummary(club), Members: make([]MemberInfo, 0, len(club.Members))}
		for _, m := range club.Members {
			info := MemberInfo{UserID: m.UserID, Status: m.Status}
			if m.User != nil {
				info.UserName = m.User.UserName
			}
			detail.Members = append(detail.Members, info)
		}
		return operation.Success(detail)
	})
}

func (s *ClubService) ListPendingClubs(ctx context.Context, actor authdomain.Actor) ([]ClubSummary, error) {
	return operation.Run(s.runner, ctx, "ListPendingClubs", id(actor.UserID), func(ctx context.Context, db bun.IDB) (results.OperationResult[[]ClubSummary, error], error) {
		if !actor.IsAdmin() {
			return operation.Failure[[]ClubSummary](ErrAdminOnly)
		}
		clubs, err := s.repo.ListClubsByStatus(ctx, db, status.Pending)
		if err != nil {
			return results.OperationResult[[]ClubSummary, error]{}, err
		}
		return operation.Success(toSummaries(clubs))
	})
}

func (s *ClubService) DecideClub(ctx context.Context, actor authdomain.Actor, clubID int64, decision status.Decision) error {
	next, err := operation.Run(s.runner, ctx, "DecideClub", id(clubID), func(ctx context.Context, db bun.IDB) (results.OperationResult[status.Status, error], error) {
		if !actor.IsAdmin() {
			return operation.Failure[status.Status](ErrAdminOnly)
		}

		club, err := s.repo.GetClubByID(ctx, db, clubID)
		if err != nil {
			if errors.Is(err, clubdb.ErrNotFound) {
				return operation.Failure[status.Status](ErrClubNotPending)
			}
			return results.OperationResult[status.Status, error]{}, err
		}

		next, err := club.Status.Decide(decision)
		if err != nil {
			if errors.Is(err, status.ErrInvalidDecision) {
				return operation.Failure[status.Status](ErrInvalidDecisionArg)
			}
			return operation.Failure[status.Status](ErrClubNotPending)
		}

		if err := s.repo.UpdateClubStatus(ctx, db, clubID, club.Status, next); err != nil {
			if errors.Is(err, clubdb.ErrNoRowsAffected) {
				return operation.Failure[status.Status](ErrClubNotPending)
			}
			return results.OperationResult[status.Status, error]{}, err
		}
		return operation.Success(next)
	})
	if err != nil {
		return err
	}

	eventbus.Notify(ctx, s.publisher, s.logger, eventbus.ClubStatusChangedV1, eventbus.ClubStatusChangedPayload{
		ClubID: clubID,
		Status: next,
	})
	return nil
}

func toSummary(c *clubdb.Club) ClubSummary {
	s := ClubSummary{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		LeaderID:    c.LeaderID,
		Status:      c.Status,
		CreatedAt:   c.CreatedAt,
	}
	if c.Leader != nil {
		s.LeaderName = c.Leader.UserName
	}
	return s
}

func toSummaries(clubs []*clubdb.Club) []ClubSummary {
	out := make([]ClubSummary, 0, len(clubs))
	for _, c := range clubs {
		out = append(out, toSummary(c))
	}
	return out
}
