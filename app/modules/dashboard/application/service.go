package dashboardservice

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"github.com/Black-And-White-Club/frolf-bot-shared/utils/results"
	authdomain "github.com/Black-And-White-Club/campus-clubs/app/modules/auth/domain"
	dashboarddb "github.com/Black-And-White-Club/campus-clubs/app/modules/dashboard/infrastructure/repositories"
	"github.com/Black-And-White-Club/campus-clubs/app/shared/metrics"
	"github.com/Black-And-White-Club/campus-clubs/app/shared/operation"
	"github.com/Black-And-White-Club/campus-clubs/app/shared/status"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"
)

// DashboardService implements Service.
type DashboardService struct {
	repo   dashboarddb.Repository
	logger *slog.Logger
	runner *operation.Runner
}

func NewDashboardService(
	repo dashboarddb.Repository,
	logger *slog.Logger,
	m metrics.OperationMetrics,
	tracer trace.Tracer,
	db *bun.DB,
) *DashboardService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardService{
		repo:   repo,
		logger: logger,
		runner: operation.NewRunner("DashboardService", logger, m, tracer, db),
	}
}

var _ Service = (*DashboardService)(nil)

// counter runs a list of count queries, stopping at the first error.
type counter struct {
	err error
}

func (c *counter) count(dst *int, fn func() (int, error)) {
	if c.err != nil {
		return
	}
	*dst, c.err = fn()
}

func (s *DashboardService) AdminDashboard(ctx context.Context, actor authdomain.Actor) (*AdminDashboard, error) {
	return operation.Run(s.runner, ctx, "AdminDashboard", strconv.FormatInt(actor.UserID, 10), func(ctx context.Context, db bun.IDB) (results.OperationResult[*AdminDashboard, error], error) {
		if !actor.IsAdmin() {
			return operation.Failure[*AdminDashboard](ErrAdminOnly)
		}

		d := &AdminDashboard{}
		var c counter
		c.count(&d.AcceptedClubs, func() (int, error) { return s.repo.CountClubs(ctx, db, status.Accepted) })
		c.count(&d.PendingClubs, func() (int, error) { return s.repo.CountClubs(ctx, db, status.Pending) })
		c.count(&d.AcceptedEvents, func() (int, error) { return s.repo.CountEvents(ctx, db, status.Accepted) })
		c.count(&d.PendingEvents, func() (int, error) { return s.repo.CountEvents(ctx, db, status.Pending) })
		c.count(&d.TotalClubLeaders, func() (int, error) { return s.repo.CountUsersByRole(ctx, db, authdomain.RoleClubLeader.String()) })
		c.count(&d.TotalStudents, func() (int, error) { return s.repo.CountUsersByRole(ctx, db, authdomain.RoleStudent.String()) })
		if c.err != nil {
			return results.OperationResult[*AdminDashboard, error]{}, c.err
		}
		return operation.Success(d)
	})
}

func (s *DashboardService) LeaderDashboard(ctx context.Context, actor authdomain.Actor, leaderID int64) (*LeaderDashboard, error) {
	return operation.Run(s.runner, ctx, "LeaderDashboard", strconv.FormatInt(leaderID, 10), func(ctx context.Context, db bun.IDB) (results.OperationResult[*LeaderDashboard, error], error) {
		if !actor.Is(leaderID) {
			return operation.Failure[*LeaderDashboard](ErrForbidden)
		}

		club, err := s.repo.GetLeaderClub(ctx, db, leaderID)
		if err != nil {
			if errors.Is(err, dashboarddb.ErrNotFound) {
				return operation.Success(&LeaderDashboard{ClubStatus: NoClub})
			}
			return results.OperationResult[*LeaderDashboard, error]{}, err
		}

		d := &LeaderDashboard{ClubName: club.Name, ClubStatus: club.Status.String()}
		var c counter
		c.count(&d.TotalMembers, func() (int, error) { return s.repo.CountClubMembers(ctx, db, club.ID, status.Accepted) })
		c.count(&d.PendingRequests, func() (int, error) { return s.repo.CountClubMembers(ctx, db, club.ID, status.Pending) })
		c.count(&d.TotalEvents, func() (int, error) { return s.repo.CountClubEvents(ctx, db, club.ID, status.Accepted) })
		c.count(&d.PendingEvents, func() (int, error) { return s.repo.CountClubEvents(ctx, db, club.ID, status.Pending) })
		c.count(&d.AcceptedEventMembers, func() (int, error) { return s.repo.CountClubEventMembers(ctx, db, club.ID, status.Accepted) })
		c.count(&d.PendingEventRequests, func() (int, error) { return s.repo.CountClubEventMembers(ctx, db, club.ID, status.Pending) })
		if c.err != nil {
			return results.OperationResult[*LeaderDashboard, error]{}, c.err
		}
		return operation.Success(d)
	})
}

func (s *DashboardService) StudentDashboard(ctx context.Context, actor authdomain.Actor, studentID int64) (*StudentDashboard, error) {
	return operation.Run(s.runner, ctx, "StudentDashboard", strconv.FormatInt(studentID, 10), func(ctx context.Context, db bun.IDB) (results.OperationResult[*StudentDashboard, error], error) {
		if !actor.Is(studentID) {
			return operation.Failure[*StudentDashboard](ErrForbidden)
		}

		clubs, err := s.repo.ListClubMemberships(ctx, db, studentID)
		if err != nil {
			return results.OperationResult[*StudentDashboard, error]{}, err
		}
		events, err := s.repo.ListEventMemberships(ctx, db, studentID)
		if err != nil {
			return results.OperationResult[*StudentDashboard, error]{}, err
		}

		d := &StudentDashboard{
			Clubs:  make([]StudentClub, 0, len(clubs)),
			Events: make([]StudentEvent, 0, len(events)),
		}
		for _, m := range clubs {
			switch m.Status {
			case status.Accepted:
				d.JoinedClubs++
			case status.Pending:
				d.PendingClubRequests++
			}
			c := StudentClub{ID: m.ClubID, Status: m.Status}
			if m.Club != nil {
				c.Name = m.Club.Name
				c.Description = m.Club.Description
			}
			d.Clubs = append(d.Clubs, c)
		}
		for _, m := range events {
			switch m.Status {
			case status.Accepted:
				d.JoinedEvents++
			case status.Pending:
				d.PendingEventRequests++
			}
			e := StudentEvent{ID: m.EventID, Status: m.Status}
			if m.Event != nil {
				e.Name = m.Event.Name
				e.Description = m.Event.Description
				if m.Event.Club != nil {
					e.ClubName = m.Event.Club.Name
				}
				e.StartAt = m.Event.StartAt
				e.EndAt = m.Event.EndAt
			}
			d.Events = append(d.Events, e)
		}
		return operation.Success(d)
	})
}
