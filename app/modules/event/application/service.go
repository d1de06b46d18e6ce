package eventservice

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
	eventdb "github.com/Black-And-White-Club/campus-clubs/app/modules/event/infrastructure/repositories"
	userdb "github.com/Black-And-White-Club/campus-clubs/app/modules/user/infrastructure/repositories"
	"github.com/Black-And-White-Club/campus-clubs/app/shared/metrics"
	"github.com/Black-And-White-Club/campus-clubs/app/shared/operation"
	"github.com/Black-And-White-Club/campus-clubs/app/shared/status"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"
)

// EventService implements Service.
type EventService struct {
	repo      eventdb.Repository
	clubs     clubdb.Repository
	users     userdb.Repository
	publisher eventbus.Publisher
	logger    *slog.Logger
	runner    *operation.Runner
	now       func() time.Time
}

func NewEventService(
	repo eventdb.Repository,
	clubs clubdb.Repository,
	users userdb.Repository,
	publisher eventbus.Publisher,
	logger *slog.Logger,
	m metrics.OperationMetrics,
	tracer trace.Tracer,
	db *bun.DB,
) *EventService {
	if logger == nil {
		logger = slog.Default()
	}
	return &EventService{
		repo:      repo,
		clubs:     clubs,
		users:     users,
		publisher: publisher,
		logger:    logger,
		runner:    operation.NewRunner("EventService", logger, m, tracer, db),
		now:       time.Now,
	}
}

var _ Service = (*EventService)(nil)

func id(v int64) string { return strconv.FormatInt(v, 10) }

func validateEventName(name string) error {
	if name == "" {
		return ErrEventNameRequired
	}
	if utf8.RuneCountInString(name) > maxEventNameLength {
		return ErrEventNameTooLong
	}
	return nil
}

func validateSchedule(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return ErrScheduleRequired
	}
	if !start.Before(end) {
		return ErrInvalidSchedule
	}
	return nil
}

func (s *EventService) CreateEvent(ctx context.Context, actor authdomain.Actor, req CreateEventRequest) (*EventSummary, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)

	return operation.Run(s.runner, ctx, "CreateEvent", id(req.ClubID), func(ctx context.Context, db bun.IDB) (results.OperationResult[*EventSummary, error], error) {
		club, err := s.clubs.GetClubByID(ctx, db, req.ClubID)
		if err != nil {
			if errors.Is(err, clubdb.ErrNotFound) {
				return operation.Failure[*EventSummary](ErrClubNotFound)
			}
			return results.OperationResult[*EventSummary, error]{}, err
		}
		if !actor.Is(club.LeaderID) {
			return operation.Failure[*EventSummary](ErrForbidden)
		}
		if club.Status != status.Accepted {
			return operation.Failure[*EventSummary](ErrClubNotAccepted)
		}
		if err := validateEventName(req.Name); err != nil {
			return operation.Failure[*EventSummary](err)
		}
		if err := validateSchedule(req.StartAt, req.EndAt); err != nil {
			return operation.Failure[*EventSummary](err)
		}

		event := &eventdb.Event{
			Name:        req.Name,
			Description: req.Description,
			ClubID:      club.ID,
			StartAt:     req.StartAt.UTC(),
			EndAt:       req.EndAt.UTC(),
			Status:      status.Pending,
			Club:        club,
		}
		if err := s.repo.CreateEvent(ctx, db, event); err != nil {
			if errors.Is(err, eventdb.ErrDuplicateEventName) {
				return operation.Failure[*EventSummary](ErrDuplicateEventName)
			}
			return results.OperationResult[*EventSummary, error]{}, err
		}

		summary := toSummary(event)
		return operation.Success(&summary)
	})
}

func (s *EventService) UpdateEvent(ctx context.Context, actor authdomain.Actor, req UpdateEventRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)

	_, err := operation.Run(s.runner, ctx, "UpdateEvent", id(req.EventID), func(ctx context.Context, db bun.IDB) (results.OperationResult[struct{}, error], error) {
		event, failure, err := s.ownedEvent(ctx, db, actor, req.EventID)
		if err != nil {
			return results.OperationResult[struct{}, error]{}, err
		}
		if failure != nil {
			return operation.Failure[struct{}](failure)
		}
		if err := validateEventName(req.Name); err != nil {
			return operation.Failure[struct{}](err)
		}

		start, end := event.StartAt, event.EndAt
		if !req.StartAt.IsZero() {
			start = req.StartAt.UTC()
		}
		if !req.EndAt.IsZero() {
			end = req.EndAt.UTC()
		}
		if err := validateSchedule(start, end); err != nil {
			return operation.Failure[struct{}](err)
		}

		audit := &eventdb.EventUpdate{
			EventID:        event.ID,
			OldName:        event.Name,
			NewName:        req.Name,
			OldDescription: event.Description,
			NewDescription: req.Description,
			OldStartAt:     event.StartAt,
			NewStartAt:     start,
			OldEndAt:       event.EndAt,
			NewEndAt:       end,
			UpdatedBy:      actor.UserID,
		}

		event.Name = req.Name
		event.Description = req.Description
		event.StartAt = start
		event.EndAt = end
		if err := s.repo.UpdateEventDetails(ctx, db, event); err != nil {
			switch {
			case errors.Is(err, eventdb.ErrDuplicateEventName):
				return operation.Failure[struct{}](ErrDuplicateEventName)
			case errors.Is(err, eventdb.ErrNoRowsAffected):
				return operation.Failure[struct{}](ErrEventNotFound)
			}
			return results.OperationResult[struct{}, error]{}, err
		}
		if err := s.repo.InsertEventUpdate(ctx, db, audit); err != nil {
			return results.OperationResult[struct{}, error]{}, err
		}
		return operation.Success(struct{}{})
	})
	return err
}

func (s *EventService) DeleteEvent(ctx context.Context, actor authdomain.Actor, eventID int64) error {
	_, err := operation.Run(s.runner, ctx, "DeleteEvent", id(eventID), func(ctx context.Context, db bun.IDB) (results.OperationResult[struct{}, error], error) {
		_, failure, err := s.ownedEvent(ctx, db, actor, eventID)
		if err != nil {
			return results.OperationResult[struct{}, error]{}, err
		}
		if failure != nil {
			return operation.Failure[struct{}](failure)
		}

		if _, err := s.repo.DeleteMembershipsByEvent(ctx, db, eventID); err != nil {
			return results.OperationResult[struct{}, error]{}, err
		}
		if err := s.repo.DeleteEventUpdates(ctx, db, eventID); err != nil {
			return results.OperationResult[struct{}, error]{}, err
		}
		if err := s.repo.DeleteEvent(ctx, db, eventID); err != nil {
			if errors.Is(err, eventdb.ErrNoRowsAffected) {
				return operation.Failure[struct{}](ErrEventNotFound)
			}
			return results.OperationResult[struct{}, error]{}, err
		}
		return operation.Success(struct{}{})
	})
	return err
}

func (s *EventService) ListEvents(ctx context.Context, filter eventdb.ListFilter) ([]EventSummary, error) {
	return operation.Run(s.runner, ctx, "ListEvents", id(filter.ClubID), func(ctx context.Context, db bun.IDB) (results.OperationResult[[]EventSummary, error], error) {
		events, err := s.repo.ListEvents(ctx, db, filter)
		if err != nil {
			return results.OperationResult[[]EventSummary, error]{}, err
		}
		return operation.Success(toSummaries(events))
	})
}

func (s *EventService) ListPendingEvents(ctx context.Context, actor authdomain.Actor) ([]EventSummary, error) {
	return operation.Run(s.runner, ctx, "ListPendingEvents", id(actor.UserID), func(ctx context.Context, db bun.IDB) (results.OperationResult[[]EventSummary, error], error) {
		if !actor.IsAdmin() {
			return operation.Failure[[]EventSummary](ErrAdminOnly)
		}
		events, err := s.repo.ListEventsByStatus(ctx, db, status.Pending)
		if err != nil {
			return results.OperationResult[[]EventSummary, error]{}, err
		}
		return operation.Success(toSummaries(events))
	})
}

func (s *EventService) DecideEvent(ctx context.Context, actor authdomain.Actor, eventID int64, decision status.Decision) error {
	event, err := operation.Run(s.runner, ctx, "DecideEvent", id(eventID), func(ctx context.Context, db bun.IDB) (results.OperationResult[*eventdb.Event, error], error) {
		if !actor.IsAdmin() {
			return operation.Failure[*eventdb.Event](ErrAdminOnly)
		}

		event, err := s.repo.GetEventByID(ctx, db, eventID)
		if err != nil {
			if errors.Is(err, eventdb.ErrNotFound) {
				return operation.Failure[*eventdb.Event](ErrEventNotPending)
			}
			return results.OperationResult[*eventdb.Event, error]{}, err
		}

		next, err := event.Status.Decide(decision)
		if err != nil {
			if errors.Is(err, status.ErrInvalidDecision) {
				return operation.Failure[*eventdb.Event](ErrInvalidDecisionArg)
			}
			return operation.Failure[*eventdb.Event](ErrEventNotPending)
		}

		if err := s.repo.UpdateEventStatus(ctx, db, eventID, event.Status, next); err != nil {
			if errors.Is(err, eventdb.ErrNoRowsAffected) {
				return operation.Failure[*eventdb.Event](ErrEventNotPending)
			}
			return results.OperationResult[*eventdb.Event, error]{}, err
		}
		event.Status = next
		return operation.Success(event)
	})
	if err != nil {
		return err
	}

	eventbus.Notify(ctx, s.publisher, s.logger, eventbus.EventStatusChangedV1, eventbus.EventStatusChangedPayload{
		EventID: event.ID,
		ClubID:  event.ClubID,
		Status:  event.Status,
	})
	return nil
}

// ownedEvent loads eventID and checks the actor leads its club. failure is a
// domain failure, err an infrastructure one.
func (s *EventService) ownedEvent(ctx context.Context, db bun.IDB, actor authdomain.Actor, eventID int64) (event *eventdb.Event, failure, err error) {
	event, err = s.repo.GetEventByID(ctx, db, eventID)
	if err != nil {
		if errors.Is(err, eventdb.ErrNotFound) {
			return nil, ErrEventNotFound, nil
		}
		return nil, nil, err
	}
	if event.Club == nil || !actor.Is(event.Club.LeaderID) {
		return nil, ErrForbidden, nil
	}
	return event, nil, nil
}

func toSummary(e *eventdb.Event) EventSummary {
	s := EventSummary{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		ClubID:      e.ClubID,
		StartAt:     e.StartAt,
		EndAt:       e.EndAt,
		Status:      e.Status,
	}
	if e.Club != nil {
		s.ClubName = e.Club.Name
	}
	return s
}

func toSummaries(events []*eventdb.Event) []EventSummary {
	out := make([]EventSummary, 0, len(events))
	for _, e := range events {
		out = append(out, toSummary(e))
	}
	return out
}
