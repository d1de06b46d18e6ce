package eventhandlers

import (
	"context"

	authdomain "github.com/Black-And-White-Club/campus-clubs/app/modules/auth/domain"
	eventservice "github.com/Black-And-White-Club/campus-clubs/app/modules/event/application"
	eventdb "github.com/Black-And-White-Club/campus-clubs/app/modules/event/infrastructure/repositories"
	"github.com/Black-And-White-Club/campus-clubs/app/shared/status"
)

// FakeService is a programmable eventservice.Service. Unset funcs succeed
// with zero values.
type FakeService struct {
	CreateEventFunc              func(ctx context.Context, actor authdomain.Actor, req eventservice.CreateEventRequest) (*eventservice.EventSummary, error)
	UpdateEventFunc              func(ctx context.Context, actor authdomain.Actor, req eventservice.UpdateEventRequest) error
	DeleteEventFunc              func(ctx context.Context, actor authdomain.Actor, eventID int64) error
	ListEventsFunc               func(ctx context.Context, filter eventdb.ListFilter) ([]eventservice.EventSummary, error)
	ListPendingEventsFunc        func(ctx context.Context, actor authdomain.Actor) ([]eventservice.EventSummary, error)
	DecideEventFunc              func(ctx context.Context, actor authdomain.Actor, eventID int64, decision status.Decision) error
	RequestJoinEventFunc         func(ctx context.Context, actor authdomain.Actor, studentID, eventID int64) error
	ListPendingEventRequestsFunc func(ctx context.Context, actor authdomain.Actor, leaderID int64) ([]eventservice.EventJoinRequest, error)
	DecideEventRequestFunc       func(ctx context.Context, actor authdomain.Actor, memberID, eventID int64, decision status.Decision) error
	KickEventMemberFunc          func(ctx context.Context, actor authdomain.Actor, memberID, eventID int64) error
}

func (f *FakeService) CreateEvent(ctx context.Context, actor authdomain.Actor, req eventservice.CreateEventRequest) (*eventservice.EventSummary, error) {
	if f.CreateEventFunc != nil {
		return f.CreateEventFunc(ctx, actor, req)
	}
	return &eventservice.EventSummary{}, nil
}

func (f *FakeService) UpdateEvent(ctx context.Context, actor authdomain.Actor, req eventservice.UpdateEventRequest) error {
	if f.UpdateEventFunc != nil {
		return f.UpdateEventFunc(ctx, actor, req)
	}
	return nil
}

func (f *FakeService) DeleteEvent(ctx context.Context, actor authdomain.Actor, eventID int64) error {
	if f.DeleteEventFunc != nil {
		return f.DeleteEventFunc(ctx, actor, eventID)
	}
	return nil
}

func (f *FakeService) ListEvents(ctx context.Context, filter eventdb.ListFilter) ([]eventservice.EventSummary, error) {
	if f.ListEventsFunc != nil {
		return f.ListEventsFunc(ctx, filter)
	}
	return []eventservice.EventSummary{}, nil
}

func (f *FakeService) ListPendingEvents(ctx context.Context, actor authdomain.Actor) ([]eventservice.EventSummary, error) {
	if f.ListPendingEventsFunc != nil {
		return f.ListPendingEventsFunc(ctx, actor)
	}
	return []eventservice.EventSummary{}, nil
}

func (f *FakeService) DecideEvent(ctx context.Context, actor authdomain.Actor, eventID int64, decision status.Decision) error {
	if f.DecideEventFunc != nil {
		return f.DecideEventFunc(ctx, actor, eventID, decision)
	}
	return nil
}

func (f *FakeService) RequestJoinEvent(ctx context.Context, actor authdomain.Actor, studentID, eventID int64) error {
	if f.RequestJoinEventFunc != nil {
		return f.RequestJoinEventFunc(ctx, actor, studentID, eventID)
	}
	return nil
}

func (f *FakeService) ListPendingEventRequests(ctx context.Context, actor authdomain.Actor, leaderID int64) ([]eventservice.EventJoinRequest, error) {
	if f.ListPendingEventRequestsFunc != nil {
		return f.ListPendingEventRequestsFunc(ctx, actor, leaderID)
	}
	return []eventservice.EventJoinRequest{}, nil
}

func (f *FakeService) DecideEventRequest(ctx context.Context, actor authdomain.Actor, memberID, eventID int64, decision status.Decision) error {
	if f.DecideEventRequestFunc != nil {
		return f.DecideEventRequestFunc(ctx, actor, memberID, eventID, decision)
	}
	return nil
}

func (f *FakeService) KickEventMember(ctx context.Context, actor authdomain.Actor, memberID, eventID int64) error {
	if f.KickEventMemberFunc != nil {
		return f.KickEventMemberFunc(ctx, actor, memberID, eventID)
	}
	return nil
}

var _ eventservice.Service = (*FakeService)(nil)
