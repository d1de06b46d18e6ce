package eventservice

import (
	"context"
	"time"

	authdomain "github.com/Black-And-White-Club/campus-clubs/app/modules/auth/domain"
	eventdb "github.com/Black-And-White-Club/campus-clubs/app/modules/event/infrastructure/repositories"
	"github.com/Black-And-White-Club/campus-clubs/app/shared/status"
)

// Service defines the event lifecycle and event membership operations.
type Service interface {
	CreateEvent(ctx context.Context, actor authdomain.Actor, req CreateEventRequest) (*EventSummary, error)

	// UpdateEvent edits the live event and records an audit row. Zero
	// times keep the current schedule.
	UpdateEvent(ctx context.Context, actor authdomain.Actor, req UpdateEventRequest) error

	DeleteEvent(ctx context.Context, actor authdomain.Actor, eventID int64) error
	ListEvents(ctx context.Context, filter eventdb.ListFilter) ([]EventSummary, error)

	ListPendingEvents(ctx context.Context, actor authdomain.Actor) ([]EventSummary, error)
	DecideEvent(ctx context.Context, actor authdomain.Actor, eventID int64, decision status.Decision) error

	RequestJoinEvent(ctx context.Context, actor authdomain.Actor, studentID, eventID int64) error
	ListPendingEventRequests(ctx context.Context, actor authdomain.Actor, leaderID int64) ([]EventJoinRequest, error)
	DecideEventRequest(ctx context.Context, actor authdomain.Actor, memberID, eventID int64, decision status.Decision) error
	KickEventMember(ctx context.Context, actor authdomain.Actor, memberID, eventID int64) error
}

type CreateEventRequest struct {
	ClubID      int64
	Name        string
	Description string
	StartAt     time.Time
	EndAt       time.Time
}

type UpdateEventRequest struct {
	EventID     int64
	Name        string
	Description string
	StartAt     time.Time
	EndAt       time.Time
}

type EventSummary struct {
	ID          int64         `json:"id"`
	Name        string        `json:"eventName"`
	Description string        `json:"description"`
	ClubID      int64         `json:"clubId"`
	ClubName    string        `json:"clubName"`
	StartAt     time.Time     `json:"startAt"`
	EndAt       time.Time     `json:"endAt"`
	Status      status.Status `json:"status"`
}

type EventJoinRequest struct {
	UserID      int64     `json:"userId"`
	UserName    string    `json:"userName"`
	EventID     int64     `json:"eventId"`
	EventName   string    `json:"eventName"`
	RequestedAt time.Time `json:"requestedAt"`
}
