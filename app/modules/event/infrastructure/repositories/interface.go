package eventdb

import (
	"context"
	"time"

	"github.com/Black-And-White-Club/campus-clubs/app/shared/status"
	"github.com/uptrace/bun"
)

// Repository defines the persistence contract for events and event
// memberships. Error semantics follow clubdb.Repository.
type Repository interface {
	CreateEvent(ctx context.Context, db bun.IDB, event *Event) error
	GetEventByID(ctx context.Context, db bun.IDB, id int64) (*Event, error)
	ListEvents(ctx context.Context, db bun.IDB, filter ListFilter) ([]*Event, error)
	ListEventsByStatus(ctx context.Context, db bun.IDB, st status.Status) ([]*Event, error)
	UpdateEventDetails(ctx context.Context, db bun.IDB, event *Event) error
	UpdateEventStatus(ctx context.Context, db bun.IDB, id int64, from, to status.Status) error
	DeleteEvent(ctx context.Context, db bun.IDB, id int64) error

	InsertEventUpdate(ctx context.Context, db bun.IDB, update *EventUpdate) error
	DeleteEventUpdates(ctx context.Context, db bun.IDB, eventID int64) error

	CreateMembership(ctx context.Context, db bun.IDB, member *EventMember) error
	GetMembership(ctx context.Context, db bun.IDB, userID, eventID int64) (*EventMember, error)
	ListPendingMembershipsByLeader(ctx context.Context, db bun.IDB, leaderID int64) ([]*EventMember, error)
	UpdateMembershipStatus(ctx context.Context, db bun.IDB, userID, eventID int64, from, to status.Status, at time.Time) error
	DeleteMembership(ctx context.Context, db bun.IDB, userID, eventID int64) error
	DeleteMembershipsByEvent(ctx context.Context, db bun.IDB, eventID int64) (int64, error)

	// DeleteUserMembershipsInClub removes userID from every event of clubID.
	DeleteUserMembershipsInClub(ctx context.Context, db bun.IDB, userID, clubID int64) (int64, error)

	// DeleteEventsByClub removes every event of clubID with its memberships
	// and audit rows.
	DeleteEventsByClub(ctx context.Context, db bun.IDB, clubID int64) error
}
