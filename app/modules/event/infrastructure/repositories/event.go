package eventdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Black-And-White-Club/campus-clubs/app/shared/dbutil"
	"github.com/Black-And-White-Club/campus-clubs/app/shared/status"
	"github.com/uptrace/bun"
)

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new event repository.
func NewRepository(db bun.IDB) *Impl {
	return &Impl{db: db}
}

var _ Repository = (*Impl)(nil)

func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

func translateUnique(err error) error {
	constraint, ok := dbutil.UniqueViolation(err)
	if !ok {
		return err
	}
	switch constraint {
	case constraintEventName:
		return ErrDuplicateEventName
	case constraintMemberPK:
		return ErrDuplicateMembership
	}
	return err
}

func (r *Impl) CreateEvent(ctx context.Context, db bun.IDB, event *Event) error {
	_, err := r.resolveDB(db).NewInsert().
		Model(event).
		Returning("id, created_at").
		Exec(ctx)
	if err != nil {
		if mapped := translateUnique(err); mapped != err {
			return mapped
		}
		return fmt.Errorf("failed to create event: %w", err)
	}
	return nil
}

// GetEventByID retrieves an event with its club.
func (r *Impl) GetEventByID(ctx context.Context, db bun.IDB, id int64) (*Event, error) {
	event := new(Event)
	err := r.resolveDB(db).NewSelect().
		Model(event).
		Relation("Club").
		Where("e.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get event by id: %w", err)
	}
	return event, nil
}

// ListEvents returns the events a browsing user may see, soonest first.
func (r *Impl) ListEvents(ctx context.Context, db bun.IDB, filter ListFilter) ([]*Event, error) {
	var events []*Event
	q := r.resolveDB(db).NewSelect().
		Model(&events).
		Relation("Club")

	switch {
	case filter.ClubID != 0:
		q = q.Where("e.status = ?", status.Accepted).Where("e.club_id = ?", filter.ClubID)
	case filter.LeaderID != 0:
		q = q.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("e.status = ?", status.Accepted).
				WhereOr("e.status = ? AND club.leader_id = ?", status.Pending, filter.LeaderID)
		})
	default:
		q = q.Where("e.status = ?", status.Accepted)
	}

	if err := q.Order("e.start_at ASC", "e.id ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

func (r *Impl) ListEventsByStatus(ctx context.Context, db bun.IDB, st status.Status) ([]*Event, error) {
	var events []*Event
	err := r.resolveDB(db).NewSelect().
		Model(&events).
		Relation("Club").
		Where("e.status = ?", st).
		Order("e.created_at ASC", "e.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list events by status: %w", err)
	}
	return events, nil
}

func (r *Impl) UpdateEventDetails(ctx context.Context, db bun.IDB, event *Event) error {
	res, err := r.resolveDB(db).NewUpdate().
		Model(event).
		Column("name", "description", "start_at", "end_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		if mapped := translateUnique(err); mapped != err {
			return mapped
		}
		return fmt.Errorf("failed to update event: %w", err)
	}
	return requireAffected(res)
}

// UpdateEventStatus is a compare-and-set on the event status.
func (r *Impl) UpdateEventStatus(ctx context.Context, db bun.IDB, id int64, from, to status.Status) error {
	res, err := r.resolveDB(db).NewUpdate().
		Model((*Event)(nil)).
		Set("status = ?", to).
		Where("id = ?", id).
		Where("status = ?", from).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update event status: %w", err)
	}
	return requireAffected(res)
}

func (r *Impl) DeleteEvent(ctx context.Context, db bun.IDB, id int64) error {
	res, err := r.resolveDB(db).NewDelete().
		Model((*Event)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	return requireAffected(res)
}

func (r *Impl) InsertEventUpdate(ctx context.Context, db bun.IDB, update *EventUpdate) error {
	if _, err := r.resolveDB(db).NewInsert().Model(update).Returning("id, created_at").Exec(ctx); err != nil {
		return fmt.Errorf("failed to insert event update: %w", err)
	}
	return nil
}

func (r *Impl) DeleteEventUpdates(ctx context.Context, db bun.IDB, eventID int64) error {
	_, err := r.resolveDB(db).NewDelete().
		Model((*EventUpdate)(nil)).
		Where("event_id = ?", eventID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete event updates: %w", err)
	}
	return nil
}

func (r *Impl) CreateMembership(ctx context.Context, db bun.IDB, member *EventMember) error {
	_, err := r.resolveDB(db).NewInsert().
		Model(member).
		Returning("requested_at").
		Exec(ctx)
	if err != nil {
		if mapped := translateUnique(err); mapped != err {
			return mapped
		}
		return fmt.Errorf("failed to create event membership: %w", err)
	}
	return nil
}

// GetMembership retrieves one membership with its event and the event's club.
func (r *Impl) GetMembership(ctx context.Context, db bun.IDB, userID, eventID int64) (*EventMember, error) {
	member := new(EventMember)
	err := r.resolveDB(db).NewSelect().
		Model(member).
		Relation("Event").
		Relation("Event.Club").
		Where("em.user_id = ?", userID).
		Where("em.event_id = ?", eventID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get event membership: %w", err)
	}
	return member, nil
}

// ListPendingMembershipsByLeader returns Pending requests for every event of
// the club led by leaderID.
func (r *Impl) ListPendingMembershipsByLeader(ctx context.Context, db bun.IDB, leaderID int64) ([]*EventMember, error) {
	var members []*EventMember
	err := r.resolveDB(db).NewSelect().
		Model(&members).
		Relation("User").
		Relation("Event").
		Relation("Event.Club").
		Where("em.status = ?", status.Pending).
		Where("event__club.leader_id = ?", leaderID).
		Order("em.requested_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending event memberships: %w", err)
	}
	return members, nil
}

func (r *Impl) UpdateMembershipStatus(ctx context.Context, db bun.IDB, userID, eventID int64, from, to status.Status, at time.Time) error {
	res, err := r.resolveDB(db).NewUpdate().
		Model((*EventMember)(nil)).
		Set("status = ?", to).
		Set("decided_at = ?", at).
		Where("user_id = ?", userID).
		Where("event_id = ?", eventID).
		Where("status = ?", from).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update event membership status: %w", err)
	}
	return requireAffected(res)
}

func (r *Impl) DeleteMembership(ctx context.Context, db bun.IDB, userID, eventID int64) error {
	res, err := r.resolveDB(db).NewDelete().
		Model((*EventMember)(nil)).
		Where("user_id = ?", userID).
		Where("event_id = ?", eventID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete event membership: %w", err)
	}
	return requireAffected(res)
}

func (r *Impl) DeleteMembershipsByEvent(ctx context.Context, db bun.IDB, eventID int64) (int64, error) {
	res, err := r.resolveDB(db).NewDelete().
		Model((*EventMember)(nil)).
		Where("event_id = ?", eventID).
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to delete event memberships: %w", err)
	}
	return rowsAffected(res)
}

func (r *Impl) DeleteUserMembershipsInClub(ctx context.Context, db bun.IDB, userID, clubID int64) (int64, error) {
	db = r.resolveDB(db)
	res, err := db.NewDelete().
		Model((*EventMember)(nil)).
		Where("user_id = ?", userID).
		Where("event_id IN (?)", clubEventIDs(db, clubID)).
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to delete user event memberships: %w", err)
	}
	return rowsAffected(res)
}

func (r *Impl) DeleteEventsByClub(ctx context.Context, db bun.IDB, clubID int64) error {
	db = r.resolveDB(db)

	if _, err := db.NewDelete().
		Model((*EventMember)(nil)).
		Where("event_id IN (?)", clubEventIDs(db, clubID)).
		Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete club event memberships: %w", err)
	}
	if _, err := db.NewDelete().
		Model((*EventUpdate)(nil)).
		Where("event_id IN (?)", clubEventIDs(db, clubID)).
		Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete club event updates: %w", err)
	}
	if _, err := db.NewDelete().
		Model((*Event)(nil)).
		Where("club_id = ?", clubID).
		Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete club events: %w", err)
	}
	return nil
}

func clubEventIDs(db bun.IDB, clubID int64) *bun.SelectQuery {
	return db.NewSelect().
		Model((*Event)(nil)).
		Column("id").
		Where("club_id = ?", clubID)
}

func rowsAffected(res sql.Result) (int64, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return n, nil
}

func requireAffected(res sql.Result) error {
	n, err := rowsAffected(res)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNoRowsAffected
	}
	return nil
}
