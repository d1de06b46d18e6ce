package dashboarddb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	clubdb "github.com/Black-And-White-Club/campus-clubs/app/modules/club/infrastructure/repositories"
	eventdb "github.com/Black-And-White-Club/campus-clubs/app/modules/event/infrastructure/repositories"
	userdb "github.com/Black-And-White-Club/campus-clubs/app/modules/user/infrastructure/repositories"
	"github.com/Black-And-White-Club/campus-clubs/app/shared/status"
	"github.com/uptrace/bun"
)

var ErrNotFound = errors.New("dashboard record not found")

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

func (r *Impl) CountClubs(ctx context.Context, db bun.IDB, st status.Status) (int, error) {
	n, err := r.resolveDB(db).NewSelect().
		Model((*clubdb.Club)(nil)).
		Where("c.status = ?", st).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count clubs: %w", err)
	}
	return n, nil
}

func (r *Impl) CountEvents(ctx context.Context, db bun.IDB, st status.Status) (int, error) {
	n, err := r.resolveDB(db).NewSelect().
		Model((*eventdb.Event)(nil)).
		Where("e.status = ?", st).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count events: %w", err)
	}
	return n, nil
}

func (r *Impl) CountUsersByRole(ctx context.Context, db bun.IDB, role string) (int, error) {
	n, err := r.resolveDB(db).NewSelect().
		Model((*userdb.User)(nil)).
		Join("JOIN roles AS r ON r.id = u.role_id").
		Where("r.name = ?", role).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count users by role: %w", err)
	}
	return n, nil
}

func (r *Impl) GetLeaderClub(ctx context.Context, db bun.IDB, leaderID int64) (*clubdb.Club, error) {
	club := new(clubdb.Club)
	err := r.resolveDB(db).NewSelect().
		Model(club).
		Where("c.leader_id = ?", leaderID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get leader club: %w", err)
	}
	return club, nil
}

func (r *Impl) CountClubMembers(ctx context.Context, db bun.IDB, clubID int64, st status.Status) (int, error) {
	n, err := r.resolveDB(db).NewSelect().
		Model((*clubdb.ClubMember)(nil)).
		Where("cm.club_id = ?", clubID).
		Where("cm.status = ?", st).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count club members: %w", err)
	}
	return n, nil
}

func (r *Impl) CountClubEvents(ctx context.Context, db bun.IDB, clubID int64, st status.Status) (int, error) {
	n, err := r.resolveDB(db).NewSelect().
		Model((*eventdb.Event)(nil)).
		Where("e.club_id = ?", clubID).
		Where("e.status = ?", st).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count club events: %w", err)
	}
	return n, nil
}

func (r *Impl) CountClubEventMembers(ctx context.Context, db bun.IDB, clubID int64, st status.Status) (int, error) {
	n, err := r.resolveDB(db).NewSelect().
		Model((*eventdb.EventMember)(nil)).
		Join("JOIN events AS e ON e.id = em.event_id").
		Where("e.club_id = ?", clubID).
		Where("em.status = ?", st).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count club event members: %w", err)
	}
	return n, nil
}

// ListClubMemberships returns every club row of the user with its club, in
// any status.
func (r *Impl) ListClubMemberships(ctx context.Context, db bun.IDB, userID int64) ([]*clubdb.ClubMember, error) {
	var members []*clubdb.ClubMember
	err := r.resolveDB(db).NewSelect().
		Model(&members).
		Relation("Club").
		Where("cm.user_id = ?", userID).
		Order("cm.club_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list club memberships: %w", err)
	}
	return members, nil
}

func (r *Impl) ListEventMemberships(ctx context.Context, db bun.IDB, userID int64) ([]*eventdb.EventMember, error) {
	var members []*eventdb.EventMember
	err := r.resolveDB(db).NewSelect().
		Model(&members).
		Relation("Event").
		Relation("Event.Club").
		Where("em.user_id = ?", userID).
		Order("event.start_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list event memberships: %w", err)
	}
	return members, nil
}
