package clubdb

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

// NewRepository creates a new club repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

// resolveDB returns the provided db handle, falling back to the repository's
// default connection if db is nil.
func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

// translateUnique maps unique violations on club tables to sentinels.
func translateUnique(err error) error {
	constraint, ok := dbutil.UniqueViolation(err)
	if !ok {
		return err
	}
	switch constraint {
	case constraintClubName:
		return ErrDuplicateClubName
	case constraintClubLeader:
		return ErrLeaderHasClub
	case constraintMemberPK:
		return ErrDuplicateMembership
	}
	return err
}

// CreateClub inserts club and fills in its ID and creation time.
func (r *Impl) CreateClub(ctx context.Context, db bun.IDB, club *Club) error {
	_, err := r.resolveDB(db).NewInsert().
		Model(club).
		Returning("id, created_at").
		Exec(ctx)
	if err != nil {
		if mapped := translateUnique(err); mapped != err {
			return mapped
		}
		return fmt.Errorf("failed to create club: %w", err)
	}
	return nil
}

// GetClubByID retrieves a club with its leader.
func (r *Impl) GetClubByID(ctx context.Context, db bun.IDB, id int64) (*Club, error) {
	club := new(Club)
	err := r.resolveDB(db).NewSelect().
		Model(club).
		Relation("Leader").
		Where("c.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get club by id: %w", err)
	}
	return club, nil
}

// GetClubByLeader retrieves the club owned by leaderID, whatever its status.
func (r *Impl) GetClubByLeader(ctx context.Context, db bun.IDB, leaderID int64) (*Club, error) {
	club := new(Club)
	err := r.resolveDB(db).NewSelect().
		Model(club).
		Relation("Leader").
		Where("c.leader_id = ?", leaderID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get club by leader: %w", err)
	}
	return club, nil
}

// GetClubWithMembers retrieves the leader's club in status st together with
// every membership row and the member's user.
func (r *Impl) GetClubWithMembers(ctx context.Context, db bun.IDB, leaderID int64, st status.Status) (*Club, error) {
	club := new(Club)
	err := r.resolveDB(db).NewSelect().
		Model(club).
		Relation("Leader").
		Relation("Members", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Order("cm.requested_at ASC")
		}).
		Relation("Members.User").
		Where("c.leader_id = ?", leaderID).
		Where("c.status = ?", st).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get club with members: %w", err)
	}
	return club, nil
}

// ListClubsByStatus returns every club in st, oldest first.
func (r *Impl) ListClubsByStatus(ctx context.Context, db bun.IDB, st status.Status) ([]*Club, error) {
	var clubs []*Club
	err := r.resolveDB(db).NewSelect().
		Model(&clubs).
		Relation("Leader").
		Where("c.status = ?", st).
		Order("c.created_at ASC", "c.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list clubs: %w", err)
	}
	return clubs, nil
}

// UpdateClubDetails writes the name and description of club.
func (r *Impl) UpdateClubDetails(ctx context.Context, db bun.IDB, club *Club) error {
	res, err := r.resolveDB(db).NewUpdate().
		Model(club).
		Column("name", "description").
		WherePK().
		Exec(ctx)
	if err != nil {
		if mapped := translateUnique(err); mapped != err {
			return mapped
		}
		return fmt.Errorf("failed to update club: %w", err)
	}
	return requireAffected(res)
}

// UpdateClubStatus moves the club from one status to another. It matches no
// row, and returns ErrNoRowsAffected, when the club is no longer in from.
func (r *Impl) UpdateClubStatus(ctx context.Context, db bun.IDB, id int64, from, to status.Status) error {
	res, err := r.resolveDB(db).NewUpdate().
		Model((*Club)(nil)).
		Set("status = ?", to).
		Where("id = ?", id).
		Where("status = ?", from).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update club status: %w", err)
	}
	return requireAffected(res)
}

func (r *Impl) DeleteClub(ctx context.Context, db bun.IDB, id int64) error {
	res, err := r.resolveDB(db).NewDelete().
		Model((*Club)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete club: %w", err)
	}
	return requireAffected(res)
}

func (r *Impl) InsertClubUpdate(ctx context.Context, db bun.IDB, update *ClubUpdate) error {
	if _, err := r.resolveDB(db).NewInsert().Model(update).Returning("id, created_at").Exec(ctx); err != nil {
		return fmt.Errorf("failed to insert club update: %w", err)
	}
	return nil
}

func (r *Impl) DeleteClubUpdates(ctx context.Context, db bun.IDB, clubID int64) error {
	_, err := r.resolveDB(db).NewDelete().
		Model((*ClubUpdate)(nil)).
		Where("club_id = ?", clubID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete club updates: %w", err)
	}
	return nil
}

// CreateMembership inserts a join request. The composite primary key is the
// guard against duplicates.
func (r *Impl) CreateMembership(ctx context.Context, db bun.IDB, member *ClubMember) error {
	_, err := r.resolveDB(db).NewInsert().
		Model(member).
		Returning("requested_at").
		Exec(ctx)
	if err != nil {
		if mapped := translateUnique(err); mapped != err {
			return mapped
		}
		return fmt.Errorf("failed to create club membership: %w", err)
	}
	return nil
}

func (r *Impl) GetMembership(ctx context.Context, db bun.IDB, userID, clubID int64) (*ClubMember, error) {
	member := new(ClubMember)
	err := r.resolveDB(db).NewSelect().
		Model(member).
		Relation("User").
		Where("cm.user_id = ?", userID).
		Where("cm.club_id = ?", clubID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get club membership: %w", err)
	}
	return member, nil
}

func (r *Impl) ListMembershipsByStatus(ctx context.Context, db bun.IDB, clubID int64, st status.Status) ([]*ClubMember, error) {
	var members []*ClubMember
	err := r.resolveDB(db).NewSelect().
		Model(&members).
		Relation("User").
		Where("cm.club_id = ?", clubID).
		Where("cm.status = ?", st).
		Order("cm.requested_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list club memberships: %w", err)
	}
	return members, nil
}

// UpdateMembershipStatus is a compare-and-set on the membership status.
func (r *Impl) UpdateMembershipStatus(ctx context.Context, db bun.IDB, userID, clubID int64, from, to status.Status, at time.Time) error {
	res, err := r.resolveDB(db).NewUpdate().
		Model((*ClubMember)(nil)).
		Set("status = ?", to).
		Set("decided_at = ?", at).
		Where("user_id = ?", userID).
		Where("club_id = ?", clubID).
		Where("status = ?", from).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update club membership status: %w", err)
	}
	return requireAffected(res)
}

func (r *Impl) DeleteMembership(ctx context.Context, db bun.IDB, userID, clubID int64) error {
	res, err := r.resolveDB(db).NewDelete().
		Model((*ClubMember)(nil)).
		Where("user_id = ?", userID).
		Where("club_id = ?", clubID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete club membership: %w", err)
	}
	return requireAffected(res)
}

func (r *Impl) DeleteMembershipsByClub(ctx context.Context, db bun.IDB, clubID int64) (int64, error) {
	res, err := r.resolveDB(db).NewDelete().
		Model((*ClubMember)(nil)).
		Where("club_id = ?", clubID).
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to delete club memberships: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return n, nil
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return ErrNoRowsAffected
	}
	return nil
}
