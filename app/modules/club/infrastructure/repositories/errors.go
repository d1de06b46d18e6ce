package clubdb

import "errors"

var (
	ErrNotFound            = errors.New("club record not found")
	ErrNoRowsAffected      = errors.New("no rows affected")
	ErrDuplicateClubName   = errors.New("club name already exists")
	ErrLeaderHasClub       = errors.New("leader already owns a club")
	ErrDuplicateMembership = errors.New("club membership already exists")
)

// Constraint names created by the clubs migration.
const (
	constraintClubName   = "clubs_name_key"
	constraintClubLeader = "clubs_leader_id_key"
	constraintMemberPK   = "club_members_pkey"
)
