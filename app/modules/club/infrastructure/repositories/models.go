package clubdb

import (
	"time"

	userdb "github.com/Black-And-White-Club/campus-clubs/app/modules/user/infrastructure/repositories"
	"github.com/Black-And-White-Club/campus-clubs/app/shared/status"
	"github.com/uptrace/bun"
)

// Club is a student organisation owned by exactly one leader.
type Club struct {
	bun.BaseModel `bun:"table:clubs,alias:c"`

	ID          int64         `bun:"id,pk,autoincrement"`
	Name        string        `bun:"name,notnull"`
	Description string        `bun:"description,notnull,default:''"`
	LeaderID    int64         `bun:"leader_id,notnull"`
	Status      status.Status `bun:"status,notnull"`
	CreatedAt   time.Time     `bun:"created_at,notnull,default:current_timestamp"`

	Leader  *userdb.User  `bun:"rel:belongs-to,join:leader_id=id"`
	Members []*ClubMember `bun:"rel:has-many,join:id=club_id"`
}

// ClubMember is a join request and, once accepted, a membership.
type ClubMember struct {
	bun.BaseModel `bun:"table:club_members,alias:cm"`

	UserID      int64         `bun:"user_id,pk"`
	ClubID      int64         `bun:"club_id,pk"`
	Status      status.Status `bun:"status,notnull"`
	RequestedAt time.Time     `bun:"requested_at,notnull,default:current_timestamp"`
	DecidedAt   *time.Time    `bun:"decided_at"`

	User *userdb.User `bun:"rel:belongs-to,join:user_id=id"`
	Club *Club        `bun:"rel:belongs-to,join:club_id=id"`
}

// ClubUpdate is an audit row written for every rename or description change.
type ClubUpdate struct {
	bun.BaseModel `bun:"table:club_updates,alias:cu"`

	ID             int64     `bun:"id,pk,autoincrement"`
	ClubID         int64     `bun:"club_id,notnull"`
	OldName        string    `bun:"old_name,notnull"`
	NewName        string    `bun:"new_name,notnull"`
	OldDescription string    `bun:"old_description,notnull"`
	NewDescription string    `bun:"new_description,notnull"`
	UpdatedBy      int64     `bun:"updated_by,notnull"`
	CreatedAt      time.Time `bun:"created_at,notnull,default:current_timestamp"`
}
