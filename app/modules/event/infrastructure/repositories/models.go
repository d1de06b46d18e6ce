package eventdb

import (
	"time"

	clubdb "github.com/Black-And-White-Club/campus-clubs/app/modules/club/infrastructure/repositories"
	userdb "github.com/Black-And-White-Club/campus-clubs/app/modules/user/infrastructure/repositories"
	"github.com/Black-And-White-Club/campus-clubs/app/shared/status"
	"github.com/uptrace/bun"
)

// Event belongs to one club and follows the same moderation lifecycle.
type Event struct {
	bun.BaseModel `bun:"table:events,alias:e"`

	ID          int64         `bun:"id,pk,autoincrement"`
	Name        string        `bun:"name,notnull"`
	Description string        `bun:"description,notnull,default:''"`
	ClubID      int64         `bun:"club_id,notnull"`
	StartAt     time.Time     `bun:"start_at,notnull"`
	EndAt       time.Time     `bun:"end_at,notnull"`
	Status      status.Status `bun:"status,notnull"`
	CreatedAt   time.Time     `bun:"created_at,notnull,default:current_timestamp"`

	Club *clubdb.Club `bun:"rel:belongs-to,join:club_id=id"`
}

type EventMember struct {
	bun.BaseModel `bun:"table:event_members,alias:em"`

	UserID      int64         `bun:"user_id,pk"`
	EventID     int64         `bun:"event_id,pk"`
	Status      status.Status `bun:"status,notnull"`
	RequestedAt time.Time     `bun:"requested_at,notnull,default:current_timestamp"`
	DecidedAt   *time.Time    `bun:"decided_at"`

	User  *userdb.User `bun:"rel:belongs-to,join:user_id=id"`
	Event *Event       `bun:"rel:belongs-to,join:event_id=id"`
}

// EventUpdate records the previous and new values of an edited event.
type EventUpdate struct {
	bun.BaseModel `bun:"table:event_updates,alias:eu"`

	ID             int64     `bun:"id,pk,autoincrement"`
	EventID        int64     `bun:"event_id,notnull"`
	OldName        string    `bun:"old_name,notnull"`
	NewName        string    `bun:"new_name,notnull"`
	OldDescription string    `bun:"old_description,notnull"`
	NewDescription string    `bun:"new_description,notnull"`
	OldStartAt     time.Time `bun:"old_start_at,notnull"`
	NewStartAt     time.Time `bun:"new_start_at,notnull"`
	OldEndAt       time.Time `bun:"old_end_at,notnull"`
	NewEndAt       time.Time `bun:"new_end_at,notnull"`
	UpdatedBy      int64     `bun:"updated_by,notnull"`
	CreatedAt      time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

// ListFilter narrows ListEvents. ClubID wins over LeaderID. With LeaderID set
// the leader's own Pending events are listed next to every Accepted one.
type ListFilter struct {
	ClubID   int64
	LeaderID int64
}
