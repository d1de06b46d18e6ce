package eventbus

import "github.com/Black-And-White-Club/campus-clubs/app/shared/status"

const (
	ClubStatusChangedV1      = "club.status.changed.v1"
	EventStatusChangedV1     = "event.status.changed.v1"
	ClubMembershipChangedV1  = "club.membership.changed.v1"
	EventMembershipChangedV1 = "event.membership.changed.v1"
	MembershipRemoved        = "Removed"
)

type ClubStatusChangedPayload struct {
	ClubID int64         `json:"clubId"`
	Status status.Status `json:"status"`
}

type EventStatusChangedPayload struct {
	EventID int64         `json:"eventId"`
	ClubID  int64         `json:"clubId"`
	Status  status.Status `json:"status"`
}

// ClubMembershipChangedPayload carries a status or MembershipRemoved.
type ClubMembershipChangedPayload struct {
	UserID int64  `json:"userId"`
	ClubID int64  `json:"clubId"`
	Status string `json:"status"`
}

type EventMembershipChangedPayload struct {
	UserID  int64  `json:"userId"`
	EventID int64  `json:"eventId"`
	Status  string `json:"status"`
}
