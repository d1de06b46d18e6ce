package eventdb

import "errors"

var (
	ErrNotFound            = errors.New("event record not found")
	ErrNoRowsAffected      = errors.New("no rows affected")
	ErrDuplicateEventName  = errors.New("event name already exists")
	ErrDuplicateMembership = errors.New("event membership already exists")
)

const (
	constraintEventName = "events_name_key"
	constraintMemberPK  = "event_members_pkey"
)
