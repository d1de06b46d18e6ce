package eventservice

import (
	"github.com/Black-And-White-Club/campus-clubs/app/shared/apperrors"
	"github.com/Black-And-White-Club/campus-clubs/app/shared/status"
)

// maxEventNameLength matches events.name.
const maxEventNameLength = 150

var (
	ErrEventNameRequired  = apperrors.Validation("eventName is required")
	ErrEventNameTooLong   = apperrors.Validation("eventName must be at most %d characters", maxEventNameLength)
	ErrScheduleRequired   = apperrors.Validation("startAt and endAt are required")
	ErrInvalidSchedule    = apperrors.Validation("startAt must be before endAt")
	ErrDuplicateEventName = apperrors.Conflict("Name Already Exist")
	ErrDuplicateRequest   = apperrors.Conflict("join request already exists")
	ErrEventNotFound      = apperrors.NotFound("EventID Does not exist")
	ErrClubNotFound       = apperrors.NotFound("club does not exist")
	ErrClubNotAccepted    = apperrors.Conflict("club is not accepted")
	ErrStudentNotFound    = apperrors.NotFound("student does not exist")
	ErrNotAStudent        = apperrors.Validation("user is not a student")
	ErrEventNotAccepted   = apperrors.Conflict("event is not accepting members")
	ErrEventNotPending    = apperrors.Conflict("event does not exist or it is not pending").Wrap(status.ErrNotFoundOrNotPending)
	ErrMemberNotPending   = apperrors.Conflict("member does not exist or it is not pending").Wrap(status.ErrNotFoundOrNotPending)
	ErrMemberNotAccepted  = apperrors.Conflict("member does not exist or it is not accepted").Wrap(status.ErrNotFoundOrNotAccepted)
	ErrForbidden          = apperrors.Forbidden("not allowed to act on this event")
	ErrAdminOnly          = apperrors.Forbidden("only an admin may moderate events")
	ErrInvalidDecisionArg = apperrors.Validation("decision must be approve or reject")
)
