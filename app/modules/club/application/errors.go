package clubservice

import (
	"github.com/Black-And-White-Club/campus-clubs/app/shared/apperrors"
	"github.com/Black-And-White-Club/campus-clubs/app/shared/status"
)

// maxClubNameLength matches clubs.name.
const maxClubNameLength = 100

var (
	ErrClubNameRequired   = apperrors.Validation("clubName is required")
	ErrClubNameTooLong    = apperrors.Validation("clubName must be at most %d characters", maxClubNameLength)
	ErrDuplicateClubName  = apperrors.Conflict("Name Already Exist")
	ErrLeaderHasClub      = apperrors.Conflict("You Already have a club")
	ErrDuplicateRequest   = apperrors.Conflict("join request already exists")
	ErrClubNotFound       = apperrors.NotFound("club does not exist")
	ErrLeaderNotFound     = apperrors.NotFound("club leader does not exist")
	ErrStudentNotFound    = apperrors.NotFound("student does not exist")
	ErrNotAClubLeader     = apperrors.Validation("user is not a club leader")
	ErrNotAStudent        = apperrors.Validation("user is not a student")
	ErrClubNotAccepted    = apperrors.Conflict("club is not accepting members")
	ErrNoClub             = apperrors.NotFound("club leader has no club")
	ErrClubNotPending     = apperrors.Conflict("club does not exist or it is not pending").Wrap(status.ErrNotFoundOrNotPending)
	ErrMemberNotPending   = apperrors.Conflict("member does not exist or it is not pending").Wrap(status.ErrNotFoundOrNotPending)
	ErrMemberNotAccepted  = apperrors.Conflict("member does not exist or it is not accepted").Wrap(status.ErrNotFoundOrNotAccepted)
	ErrForbidden          = apperrors.Forbidden("not allowed to act on this club")
	ErrAdminOnly          = apperrors.Forbidden("only an admin may moderate clubs")
	ErrInvalidDecisionArg = apperrors.Validation("decision must be approve or reject")
)
