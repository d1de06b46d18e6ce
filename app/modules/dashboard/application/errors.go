package dashboardservice

import "github.com/Black-And-White-Club/campus-clubs/app/shared/apperrors"

var (
	ErrForbidden = apperrors.Forbidden("not allowed to view this dashboard")
	ErrAdminOnly = apperrors.Forbidden("only an admin may view the admin dashboard")
)
