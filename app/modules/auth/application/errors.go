package authservice

import "github.com/Black-And-White-Club/campus-clubs/app/shared/apperrors"

var (
	ErrInvalidCredentials = apperrors.Validation("Invalid Email or Password")
	ErrEmailTaken         = apperrors.Conflict("Email Already Exist")
	ErrUnknownRole        = apperrors.Validation("Role does not exist")
	ErrUserNameTooLong    = apperrors.Validation("User Name must be at most %d characters", maxUserNameLength)
	ErrEmailTooLong       = apperrors.Validation("Email must be at most %d characters", maxEmailLength)
	ErrAdminSelfRegister  = apperrors.Forbidden("Admin accounts cannot be registered")
	ErrInvalidToken       = apperrors.Unauthorized("invalid or expired token")
	ErrSessionRevoked     = apperrors.Unauthorized("session has been revoked")
)
