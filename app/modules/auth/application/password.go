package authservice

import (
	"errors"
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/Black-And-White-Club/campus-clubs/app/shared/apperrors"
	"github.com/badoux/checkmail"
	"golang.org/x/crypto/bcrypt"
)

// Upper bounds match the users table columns.
const (
	minPasswordLength = 6
	maxPhoneLength    = 11
	maxUserNameLength = 100
	maxEmailLength    = 255
	// bcrypt ignores input past 72 bytes.
	maxPasswordLength = 72
)

// validatePassword enforces at least six characters with upper case, lower
// case and a digit.
func validatePassword(pw string) error {
	if len(pw) < minPasswordLength {
		return apperrors.Validation("Password must be at least %d characters", minPasswordLength)
	}
	if len(pw) > maxPasswordLength {
		return apperrors.Validation("Password must be at most %d bytes", maxPasswordLength)
	}
	var upper, lower, digit bool
	for _, r := range pw {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !upper || !lower || !digit {
		return apperrors.Validation("Password must contain an upper case letter, a lower case letter and a digit")
	}
	return nil
}

func validateRegistration(req RegisterRequest) error {
	if req.UserName == "" {
		return apperrors.Validation("User Name is required")
	}
	if utf8.RuneCountInString(req.UserName) > maxUserNameLength {
		return ErrUserNameTooLong
	}
	if req.Email == "" {
		return apperrors.Validation("Email is required")
	}
	if utf8.RuneCountInString(req.Email) > maxEmailLength {
		return ErrEmailTooLong
	}
	if err := checkmail.ValidateFormat(req.Email); err != nil {
		return apperrors.Validation("Invalid Email Address")
	}
	if req.Password == "" {
		return apperrors.Validation("Password is required")
	}
	if err := validatePassword(req.Password); err != nil {
		return err
	}
	if utf8.RuneCountInString(req.Phone) > maxPhoneLength {
		return apperrors.Validation("Phone number must be at most %d digits", maxPhoneLength)
	}
	if req.RoleName == "" {
		return apperrors.Validation("Role is required")
	}
	return nil
}

func hashPassword(pw string, cost int) (string, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	h, err := bcrypt.GenerateFromPassword([]byte(pw), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(h), nil
}

// checkPassword reports a mismatch as ok=false, and anything else as an error.
func checkPassword(hash, pw string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, fmt.Errorf("compare password: %w", err)
}
