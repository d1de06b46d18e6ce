package userdb

import "errors"

// Sentinel errors for the user repository layer. They describe storage
// outcomes; services decide what they mean to callers.
var (
	ErrNotFound       = errors.New("user record not found")
	ErrNoRowsAffected = errors.New("no rows affected")
	ErrDuplicateEmail = errors.New("email already registered")
)
