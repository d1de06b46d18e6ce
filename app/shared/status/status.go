// Package status holds the Pending/Accepted/Rejected lifecycle shared by
// clubs, events and both kinds of membership.
package status

import (
	"database/sql/driver"
	"errors"
	"fmt"
)

// Status is a closed enumeration. The zero value is invalid.
type Status string

const (
	Pending  Status = "Pending"
	Accepted Status = "Accepted"
	Rejected Status = "Rejected"
)

var (
	ErrNotFoundOrNotPending  = errors.New("id does not exist or it is not pending")
	ErrNotFoundOrNotAccepted = errors.New("id does not exist or it is not accepted")
	ErrInvalidStatus         = errors.New("invalid status")
	ErrInvalidDecision       = errors.New("invalid decision")
)

// Parse converts a stored or user supplied value into a Status.
func Parse(s string) (Status, error) {
	switch Status(s) {
	case Pending, Accepted, Rejected:
		return Status(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

func (s Status) String() string { return string(s) }

// Valid reports whether s is one of the three states.
func (s Status) Valid() bool {
	_, err := Parse(string(s))
	return err == nil
}

// Value implements driver.Valuer.
func (s Status) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, string(s))
	}
	return string(s), nil
}

// Scan implements sql.Scanner.
func (s *Status) Scan(src any) error {
	var raw string
	switch v := src.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	case nil:
		return fmt.Errorf("%w: NULL", ErrInvalidStatus)
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidStatus, src)
	}
	parsed, err := Parse(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Decision is the outcome a moderator applies to a pending request.
type Decision string

const (
	Approve Decision = "approve"
	Reject  Decision = "reject"
)

// Approve moves Pending to Accepted.
func (s Status) Approve() (Status, error) {
	if s != Pending {
		return s, ErrNotFoundOrNotPending
	}
	return Accepted, nil
}

// Reject moves Pending to Rejected. Rejection is terminal.
func (s Status) Reject() (Status, error) {
	if s != Pending {
		return s, ErrNotFoundOrNotPending
	}
	return Rejected, nil
}

// Decide applies d to s.
func (s Status) Decide(d Decision) (Status, error) {
	switch d {
	case Approve:
		return s.Approve()
	case Reject:
		return s.Reject()
	}
	return s, fmt.Errorf("%w: %q", ErrInvalidDecision, string(d))
}

// Removable reports whether a membership in state s may be kicked.
func (s Status) Removable() error {
	if s != Accepted {
		return ErrNotFoundOrNotAccepted
	}
	return nil
}
