package dbutil

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/uptrace/bun/driver/pgdriver"
)

const uniqueViolation = "23505"

// UniqueViolation reports whether err is a Postgres unique violation and
// returns the violated constraint. Both pgdriver and pgx errors are
// recognised so repositories work on either driver.
func UniqueViolation(err error) (constraint string, ok bool) {
	if err == nil {
		return "", false
	}

	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) && pgErr.Field('C') == uniqueViolation {
		return pgErr.Field('n'), true
	}

	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) && pgxErr.Code == uniqueViolation {
		return pgxErr.ConstraintName, true
	}

	return "", false
}
