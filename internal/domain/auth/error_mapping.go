package auth

import (
	"errors"

	"github.com/lib/pq"
)

const sqlStateUniqueViolation = "23505"

// uniqueViolationConstraint returns the violated constraint name for a
// PostgreSQL unique violation, or "" for any other error.
func uniqueViolationConstraint(err error) string {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return ""
	}
	if string(pqErr.Code) != sqlStateUniqueViolation {
		return ""
	}
	return pqErr.Constraint
}

// mapCreateUserError maps storage-level unique violations onto domain errors
// so the handler can answer 409 with the right field.
func mapCreateUserError(err error) error {
	switch uniqueViolationConstraint(err) {
	case "users_email_key":
		return ErrEmailAlreadyExists
	case "users_username_key":
		return ErrUsernameAlreadyExists
	}
	return err
}
