package friendship

import "errors"

var (
	// ErrSelfRelationship rejects any operation where both sides are the same user
	ErrSelfRelationship = errors.New("cannot befriend yourself")

	// ErrUserNotFound means the counterpart user does not exist
	ErrUserNotFound = errors.New("user not found")

	// ErrUnexpectedState means the store returned a status outside
	// {pending, friend}; it is surfaced, never silently defaulted.
	ErrUnexpectedState = errors.New("unexpected friendship status")
)
