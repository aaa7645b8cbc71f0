package note

import "errors"

var (
	ErrNoteNotFound  = errors.New("note not found")
	ErrShareNotFound = errors.New("share not found")

	// ErrNotFriends rejects sharing with anyone who is not a confirmed friend
	ErrNotFriends = errors.New("notes can only be shared with friends")

	// ErrNotParticipant rejects share access by anyone but owner or target
	ErrNotParticipant = errors.New("not a participant of this share")

	ErrUnsupportedFile = errors.New("only .md and .txt files can be imported")
)
