package note

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Note is a markdown document owned by a user. Name keeps the extension
// of the imported file when there was one.
type Note struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Name      string    `json:"name" db:"name"`
	Data      string    `json:"data" db:"data"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// PDFName derives the download filename from the note name (x.md -> x.pdf)
func (n *Note) PDFName() string {
	name := n.Name
	if idx := strings.LastIndex(name, "."); idx > 0 {
		name = name[:idx]
	}
	return name + ".pdf"
}

// Share records a note shared from its owner to a friend
type Share struct {
	ID           uuid.UUID `json:"id" db:"id"`
	NoteID       uuid.UUID `json:"note_id" db:"note_id"`
	OwnerUserID  uuid.UUID `json:"owner_user_id" db:"owner_user_id"`
	TargetUserID uuid.UUID `json:"target_user_id" db:"target_user_id"`
	SharedAt     time.Time `json:"shared_at" db:"shared_at"`
}

// Involves reports whether userID is a participant of the share
func (s *Share) Involves(userID uuid.UUID) bool {
	return s.OwnerUserID == userID || s.TargetUserID == userID
}
