package todo

import (
	"time"

	"github.com/google/uuid"
)

// Todo is a single to-do list entry owned by a user
type Todo struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Title     string    `json:"title" db:"title"`
	Complete  bool      `json:"complete" db:"complete"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
