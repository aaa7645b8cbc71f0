package user

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// User represents a user account (matches users table)
type User struct {
	ID           uuid.UUID `db:"id"`
	Email        string    `db:"email"`
	Username     string    `db:"username"`
	PasswordHash string    `db:"password_hash"`

	// Key of the avatar object in storage, empty until one is chosen
	AvatarKey sql.NullString `db:"avatar_key"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// HasAvatar returns true if the user picked or uploaded an avatar
func (u *User) HasAvatar() bool {
	return u.AvatarKey.Valid && u.AvatarKey.String != ""
}
