package auth

import "errors"

var (
	ErrEmailAlreadyExists    = errors.New("email already registered")
	ErrUsernameAlreadyExists = errors.New("username already in use")
	ErrInvalidCredentials    = errors.New("invalid username or password")
	ErrInvalidRefreshToken   = errors.New("invalid or expired refresh token")
	ErrUserNotFound          = errors.New("user not found")
	ErrRefreshTokenRequired  = errors.New("refresh token is required")
)
