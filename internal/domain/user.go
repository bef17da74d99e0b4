package domain

import "errors"

var (
	// ErrUserNotFound is returned when looking up a non-existent user.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidUsername is returned when creating a user with an empty username.
	ErrInvalidUsername = errors.New("invalid username")
)

// User represents a registered catalog owner.
type User struct {
	ID       int64  // Stable identifier assigned by the registry
	Username string // Unique across all users
}
