package user

import (
	"context"

	"github.com/mkrupp/movieshelf/internal/domain"
)

// Repository defines the interface for user registry persistence.
type Repository interface {
	// EnsureUser creates the user if absent and returns its id.
	// Creating an existing username is a no-op success returning the
	// existing id. Returns domain.ErrInvalidUsername for empty usernames.
	EnsureUser(ctx context.Context, username string) (int64, error)

	// ListUsers retrieves all users in insertion order.
	ListUsers(ctx context.Context) ([]domain.User, error)

	// GetUsername retrieves a username by user id.
	// Returns the username and true if found, or empty string and false if not found.
	GetUsername(ctx context.Context, userID int64) (string, bool, error)

	// Close releases any resources held by the repository.
	Close() error
}

// RepositoryFactory is a function that creates a new Repository instance.
// Returns an error if initialization fails.
type RepositoryFactory func() (Repository, error)
