package export

import (
	"context"
)

// Repository defines the interface for persisting rendered artifacts
// (gallery HTML, chart images) to their export destination.
type Repository interface {
	// Store persists the artifact under the given name.
	// Returns an error if the write fails or is incomplete.
	Store(ctx context.Context, name string, data []byte) error

	// Filename returns the full destination path for an artifact name,
	// for reporting back to the user.
	Filename(name string) string
}

// RepositoryFactory is a function that creates a new Repository instance.
// Returns an error if initialization fails.
type RepositoryFactory func() (Repository, error)
