package movie

import (
	"context"

	"github.com/mkrupp/movieshelf/internal/domain"
)

// Repository defines the interface for per-user movie persistence.
// All writes are synchronous; when a call returns without error the change
// is durable.
type Repository interface {
	// ListMovies retrieves all movies owned by the given user, keyed by title.
	// Returns an empty set (not an error) for users without records.
	ListMovies(ctx context.Context, userID int64) (domain.MovieSet, error)

	// AddMovie adds a new movie to the user's collection.
	// Returns domain.ErrDuplicateTitle if the title already exists for the user
	// and domain.ErrInvalidRecord if required attributes are missing.
	AddMovie(ctx context.Context, userID int64, mov domain.Movie) error

	// DeleteMovie removes a movie by title.
	// Returns domain.ErrMovieNotFound if the title does not exist for the user.
	DeleteMovie(ctx context.Context, userID int64, title string) error

	// UpdateNoteAndFavorite merges a new note and favorite flag into an
	// existing record, leaving all other fields untouched.
	// Returns domain.ErrMovieNotFound if the title does not exist for the user.
	UpdateNoteAndFavorite(ctx context.Context, userID int64, title, note string, favorite bool) error

	// UpdateRating replaces the rating of an existing record.
	// Returns domain.ErrMovieNotFound if the title does not exist for the user.
	UpdateRating(ctx context.Context, userID int64, title string, rating float64) error

	// Close releases any resources held by the repository.
	Close() error
}

// RepositoryFactory is a function that creates a new Repository instance.
// Returns an error if initialization fails.
type RepositoryFactory func() (Repository, error)
