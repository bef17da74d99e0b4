// Package catalogsvc implements the movie operations of the application:
// user-scoped CRUD with write-through persistence, gated on the active
// session, with optional metadata enrichment on add.
package catalogsvc

import (
	"context"
	"fmt"

	"github.com/mkrupp/movieshelf/internal/domain"
	"github.com/mkrupp/movieshelf/internal/infra/logging"
	"github.com/mkrupp/movieshelf/internal/repo/movie"
	"github.com/mkrupp/movieshelf/internal/repo/user"
	"github.com/mkrupp/movieshelf/internal/session"
	"github.com/mkrupp/movieshelf/internal/svc/catalogsvc/omdbclient"
)

// CatalogService provides per-user movie management.
//
// Every mutating method follows one discipline: the repository write happens
// first, and the in-memory working collection is only updated after the write
// succeeded, so the two views never diverge.
type CatalogService struct {
	MovieRepo movie.Repository
	UserRepo  user.Repository
	Session   *session.Session
	Metadata  omdbclient.Client
	Log       logging.Logger
}

// NewCatalogService creates a new CatalogService from the given repository
// factories. Returns an error if a repository cannot be created.
func NewCatalogService(
	movieFactory movie.RepositoryFactory,
	userFactory user.RepositoryFactory,
	sess *session.Session,
	metadata omdbclient.Client,
) (*CatalogService, error) {
	movieRepo, err := movieFactory()
	if err != nil {
		return nil, fmt.Errorf("new movie repo: %w", err)
	}

	userRepo, err := userFactory()
	if err != nil {
		return nil, fmt.Errorf("new user repo: %w", err)
	}

	return &CatalogService{
		MovieRepo: movieRepo,
		UserRepo:  userRepo,
		Session:   sess,
		Metadata:  metadata,
		Log:       logging.GetLogger("svc.catalogsvc.catalog_service"),
	}, nil
}

// Close releases the underlying repositories.
func (s *CatalogService) Close() error {
	if err := s.MovieRepo.Close(); err != nil {
		return fmt.Errorf("close movie repo: %w", err)
	}

	if err := s.UserRepo.Close(); err != nil {
		return fmt.Errorf("close user repo: %w", err)
	}

	return nil
}

// Movies loads the active user's collection from the store.
// Returns session.ErrNoActiveUser when no user is active.
func (s *CatalogService) Movies(ctx context.Context) (domain.MovieSet, error) {
	userID, err := s.Session.RequireActive()
	if err != nil {
		return nil, err
	}

	movies, err := s.MovieRepo.ListMovies(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}

	return movies, nil
}

// AddMovie looks the title up at the metadata source, persists the resulting
// record for the active user and then inserts it into the working collection.
// Enrichment failures and duplicates abort the add with store and collection
// unchanged.
func (s *CatalogService) AddMovie(
	ctx context.Context,
	movies domain.MovieSet,
	title string,
) (mov domain.Movie, err error) {
	log := s.Log.With(logging.Group("movie", "title", title))

	defer func() {
		if err != nil {
			log.WarnContext(ctx, "add movie failed", "error", err)
		} else {
			log.InfoContext(ctx, "movie added")
		}
	}()

	userID, err := s.Session.RequireActive()
	if err != nil {
		return domain.Movie{}, err
	}

	if _, exists := movies[title]; exists {
		return domain.Movie{}, domain.ErrDuplicateTitle
	}

	mov, err = s.Metadata.Lookup(ctx, title)
	if err != nil {
		return domain.Movie{}, fmt.Errorf("lookup movie: %w", err)
	}

	// The source may report a canonical title differing from the query.
	if _, exists := movies[mov.Title]; exists {
		return domain.Movie{}, domain.ErrDuplicateTitle
	}

	if err := s.MovieRepo.AddMovie(ctx, userID, mov); err != nil {
		return domain.Movie{}, fmt.Errorf("add movie: %w", err)
	}

	movies[mov.Title] = mov

	return mov, nil
}

// DeleteMovie removes the titled record from the store, then from the
// working collection. Returns domain.ErrMovieNotFound for unknown titles.
func (s *CatalogService) DeleteMovie(
	ctx context.Context,
	movies domain.MovieSet,
	title string,
) (err error) {
	log := s.Log.With(logging.Group("movie", "title", title))

	defer func() {
		if err != nil {
			log.WarnContext(ctx, "delete movie failed", "error", err)
		} else {
			log.InfoContext(ctx, "movie deleted")
		}
	}()

	userID, err := s.Session.RequireActive()
	if err != nil {
		return err
	}

	if err := s.MovieRepo.DeleteMovie(ctx, userID, title); err != nil {
		return fmt.Errorf("delete movie: %w", err)
	}

	delete(movies, title)

	return nil
}

// UpdateNoteAndFavorite merges a new personal note and favorite flag into an
// existing record, store first, collection second.
func (s *CatalogService) UpdateNoteAndFavorite(
	ctx context.Context,
	movies domain.MovieSet,
	title, note string,
	favorite bool,
) (err error) {
	log := s.Log.With(logging.Group("movie", "title", title))

	defer func() {
		if err != nil {
			log.WarnContext(ctx, "update movie failed", "error", err)
		} else {
			log.InfoContext(ctx, "movie updated")
		}
	}()

	userID, err := s.Session.RequireActive()
	if err != nil {
		return err
	}

	if err := s.MovieRepo.UpdateNoteAndFavorite(ctx, userID, title, note, favorite); err != nil {
		return fmt.Errorf("update movie: %w", err)
	}

	if mov, ok := movies[title]; ok {
		mov.Note = note
		mov.IsFavorite = favorite
		movies[title] = mov
	}

	return nil
}

// UpdateRating replaces the rating of an existing record, store first,
// collection second.
func (s *CatalogService) UpdateRating(
	ctx context.Context,
	movies domain.MovieSet,
	title string,
	rating float64,
) (err error) {
	log := s.Log.With(logging.Group("movie", "title", title))

	defer func() {
		if err != nil {
			log.WarnContext(ctx, "update rating failed", "error", err)
		} else {
			log.InfoContext(ctx, "rating updated")
		}
	}()

	userID, err := s.Session.RequireActive()
	if err != nil {
		return err
	}

	if err := s.MovieRepo.UpdateRating(ctx, userID, title, rating); err != nil {
		return fmt.Errorf("update rating: %w", err)
	}

	if mov, ok := movies[title]; ok {
		mov.Rating = rating
		movies[title] = mov
	}

	return nil
}

// Users lists all registered users in insertion order.
func (s *CatalogService) Users(ctx context.Context) ([]domain.User, error) {
	users, err := s.UserRepo.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	return users, nil
}

// EnsureUser creates the user if absent and returns the full record.
// Creating an existing username is a no-op success.
func (s *CatalogService) EnsureUser(ctx context.Context, username string) (domain.User, error) {
	userID, err := s.UserRepo.EnsureUser(ctx, username)
	if err != nil {
		return domain.User{}, fmt.Errorf("ensure user: %w", err)
	}

	return domain.User{ID: userID, Username: username}, nil
}

// SelectUser makes the given user the session's active user.
func (s *CatalogService) SelectUser(ctx context.Context, usr domain.User) {
	s.Session.SetActive(usr.ID, usr.Username)
	s.Log.InfoContext(ctx, "user selected", logging.Group("user",
		"id", usr.ID,
		"username", usr.Username,
	))
}

// SwitchUser clears the active user, sending the command loop back to user
// selection.
func (s *CatalogService) SwitchUser(ctx context.Context) {
	s.Session.ClearActive()
	s.Log.InfoContext(ctx, "user switched")
}
