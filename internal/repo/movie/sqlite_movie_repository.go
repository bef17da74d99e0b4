package movie

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/mkrupp/movieshelf/internal/domain"
	"github.com/mkrupp/movieshelf/internal/infra/logging"
)

// SQLiteMovieRepositoryConfig holds configuration for the SQLite movie repository.
type SQLiteMovieRepositoryConfig struct {
	// DatabasePath is the filesystem path to the SQLite database file
	DatabasePath string `env:"DATABASE_PATH" default:"var/storage/movieshelf.db"`
}

// SQLiteMovieRepository implements Repository using SQLite as the storage backend.
type SQLiteMovieRepository struct {
	db        *sql.DB
	log       logging.Logger
	writeLock *sync.Mutex // go-sqlite does not support concurrent writes
}

var _ Repository = (*SQLiteMovieRepository)(nil)

// SQLiteMovieRepositoryFactory creates a factory function that returns a new
// SQLiteMovieRepository. The factory function implements the RepositoryFactory type.
func SQLiteMovieRepositoryFactory(cfg SQLiteMovieRepositoryConfig) RepositoryFactory {
	return func() (Repository, error) {
		return NewSQLiteMovieRepository(cfg)
	}
}

// NewSQLiteMovieRepository creates a new SQLiteMovieRepository with the given configuration.
// It initializes the database connection and creates the schema if needed.
// Returns an error if database connection or initialization fails.
func NewSQLiteMovieRepository(cfg SQLiteMovieRepositoryConfig) (*SQLiteMovieRepository, error) {
	log := logging.GetLogger("repo.movie.sqlite_movie_repository").With(
		logging.Group("db", "path", cfg.DatabasePath),
	)

	db, err := sql.Open("sqlite", cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping db: %w", err)
	}

	if err := initializeDB(db); err != nil {
		return nil, fmt.Errorf("initialize db: %w", err)
	}

	db.SetConnMaxLifetime(5 * time.Minute)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}

	return &SQLiteMovieRepository{
		db:        db,
		log:       log,
		writeLock: new(sync.Mutex),
	}, nil
}

func initializeDB(db *sql.DB) (err error) {
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS movies (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id     INTEGER NOT NULL,
			title       TEXT    NOT NULL,
			year        INTEGER NOT NULL,
			rating      REAL    NOT NULL,
			note        TEXT    DEFAULT '',
			poster_url  TEXT    NOT NULL,
			imdb_id     TEXT,
			country     TEXT,
			is_favorite INTEGER DEFAULT 0,
			UNIQUE(user_id, title)
		)
	`); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	return nil
}

// ListMovies implements Repository.ListMovies using SQLite.
func (r *SQLiteMovieRepository) ListMovies(ctx context.Context, userID int64) (domain.MovieSet, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT title, year, rating, note, poster_url, imdb_id, country, is_favorite
		FROM movies
		WHERE user_id = ?`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query movies: %w", err)
	}
	defer rows.Close()

	movies := make(domain.MovieSet)

	for rows.Next() {
		var (
			mov      domain.Movie
			imdbID   sql.NullString
			country  sql.NullString
			favorite int64
		)

		if err := rows.Scan(
			&mov.Title, &mov.Year, &mov.Rating, &mov.Note,
			&mov.PosterURL, &imdbID, &country, &favorite,
		); err != nil {
			return nil, fmt.Errorf("scan movie: %w", err)
		}

		mov.IMDbID = imdbID.String
		mov.Country = country.String
		mov.IsFavorite = favorite != 0

		movies[mov.Title] = mov
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate movies: %w", err)
	}

	return movies, nil
}

// AddMovie implements Repository.AddMovie using SQLite.
func (r *SQLiteMovieRepository) AddMovie(ctx context.Context, userID int64, mov domain.Movie) error {
	if err := mov.Validate(); err != nil {
		return fmt.Errorf("validate movie: %w", err)
	}

	r.writeLock.Lock()
	defer r.writeLock.Unlock()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO movies (user_id, title, year, rating, note, poster_url, imdb_id, country, is_favorite)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		userID,
		mov.Title,
		mov.Year,
		mov.Rating,
		mov.Note,
		mov.PosterURL,
		mov.IMDbID,
		mov.Country,
		boolToInt(mov.IsFavorite),
	)
	if err != nil {
		var liteErr *sqlite.Error
		if errors.As(err, &liteErr) {
			switch liteErr.Code() {
			case sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
				fallthrough
			case sqlite3.SQLITE_CONSTRAINT_UNIQUE:
				err = errors.Join(domain.ErrDuplicateTitle, err)
			default:
				break
			}
		}

		return fmt.Errorf("insert movie: %w", err)
	}

	return nil
}

// DeleteMovie implements Repository.DeleteMovie using SQLite.
func (r *SQLiteMovieRepository) DeleteMovie(ctx context.Context, userID int64, title string) error {
	r.writeLock.Lock()
	defer r.writeLock.Unlock()

	res, err := r.db.ExecContext(ctx,
		"DELETE FROM movies WHERE user_id = ? AND title = ?",
		userID,
		title,
	)
	if err != nil {
		return fmt.Errorf("delete movie: %w", err)
	}

	return affectedOrNotFound(res)
}

// UpdateNoteAndFavorite implements Repository.UpdateNoteAndFavorite using SQLite.
func (r *SQLiteMovieRepository) UpdateNoteAndFavorite(
	ctx context.Context,
	userID int64,
	title, note string,
	favorite bool,
) error {
	r.writeLock.Lock()
	defer r.writeLock.Unlock()

	res, err := r.db.ExecContext(ctx,
		"UPDATE movies SET note = ?, is_favorite = ? WHERE user_id = ? AND title = ?",
		note,
		boolToInt(favorite),
		userID,
		title,
	)
	if err != nil {
		return fmt.Errorf("update movie: %w", err)
	}

	return affectedOrNotFound(res)
}

// UpdateRating implements Repository.UpdateRating using SQLite.
func (r *SQLiteMovieRepository) UpdateRating(
	ctx context.Context,
	userID int64,
	title string,
	rating float64,
) error {
	r.writeLock.Lock()
	defer r.writeLock.Unlock()

	res, err := r.db.ExecContext(ctx,
		"UPDATE movies SET rating = ? WHERE user_id = ? AND title = ?",
		rating,
		userID,
		title,
	)
	if err != nil {
		return fmt.Errorf("update rating: %w", err)
	}

	return affectedOrNotFound(res)
}

// Close implements Repository.Close by closing the database connection.
func (r *SQLiteMovieRepository) Close() error {
	if err := r.db.Close(); err != nil {
		return fmt.Errorf("close db: %w", err)
	}

	return nil
}

func affectedOrNotFound(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}

	if affected == 0 {
		return domain.ErrMovieNotFound
	}

	return nil
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}

	return 0
}
