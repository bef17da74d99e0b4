package domain

import "errors"

var (
	// ErrDuplicateTitle is returned when adding a movie whose title already
	// exists in the owning user's collection.
	ErrDuplicateTitle = errors.New("movie already exists")
	// ErrMovieNotFound is returned when a title does not exist for the user.
	ErrMovieNotFound = errors.New("movie not found")
	// ErrInvalidRecord is returned when a movie record is missing required attributes.
	ErrInvalidRecord = errors.New("invalid movie record")
)

const (
	// FirstMovieRelease is the earliest accepted release year.
	FirstMovieRelease = 1888

	// RatingMin and RatingMax bound the accepted rating range.
	RatingMin = 0.0
	RatingMax = 10.0
)

// Attribute names of a movie record, as used by the generic sort, filter
// and chart operations and by the persisted schema.
const (
	AttrTitle      = "title"
	AttrYear       = "year"
	AttrRating     = "rating"
	AttrNote       = "note"
	AttrPosterURL  = "poster_url"
	AttrIMDbID     = "imdb_id"
	AttrCountry    = "country"
	AttrIsFavorite = "is_favorite"
)

// Movie represents a single catalog entry owned by one user.
type Movie struct {
	Title      string  // Identifying attribute within a user's collection
	Year       int     // Release year, >= FirstMovieRelease
	Rating     float64 // Within [RatingMin, RatingMax]
	Note       string  // Free-text personal note
	PosterURL  string  // Poster image reference
	IMDbID     string  // External identifier from the enrichment source
	Country    string  // Production country, possibly comma-separated
	IsFavorite bool
}

// MovieSet is the in-memory working collection the command loop operates on,
// keyed by title. It always mirrors the persisted state of the active user.
type MovieSet map[string]Movie

// AttributeNames returns the fixed attribute schema of a movie record.
// Records are homogeneous by construction, so no per-record sampling is needed.
func AttributeNames() []string {
	return []string{
		AttrTitle,
		AttrYear,
		AttrRating,
		AttrNote,
		AttrPosterURL,
		AttrIMDbID,
		AttrCountry,
		AttrIsFavorite,
	}
}

// Attribute returns the value of the named attribute.
// Returns false if the name is not part of the schema.
func (m Movie) Attribute(name string) (any, bool) {
	switch name {
	case AttrTitle:
		return m.Title, true
	case AttrYear:
		return m.Year, true
	case AttrRating:
		return m.Rating, true
	case AttrNote:
		return m.Note, true
	case AttrPosterURL:
		return m.PosterURL, true
	case AttrIMDbID:
		return m.IMDbID, true
	case AttrCountry:
		return m.Country, true
	case AttrIsFavorite:
		return m.IsFavorite, true
	default:
		return nil, false
	}
}

// NumericAttribute returns the named attribute as a float64 for attributes
// with a numeric interpretation (year, rating, is_favorite as 0/1).
// Returns false for non-numeric or unknown attributes.
func (m Movie) NumericAttribute(name string) (float64, bool) {
	switch name {
	case AttrYear:
		return float64(m.Year), true
	case AttrRating:
		return m.Rating, true
	case AttrIsFavorite:
		if m.IsFavorite {
			return 1, true
		}

		return 0, true
	default:
		return 0, false
	}
}

// Validate checks that the required attributes of a record are present.
// Numeric range checks are the input boundary's job, not the store's.
func (m Movie) Validate() error {
	if m.Title == "" {
		return errors.Join(ErrInvalidRecord, errors.New("missing title"))
	}

	if m.Year == 0 {
		return errors.Join(ErrInvalidRecord, errors.New("missing year"))
	}

	return nil
}
