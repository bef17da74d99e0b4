// Package analysis provides pure, read-only statistics and collection
// operations over a snapshot of a user's movie set. Nothing in this package
// performs I/O or mutates its input.
package analysis

import (
	"errors"
	"math/rand"
	"sort"

	"github.com/mkrupp/movieshelf/internal/domain"
)

var (
	// ErrEmptyInput is returned by aggregate functions on an empty collection.
	// Division by zero is never silently reported as NaN.
	ErrEmptyInput = errors.New("empty input")
	// ErrInvalidMode is returned for extremes modes other than best/worst.
	ErrInvalidMode = errors.New("invalid mode")
	// ErrAttributeNotFound is returned when an operation references an
	// attribute outside the record schema.
	ErrAttributeNotFound = errors.New("attribute not found")
)

// Mode selects which extreme of the rating ExtremesByMode looks for.
type Mode string

const (
	ModeBest  Mode = "best"
	ModeWorst Mode = "worst"
)

// Entry is one (title, record) pair from an ordered view of a movie set.
type Entry struct {
	Title string
	Movie domain.Movie
}

// Entries returns the movie set in its canonical enumeration order,
// ascending by title. Maps have no order of their own, so this order is what
// "original relative order" means for the stable sort and what RandomMovie
// draws from.
func Entries(movies domain.MovieSet) []Entry {
	titles := make([]string, 0, len(movies))
	for title := range movies {
		titles = append(titles, title)
	}

	sort.Strings(titles)

	entries := make([]Entry, 0, len(titles))
	for _, title := range titles {
		entries = append(entries, Entry{Title: title, Movie: movies[title]})
	}

	return entries
}

// Average computes the arithmetic mean of the named numeric attribute.
// No rounding is applied; presentation rounds.
// Returns ErrEmptyInput on an empty collection and ErrAttributeNotFound for
// non-numeric attributes.
func Average(movies domain.MovieSet, attribute string) (float64, error) {
	values, err := numericValues(movies, attribute)
	if err != nil {
		return 0, err
	}

	var sum float64
	for _, v := range values {
		sum += v
	}

	return sum / float64(len(values)), nil
}

// Median computes the statistical median of the named numeric attribute:
// the middle element of the sorted values for an odd count, the mean of the
// two central elements for an even count.
// Returns ErrEmptyInput on an empty collection and ErrAttributeNotFound for
// non-numeric attributes.
func Median(movies domain.MovieSet, attribute string) (float64, error) {
	values, err := numericValues(movies, attribute)
	if err != nil {
		return 0, err
	}

	sort.Float64s(values)

	mid := len(values) / 2

	if len(values)%2 == 1 {
		return values[mid], nil
	}

	return (values[mid-1] + values[mid]) / 2, nil
}

// ExtremesByMode returns every record whose rating equals the collection's
// best (maximum) or worst (minimum) rating. Ties are not broken; all tied
// records are included.
// Returns ErrEmptyInput on an empty collection and ErrInvalidMode for any
// mode other than ModeBest/ModeWorst.
func ExtremesByMode(movies domain.MovieSet, mode Mode) (domain.MovieSet, error) {
	if mode != ModeBest && mode != ModeWorst {
		return nil, ErrInvalidMode
	}

	if len(movies) == 0 {
		return nil, ErrEmptyInput
	}

	var (
		extreme float64
		first   = true
	)

	for _, mov := range movies {
		switch {
		case first:
			extreme = mov.Rating
			first = false
		case mode == ModeBest && mov.Rating > extreme:
			extreme = mov.Rating
		case mode == ModeWorst && mov.Rating < extreme:
			extreme = mov.Rating
		}
	}

	matches := make(domain.MovieSet)

	for title, mov := range movies {
		if mov.Rating == extreme {
			matches[title] = mov
		}
	}

	return matches, nil
}

// RandomMovie selects one record uniformly from the collection's canonical
// enumeration order. Returns ErrEmptyInput on an empty collection.
func RandomMovie(movies domain.MovieSet) (Entry, error) {
	if len(movies) == 0 {
		return Entry{}, ErrEmptyInput
	}

	entries := Entries(movies)

	return entries[rand.Intn(len(entries))], nil
}

// AttributeNames returns the record schema's attribute names.
// Returns the empty set for an empty collection.
func AttributeNames(movies domain.MovieSet) []string {
	if len(movies) == 0 {
		return nil
	}

	return domain.AttributeNames()
}

func numericValues(movies domain.MovieSet, attribute string) ([]float64, error) {
	if _, ok := (domain.Movie{}).NumericAttribute(attribute); !ok {
		return nil, ErrAttributeNotFound
	}

	if len(movies) == 0 {
		return nil, ErrEmptyInput
	}

	values := make([]float64, 0, len(movies))

	for _, mov := range movies {
		v, _ := mov.NumericAttribute(attribute)
		values = append(values, v)
	}

	return values, nil
}
