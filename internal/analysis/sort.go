package analysis

import (
	"sort"
	"strings"

	"github.com/mkrupp/movieshelf/internal/domain"
)

// SortByAttribute returns the collection ordered by the named attribute.
// The sort is stable over the canonical title order: records comparing equal
// keep their relative order even when descending is set, so descending is an
// inverted comparator, not a reversed ascending result.
// Returns ErrAttributeNotFound when the attribute is outside the schema.
func SortByAttribute(movies domain.MovieSet, attribute string, descending bool) ([]Entry, error) {
	if _, ok := (domain.Movie{}).Attribute(attribute); !ok {
		return nil, ErrAttributeNotFound
	}

	entries := Entries(movies)

	sort.SliceStable(entries, func(i, j int) bool {
		cmp := compareByAttribute(entries[i].Movie, entries[j].Movie, attribute)
		if descending {
			return cmp > 0
		}

		return cmp < 0
	})

	return entries, nil
}

// FilterByRange returns the records with rating >= minRating and
// startYear <= year <= endYear, bounds inclusive on both ends.
// An empty result is a normal outcome, not an error.
func FilterByRange(movies domain.MovieSet, minRating float64, startYear, endYear int) domain.MovieSet {
	matches := make(domain.MovieSet)

	for title, mov := range movies {
		if mov.Rating >= minRating && mov.Year >= startYear && mov.Year <= endYear {
			matches[title] = mov
		}
	}

	return matches
}

// SearchBySubstring returns the records whose title contains the query,
// case-insensitively. An empty result is a normal outcome, not an error.
func SearchBySubstring(movies domain.MovieSet, query string) domain.MovieSet {
	query = strings.ToLower(query)
	matches := make(domain.MovieSet)

	for title, mov := range movies {
		if strings.Contains(strings.ToLower(title), query) {
			matches[title] = mov
		}
	}

	return matches
}

func compareByAttribute(a, b domain.Movie, attribute string) int {
	if av, ok := a.NumericAttribute(attribute); ok {
		bv, _ := b.NumericAttribute(attribute)

		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		default:
			return 0
		}
	}

	av, _ := a.Attribute(attribute)
	bv, _ := b.Attribute(attribute)

	as, _ := av.(string)
	bs, _ := bv.(string)

	return strings.Compare(as, bs)
}
