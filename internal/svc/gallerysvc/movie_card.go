package gallerysvc

import (
	"fmt"
	"html/template"
	"sort"
	"strings"

	"github.com/mkrupp/movieshelf/internal/domain"
)

// cardTemplate renders one movie tile of the gallery grid. The note, when
// present, becomes a hover tooltip on the whole card.
//
//nolint:gochecknoglobals,lll
var cardTemplate = template.Must(template.New("movie-card").Parse(`<li>
    <div class="movie{{if .IsFavorite}} movie-favorite{{end}}"{{if .Note}} title="{{.Note}}"{{end}}>
        {{if .IsFavorite}}<span class="movie-crown">&#128081;</span>{{end}}
        {{if .DetailURL}}<a href="{{.DetailURL}}" target="_blank">{{end}}<img class="movie-poster" src="{{.PosterURL}}" alt="{{.Title}}"/>{{if .DetailURL}}</a>{{end}}
        <div class="movie-title">{{.Title}}</div>
        <div class="movie-year">{{.Year}}</div>
        <div class="movie-rating">{{printf "%.1f" .Rating}}</div>
        <div class="movie-flags">{{range .FlagCodes}}<img class="movie-flag" src="https://flagcdn.com/24x18/{{.}}.png" alt="{{.}}"/>{{end}}</div>
    </div>
</li>`))

type movieCard struct {
	Title      string
	Year       int
	Rating     float64
	Note       string
	PosterURL  string
	DetailURL  string
	IsFavorite bool
	FlagCodes  []string
}

func newMovieCard(mov domain.Movie) movieCard {
	card := movieCard{
		Title:      mov.Title,
		Year:       mov.Year,
		Rating:     mov.Rating,
		Note:       mov.Note,
		PosterURL:  mov.PosterURL,
		IsFavorite: mov.IsFavorite,
		FlagCodes:  ExtractCountryCodes(mov.Country),
	}

	if mov.IMDbID != "" {
		card.DetailURL = fmt.Sprintf("https://www.imdb.com/title/%s/", mov.IMDbID)
	}

	return card
}

// renderMovieGrid renders the card markup for every movie, ordered by title.
func renderMovieGrid(movies domain.MovieSet) (string, error) {
	titles := make([]string, 0, len(movies))
	for title := range movies {
		titles = append(titles, title)
	}

	sort.Strings(titles)

	var grid strings.Builder

	for _, title := range titles {
		if err := cardTemplate.Execute(&grid, newMovieCard(movies[title])); err != nil {
			return "", fmt.Errorf("execute card template: %w", err)
		}

		grid.WriteString("\n")
	}

	return grid.String(), nil
}
