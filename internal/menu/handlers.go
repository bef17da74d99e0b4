package menu

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mkrupp/movieshelf/internal/analysis"
	"github.com/mkrupp/movieshelf/internal/cli"
	"github.com/mkrupp/movieshelf/internal/domain"
	"github.com/mkrupp/movieshelf/internal/infra/logging"
	"github.com/mkrupp/movieshelf/internal/svc/catalogsvc"
	"github.com/mkrupp/movieshelf/internal/svc/catalogsvc/omdbclient"
	"github.com/mkrupp/movieshelf/internal/svc/chartsvc"
	"github.com/mkrupp/movieshelf/internal/svc/gallerysvc"
)

// Handlers implements the menu commands on top of the catalog, chart and
// gallery services. Domain level failures are reported to the user directly;
// only input stream failures and unexpected errors propagate.
type Handlers struct {
	Catalog  *catalogsvc.CatalogService
	Charts   *chartsvc.ChartService
	Gallery  *gallerysvc.GalleryService
	Prompter *cli.Prompter
	Printer  *cli.Printer

	log logging.Logger
}

// NewHandlers creates the handler set and wires its dependencies.
func NewHandlers(
	catalog *catalogsvc.CatalogService,
	charts *chartsvc.ChartService,
	gallery *gallerysvc.GalleryService,
	prompter *cli.Prompter,
	printer *cli.Printer,
) *Handlers {
	return &Handlers{
		Catalog:  catalog,
		Charts:   charts,
		Gallery:  gallery,
		Prompter: prompter,
		Printer:  printer,
		log:      logging.GetLogger("menu.handlers"),
	}
}

// Register binds every menu command to the dispatcher.
func (h *Handlers) Register(dispatcher *Dispatcher) {
	for code, cmd := range map[int]Command{
		CmdQuit:         {Label: "Exit", Handler: h.Quit},
		CmdList:         {Label: "List movies", Handler: h.ListMovies, RequiresMovies: true},
		CmdAdd:          {Label: "Add movie", Handler: h.AddMovie},
		CmdDelete:       {Label: "Delete movie", Handler: h.DeleteMovie, RequiresMovies: true},
		CmdUpdateNote:   {Label: "Update movie", Handler: h.UpdateMovie, RequiresMovies: true},
		CmdStats:        {Label: "Stats", Handler: h.Stats, RequiresMovies: true},
		CmdRandom:       {Label: "Random movie", Handler: h.RandomMovie, RequiresMovies: true},
		CmdSearch:       {Label: "Search movie", Handler: h.SearchMovie, RequiresMovies: true},
		CmdSort:         {Label: "Movies sorted by attribute", Handler: h.SortMovies, RequiresMovies: true},
		CmdChart:        {Label: "Create chart", Handler: h.CreateChart, RequiresMovies: true},
		CmdFilter:       {Label: "Filter movies", Handler: h.FilterMovies, RequiresMovies: true},
		CmdGallery:      {Label: "Generate website", Handler: h.GenerateGallery},
		CmdSwitchUser:   {Label: "Switch user", Handler: h.SwitchUser},
		CmdUpdateRating: {Label: "Update movie rating", Handler: h.UpdateRating, RequiresMovies: true},
	} {
		dispatcher.Register(code, cmd)
	}
}

// Quit prints the farewell; the loop performs the actual shutdown.
func (h *Handlers) Quit(_ context.Context, _ domain.MovieSet) error {
	h.Printer.Info("Bye!")

	return nil
}

// ListMovies prints the collection in title order.
func (h *Handlers) ListMovies(_ context.Context, movies domain.MovieSet) error {
	h.Printer.Heading("%d movies in total", len(movies))

	for _, entry := range analysis.Entries(movies) {
		h.printEntry(entry.Movie)
	}

	return nil
}

// AddMovie prompts for a title, enriches it at the metadata source and adds
// the record to the active user's collection.
func (h *Handlers) AddMovie(ctx context.Context, movies domain.MovieSet) error {
	title, err := h.Prompter.NonEmptyLine("Enter new movie name: ")
	if err != nil {
		return err
	}

	mov, err := h.Catalog.AddMovie(ctx, movies, title)

	switch {
	case err == nil:
		h.Printer.Success("Movie %s (%d) successfully added", mov.Title, mov.Year)
	case errors.Is(err, domain.ErrDuplicateTitle):
		h.Printer.Error("Movie %s already exists!", title)
	case errors.Is(err, omdbclient.ErrTitleNotFound):
		h.Printer.Error("Movie %s not found.", title)
	case errors.Is(err, omdbclient.ErrNotConfigured):
		h.Printer.Error("Movie lookup is not configured. Set an API key first.")
	case errors.Is(err, omdbclient.ErrRequestFailed):
		h.Printer.Error("Movie lookup failed. Check your network connection.")
	default:
		return err
	}

	return nil
}

// DeleteMovie prompts for a title and removes the record.
func (h *Handlers) DeleteMovie(ctx context.Context, movies domain.MovieSet) error {
	title, err := h.Prompter.NonEmptyLine("Enter movie name to delete: ")
	if err != nil {
		return err
	}

	err = h.Catalog.DeleteMovie(ctx, movies, title)

	switch {
	case err == nil:
		h.Printer.Success("Movie %s successfully deleted", title)
	case errors.Is(err, domain.ErrMovieNotFound):
		h.Printer.Error("Movie %s doesn't exist!", title)
	default:
		return err
	}

	return nil
}

// UpdateMovie prompts for a note and favorite flag on an existing record.
func (h *Handlers) UpdateMovie(ctx context.Context, movies domain.MovieSet) error {
	title, err := h.Prompter.NonEmptyLine("Enter movie name: ")
	if err != nil {
		return err
	}

	if _, ok := movies[title]; !ok {
		h.Printer.Error("Movie %s doesn't exist!", title)

		return nil
	}

	note, err := h.Prompter.Line("Enter movie notes: ")
	if err != nil {
		return err
	}

	favorite, err := h.Prompter.YesNo("Mark as favorite? (y/n): ")
	if err != nil {
		return err
	}

	if err := h.Catalog.UpdateNoteAndFavorite(ctx, movies, title, note, favorite); err != nil {
		if errors.Is(err, domain.ErrMovieNotFound) {
			h.Printer.Error("Movie %s doesn't exist!", title)

			return nil
		}

		return err
	}

	h.Printer.Success("Movie %s successfully updated", title)

	return nil
}

// UpdateRating prompts for a new rating on an existing record.
func (h *Handlers) UpdateRating(ctx context.Context, movies domain.MovieSet) error {
	title, err := h.Prompter.NonEmptyLine("Enter movie name: ")
	if err != nil {
		return err
	}

	if _, ok := movies[title]; !ok {
		h.Printer.Error("Movie %s doesn't exist!", title)

		return nil
	}

	rating, err := h.Prompter.FloatInRange(
		fmt.Sprintf("Enter new movie rating (%g-%g): ", domain.RatingMin, domain.RatingMax),
		domain.RatingMin, domain.RatingMax,
	)
	if err != nil {
		return err
	}

	if err := h.Catalog.UpdateRating(ctx, movies, title, rating); err != nil {
		if errors.Is(err, domain.ErrMovieNotFound) {
			h.Printer.Error("Movie %s doesn't exist!", title)

			return nil
		}

		return err
	}

	h.Printer.Success("Movie %s successfully updated", title)

	return nil
}

// Stats prints average, median and the best and worst rated movies.
func (h *Handlers) Stats(_ context.Context, movies domain.MovieSet) error {
	average, err := analysis.Average(movies, domain.AttrRating)
	if err != nil {
		return err
	}

	median, err := analysis.Median(movies, domain.AttrRating)
	if err != nil {
		return err
	}

	h.Printer.Stat("Average rating", "%.1f", average)
	h.Printer.Stat("Median rating", "%.1f", median)

	for _, extreme := range []struct {
		label string
		mode  analysis.Mode
	}{
		{label: "Best movie(s)", mode: analysis.ModeBest},
		{label: "Worst movie(s)", mode: analysis.ModeWorst},
	} {
		extremes, err := analysis.ExtremesByMode(movies, extreme.mode)
		if err != nil {
			return err
		}

		h.Printer.Stat(extreme.label, "%s", joinTitles(extremes))
	}

	return nil
}

// RandomMovie suggests one uniformly chosen movie.
func (h *Handlers) RandomMovie(_ context.Context, movies domain.MovieSet) error {
	entry, err := analysis.RandomMovie(movies)
	if err != nil {
		return err
	}

	h.Printer.Info("Your movie for tonight: %s (%d), it's rated %.1f",
		entry.Title, entry.Movie.Year, entry.Movie.Rating)

	return nil
}

// SearchMovie prints all movies whose title contains the query,
// case insensitively.
func (h *Handlers) SearchMovie(_ context.Context, movies domain.MovieSet) error {
	query, err := h.Prompter.NonEmptyLine("Enter part of movie name: ")
	if err != nil {
		return err
	}

	matches := analysis.SearchBySubstring(movies, query)
	if len(matches) == 0 {
		h.Printer.Info("No movies matched %q.", query)

		return nil
	}

	for _, entry := range analysis.Entries(matches) {
		h.printEntry(entry.Movie)
	}

	return nil
}

// SortMovies prints the collection ordered by a chosen attribute.
func (h *Handlers) SortMovies(_ context.Context, movies domain.MovieSet) error {
	attribute, err := h.promptAttribute(domain.AttributeNames())
	if err != nil {
		return err
	}

	descending, err := h.Prompter.YesNo("Descending order? (y/n): ")
	if err != nil {
		return err
	}

	entries, err := analysis.SortByAttribute(movies, attribute, descending)
	if err != nil {
		if errors.Is(err, analysis.ErrAttributeNotFound) {
			h.Printer.Error("Unknown attribute %s.", attribute)

			return nil
		}

		return err
	}

	for _, entry := range entries {
		h.printEntry(entry.Movie)
	}

	return nil
}

// CreateChart renders a numeric attribute chart into the export directory.
func (h *Handlers) CreateChart(ctx context.Context, movies domain.MovieSet) error {
	attribute, err := h.promptAttribute(numericAttributeNames())
	if err != nil {
		return err
	}

	filename, err := h.Prompter.NonEmptyLine("Enter file name: ")
	if err != nil {
		return err
	}

	path, err := h.Charts.RenderChart(ctx, movies, attribute, filename)
	if err != nil {
		if errors.Is(err, analysis.ErrAttributeNotFound) {
			h.Printer.Error("Attribute %s cannot be charted.", attribute)

			return nil
		}

		return err
	}

	h.Printer.Success("Chart saved to %s", path)

	return nil
}

// FilterMovies prints all movies matching the rating and year bounds.
// Blank input leaves the corresponding bound open.
func (h *Handlers) FilterMovies(_ context.Context, movies domain.MovieSet) error {
	currentYear := time.Now().Year()

	minRating, ok, err := h.Prompter.OptionalFloatInRange(
		"Enter minimum rating (leave blank for no minimum rating): ",
		domain.RatingMin, domain.RatingMax,
	)
	if err != nil {
		return err
	}

	if !ok {
		minRating = domain.RatingMin
	}

	startYear, ok, err := h.Prompter.OptionalIntInRange(
		"Enter start year (leave blank for no start year): ",
		domain.FirstMovieRelease, currentYear,
	)
	if err != nil {
		return err
	}

	if !ok {
		startYear = domain.FirstMovieRelease
	}

	endYear, ok, err := h.Prompter.OptionalIntInRange(
		"Enter end year (leave blank for no end year): ",
		domain.FirstMovieRelease, currentYear,
	)
	if err != nil {
		return err
	}

	if !ok {
		endYear = currentYear
	}

	matches := analysis.FilterByRange(movies, minRating, startYear, endYear)
	if len(matches) == 0 {
		h.Printer.Info("No movies matched the filter.")

		return nil
	}

	for _, entry := range analysis.Entries(matches) {
		h.printEntry(entry.Movie)
	}

	return nil
}

// GenerateGallery exports the collection as a static HTML page.
func (h *Handlers) GenerateGallery(ctx context.Context, movies domain.MovieSet) error {
	path, err := h.Gallery.Generate(ctx, movies)

	switch {
	case err == nil:
		h.Printer.Success("Website was generated successfully: %s", path)
	case errors.Is(err, gallerysvc.ErrPlaceholderMissing):
		h.Printer.Error("Website generated with gaps, the template is missing placeholders: %s", path)
	default:
		return err
	}

	return nil
}

// SwitchUser clears the active user; the loop returns to user selection.
func (h *Handlers) SwitchUser(ctx context.Context, _ domain.MovieSet) error {
	h.Catalog.SwitchUser(ctx)

	return nil
}

func (h *Handlers) printEntry(mov domain.Movie) {
	h.Printer.Movie(mov.Title, mov.Year, mov.Rating, mov.IsFavorite)
}

func (h *Handlers) promptAttribute(names []string) (string, error) {
	attribute, err := h.Prompter.NonEmptyLine(
		fmt.Sprintf("Choose attribute (%s): ", strings.Join(names, ", ")),
	)
	if err != nil {
		return "", err
	}

	return strings.ToLower(strings.TrimSpace(attribute)), nil
}

func numericAttributeNames() []string {
	var names []string

	for _, name := range domain.AttributeNames() {
		if _, ok := (domain.Movie{}).NumericAttribute(name); ok {
			names = append(names, name)
		}
	}

	return names
}

func joinTitles(movies domain.MovieSet) string {
	entries := analysis.Entries(movies)

	parts := make([]string, 0, len(entries))
	for _, entry := range entries {
		parts = append(parts, fmt.Sprintf("%s (%.1f)", entry.Title, entry.Movie.Rating))
	}

	return strings.Join(parts, ", ")
}
