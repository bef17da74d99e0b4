// Package gallerysvc generates a static HTML gallery page from a movie
// collection by filling placeholders in a user supplied page template.
package gallerysvc

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mkrupp/movieshelf/internal/domain"
	"github.com/mkrupp/movieshelf/internal/infra/logging"
	"github.com/mkrupp/movieshelf/internal/repo/export"
)

// Placeholders the page template is expected to contain.
const (
	placeholderTitle = "__TEMPLATE_TITLE__"
	placeholderGrid  = "__TEMPLATE_MOVIE_GRID__"
)

// ErrPlaceholderMissing signals that the page template lacks an expected
// placeholder. Generation still proceeds; the gallery is merely incomplete.
var ErrPlaceholderMissing = errors.New("placeholder missing from template")

// GalleryConfig holds configuration parameters for the gallery service.
type GalleryConfig struct {
	// TemplateFile is the HTML page template containing the placeholders
	TemplateFile string `env:"TEMPLATE_FILE" default:"web/gallery_template.html"`

	// OutputName is the exported gallery filename
	OutputName string `env:"OUTPUT_NAME" default:"gallery.html"`

	// Title is inserted for the page title placeholder
	Title string `env:"TITLE" default:"My Movie Gallery"`
}

// GalleryService writes rendered gallery pages to the export repository.
type GalleryService struct {
	exportRepo export.Repository
	cfg        GalleryConfig
	log        logging.Logger
}

// NewGalleryService creates a new GalleryService with the given export
// repository factory and configuration.
func NewGalleryService(repoFactory export.RepositoryFactory, cfg GalleryConfig) (*GalleryService, error) {
	exportRepo, err := repoFactory()
	if err != nil {
		return nil, fmt.Errorf("new export repo: %w", err)
	}

	return &GalleryService{
		exportRepo: exportRepo,
		cfg:        cfg,
		log:        logging.GetLogger("svc.gallerysvc.gallery_service"),
	}, nil
}

// Generate renders the gallery page for the collection and stores it under
// the configured output name. A template missing a placeholder is logged
// and reported but does not abort the export; the caller decides how loud
// to be about it. Returns the full destination path.
func (s *GalleryService) Generate(ctx context.Context, movies domain.MovieSet) (path string, err error) {
	log := s.log.With(logging.Group("gallery",
		"template", s.cfg.TemplateFile,
		"output", s.cfg.OutputName,
	))

	defer func() {
		if err != nil && !errors.Is(err, ErrPlaceholderMissing) {
			log.WarnContext(ctx, "generate gallery failed", "error", err)
		} else {
			log.DebugContext(ctx, "gallery generated", "movies", len(movies))
		}
	}()

	page, err := os.ReadFile(s.cfg.TemplateFile)
	if err != nil {
		return "", fmt.Errorf("read template: %w", err)
	}

	grid, err := renderMovieGrid(movies)
	if err != nil {
		return "", fmt.Errorf("render grid: %w", err)
	}

	content := string(page)

	var missing []string

	for placeholder, replacement := range map[string]string{
		placeholderTitle: s.cfg.Title,
		placeholderGrid:  grid,
	} {
		if !strings.Contains(content, placeholder) {
			missing = append(missing, placeholder)

			continue
		}

		content = strings.ReplaceAll(content, placeholder, replacement)
	}

	if storeErr := s.exportRepo.Store(ctx, s.cfg.OutputName, []byte(content)); storeErr != nil {
		return "", fmt.Errorf("store gallery: %w", storeErr)
	}

	if len(missing) > 0 {
		log.WarnContext(ctx, "template placeholders missing", "placeholders", missing)

		return s.exportRepo.Filename(s.cfg.OutputName),
			fmt.Errorf("%w: %s", ErrPlaceholderMissing, strings.Join(missing, ", "))
	}

	return s.exportRepo.Filename(s.cfg.OutputName), nil
}
