// Package chartsvc renders movie collections as PNG charts: horizontal bars
// for rating-like attributes and a year/title scatter for release years.
package chartsvc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"strings"

	xdraw "golang.org/x/image/draw"

	"github.com/mkrupp/movieshelf/internal/analysis"
	"github.com/mkrupp/movieshelf/internal/domain"
	"github.com/mkrupp/movieshelf/internal/infra/logging"
	"github.com/mkrupp/movieshelf/internal/repo/export"
)

// ErrUnknownInterpolator is returned when an unsupported interpolation method
// is configured.
var ErrUnknownInterpolator = errors.New("unknown interpolator")

//nolint:gochecknoglobals
var (
	// interpolMap maps interpolator names to their implementations.
	// Supported values: "nearestneighbor", "catmullrom", "bilinear", "approxbilinear".
	interpolMap = map[string]xdraw.Interpolator{
		"nearestneighbor": xdraw.NearestNeighbor,
		"catmullrom":      xdraw.CatmullRom,
		"bilinear":        xdraw.BiLinear,
		"approxbilinear":  xdraw.ApproxBiLinear,
	}
)

func getInterpolatorByName(name string) (xdraw.Interpolator, error) {
	interpol, ok := interpolMap[strings.ToLower(name)]
	if !ok {
		return nil, ErrUnknownInterpolator
	}

	return interpol, nil
}

// ChartConfig holds configuration parameters for the chart service.
type ChartConfig struct {
	// Width and Height are the output image dimensions in pixels
	Width  int `env:"WIDTH" default:"1000"`
	Height int `env:"HEIGHT" default:"600"`

	// Interpolator specifies the scaling algorithm used when the rendered
	// canvas is resized to the output dimensions.
	// Valid values are: "nearestneighbor", "catmullrom", "bilinear", "approxbilinear"
	Interpolator string `env:"INTERPOLATOR" default:"catmullrom"`
}

// ChartService renders charts and writes them to the export repository.
type ChartService struct {
	exportRepo export.Repository
	cfg        ChartConfig
	log        logging.Logger
}

// NewChartService creates a new ChartService with the given export repository
// factory and configuration. Returns an error if the configured interpolator
// is unknown or the repository cannot be created.
func NewChartService(repoFactory export.RepositoryFactory, cfg ChartConfig) (*ChartService, error) {
	if _, err := getInterpolatorByName(cfg.Interpolator); err != nil {
		return nil, fmt.Errorf("get interpolator: %w", err)
	}

	exportRepo, err := repoFactory()
	if err != nil {
		return nil, fmt.Errorf("new export repo: %w", err)
	}

	return &ChartService{
		exportRepo: exportRepo,
		cfg:        cfg,
		log:        logging.GetLogger("svc.chartsvc.chart_service"),
	}, nil
}

// RenderChart renders the named numeric attribute of the collection and
// stores the result as a PNG under the given filename (".png" is appended
// when absent). Returns the full destination path.
// Returns analysis.ErrEmptyInput on an empty collection and
// analysis.ErrAttributeNotFound for non-numeric attributes.
func (s *ChartService) RenderChart(
	ctx context.Context,
	movies domain.MovieSet,
	attribute string,
	filename string,
) (path string, err error) {
	log := s.log.With(logging.Group("chart",
		"attribute", attribute,
		"filename", filename,
	))

	defer func() {
		if err != nil {
			log.WarnContext(ctx, "render chart failed", "error", err)
		} else {
			log.DebugContext(ctx, "chart rendered")
		}
	}()

	if len(movies) == 0 {
		return "", analysis.ErrEmptyInput
	}

	if _, ok := (domain.Movie{}).NumericAttribute(attribute); !ok {
		return "", analysis.ErrAttributeNotFound
	}

	if !strings.HasSuffix(filename, ".png") {
		filename += ".png"
	}

	canvas := renderPlot(analysis.Entries(movies), attribute)

	scaled := image.NewRGBA(image.Rect(0, 0, s.cfg.Width, s.cfg.Height))

	interpol, err := getInterpolatorByName(s.cfg.Interpolator)
	if err != nil {
		return "", fmt.Errorf("get interpolator: %w", err)
	}

	interpol.Scale(scaled, scaled.Bounds(), canvas, canvas.Bounds(), xdraw.Over, nil)

	var buf bytes.Buffer

	if err := png.Encode(&buf, scaled); err != nil {
		return "", fmt.Errorf("encode png: %w", err)
	}

	if err := s.exportRepo.Store(ctx, filename, buf.Bytes()); err != nil {
		return "", fmt.Errorf("store chart: %w", err)
	}

	return s.exportRepo.Filename(filename), nil
}
