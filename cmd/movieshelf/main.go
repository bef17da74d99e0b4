package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/mkrupp/movieshelf/internal/cli"
	"github.com/mkrupp/movieshelf/internal/infra/config"
	"github.com/mkrupp/movieshelf/internal/infra/logging"
	"github.com/mkrupp/movieshelf/internal/menu"
	"github.com/mkrupp/movieshelf/internal/repo/export"
	"github.com/mkrupp/movieshelf/internal/repo/movie"
	"github.com/mkrupp/movieshelf/internal/repo/user"
	"github.com/mkrupp/movieshelf/internal/session"
	"github.com/mkrupp/movieshelf/internal/svc/catalogsvc"
	"github.com/mkrupp/movieshelf/internal/svc/catalogsvc/omdbclient"
	"github.com/mkrupp/movieshelf/internal/svc/chartsvc"
	"github.com/mkrupp/movieshelf/internal/svc/gallerysvc"
)

const appName = "movieshelf"

type Config struct {
	config.EnvConfig

	Log     logging.LoggerConfig                    `envPrefix:"LOG_"`
	Movie   movie.SQLiteMovieRepositoryConfig       `envPrefix:"MOVIE_"`
	User    user.SQLiteUserRepositoryConfig         `envPrefix:"USER_"`
	Export  export.FileSystemExportRepositoryConfig `envPrefix:"EXPORT_"`
	OMDb    omdbclient.HTTPClientConfig             `envPrefix:"OMDB_"`
	Chart   chartsvc.ChartConfig                    `envPrefix:"CHART_"`
	Gallery gallerysvc.GalleryConfig                `envPrefix:"GALLERY_"`

	// Color toggles ANSI colors on terminal output
	Color bool `env:"COLOR" default:"true"`
}

func main() {
	var (
		cfg Config
		ctx = context.Background()
	)

	// A missing .env file is fine, the environment alone is enough.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		panic(err)
	}

	if err := config.Parse(ctx, &cfg, "MOVIESHELF"); err != nil {
		panic(err)
	}

	logging.Configure(ctx, cfg.Log, appName)

	if err := run(ctx, cfg); err != nil {
		panic(err)
	}
}

func run(ctx context.Context, cfg Config) (err error) {
	defer func() {
		log := logging.GetLogger("cmd.movieshelf")

		if err != nil {
			log.ErrorContext(ctx, "error", "err", err)

			return
		}

		log.InfoContext(ctx, "shutdown")
	}()

	catalog, err := catalogsvc.NewCatalogService(
		movie.SQLiteMovieRepositoryFactory(cfg.Movie),
		user.SQLiteUserRepositoryFactory(cfg.User),
		session.New(),
		omdbclient.NewHTTPClient(cfg.OMDb, nil),
	)
	if err != nil {
		return fmt.Errorf("new catalog service: %w", err)
	}

	defer func() {
		if closeErr := catalog.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close catalog service: %w", closeErr)
		}
	}()

	charts, err := chartsvc.NewChartService(
		export.FileSystemExportRepositoryFactory(cfg.Export),
		cfg.Chart,
	)
	if err != nil {
		return fmt.Errorf("new chart service: %w", err)
	}

	gallery, err := gallerysvc.NewGalleryService(
		export.FileSystemExportRepositoryFactory(cfg.Export),
		cfg.Gallery,
	)
	if err != nil {
		return fmt.Errorf("new gallery service: %w", err)
	}

	printer := cli.NewPrinter(os.Stdout, cfg.Color)
	prompter := cli.NewPrompter(os.Stdin, printer)

	dispatcher := menu.NewDispatcher()
	menu.NewHandlers(catalog, charts, gallery, prompter, printer).Register(dispatcher)

	if err := menu.NewLoop(catalog, dispatcher, prompter, printer).Run(ctx); err != nil {
		return fmt.Errorf("run menu loop: %w", err)
	}

	return nil
}
