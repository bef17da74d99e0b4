package chartsvc_test

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/mkrupp/movieshelf/internal/analysis"
	"github.com/mkrupp/movieshelf/internal/domain"
	"github.com/mkrupp/movieshelf/internal/repo/export"
	"github.com/mkrupp/movieshelf/internal/svc/chartsvc"
)

type mockExportRepository struct {
	stored map[string][]byte
}

func newMockExportRepository() *mockExportRepository {
	return &mockExportRepository{stored: make(map[string][]byte)}
}

func (m *mockExportRepository) Store(_ context.Context, name string, data []byte) error {
	m.stored[name] = data

	return nil
}

func (m *mockExportRepository) Filename(name string) string {
	return filepath.Join("var", "export", name)
}

func mockExportFactory(repo export.Repository) export.RepositoryFactory {
	return func() (export.Repository, error) {
		return repo, nil
	}
}

func testConfig() chartsvc.ChartConfig {
	return chartsvc.ChartConfig{
		Width:        400,
		Height:       240,
		Interpolator: "nearestneighbor",
	}
}

func testMovies() domain.MovieSet {
	return domain.MovieSet{
		"Alien":   {Title: "Alien", Year: 1979, Rating: 8.5},
		"Arrival": {Title: "Arrival", Year: 2016, Rating: 7.9},
		"Contact": {Title: "Contact", Year: 1997, Rating: 7.5},
	}
}

var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func TestChartService_RenderChart(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		attribute string
		filename  string
		wantFile  string
	}{
		{
			name:      "renders rating bars",
			attribute: domain.AttrRating,
			filename:  "ratings",
			wantFile:  "ratings.png",
		},
		{
			name:      "renders year scatter",
			attribute: domain.AttrYear,
			filename:  "years.png",
			wantFile:  "years.png",
		},
		{
			name:      "renders favorite flags",
			attribute: domain.AttrIsFavorite,
			filename:  "favs",
			wantFile:  "favs.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := newMockExportRepository()

			svc, err := chartsvc.NewChartService(mockExportFactory(repo), testConfig())
			if err != nil {
				t.Fatalf("NewChartService() error = %v", err)
			}

			path, err := svc.RenderChart(context.Background(), testMovies(), tt.attribute, tt.filename)
			if err != nil {
				t.Fatalf("RenderChart() error = %v", err)
			}

			if want := filepath.Join("var", "export", tt.wantFile); path != want {
				t.Errorf("RenderChart() path = %q, want %q", path, want)
			}

			data, ok := repo.stored[tt.wantFile]
			if !ok {
				t.Fatalf("RenderChart() stored nothing under %q", tt.wantFile)
			}

			if !bytes.HasPrefix(data, pngMagic) {
				t.Error("RenderChart() stored data is not a PNG")
			}
		})
	}
}

func TestChartService_RenderChart_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		movies    domain.MovieSet
		attribute string
		wantErr   error
	}{
		{
			name:      "fails on empty collection",
			movies:    domain.MovieSet{},
			attribute: domain.AttrRating,
			wantErr:   analysis.ErrEmptyInput,
		},
		{
			name:      "fails on non numeric attribute",
			movies:    testMovies(),
			attribute: domain.AttrTitle,
			wantErr:   analysis.ErrAttributeNotFound,
		},
		{
			name:      "fails on unknown attribute",
			movies:    testMovies(),
			attribute: "director",
			wantErr:   analysis.ErrAttributeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := newMockExportRepository()

			svc, err := chartsvc.NewChartService(mockExportFactory(repo), testConfig())
			if err != nil {
				t.Fatalf("NewChartService() error = %v", err)
			}

			_, err = svc.RenderChart(context.Background(), tt.movies, tt.attribute, "chart")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("RenderChart() error = %v, want %v", err, tt.wantErr)
			}

			if len(repo.stored) != 0 {
				t.Error("RenderChart() stored data despite error")
			}
		})
	}
}

func TestNewChartService_UnknownInterpolator(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Interpolator = "lanczos"

	_, err := chartsvc.NewChartService(mockExportFactory(newMockExportRepository()), cfg)
	if !errors.Is(err, chartsvc.ErrUnknownInterpolator) {
		t.Errorf("NewChartService() error = %v, want %v", err, chartsvc.ErrUnknownInterpolator)
	}
}
