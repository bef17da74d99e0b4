//go:build integration || all

package export_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mkrupp/movieshelf/internal/infra/logging"

	. "github.com/mkrupp/movieshelf/internal/repo/export"
)

func setupFileSystemExportTestRepo(t *testing.T) (*FileSystemExportRepository, string) {
	t.Helper()

	logging.Configure(context.TODO(), logging.LoggerConfig{
		OutputHandle: os.Stderr,
		Level:        "debug",
	}, "test")

	tempDir := t.TempDir()

	repo, err := NewFileSystemExportRepository(FileSystemExportRepositoryConfig{
		Basedir: tempDir,
	})
	if err != nil {
		t.Fatalf("failed to create repository: %v", err)
	}

	return repo, tempDir
}

func TestFileSystemExportRepository_Store(t *testing.T) {
	t.Parallel()

	repo, tempDir := setupFileSystemExportTestRepo(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		artifact string
		data     []byte
	}{
		{
			name:     "stores new artifact",
			artifact: "gallery.html",
			data:     []byte("<html>original</html>"),
		},
		{
			name:     "overwrites existing artifact",
			artifact: "gallery.html",
			data:     []byte("<p>new</p>"),
		},
		{
			name:     "stores empty artifact",
			artifact: "empty.png",
			data:     []byte{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := repo.Store(ctx, tt.artifact, tt.data); err != nil {
				t.Fatalf("Store() error = %v", err)
			}

			content, err := os.ReadFile(filepath.Join(tempDir, tt.artifact))
			if err != nil {
				t.Fatalf("failed to read stored file: %v", err)
			}

			if !bytes.Equal(content, tt.data) {
				t.Errorf("content mismatch\nwant: %q\ngot:  %q", tt.data, content)
			}
		})
	}
}

func TestFileSystemExportRepository_Store_InvalidName(t *testing.T) {
	t.Parallel()

	repo, tempDir := setupFileSystemExportTestRepo(t)
	ctx := context.Background()

	for _, name := range []string{
		filepath.Join("sub", "chart.png"),
		filepath.Join("..", "escape.png"),
	} {
		if err := repo.Store(ctx, name, []byte("data")); !errors.Is(err, ErrInvalidArtifactName) {
			t.Errorf("Store(%q) error = %v, want %v", name, err, ErrInvalidArtifactName)
		}
	}

	entries, err := os.ReadDir(tempDir)
	if err != nil {
		t.Fatalf("failed to read base directory: %v", err)
	}

	if len(entries) != 0 {
		t.Errorf("Store() wrote %d files despite invalid names", len(entries))
	}
}

func TestFileSystemExportRepository_Filename(t *testing.T) {
	t.Parallel()

	repo, tempDir := setupFileSystemExportTestRepo(t)

	if got, want := repo.Filename("chart.png"), filepath.Join(tempDir, "chart.png"); got != want {
		t.Errorf("Filename() = %q, want %q", got, want)
	}
}
