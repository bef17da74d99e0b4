package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mkrupp/movieshelf/internal/infra/logging"
)

var (
	ErrBytesWrittenMismatch = errors.New("bytes written mismatch")
	ErrInvalidArtifactName  = errors.New("invalid artifact name")
)

// FileSystemExportRepositoryConfig holds configuration for the filesystem-based
// export repository.
type FileSystemExportRepositoryConfig struct {
	// Basedir is the directory rendered artifacts are written to
	Basedir string `env:"BASEDIR" default:"var/export"`
}

// FileSystemExportRepository implements Repository using the local filesystem.
// Artifacts are written flat under the configured base directory; names must
// not contain path separators.
type FileSystemExportRepository struct {
	cfg FileSystemExportRepositoryConfig
	log logging.Logger
}

var _ Repository = (*FileSystemExportRepository)(nil)

// FileSystemExportRepositoryFactory creates a factory function that returns a
// new FileSystemExportRepository. The factory function implements the
// RepositoryFactory type.
func FileSystemExportRepositoryFactory(cfg FileSystemExportRepositoryConfig) RepositoryFactory {
	return func() (Repository, error) {
		return NewFileSystemExportRepository(cfg)
	}
}

// NewFileSystemExportRepository creates a new FileSystemExportRepository and
// ensures the base directory exists. Returns an error if initialization fails.
func NewFileSystemExportRepository(
	cfg FileSystemExportRepositoryConfig,
) (*FileSystemExportRepository, error) {
	log := logging.GetLogger("repo.export.filesystem_export_repository").With(
		logging.Group("repo", "basedir", cfg.Basedir),
	)

	if err := os.MkdirAll(cfg.Basedir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir all: %w", err)
	}

	return &FileSystemExportRepository{
		cfg: cfg,
		log: log,
	}, nil
}

// Filename implements Repository.Filename.
func (fsRepo *FileSystemExportRepository) Filename(name string) string {
	return filepath.Join(fsRepo.cfg.Basedir, name)
}

// Store implements Repository.Store by writing the artifact to the base
// directory, syncing, and verifying the written size.
func (fsRepo *FileSystemExportRepository) Store(ctx context.Context, name string, data []byte) (err error) {
	filename := fsRepo.Filename(name)

	defer func() {
		log := fsRepo.log.With(logging.Group("artifact", "name", name, "filename", filename))
		if err != nil {
			log.ErrorContext(ctx, "artifact store failed", "error", err)
		} else {
			log.DebugContext(ctx, "artifact stored", "size", len(data))
		}
	}()

	if strings.ContainsRune(name, os.PathSeparator) || strings.Contains(name, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidArtifactName, name)
	}

	file, err := os.OpenFile(filename, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	defer file.Close()

	if err := file.Truncate(int64(len(data))); err != nil {
		return fmt.Errorf("truncate: %w", err)
	}

	if bytes, err := file.Write(data); err != nil {
		return fmt.Errorf("write: %w", err)
	} else if err := file.Sync(); err != nil {
		return fmt.Errorf("sync: %w", err)
	} else if info, err := file.Stat(); err != nil {
		return fmt.Errorf("stat: %w", err)
	} else if int64(bytes) != info.Size() || bytes != len(data) {
		return fmt.Errorf("%w: expected %d, got %d", ErrBytesWrittenMismatch, len(data), bytes)
	}

	return nil
}
