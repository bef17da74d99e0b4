//go:build integration || all

package user_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mkrupp/movieshelf/internal/domain"
	"github.com/mkrupp/movieshelf/internal/infra/logging"

	. "github.com/mkrupp/movieshelf/internal/repo/user"
)

func setupSQLiteUserTestRepo(t *testing.T) *SQLiteUserRepository {
	t.Helper()

	logging.Configure(context.TODO(), logging.LoggerConfig{
		OutputHandle: os.Stderr,
		Level:        "debug",
	}, "test")

	cfg := SQLiteUserRepositoryConfig{
		DatabasePath: filepath.Join(t.TempDir(), "users.db"),
	}

	repo, err := NewSQLiteUserRepository(cfg)
	if err != nil {
		t.Fatalf("failed to create repository: %v", err)
	}

	t.Cleanup(func() {
		if err := repo.Close(); err != nil {
			t.Errorf("failed to close repository: %v", err)
		}
	})

	return repo
}

func TestSQLiteUserRepository_EnsureUser(t *testing.T) {
	t.Parallel()

	repo := setupSQLiteUserTestRepo(t)
	ctx := context.Background()

	id, err := repo.EnsureUser(ctx, "maria")
	if err != nil {
		t.Fatalf("EnsureUser() error = %v", err)
	}

	if id == 0 {
		t.Error("EnsureUser() returned zero id")
	}

	// ensuring the same name again returns the same id
	again, err := repo.EnsureUser(ctx, "maria")
	if err != nil {
		t.Fatalf("EnsureUser() second call error = %v", err)
	}

	if again != id {
		t.Errorf("EnsureUser() second call id = %d, want %d", again, id)
	}
}

func TestSQLiteUserRepository_EnsureUser_EmptyName(t *testing.T) {
	t.Parallel()

	repo := setupSQLiteUserTestRepo(t)

	if _, err := repo.EnsureUser(context.Background(), ""); !errors.Is(err, domain.ErrInvalidUsername) {
		t.Errorf("EnsureUser() error = %v, want %v", err, domain.ErrInvalidUsername)
	}
}

func TestSQLiteUserRepository_ListUsers_InsertionOrder(t *testing.T) {
	t.Parallel()

	repo := setupSQLiteUserTestRepo(t)
	ctx := context.Background()

	for _, username := range []string{"zoe", "adam", "maria"} {
		if _, err := repo.EnsureUser(ctx, username); err != nil {
			t.Fatalf("EnsureUser(%q) error = %v", username, err)
		}
	}

	users, err := repo.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers() error = %v", err)
	}

	want := []string{"zoe", "adam", "maria"}
	if len(users) != len(want) {
		t.Fatalf("ListUsers() = %d users, want %d", len(users), len(want))
	}

	for i, username := range want {
		if users[i].Username != username {
			t.Errorf("ListUsers()[%d] = %q, want %q", i, users[i].Username, username)
		}
	}
}

func TestSQLiteUserRepository_GetUsername(t *testing.T) {
	t.Parallel()

	repo := setupSQLiteUserTestRepo(t)
	ctx := context.Background()

	id, err := repo.EnsureUser(ctx, "maria")
	if err != nil {
		t.Fatalf("EnsureUser() error = %v", err)
	}

	username, found, err := repo.GetUsername(ctx, id)
	if err != nil {
		t.Fatalf("GetUsername() error = %v", err)
	}

	if !found || username != "maria" {
		t.Errorf("GetUsername() = (%q, %v), want (%q, true)", username, found, "maria")
	}

	if _, found, err := repo.GetUsername(ctx, id+1000); err != nil || found {
		t.Errorf("GetUsername() for unknown id = (found=%v, err=%v), want (false, nil)", found, err)
	}
}
