package menu_test

import (
	"context"
	"errors"
	"testing"

	"github.com/mkrupp/movieshelf/internal/domain"
	"github.com/mkrupp/movieshelf/internal/menu"
)

func TestDispatcher_Dispatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		code        int
		movies      domain.MovieSet
		wantErr     error
		wantInvoked bool
	}{
		{
			name:        "runs registered handler",
			code:        1,
			movies:      domain.MovieSet{"Alien": {Title: "Alien"}},
			wantInvoked: true,
		},
		{
			name:    "rejects unknown command",
			code:    99,
			movies:  domain.MovieSet{"Alien": {Title: "Alien"}},
			wantErr: menu.ErrUnknownCommand,
		},
		{
			name:    "rejects empty collection when movies required",
			code:    1,
			movies:  domain.MovieSet{},
			wantErr: menu.ErrNoMovies,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			invoked := false

			dispatcher := menu.NewDispatcher()
			dispatcher.Register(1, menu.Command{
				Label: "List movies",
				Handler: func(_ context.Context, _ domain.MovieSet) error {
					invoked = true

					return nil
				},
				RequiresMovies: true,
			})

			err := dispatcher.Dispatch(context.Background(), tt.code, tt.movies)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Dispatch() error = %v, want %v", err, tt.wantErr)
				}
			} else if err != nil {
				t.Errorf("Dispatch() error = %v", err)
			}

			if invoked != tt.wantInvoked {
				t.Errorf("Dispatch() invoked = %v, want %v", invoked, tt.wantInvoked)
			}
		})
	}
}

func TestDispatcher_EntriesOrdered(t *testing.T) {
	t.Parallel()

	dispatcher := menu.NewDispatcher()

	noop := func(_ context.Context, _ domain.MovieSet) error { return nil }

	dispatcher.Register(13, menu.Command{Label: "Update movie rating", Handler: noop})
	dispatcher.Register(0, menu.Command{Label: "Exit", Handler: noop})
	dispatcher.Register(5, menu.Command{Label: "Stats", Handler: noop})

	entries := dispatcher.Entries()

	wantCodes := []int{0, 5, 13}
	if len(entries) != len(wantCodes) {
		t.Fatalf("Entries() returned %d entries, want %d", len(entries), len(wantCodes))
	}

	for i, want := range wantCodes {
		if entries[i].Code != want {
			t.Errorf("Entries()[%d].Code = %d, want %d", i, entries[i].Code, want)
		}
	}

	minCode, maxCode := dispatcher.Bounds()
	if minCode != 0 || maxCode != 13 {
		t.Errorf("Bounds() = (%d, %d), want (0, 13)", minCode, maxCode)
	}
}
