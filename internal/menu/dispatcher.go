// Package menu implements the interactive command surface: a table driven
// dispatcher, the command handlers and the session state loop around them.
package menu

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/mkrupp/movieshelf/internal/domain"
)

var (
	// ErrUnknownCommand is returned for command codes without a registered
	// handler.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrNoMovies is returned when a command needs a non-empty collection
	// but the active user has no movies yet.
	ErrNoMovies = errors.New("no movies in collection")
)

// Command codes as presented in the menu.
const (
	CmdQuit         = 0
	CmdList         = 1
	CmdAdd          = 2
	CmdDelete       = 3
	CmdUpdateNote   = 4
	CmdStats        = 5
	CmdRandom       = 6
	CmdSearch       = 7
	CmdSort         = 8
	CmdChart        = 9
	CmdFilter       = 10
	CmdGallery      = 11
	CmdSwitchUser   = 12
	CmdUpdateRating = 13
)

// HandlerFunc executes one menu command against the working collection.
type HandlerFunc func(ctx context.Context, movies domain.MovieSet) error

// Command couples a menu label with its handler. Commands flagged with
// RequiresMovies are rejected up front on an empty collection.
type Command struct {
	Label          string
	Handler        HandlerFunc
	RequiresMovies bool
}

// MenuEntry is one renderable line of the menu.
type MenuEntry struct {
	Code  int
	Label string
}

// Dispatcher routes command codes to their registered handlers.
type Dispatcher struct {
	commands map[int]Command
}

// NewDispatcher creates an empty Dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		commands: make(map[int]Command),
	}
}

// Register binds a command to its code, replacing any previous binding.
func (d *Dispatcher) Register(code int, cmd Command) {
	d.commands[code] = cmd
}

// Dispatch runs the handler registered for code. Returns ErrUnknownCommand
// for unregistered codes and ErrNoMovies when the command requires a
// non-empty collection; in both cases no handler runs.
func (d *Dispatcher) Dispatch(ctx context.Context, code int, movies domain.MovieSet) error {
	cmd, ok := d.commands[code]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownCommand, code)
	}

	if cmd.RequiresMovies && len(movies) == 0 {
		return ErrNoMovies
	}

	return cmd.Handler(ctx, movies)
}

// Entries returns all registered commands ordered by code.
func (d *Dispatcher) Entries() []MenuEntry {
	entries := make([]MenuEntry, 0, len(d.commands))
	for code, cmd := range d.commands {
		entries = append(entries, MenuEntry{Code: code, Label: cmd.Label})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Code < entries[j].Code
	})

	return entries
}

// Bounds returns the lowest and highest registered command code.
func (d *Dispatcher) Bounds() (minCode, maxCode int) {
	first := true

	for code := range d.commands {
		if first || code < minCode {
			minCode = code
		}

		if first || code > maxCode {
			maxCode = code
		}

		first = false
	}

	return minCode, maxCode
}
