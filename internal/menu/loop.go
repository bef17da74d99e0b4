package menu

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/mkrupp/movieshelf/internal/cli"
	"github.com/mkrupp/movieshelf/internal/domain"
	context_ "github.com/mkrupp/movieshelf/internal/infra/context"
	"github.com/mkrupp/movieshelf/internal/infra/logging"
	"github.com/mkrupp/movieshelf/internal/svc/catalogsvc"
)

// State is the position of the command loop in its session lifecycle.
type State int

const (
	// StateAwaitingUser means no user is active; the user menu is shown.
	StateAwaitingUser State = iota

	// StateUserSelected means a user was just activated; the collection is
	// loaded before commands are accepted.
	StateUserSelected

	// StateAwaitingCommand means the menu is shown and a command is read.
	StateAwaitingCommand

	// StateExecuting means the selected command is being dispatched.
	StateExecuting

	// StateTerminated means the loop has finished.
	StateTerminated
)

// Loop drives the interactive session: user selection, command menu and
// dispatch, until the user quits or the input stream ends.
type Loop struct {
	catalog    *catalogsvc.CatalogService
	dispatcher *Dispatcher
	prompter   *cli.Prompter
	printer    *cli.Printer
	log        logging.Logger

	state  State
	cmdSeq uint64
}

// NewLoop creates a Loop in StateAwaitingUser.
func NewLoop(
	catalog *catalogsvc.CatalogService,
	dispatcher *Dispatcher,
	prompter *cli.Prompter,
	printer *cli.Printer,
) *Loop {
	return &Loop{
		catalog:    catalog,
		dispatcher: dispatcher,
		prompter:   prompter,
		printer:    printer,
		log:        logging.GetLogger("menu.loop"),
		state:      StateAwaitingUser,
	}
}

// State returns the loop's current lifecycle state.
func (l *Loop) State() State {
	return l.state
}

// Run executes the session until termination. Returns nil on a clean quit
// and the underlying error when the input stream fails.
func (l *Loop) Run(ctx context.Context) error {
	l.printer.Title("My Movies Database")

	var (
		movies domain.MovieSet
		code   int
	)

	for l.state != StateTerminated {
		switch l.state {
		case StateAwaitingUser:
			usr, err := l.selectUser(ctx)
			if err != nil {
				return fmt.Errorf("select user: %w", err)
			}

			l.catalog.SelectUser(ctx, usr)
			l.state = StateUserSelected

		case StateUserSelected:
			loaded, err := l.catalog.Movies(ctx)
			if err != nil {
				return fmt.Errorf("load movies: %w", err)
			}

			movies = loaded

			if username, ok := l.catalog.Session.ActiveUsername(); ok {
				l.printer.Success("Welcome back, %s!", username)
			}

			l.state = StateAwaitingCommand

		case StateAwaitingCommand:
			selected, err := l.promptCommand(ctx)
			if err != nil {
				return fmt.Errorf("read command: %w", err)
			}

			code = selected
			l.state = StateExecuting

		case StateExecuting:
			if err := l.execute(ctx, code, movies); err != nil {
				return err
			}

		case StateTerminated:
		}
	}

	return nil
}

func (l *Loop) promptCommand(_ context.Context) (int, error) {
	l.printer.Blank()
	l.printer.Heading("Menu:")

	for _, entry := range l.dispatcher.Entries() {
		l.printer.MenuItem(entry.Code, entry.Label)
	}

	l.printer.Blank()

	minCode, maxCode := l.dispatcher.Bounds()

	return l.prompter.IntInRange(
		fmt.Sprintf("Enter choice (%d-%d): ", minCode, maxCode),
		minCode, maxCode,
	)
}

// execute dispatches one command and performs the resulting state
// transition. Quit and switch-user change the lifecycle; everything else
// returns to the command menu.
func (l *Loop) execute(ctx context.Context, code int, movies domain.MovieSet) error {
	l.cmdSeq++

	cctx := context_.WithCommandSeq(ctx, l.cmdSeq)
	if username, ok := l.catalog.Session.ActiveUsername(); ok {
		cctx = context_.WithUsername(cctx, username)
	}

	l.printer.Blank()

	err := l.dispatcher.Dispatch(cctx, code, movies)

	switch {
	case err == nil:
	case errors.Is(err, ErrNoMovies):
		l.printer.Error("No movies in your collection yet. Add one first.")
	case errors.Is(err, ErrUnknownCommand):
		l.printer.Error("Unknown command.")
	case errors.Is(err, io.EOF):
		return fmt.Errorf("dispatch command: %w", err)
	default:
		l.log.WarnContext(cctx, "command failed", "command", code, "error", err)
		l.printer.Error("Something went wrong: %v", err)
	}

	switch code {
	case CmdQuit:
		l.state = StateTerminated
	case CmdSwitchUser:
		l.state = StateAwaitingUser
	default:
		l.state = StateAwaitingCommand

		if _, err := l.prompter.Line("\nPress enter to continue "); err != nil {
			return fmt.Errorf("await continue: %w", err)
		}
	}

	return nil
}
