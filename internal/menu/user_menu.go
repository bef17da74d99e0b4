package menu

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/mkrupp/movieshelf/internal/domain"
)

// selectUser presents the user menu until a user is chosen. Existing users
// are listed alphabetically, case insensitively, with "Create new user" as
// the last entry. Creating a user selects it immediately.
func (l *Loop) selectUser(ctx context.Context) (domain.User, error) {
	for {
		users, err := l.catalog.Users(ctx)
		if err != nil {
			return domain.User{}, err
		}

		sort.Slice(users, func(i, j int) bool {
			return strings.ToLower(users[i].Username) < strings.ToLower(users[j].Username)
		})

		l.printer.Blank()
		l.printer.Heading("Select user:")

		for i, usr := range users {
			l.printer.MenuItem(i+1, usr.Username)
		}

		l.printer.MenuItem(len(users)+1, "Create new user")

		choice, err := l.prompter.IntInRange("Your choice: ", 1, len(users)+1)
		if err != nil {
			return domain.User{}, err
		}

		if choice <= len(users) {
			return users[choice-1], nil
		}

		usr, err := l.createUser(ctx)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidUsername) {
				l.printer.Error("Invalid user name.")

				continue
			}

			return domain.User{}, err
		}

		return usr, nil
	}
}

func (l *Loop) createUser(ctx context.Context) (domain.User, error) {
	username, err := l.prompter.NonEmptyLine("Enter new user name: ")
	if err != nil {
		return domain.User{}, err
	}

	usr, err := l.catalog.EnsureUser(ctx, username)
	if err != nil {
		return domain.User{}, err
	}

	l.printer.Success("Welcome, %s!", usr.Username)

	return usr, nil
}
