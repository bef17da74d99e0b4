package context

import (
	"context"
)

type contextKey string

const contextKeyUsername = contextKey("username")

// UsernameFromContext extracts the active username from the context.
// Returns the username and true if present, or empty string and false if not present.
func UsernameFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(contextKeyUsername).(string)

	return username, ok
}

// WithUsername creates a new context with the given username value.
// The command loop sets this whenever a user becomes active so that every
// log record can be attributed to the user it was executed for.
func WithUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, contextKeyUsername, username)
}
