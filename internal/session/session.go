// Package session tracks which user identity the running process operates
// under. Every movie-affecting operation is gated on an active user being set.
package session

import "errors"

// ErrNoActiveUser is returned when a movie operation is attempted without an
// active user. It is recovered at the handler boundary, never fatal.
var ErrNoActiveUser = errors.New("no active user")

// Session holds the active-user state for one interactive process.
// It is passed explicitly to whatever needs it instead of living in globals,
// so tests can run in parallel with independent sessions.
type Session struct {
	userID   int64
	username string
	active   bool
}

// New creates a Session with no active user.
func New() *Session {
	return &Session{}
}

// SetActive marks the given user as active.
func (s *Session) SetActive(userID int64, username string) {
	s.userID = userID
	s.username = username
	s.active = true
}

// ClearActive removes the active user, returning the session to its initial state.
func (s *Session) ClearActive() {
	s.userID = 0
	s.username = ""
	s.active = false
}

// ActiveID returns the active user's id and true, or zero and false when no
// user is active.
func (s *Session) ActiveID() (int64, bool) {
	return s.userID, s.active
}

// ActiveUsername returns the active user's name and true, or empty string and
// false when no user is active.
func (s *Session) ActiveUsername() (string, bool) {
	return s.username, s.active
}

// RequireActive returns the active user's id, or ErrNoActiveUser when unset.
// Used as a guard at the top of every movie-affecting operation.
func (s *Session) RequireActive() (int64, error) {
	if !s.active {
		return 0, ErrNoActiveUser
	}

	return s.userID, nil
}
