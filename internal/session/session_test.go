package session_test

import (
	"errors"
	"testing"

	"github.com/mkrupp/movieshelf/internal/session"
)

func TestSession_initiallyInactive(t *testing.T) {
	t.Parallel()

	sess := session.New()

	if _, ok := sess.ActiveID(); ok {
		t.Error("expected no active id")
	}

	if _, ok := sess.ActiveUsername(); ok {
		t.Error("expected no active username")
	}

	if _, err := sess.RequireActive(); !errors.Is(err, session.ErrNoActiveUser) {
		t.Errorf("RequireActive() = %v, want ErrNoActiveUser", err)
	}
}

func TestSession_setAndClear(t *testing.T) {
	t.Parallel()

	sess := session.New()
	sess.SetActive(7, "alice")

	if id, ok := sess.ActiveID(); !ok || id != 7 {
		t.Errorf("ActiveID() = %d, %v; want 7, true", id, ok)
	}

	if name, ok := sess.ActiveUsername(); !ok || name != "alice" {
		t.Errorf("ActiveUsername() = %q, %v; want alice, true", name, ok)
	}

	if id, err := sess.RequireActive(); err != nil || id != 7 {
		t.Errorf("RequireActive() = %d, %v; want 7, nil", id, err)
	}

	sess.ClearActive()

	if _, err := sess.RequireActive(); !errors.Is(err, session.ErrNoActiveUser) {
		t.Errorf("RequireActive() after clear = %v, want ErrNoActiveUser", err)
	}
}
