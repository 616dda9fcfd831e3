// Package session resolves the identity of the currently authenticated user.
//
// The identity provider itself is external; this package only reads the
// stored credential, extracts the user identity, and invalidates it on sign
// out. No task operation may run without a resolved session.
package session

import (
	"context"
	"errors"
	"time"
)

// ErrNoSession is returned when no session is stored or the stored session
// can no longer be used. Callers treat it as "go log in", never as a
// retryable failure.
var ErrNoSession = errors.New("no active session")

// Session is the resolved identity of the current user. Read-only for the
// rest of the application.
type Session struct {
	UserID    string
	Email     string
	ExpiresAt time.Time
}

// Provider resolves the current session and signs out.
type Provider interface {
	// Current returns the active session, or ErrNoSession.
	Current(ctx context.Context) (Session, error)

	// SignOut invalidates the stored session. Signing out with no stored
	// session is not an error.
	SignOut(ctx context.Context) error
}
