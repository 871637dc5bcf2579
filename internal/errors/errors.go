package errors

import (
	"errors"
)

var (
	// ErrUnauthenticated covers every way a request can fail to present a
	// usable session: missing cookie, unknown token, expired or logged-out
	// session. Callers must not distinguish between those causes.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrForbidden means the session resolved to a real user who lacks the
	// required privilege.
	ErrForbidden = errors.New("forbidden")

	// ErrSessionUserMissing means a session row references a user that no
	// longer exists. This is corrupted state, not a normal auth failure.
	ErrSessionUserMissing = errors.New("could not find user for current session")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailAlreadyInUse  = errors.New("email already in use")
	ErrUserNotFound       = errors.New("user not found")
	ErrSessionNotFound    = errors.New("session not found")
)
