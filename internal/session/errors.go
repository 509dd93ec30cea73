package session

import "errors"

var (
	// ErrEmptyCredential is returned by Login for an empty credential.
	ErrEmptyCredential = errors.New("empty credential")

	// ErrPersistSession is returned when the stored record could not be
	// written during login. It is joined with the store error.
	ErrPersistSession = errors.New("failed to persist session")

	// ErrClearSession is returned when logout could not remove the stored
	// record. The in-memory session is logged out regardless.
	ErrClearSession = errors.New("failed to clear stored session")
)
