package service

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidInput       = errors.New("invalid input")
	ErrServerUnavailable  = errors.New("server unavailable")

	// ErrNotSignedIn is returned by operations that need a credential when
	// the session holds none.
	ErrNotSignedIn = errors.New("not signed in")

	// ErrEmptyToken is returned when the backend accepted a sign-in but sent
	// no credential.
	ErrEmptyToken = errors.New("backend returned an empty token")
)
