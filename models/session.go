// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Status is the authentication status derived from a [Session].
type Status int

const (
	// StatusInitializing is reported until the credential store has been
	// read once at process start.
	StatusInitializing Status = iota
	// StatusUnauthenticated means no credential is held.
	StatusUnauthenticated
	// StatusAuthenticated means a credential is held.
	StatusAuthenticated
)

// String implements [fmt.Stringer].
func (s Status) String() string {
	switch s {
	case StatusInitializing:
		return "initializing"
	case StatusUnauthenticated:
		return "unauthenticated"
	case StatusAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Session is an immutable snapshot of the authentication state.
//
// Values are produced only by [NewSession], which keeps Status a pure
// function of the initialized flag and the credential.
type Session struct {
	// Credential is the opaque bearer token. Empty means absent.
	Credential string

	// Profile is the cached identity. It may be nil while Credential is set
	// but is always nil when Credential is empty.
	Profile *Profile

	// Status is derived; see [NewSession].
	Status Status
}

// NewSession builds a Session snapshot. A profile passed without a credential
// is dropped.
func NewSession(initialized bool, credential string, profile *Profile) Session {
	s := Session{Credential: credential}

	switch {
	case !initialized:
		s.Status = StatusInitializing
	case credential != "":
		s.Status = StatusAuthenticated
	default:
		s.Status = StatusUnauthenticated
	}

	if credential != "" && profile != nil {
		p := *profile
		s.Profile = &p
	}

	return s
}

// Authenticated reports whether the snapshot holds a credential after
// initialization.
func (s Session) Authenticated() bool {
	return s.Status == StatusAuthenticated
}
