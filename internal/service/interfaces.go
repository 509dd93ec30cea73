// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service holds the client-side use cases built on top of the API
// client and the session manager.
//
// [AuthService] is the only path through which the front end signs in or out:
// it talks to the backend auth endpoints and then commits the result through
// [session.Writer]. Backend failures are translated into the sentinels in
// errors.go so screens can pick a message without inspecting status codes.
package service

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/auth_service_mock.go -package=mock

// AuthService signs the user in and out against the backend.
type AuthService interface {
	// SignIn exchanges email and password for a credential and logs the
	// session in.
	SignIn(ctx context.Context, email, password string) error

	// SignUp registers a new account and logs the session in with the
	// credential issued for it.
	SignUp(ctx context.Context, name, email, password string) error

	// SignOut tells the backend to revoke the credential (best effort) and
	// logs the session out locally in any case.
	SignOut(ctx context.Context) error

	// RefreshProfile fetches the current identity and stores it next to the
	// unchanged credential.
	RefreshProfile(ctx context.Context) error
}
