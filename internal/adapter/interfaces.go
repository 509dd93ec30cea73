// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter is the authenticated API client used to talk to the
// backend.
//
// The primary abstraction is [API], implemented over HTTP/JSON by
// [HTTPServerAdapter]. Each call snapshots the current session to decide
// whether to attach the bearer credential, so the adapter itself holds no
// session state. Responses are normalised into one error contract:
//
//   - [*NetworkError] when the transport call itself failed;
//   - [*MalformedResponseError] when the body is not JSON;
//   - [*RequestFailedError] for non-2xx statuses.
//
// All three unwrap to sentinels ([ErrNetwork], [ErrMalformedResponse],
// [ErrRequestFailed]), and request failures additionally unwrap to a status
// sentinel such as [ErrUnauthorized] or [ErrConflict], so callers can use
// [errors.Is] without looking at status codes.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-session-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// API performs requests against the backend.
type API interface {
	// Do sends the request described by desc and decodes a successful JSON
	// response into out. out may be nil when the body is not needed.
	Do(ctx context.Context, desc models.RequestDescriptor, out any) error
}

// SessionSource is the part of the session manager the adapter depends on.
type SessionSource interface {
	// Current returns the session snapshot used to pick the credential.
	Current() models.Session

	// Invalidate is called after the backend rejected credential with 401.
	Invalidate(ctx context.Context, credential string, reason error) error
}
