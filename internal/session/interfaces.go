// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package session owns the in-memory authentication state of the client.
//
// A single [Manager] is created per process with an injected
// [store.CredentialStore]. It restores the persisted session once
// ([Manager.Initialize]), serialises every mutation ([Manager.Login],
// [Manager.Logout], [Manager.Invalidate], [Manager.UpdateProfile]) and
// notifies subscribers after each committed transition. Reads
// ([Manager.Current]) never touch the store.
//
// Consumers depend on the narrow [Reader] and [Writer] interfaces rather than
// on *Manager.
package session

import (
	"context"

	"github.com/MKhiriev/go-session-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/session_mock.go -package=mock

// Reader is the read side of the session: snapshots and change notifications.
type Reader interface {
	// Current returns the last committed session snapshot.
	Current() models.Session

	// Subscribe registers listener for every committed transition and returns
	// a function that removes it.
	Subscribe(listener Listener) (unsubscribe func())
}

// Writer is the mutation side of the session.
type Writer interface {
	// Login persists credential and profile, then commits the authenticated
	// state.
	Login(ctx context.Context, credential string, profile *models.Profile) error

	// Logout removes the stored record and commits the logged-out state even
	// when removal fails.
	Logout(ctx context.Context) error

	// Invalidate logs out when the session still holds credential.
	Invalidate(ctx context.Context, credential string, reason error) error

	// UpdateProfile stores profile when the session still holds credential.
	UpdateProfile(ctx context.Context, credential string, profile *models.Profile) error
}

// Sessions is the full session API.
type Sessions interface {
	Reader
	Writer
}

// Listener receives committed transitions. It runs on the goroutine that
// performed the mutation and must not call [Writer] methods synchronously.
type Listener func(Event)

// Event describes one committed transition.
type Event struct {
	Previous models.Session
	Current  models.Session
}

// StatusChanged reports whether the transition changed the status.
func (e Event) StatusChanged() bool {
	return e.Previous.Status != e.Current.Status
}
