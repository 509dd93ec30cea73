// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store provides durable key-value persistence for the session
// credential and the cached user profile.
//
// The primary abstraction is [CredentialStore]. Backends ship for SQLite
// (default), Redis and process memory; [NewSealedCredentialStore] decorates
// any of them with at-rest encryption. Every backend failure is wrapped with
// [ErrStoreUnavailable] so callers can tell "store is down" apart from
// [ErrKeyNotFound] with [errors.Is].
package store

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/credential_store_mock.go -package=mock

// Keys under which the session is persisted.
const (
	// KeyAuthToken holds the bearer credential. Its absence is the canonical
	// logged-out representation.
	KeyAuthToken = "auth_token"

	// KeyUserData holds the JSON-serialized profile.
	KeyUserData = "user_data"
)

// CredentialStore is a durable string key-value store.
//
// Every operation is individually atomic and idempotent; no multi-key
// transaction is offered.
type CredentialStore interface {
	// Get returns the value stored under key, or [ErrKeyNotFound].
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Remove deletes key. Removing an absent key succeeds.
	Remove(ctx context.Context, key string) error
}
