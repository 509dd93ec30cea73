// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package crypto seals values before they reach a credential store, so a
// copied database file or Redis dump does not leak a usable bearer token.
package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/keychain_mock.go -package=mock

// KeyChain encrypts and decrypts individual stored values with a key derived
// from a configured secret.
//
// Sealed form:
//
//	base64( salt(16) ‖ nonce(12) ‖ AES-256-GCM ciphertext )
//
// The salt is fresh per value, so sealing the same plaintext twice yields
// different output.
type KeyChain interface {
	// Seal encrypts plaintext and returns the sealed form.
	Seal(plaintext string) (string, error)

	// Open reverses Seal. It returns [ErrSealedValueCorrupt] (wrapped) when
	// the value was not produced by Seal with the same secret.
	Open(sealed string) (string, error)
}
