package crypto

import "errors"

var (
	// ErrEmptySecret is returned by [NewKeyChain] when no secret is given.
	ErrEmptySecret = errors.New("empty keychain secret")

	// ErrSealedValueCorrupt is returned when a sealed value cannot be decoded
	// or fails authentication.
	ErrSealedValueCorrupt = errors.New("sealed value is corrupt")
)
