package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-session-keeper/internal/crypto"
	"github.com/MKhiriev/go-session-keeper/internal/logger"
)

type sealedCredentialStore struct {
	inner    CredentialStore
	keyChain crypto.KeyChain
	logger   *logger.Logger
}

// NewSealedCredentialStore encrypts every value with keyChain before handing
// it to inner and decrypts on the way out.
func NewSealedCredentialStore(inner CredentialStore, keyChain crypto.KeyChain, log *logger.Logger) CredentialStore {
	return &sealedCredentialStore{inner: inner, keyChain: keyChain, logger: log}
}

func (s *sealedCredentialStore) Get(ctx context.Context, key string) (string, error) {
	sealed, err := s.inner.Get(ctx, key)
	if err != nil {
		return "", err
	}

	value, err := s.keyChain.Open(sealed)
	if err != nil {
		s.logger.Err(err).Str("func", "sealedCredentialStore.Get").Str("key", key).Msg("failed to open sealed value")
		return "", fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	return value, nil
}

func (s *sealedCredentialStore) Set(ctx context.Context, key, value string) error {
	sealed, err := s.keyChain.Seal(value)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	return s.inner.Set(ctx, key, sealed)
}

func (s *sealedCredentialStore) Remove(ctx context.Context, key string) error {
	return s.inner.Remove(ctx, key)
}
