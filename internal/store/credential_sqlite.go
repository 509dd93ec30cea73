package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-session-keeper/internal/logger"
)

type sqliteCredentialStore struct {
	db     *DB
	now    func() time.Time
	logger *logger.Logger
}

// NewSQLiteCredentialStore returns a [CredentialStore] backed by the
// credentials table of db. The schema must already be migrated.
func NewSQLiteCredentialStore(db *DB, log *logger.Logger) CredentialStore {
	return &sqliteCredentialStore{db: db, now: time.Now, logger: log}
}

func (s *sqliteCredentialStore) Get(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", ErrEmptyKey
	}

	query, args, err := buildGetCredentialQuery(key)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	var value string
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrKeyNotFound
	}
	if err != nil {
		s.logger.Err(err).
			Str("func", "sqliteCredentialStore.Get").
			Str("key", key).
			Msg("failed to query credential")
		return "", fmt.Errorf("%w: %w: %v", ErrStoreUnavailable, ErrExecutingQuery, err)
	}

	return value, nil
}

func (s *sqliteCredentialStore) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}

	query, args, err := buildUpsertCredentialQuery(key, value, s.now().UTC())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		s.logger.Err(err).
			Str("func", "sqliteCredentialStore.Set").
			Str("key", key).
			Msg("failed to upsert credential")
		return fmt.Errorf("%w: %w: %v", ErrStoreUnavailable, ErrExecutingQuery, err)
	}

	return nil
}

func (s *sqliteCredentialStore) Remove(ctx context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}

	query, args, err := buildDeleteCredentialQuery(key)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		s.logger.Err(err).
			Str("func", "sqliteCredentialStore.Remove").
			Str("key", key).
			Msg("failed to delete credential")
		return fmt.Errorf("%w: %w: %v", ErrStoreUnavailable, ErrExecutingQuery, err)
	}

	return nil
}
