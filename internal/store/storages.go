package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/MKhiriev/go-session-keeper/internal/config"
	"github.com/MKhiriev/go-session-keeper/internal/crypto"
	"github.com/MKhiriev/go-session-keeper/internal/logger"
)

// ClientStorages groups the storage the client needs together with the
// resources that have to be released on shutdown.
type ClientStorages struct {
	// CredentialStore persists the session.
	CredentialStore CredentialStore

	closers []func() error
}

// NewClientStorages initialises the credential store selected by cfg.Driver:
//   - sqlite: opens cfg.DSN and runs the embedded migrations;
//   - redis:  connects to cfg.Redis.Address and pings it;
//   - memory: keeps values in process memory.
//
// When cfg.Secret is set the store is wrapped with
// [NewSealedCredentialStore].
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, log *logger.Logger) (*ClientStorages, error) {
	log = log.WithComponent("store")
	log.Info().Str("driver", cfg.Driver).Msg("creating credential store...")

	storages := &ClientStorages{}

	switch cfg.Driver {
	case config.DriverSQLite:
		db, err := NewConnectSQLite(ctx, cfg.DSN, log)
		if err != nil {
			return nil, fmt.Errorf("sqlite connection error: %w", err)
		}
		storages.closers = append(storages.closers, db.Close)

		if err = db.Migrate(); err != nil {
			_ = storages.Close()
			return nil, fmt.Errorf("migration failed: %w", err)
		}
		storages.CredentialStore = NewSQLiteCredentialStore(db, log)

	case config.DriverRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		storages.closers = append(storages.closers, rdb.Close)

		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = storages.Close()
			return nil, fmt.Errorf("redis connection error: %w", err)
		}
		storages.CredentialStore = NewRedisCredentialStore(rdb, cfg.Redis.Prefix, log)

	case config.DriverMemory:
		storages.CredentialStore = NewMemoryCredentialStore()

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}

	if cfg.Secret != "" {
		keyChain, err := crypto.NewKeyChain(cfg.Secret)
		if err != nil {
			_ = storages.Close()
			return nil, fmt.Errorf("keychain: %w", err)
		}
		storages.CredentialStore = NewSealedCredentialStore(storages.CredentialStore, keyChain, log)
	}

	return storages, nil
}

// Close releases the underlying connections.
func (s *ClientStorages) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}
