package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/MKhiriev/go-session-keeper/internal/logger"
)

type redisCredentialStore struct {
	rdb    redis.Cmdable
	prefix string
	logger *logger.Logger
}

// NewRedisCredentialStore returns a [CredentialStore] that keeps every key as
// a plain Redis string named "<prefix>:<key>". Values never expire.
func NewRedisCredentialStore(rdb redis.Cmdable, prefix string, log *logger.Logger) CredentialStore {
	return &redisCredentialStore{rdb: rdb, prefix: prefix, logger: log}
}

func (s *redisCredentialStore) redisKey(key string) string {
	if s.prefix == "" {
		return key
	}
	return s.prefix + ":" + key
}

func (s *redisCredentialStore) Get(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", ErrEmptyKey
	}

	value, err := s.rdb.Get(ctx, s.redisKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrKeyNotFound
	}
	if err != nil {
		s.logger.Err(err).Str("func", "redisCredentialStore.Get").Str("key", key).Msg("redis GET failed")
		return "", fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	return value, nil
}

func (s *redisCredentialStore) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}

	if err := s.rdb.Set(ctx, s.redisKey(key), value, 0).Err(); err != nil {
		s.logger.Err(err).Str("func", "redisCredentialStore.Set").Str("key", key).Msg("redis SET failed")
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	return nil
}

func (s *redisCredentialStore) Remove(ctx context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}

	if err := s.rdb.Del(ctx, s.redisKey(key)).Err(); err != nil {
		s.logger.Err(err).Str("func", "redisCredentialStore.Remove").Str("key", key).Msg("redis DEL failed")
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	return nil
}
