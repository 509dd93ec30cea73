package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-session-keeper/internal/config"
	"github.com/MKhiriev/go-session-keeper/internal/logger"
)

func TestNewClientStorages_SQLitePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	cfg := config.ClientStorage{
		Driver: config.DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "nested", "session.db"),
	}

	first, err := NewClientStorages(ctx, cfg, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, first.CredentialStore.Set(ctx, KeyAuthToken, "tok"))
	require.NoError(t, first.CredentialStore.Set(ctx, KeyAuthToken, "tok2"))
	require.NoError(t, first.Close())

	second, err := NewClientStorages(ctx, cfg, logger.Nop())
	require.NoError(t, err)
	defer second.Close()

	got, err := second.CredentialStore.Get(ctx, KeyAuthToken)
	require.NoError(t, err)
	assert.Equal(t, "tok2", got)

	require.NoError(t, second.CredentialStore.Remove(ctx, KeyAuthToken))
	_, err = second.CredentialStore.Get(ctx, KeyAuthToken)
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestNewClientStorages_Redis(t *testing.T) {
	mr, _ := newTestRedis(t)
	cfg := config.ClientStorage{
		Driver: config.DriverRedis,
		Redis:  config.ClientRedis{Address: mr.Addr(), Prefix: "test"},
	}

	storages, err := NewClientStorages(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	defer storages.Close()

	require.NoError(t, storages.CredentialStore.Set(context.Background(), KeyAuthToken, "tok"))
	assert.True(t, mr.Exists("test:auth_token"))
}

func TestNewClientStorages_RedisUnreachable(t *testing.T) {
	mr, _ := newTestRedis(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewClientStorages(context.Background(), config.ClientStorage{
		Driver: config.DriverRedis,
		Redis:  config.ClientRedis{Address: addr},
	}, logger.Nop())
	assert.Error(t, err)
}

func TestNewClientStorages_MemoryWithSecret(t *testing.T) {
	storages, err := NewClientStorages(context.Background(), config.ClientStorage{
		Driver: config.DriverMemory,
		Secret: "secret",
	}, logger.Nop())
	require.NoError(t, err)
	defer storages.Close()

	_, sealed := storages.CredentialStore.(*sealedCredentialStore)
	assert.True(t, sealed)
}

func TestNewClientStorages_UnknownDriver(t *testing.T) {
	_, err := NewClientStorages(context.Background(), config.ClientStorage{Driver: "etcd"}, logger.Nop())
	assert.ErrorIs(t, err, ErrUnknownDriver)
}
