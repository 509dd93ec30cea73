package config

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

func boolPtr(v bool) *bool { return &v }

// ── build ─────────────────────────────────────────────────────────────────────

func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

func TestBuild_EmptyBuilder(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_LaterSourcesOverride verifies that a non-zero field of a later
// source wins and zero fields keep earlier values.
func TestBuild_LaterSourcesOverride(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{Adapter: Adapter{HTTPAddress: "env:8080", RequestTimeout: time.Second}},
		&StructuredConfig{Adapter: Adapter{HTTPAddress: "flag:9090"}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "flag:9090", cfg.Adapter.HTTPAddress)
	assert.Equal(t, time.Second, cfg.Adapter.RequestTimeout)
}

func TestBuild_PointerOverride(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{Guard: Guard{RedirectAuthenticated: boolPtr(true)}},
		&StructuredConfig{Guard: Guard{RedirectAuthenticated: boolPtr(false)}},
		&StructuredConfig{},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	require.NotNil(t, cfg.Guard.RedirectAuthenticated)
	assert.False(t, *cfg.Guard.RedirectAuthenticated)
}

func TestBuild_RejectsNegativeValues(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{Adapter: Adapter{RateLimit: -1}})

	_, err := b.build()
	assert.ErrorIs(t, err, ErrInvalidAdapterConfigs)
}

// ── withEnv / withFlagSet ─────────────────────────────────────────────────────

func TestWithEnv_ReadsEnvVars(t *testing.T) {
	t.Setenv("ADAPTER_ADDRESS", "env-address")
	t.Setenv("STORAGE_DRIVER", "memory")

	b := newConfigBuilder()
	assert.Same(t, b, b.withEnv())

	require.Len(t, b.configs, 1)
	assert.Equal(t, "env-address", b.configs[0].Adapter.HTTPAddress)
	assert.Equal(t, "memory", b.configs[0].Storage.Driver)
}

func TestWithEnv_SetsErrorOnBadValue(t *testing.T) {
	t.Setenv("ADAPTER_RATE_BURST", "many")

	b := newConfigBuilder().withEnv()
	assert.Error(t, b.err)
	assert.Empty(t, b.configs)
}

func TestWithFlagSet_AppendsConfig(t *testing.T) {
	b := newConfigBuilder()
	assert.Same(t, b, b.withFlagSet(newTestFlagSet(), []string{"-storage", "redis"}))

	require.Len(t, b.configs, 1)
	assert.Equal(t, "redis", b.configs[0].Storage.Driver)
}

func TestWithFlagSet_SetsErrorOnBadFlag(t *testing.T) {
	b := newConfigBuilder().withFlagSet(newTestFlagSet(), []string{"-unknown"})
	assert.Error(t, b.err)
}

// ── withJSON ──────────────────────────────────────────────────────────────────

func TestWithJSON_NoOp_WhenNoPathSet(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{})
	b.withJSON()

	assert.Len(t, b.configs, 1)
	assert.NoError(t, b.err)
}

func TestWithJSON_AppendsConfig_WhenValidFile(t *testing.T) {
	payload := StructuredJSONConfig{}
	payload.Adapter.HTTPAddress = "json-address"
	payload.Storage.Driver = "memory"
	path := writeTempJSONConfig(t, payload)

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: path})
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 2)
	assert.Equal(t, "json-address", b.configs[1].Adapter.HTTPAddress)
	assert.Equal(t, "memory", b.configs[1].Storage.Driver)
}

func TestWithJSON_SetsError_WhenFileNotFound(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: "/nonexistent/config.json"})
	b.withJSON()

	assert.Error(t, b.err)
}

func TestWithJSON_UsesLastPath(t *testing.T) {
	payload := StructuredJSONConfig{}
	payload.Adapter.HTTPAddress = "last-wins"
	path := writeTempJSONConfig(t, payload)

	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{JSONFilePath: "/nonexistent/first.json"},
		&StructuredConfig{JSONFilePath: path},
	)
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 3)
	assert.Equal(t, "last-wins", b.configs[2].Adapter.HTTPAddress)
}

// ── ClientConfig ──────────────────────────────────────────────────────────────

func TestNewClientConfig_Defaults(t *testing.T) {
	cfg := NewClientConfig(&StructuredConfig{})

	assert.Equal(t, DefaultHTTPAddress, cfg.Adapter.HTTPAddress)
	assert.Equal(t, DefaultRequestTimeout, cfg.Adapter.RequestTimeout)
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, DefaultDSN, cfg.Storage.DSN)
	assert.Equal(t, DefaultRedisPrefix, cfg.Storage.Redis.Prefix)
	assert.Equal(t, DefaultPublicEntry, cfg.Guard.PublicEntry)
	assert.Equal(t, DefaultPrivateEntry, cfg.Guard.PrivateEntry)
	assert.True(t, cfg.Guard.RedirectAuthenticated)
	assert.Empty(t, cfg.Metrics.Address)
	assert.NoError(t, cfg.validate())
}

func TestNewClientConfig_MetricsAddress(t *testing.T) {
	cfg := NewClientConfig(&StructuredConfig{Metrics: Metrics{Address: ":9100"}})
	assert.Equal(t, ":9100", cfg.Metrics.Address)
}

func TestNewClientConfig_RateBurstDefaultsToOne(t *testing.T) {
	cfg := NewClientConfig(&StructuredConfig{Adapter: Adapter{RateLimit: 3}})
	assert.Equal(t, 1, cfg.Adapter.RateBurst)
}

func TestNewClientConfig_RedirectPolicyOverride(t *testing.T) {
	cfg := NewClientConfig(&StructuredConfig{Guard: Guard{RedirectAuthenticated: boolPtr(false)}})
	assert.False(t, cfg.Guard.RedirectAuthenticated)
}

func TestClientConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *ClientConfig)
		wantErr error
	}{
		{"valid", func(c *ClientConfig) {}, nil},
		{"empty address", func(c *ClientConfig) { c.Adapter.HTTPAddress = "" }, ErrInvalidAdapterConfigs},
		{"unknown driver", func(c *ClientConfig) { c.Storage.Driver = "etcd" }, ErrInvalidStorageConfigs},
		{"redis without address", func(c *ClientConfig) { c.Storage.Driver = DriverRedis }, ErrInvalidStorageConfigs},
		{"redis with address", func(c *ClientConfig) {
			c.Storage.Driver = DriverRedis
			c.Storage.Redis.Address = "localhost:6379"
		}, nil},
		{"memory", func(c *ClientConfig) { c.Storage.Driver = DriverMemory }, nil},
		{"same entries", func(c *ClientConfig) { c.Guard.PrivateEntry = c.Guard.PublicEntry }, ErrInvalidGuardConfigs},
		{"negative interval", func(c *ClientConfig) { c.Workers.ProfileRefreshInterval = -time.Second }, ErrInvalidWorkerConfigs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewClientConfig(&StructuredConfig{})
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
