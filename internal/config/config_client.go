package config

import (
	"fmt"
	"time"
)

// Storage drivers accepted by [ClientStorage.Driver].
const (
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
	DriverMemory = "memory"
)

// Defaults applied by [GetClientConfig] to unset fields.
const (
	DefaultHTTPAddress    = "http://localhost:8080"
	DefaultRequestTimeout = 15 * time.Second
	DefaultDSN            = "session.db"
	DefaultRedisPrefix    = "session-keeper"
	DefaultPublicEntry    = "sign-in"
	DefaultPrivateEntry   = "home"
)

// ClientAdapter holds network settings used by the API client.
type ClientAdapter struct {
	// HTTPAddress is the backend base URL.
	HTTPAddress string
	// RequestTimeout is the transport timeout for outbound requests.
	RequestTimeout time.Duration
	// RateLimit is requests per second; zero disables limiting.
	RateLimit float64
	// RateBurst is the limiter burst; at least 1 when RateLimit is set.
	RateBurst int
}

// ClientRedis contains Redis connection settings.
type ClientRedis struct {
	Address  string
	Password string
	DB       int
	Prefix   string
}

// ClientStorage groups credential store settings.
type ClientStorage struct {
	// Driver is one of DriverSQLite, DriverRedis, DriverMemory.
	Driver string
	// DSN is the SQLite DSN.
	DSN string
	// Redis holds Redis settings.
	Redis ClientRedis
	// Secret enables at-rest encryption when non-empty.
	Secret string
}

// ClientGuard is the route guard policy.
type ClientGuard struct {
	PublicEntry           string
	PrivateEntry          string
	RedirectAuthenticated bool
}

// ClientWorkers contains client background worker settings.
type ClientWorkers struct {
	// ProfileRefreshInterval defines how often the profile refresher runs.
	// Zero disables it.
	ProfileRefreshInterval time.Duration
}

// ClientMetrics holds the scrape endpoint settings.
type ClientMetrics struct {
	// Address is where /metrics is served; empty disables it.
	Address string
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	Adapter ClientAdapter
	Storage ClientStorage
	Guard   ClientGuard
	Workers ClientWorkers
	Metrics ClientMetrics
}

// GetClientConfig builds and validates the client config from the merged
// structured configuration.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := NewClientConfig(cfg)
	return clientCfg, clientCfg.validate()
}

// NewClientConfig projects cfg onto a [ClientConfig], filling defaults for
// unset fields. The result is not validated.
func NewClientConfig(cfg *StructuredConfig) *ClientConfig {
	clientCfg := &ClientConfig{
		Adapter: ClientAdapter{
			HTTPAddress:    orDefault(cfg.Adapter.HTTPAddress, DefaultHTTPAddress),
			RequestTimeout: cfg.Adapter.RequestTimeout,
			RateLimit:      cfg.Adapter.RateLimit,
			RateBurst:      cfg.Adapter.RateBurst,
		},
		Storage: ClientStorage{
			Driver: orDefault(cfg.Storage.Driver, DriverSQLite),
			DSN:    orDefault(cfg.Storage.DB.DSN, DefaultDSN),
			Redis: ClientRedis{
				Address:  cfg.Storage.Redis.Address,
				Password: cfg.Storage.Redis.Password,
				DB:       cfg.Storage.Redis.DB,
				Prefix:   orDefault(cfg.Storage.Redis.Prefix, DefaultRedisPrefix),
			},
			Secret: cfg.Storage.Secret,
		},
		Guard: ClientGuard{
			PublicEntry:           orDefault(cfg.Guard.PublicEntry, DefaultPublicEntry),
			PrivateEntry:          orDefault(cfg.Guard.PrivateEntry, DefaultPrivateEntry),
			RedirectAuthenticated: true,
		},
		Workers: ClientWorkers{ProfileRefreshInterval: cfg.Workers.ProfileRefreshInterval},
		Metrics: ClientMetrics{Address: cfg.Metrics.Address},
	}

	if clientCfg.Adapter.RequestTimeout == 0 {
		clientCfg.Adapter.RequestTimeout = DefaultRequestTimeout
	}
	if clientCfg.Adapter.RateLimit > 0 && clientCfg.Adapter.RateBurst == 0 {
		clientCfg.Adapter.RateBurst = 1
	}
	if cfg.Guard.RedirectAuthenticated != nil {
		clientCfg.Guard.RedirectAuthenticated = *cfg.Guard.RedirectAuthenticated
	}

	return clientCfg
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
