package config

import (
	"flag"
	"fmt"
	"strconv"
	"time"
)

// parseFlags registers all configuration flags on fs and parses args.
//
// Flags:
//
//	-a                       backend base URL or host:port
//	-request-timeout         outbound request timeout (e.g. "15s")
//	-rate-limit              outbound requests per second, 0 disables
//	-rate-burst              outbound request burst size
//	-storage                 credential store driver: sqlite, redis, memory
//	-d                       SQLite DSN (file path)
//	-redis                   Redis address host:port
//	-redis-prefix            Redis key prefix
//	-secret                  at-rest encryption secret for stored values
//	-public-entry            screen unauthenticated users are sent to
//	-private-entry           screen authenticated users are sent to
//	-redirect-authenticated  move signed-in users out of public screens
//	-refresh-interval        profile refresh interval (e.g. "5m")
//	-metrics-address         listen address of the /metrics endpoint
//	-c/-config               json file path with configs
func parseFlags(fs *flag.FlagSet, args []string) (*StructuredConfig, error) {
	cfg := &StructuredConfig{}

	fs.StringVar(&cfg.Adapter.HTTPAddress, "a", "", "Backend base URL or host:port")
	fs.DurationVar(&cfg.Adapter.RequestTimeout, "request-timeout", 0, "Outbound request timeout (e.g. 15s)")
	fs.Float64Var(&cfg.Adapter.RateLimit, "rate-limit", 0, "Outbound requests per second, 0 disables")
	fs.IntVar(&cfg.Adapter.RateBurst, "rate-burst", 0, "Outbound request burst size")
	fs.StringVar(&cfg.Storage.Driver, "storage", "", "Credential store driver: sqlite, redis, memory")
	fs.StringVar(&cfg.Storage.DB.DSN, "d", "", "SQLite DSN")
	fs.StringVar(&cfg.Storage.Redis.Address, "redis", "", "Redis address host:port")
	fs.StringVar(&cfg.Storage.Redis.Prefix, "redis-prefix", "", "Redis key prefix")
	fs.StringVar(&cfg.Storage.Secret, "secret", "", "At-rest encryption secret")
	fs.StringVar(&cfg.Guard.PublicEntry, "public-entry", "", "Public realm entry screen")
	fs.StringVar(&cfg.Guard.PrivateEntry, "private-entry", "", "Private realm entry screen")
	fs.Func("redirect-authenticated", "Redirect signed-in users out of public screens (true/false)", func(s string) error {
		v, err := strconv.ParseBool(s)
		if err != nil {
			return err
		}
		cfg.Guard.RedirectAuthenticated = &v
		return nil
	})
	fs.DurationVar(&cfg.Workers.ProfileRefreshInterval, "refresh-interval", time.Duration(0), "Profile refresh interval (e.g. 5m)")
	fs.StringVar(&cfg.Metrics.Address, "metrics-address", "", "Listen address of the /metrics endpoint, empty disables it")
	fs.StringVar(&cfg.JSONFilePath, "c", "", "JSON config file path")
	fs.StringVar(&cfg.JSONFilePath, "config", "", "JSON config file path (alias)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return cfg, nil
}
