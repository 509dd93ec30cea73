// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container. It aggregates
// all sub-configurations and is populated by merging values from environment
// variables, command-line flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env      : direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Adapter holds the backend address and outbound request settings.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Storage holds the credential store backend settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Guard holds the navigation policy of the route guard.
	Guard Guard `envPrefix:"GUARD_"`

	// Workers holds configuration for background worker processes.
	Workers Workers `envPrefix:"WORKERS_"`

	// Metrics holds the optional Prometheus scrape endpoint.
	Metrics Metrics `envPrefix:"METRICS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Adapter holds settings of the outbound HTTP API client.
type Adapter struct {
	// HTTPAddress is the base URL of the backend, with or without scheme
	// (e.g. "https://api.example.com" or "localhost:8080").
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single outbound request (e.g. "15s").
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// RateLimit is the maximum sustained number of requests per second.
	// Zero disables client-side limiting.
	// Env: ADAPTER_RATE_LIMIT
	RateLimit float64 `env:"RATE_LIMIT"`

	// RateBurst is the token bucket size used with RateLimit.
	// Env: ADAPTER_RATE_BURST
	RateBurst int `env:"RATE_BURST"`
}

// Storage groups the credential store settings.
type Storage struct {
	// Driver selects the backend: "sqlite", "redis" or "memory".
	// Env: STORAGE_DRIVER
	Driver string `env:"DRIVER"`

	// DB holds the SQLite settings.
	DB DB `envPrefix:"DB_"`

	// Redis holds the Redis settings.
	Redis Redis `envPrefix:"REDIS_"`

	// Secret enables at-rest encryption of stored values when non-empty.
	// Env: STORAGE_SECRET
	Secret string `env:"SECRET"`
}

// DB holds the SQLite connection settings.
type DB struct {
	// DSN is the SQLite file path or ":memory:".
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Redis holds the Redis connection settings.
type Redis struct {
	// Address is "host:port" of the Redis server.
	// Env: STORAGE_REDIS_ADDRESS
	Address string `env:"ADDRESS"`

	// Password is the optional AUTH password.
	// Env: STORAGE_REDIS_PASSWORD
	Password string `env:"PASSWORD"`

	// DB is the logical database index.
	// Env: STORAGE_REDIS_DB
	DB int `env:"DB"`

	// Prefix namespaces every key written by the store.
	// Env: STORAGE_REDIS_PREFIX
	Prefix string `env:"PREFIX"`
}

// Guard holds the navigation policy.
type Guard struct {
	// PublicEntry is the screen unauthenticated users are sent to.
	// Env: GUARD_PUBLIC_ENTRY
	PublicEntry string `env:"PUBLIC_ENTRY"`

	// PrivateEntry is the screen authenticated users are sent to.
	// Env: GUARD_PRIVATE_ENTRY
	PrivateEntry string `env:"PRIVATE_ENTRY"`

	// RedirectAuthenticated controls whether authenticated users are moved
	// out of the public realm. Nil means the default (true).
	// Env: GUARD_REDIRECT_AUTHENTICATED
	RedirectAuthenticated *bool `env:"REDIRECT_AUTHENTICATED"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// ProfileRefreshInterval is how often the cached profile is refreshed
	// from the backend while signed in. Zero disables the worker.
	// Env: WORKERS_PROFILE_REFRESH_INTERVAL
	ProfileRefreshInterval time.Duration `env:"PROFILE_REFRESH_INTERVAL"`
}

// Metrics holds the Prometheus exposition settings.
type Metrics struct {
	// Address is the listen address of the /metrics endpoint (e.g.
	// "127.0.0.1:9090"). Empty disables it.
	// Env: METRICS_ADDRESS
	Address string `env:"ADDRESS"`
}

// GetStructuredConfig loads, merges, and validates the configuration from all
// available sources in the following priority order (last source wins for
// non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
