package config

import "errors"

// Validation errors returned by [ClientConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidAdapterConfigs indicates invalid client adapter settings
	// (for example, missing HTTP address or negative rate limit).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidStorageConfigs indicates invalid credential store settings
	// (for example, unknown driver or missing Redis address).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidGuardConfigs indicates an incomplete navigation policy.
	ErrInvalidGuardConfigs = errors.New("invalid guard configuration")
	// ErrInvalidWorkerConfigs indicates invalid background worker settings
	// (for example, negative refresh interval).
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
)
