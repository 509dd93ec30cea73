// Package config provides configuration loading, merging, and validation
// facilities for the session keeper client.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//
// [GetClientConfig] is the main entry point: it applies defaults to the
// merged [StructuredConfig] and returns a validated [ClientConfig].
package config
