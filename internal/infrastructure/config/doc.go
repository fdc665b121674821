// Package config loads and validates Maestro's YAML configuration.
//
// Configuration is resolved in three layers: hardcoded defaults, the YAML
// file, and MAESTRO_* environment variable overrides (highest precedence).
// Load returns an error rather than a partially valid config; secrets such
// as the JWT signing key are validated for minimum strength at startup.
package config
