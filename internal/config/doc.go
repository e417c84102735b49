// Package config loads retry profiles and cloud credentials.
//
// Retry profiles come from a YAML file with a defaults section and
// per-operation overrides, adjusted by OPSRETRY_* environment variables.
// Every unset field falls back to the next level: operation, then defaults,
// then the built-in values of [retry.DefaultBackoff]. Credentials for the
// Hetzner Cloud and Object Storage APIs are read from the environment.
package config
