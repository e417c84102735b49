package config

import (
	"os"
	"strconv"
	"time"

	"github.com/imamik/opsretry/internal/util/ptr"
)

// Environment variables overriding the defaults section.
const (
	EnvMaxAttempts     = "OPSRETRY_MAX_ATTEMPTS"
	EnvBackoffBase     = "OPSRETRY_BACKOFF_BASE"
	EnvBackoffExponent = "OPSRETRY_BACKOFF_EXPONENT"
	EnvBackoffJitter   = "OPSRETRY_BACKOFF_JITTER"
	EnvBackoffMaxDelay = "OPSRETRY_BACKOFF_MAX_DELAY"
)

// ApplyEnv overrides the defaults section from environment variables.
// Variables that are unset or fail to parse leave the current value alone.
//
// Environment Variables:
//   - OPSRETRY_MAX_ATTEMPTS (e.g. 5)
//   - OPSRETRY_BACKOFF_BASE (e.g. 100ms)
//   - OPSRETRY_BACKOFF_EXPONENT (e.g. 2)
//   - OPSRETRY_BACKOFF_JITTER (true/false)
//   - OPSRETRY_BACKOFF_MAX_DELAY (e.g. 2h)
func (c *Config) ApplyEnv() {
	d := &c.Defaults
	d.MaxAttempts = parseInt(EnvMaxAttempts, d.MaxAttempts)
	d.Backoff.Base = parseDuration(EnvBackoffBase, d.Backoff.Base)
	d.Backoff.Exponent = parseFloat(EnvBackoffExponent, d.Backoff.Exponent)
	d.Backoff.Jitter = parseBool(EnvBackoffJitter, d.Backoff.Jitter)
	d.Backoff.MaxDelay = parseDuration(EnvBackoffMaxDelay, d.Backoff.MaxDelay)
}

// parseDuration parses a duration from an environment variable.
// If the variable is not set or parsing fails, the current value is returned.
func parseDuration(envVar string, current *time.Duration) *time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return current
	}

	d, err := time.ParseDuration(val)
	if err != nil {
		return current
	}

	return ptr.Duration(d)
}

// parseInt parses an integer from an environment variable.
// If the variable is not set or parsing fails, the current value is returned.
func parseInt(envVar string, current *int) *int {
	val := os.Getenv(envVar)
	if val == "" {
		return current
	}

	i, err := strconv.Atoi(val)
	if err != nil {
		return current
	}

	return ptr.Int(i)
}

func parseFloat(envVar string, current *float64) *float64 {
	val := os.Getenv(envVar)
	if val == "" {
		return current
	}

	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return current
	}

	return ptr.To(f)
}

func parseBool(envVar string, current *bool) *bool {
	val := os.Getenv(envVar)
	if val == "" {
		return current
	}

	b, err := strconv.ParseBool(val)
	if err != nil {
		return current
	}

	return ptr.Bool(b)
}
