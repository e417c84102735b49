package config

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/imamik/opsretry/internal/util/retry"
)

// DefaultMaxAttempts is used when neither the operation nor the defaults
// section sets max_attempts.
const DefaultMaxAttempts = 5

// Config is the retry configuration file.
type Config struct {
	Defaults   ProfileConfig            `yaml:"defaults"`
	Operations map[string]ProfileConfig `yaml:"operations"`
}

// ProfileConfig is one retry profile as written in YAML. Nil fields are unset.
type ProfileConfig struct {
	MaxAttempts *int          `yaml:"max_attempts"`
	Backoff     BackoffConfig `yaml:"backoff"`
}

// BackoffConfig is the YAML form of retry.Backoff.
type BackoffConfig struct {
	Base     *time.Duration `yaml:"base"`
	Exponent *float64       `yaml:"exponent"`
	Jitter   *bool          `yaml:"jitter"`
	MaxDelay *time.Duration `yaml:"max_delay"`
}

// Profile is a fully resolved retry profile.
type Profile struct {
	MaxAttempts int
	Backoff     retry.Backoff
}

// Default returns an empty configuration: every profile resolves to the
// built-in defaults.
func Default() *Config {
	return &Config{Operations: map[string]ProfileConfig{}}
}

// Profile resolves the profile for operation name.
func (c *Config) Profile(name string) Profile {
	p := Profile{
		MaxAttempts: DefaultMaxAttempts,
		Backoff:     retry.DefaultBackoff(),
	}
	p = c.Defaults.applyTo(p)
	if op, ok := c.Operations[name]; ok {
		p = op.applyTo(p)
	}
	return p
}

func (pc ProfileConfig) applyTo(p Profile) Profile {
	if pc.MaxAttempts != nil {
		p.MaxAttempts = *pc.MaxAttempts
	}
	b := pc.Backoff
	if b.Base != nil {
		p.Backoff.Base = *b.Base
	}
	if b.Exponent != nil {
		p.Backoff.Exponent = *b.Exponent
	}
	if b.Jitter != nil {
		p.Backoff.Jitter = *b.Jitter
	}
	if b.MaxDelay != nil {
		p.Backoff.MaxDelay = *b.MaxDelay
	}
	return p
}

// Handler returns a backoff handler waiting by the profile's policy.
func (p Profile) Handler(opts ...retry.Option) *retry.BackoffHandler {
	return retry.NewBackoffHandler(append([]retry.Option{retry.WithBackoff(p.Backoff)}, opts...)...)
}

// Validate checks a resolved profile.
func (p Profile) Validate() error {
	var errs []error
	if p.MaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("max_attempts must be at least 1, got %d", p.MaxAttempts))
	}
	if err := p.Backoff.Validate(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidValue, errors.Join(errs...))
}

// Validate checks the defaults and every operation profile.
func (c *Config) Validate() error {
	if err := c.Profile("").Validate(); err != nil {
		return fmt.Errorf("defaults: %w", err)
	}

	names := make([]string, 0, len(c.Operations))
	for name := range c.Operations {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if name == "" {
			return fmt.Errorf("%w: operation name must not be empty", ErrInvalidValue)
		}
		if err := c.Profile(name).Validate(); err != nil {
			return fmt.Errorf("operation %s: %w", name, err)
		}
	}
	return nil
}
