package retry

import (
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

// Default backoff values.
const (
	DefaultBase     = 100 * time.Millisecond
	DefaultExponent = 2.0
	DefaultMaxDelay = 2 * time.Hour
)

// Rand is the random source used for jitter. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// globalRand delegates to the package-level math/rand/v2 source.
type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() } // #nosec G404 -- jitter, not crypto

// Backoff computes exponential delays between attempts.
//
// The delay for attempt n is Base * Exponent^n, multiplied by a uniform
// value in [0, 1) when Jitter is set, and capped at MaxDelay. The result is
// always within [0, MaxDelay]. Backoff never sleeps.
type Backoff struct {
	Base     time.Duration
	Exponent float64
	Jitter   bool
	MaxDelay time.Duration

	// Rand is the jitter source. Nil uses the package-level source.
	Rand Rand
}

// DefaultBackoff returns the default policy: 100ms base, exponent 2,
// jitter enabled, capped at two hours.
func DefaultBackoff() Backoff {
	return Backoff{
		Base:     DefaultBase,
		Exponent: DefaultExponent,
		Jitter:   true,
		MaxDelay: DefaultMaxDelay,
	}
}

// Delay returns the wait before attempt n.
func (b Backoff) Delay(attempt int) time.Duration {
	if b.MaxDelay <= 0 {
		return 0
	}

	raw := b.Base.Seconds() * math.Pow(b.Exponent, float64(attempt))
	if b.Jitter {
		raw *= b.random().Float64()
	}

	limit := b.MaxDelay.Seconds()
	switch {
	case math.IsNaN(raw) || raw <= 0:
		return 0
	case raw >= limit:
		return b.MaxDelay
	}

	return min(time.Duration(math.Round(raw*float64(time.Second))), b.MaxDelay)
}

func (b Backoff) random() Rand {
	if b.Rand == nil {
		return globalRand{}
	}
	return b.Rand
}

// Validate checks that the policy describes a growing, bounded delay.
func (b Backoff) Validate() error {
	var errs []error
	if b.Base <= 0 {
		errs = append(errs, errors.New("backoff base must be positive"))
	}
	if b.Exponent <= 1 {
		errs = append(errs, errors.New("backoff exponent must be greater than 1"))
	}
	if b.MaxDelay < 0 {
		errs = append(errs, errors.New("backoff max delay must not be negative"))
	}
	return errors.Join(errs...)
}
