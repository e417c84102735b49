package handlers

import (
	"context"
	"fmt"
	"io"
)

// DelayOptions selects the profile whose schedule is printed.
type DelayOptions struct {
	Operation string
	Attempts  int
	Jitter    bool
}

// Delay prints the waits the retry profile of opts.Operation would make.
//
// Jitter is off unless requested so that the table is reproducible.
// Attempts defaults to the profile's max_attempts.
func Delay(ctx context.Context, out io.Writer, opts DelayOptions) error {
	env := EnvFrom(ctx)

	p := env.Config.Profile(opts.Operation)
	b := p.Backoff
	b.Jitter = opts.Jitter

	attempts := opts.Attempts
	if attempts <= 0 {
		attempts = p.MaxAttempts
	}

	if err := b.Validate(); err != nil {
		return fmt.Errorf("invalid backoff: %w", err)
	}

	_, err := fmt.Fprint(out, renderSchedule(opts.Operation, b, schedule(b, attempts)))
	return err
}
