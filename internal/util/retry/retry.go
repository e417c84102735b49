package retry

import (
	"context"
	"fmt"
)

// Operation is any call that takes arguments and produces a result or fails.
type Operation[A, R any] func(ctx context.Context, args A) (R, error)

// Guard inspects a successful result. Returning true rejects the result and
// asks for another attempt.
type Guard[R any] func(result R) bool

// Policy decides which outcomes of an operation are retried.
type Policy[R any] struct {
	// Retryable lists the error kinds that trigger another attempt. Errors
	// not matched here are returned immediately. Empty means nothing is retried.
	Retryable []Kind

	// Guards reject successful results. Any guard returning true causes
	// another attempt.
	Guards []Guard[R]

	// MaxAttempts bounds the number of invocations. Values below 1 mean 1.
	MaxAttempts int
}

// Validate reports configuration the orchestrator would silently normalize.
func (p Policy[R]) Validate() error {
	if p.MaxAttempts < 1 {
		return fmt.Errorf("max attempts must be at least 1, got %d", p.MaxAttempts)
	}
	return nil
}

func (p Policy[R]) attempts() int {
	return max(p.MaxAttempts, 1)
}

func (p Policy[R]) rejects(result R) bool {
	for _, guard := range p.Guards {
		if guard != nil && guard(result) {
			return true
		}
	}
	return false
}

// Wrap returns op guarded by policy p. The returned operation has the same
// signature as op.
//
// For each attempt from 1 to MaxAttempts:
//   - an error matched by a Retryable kind invokes h and tries again;
//   - any other error is returned unmodified without invoking h;
//   - a result rejected by a Guard invokes h (with a nil error) and tries again;
//   - any other result is returned.
//
// h is invoked after every rejected attempt, including the last one. When
// attempts run out, the error of the last attempt is returned if it failed.
// If the last attempt was a rejected result, that result is returned with a
// nil error: exhausting the guards is not an error, and callers that need one
// must check the returned result themselves.
//
// If h returns an error, Wrap stops and returns it alongside the last result.
func Wrap[A, R any](name string, op Operation[A, R], p Policy[R], h Handler) Operation[A, R] {
	if h == nil {
		h = NopHandler
	}

	return func(ctx context.Context, args A) (R, error) {
		var (
			result R
			err    error
		)

		for attempt := 1; attempt <= p.attempts(); attempt++ {
			result, err = op(ctx, args)
			if err != nil {
				if !matchAny(p.Retryable, err) {
					return result, err
				}
			} else if !p.rejects(result) {
				return result, nil
			}

			call := Call{Operation: name, Args: args, Err: err, Attempt: attempt}
			if herr := h.Retry(ctx, call); herr != nil {
				return result, herr
			}
		}

		return result, err
	}
}

// Do runs fn under policy p.
func Do[R any](ctx context.Context, name string, fn func(context.Context) (R, error), p Policy[R], h Handler) (R, error) {
	op := func(ctx context.Context, _ struct{}) (R, error) {
		return fn(ctx)
	}
	return Wrap(name, op, p, h)(ctx, struct{}{})
}

// Exec runs fn, retrying errors matched by kinds up to maxAttempts times.
func Exec(ctx context.Context, name string, fn func(context.Context) error, kinds []Kind, maxAttempts int, h Handler) error {
	_, err := Do(ctx, name, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	}, Policy[struct{}]{Retryable: kinds, MaxAttempts: maxAttempts}, h)
	return err
}
