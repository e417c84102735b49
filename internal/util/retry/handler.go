package retry

import (
	"context"
	"fmt"
	"time"

	"github.com/go-logr/logr"
)

// Call describes a rejected attempt. Err is nil when the attempt returned a
// result that a guard rejected.
type Call struct {
	Operation string
	Args      any
	Err       error
	Attempt   int
}

// Reason returns "error" for failed attempts and "result" for rejected results.
func (c Call) Reason() string {
	if c.Err != nil {
		return "error"
	}
	return "result"
}

// Handler runs between attempts. It typically waits, and may log or record
// metrics. Returning an error aborts the retry sequence.
type Handler interface {
	Retry(ctx context.Context, call Call) error
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, call Call) error

// Retry calls f.
func (f HandlerFunc) Retry(ctx context.Context, call Call) error {
	return f(ctx, call)
}

// NopHandler neither waits nor records anything.
var NopHandler Handler = HandlerFunc(func(context.Context, Call) error { return nil })

// Chain runs handlers in order and stops at the first error.
func Chain(handlers ...Handler) Handler {
	return HandlerFunc(func(ctx context.Context, call Call) error {
		for _, h := range handlers {
			if h == nil {
				continue
			}
			if err := h.Retry(ctx, call); err != nil {
				return err
			}
		}
		return nil
	})
}

// LogHandler logs every retry on logger.
func LogHandler(logger logr.Logger) Handler {
	return HandlerFunc(func(_ context.Context, call Call) error {
		kv := []any{"operation", call.Operation, "attempt", call.Attempt, "reason", call.Reason()}
		if call.Err != nil {
			kv = append(kv, "error", call.Err.Error())
		}
		logger.Info("retrying", kv...)
		return nil
	})
}

// BackoffHandler sleeps for the backoff delay of each attempt.
type BackoffHandler struct {
	backoff Backoff
	logger  logr.Logger
	sleep   func(ctx context.Context, d time.Duration) error
}

// Option is a functional option for BackoffHandler.
type Option func(*BackoffHandler)

// NewBackoffHandler returns a handler using DefaultBackoff adjusted by opts.
func NewBackoffHandler(opts ...Option) *BackoffHandler {
	h := &BackoffHandler{
		backoff: DefaultBackoff(),
		logger:  logr.Discard(),
		sleep:   SleepWithContext,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// WithBackoff replaces the whole backoff policy.
func WithBackoff(b Backoff) Option {
	return func(h *BackoffHandler) {
		h.backoff = b
	}
}

// WithBase sets the base delay.
func WithBase(d time.Duration) Option {
	return func(h *BackoffHandler) {
		h.backoff.Base = d
	}
}

// WithExponent sets the growth factor.
func WithExponent(e float64) Option {
	return func(h *BackoffHandler) {
		h.backoff.Exponent = e
	}
}

// WithJitter enables or disables jitter.
func WithJitter(enabled bool) Option {
	return func(h *BackoffHandler) {
		h.backoff.Jitter = enabled
	}
}

// WithMaxDelay sets the delay ceiling.
func WithMaxDelay(d time.Duration) Option {
	return func(h *BackoffHandler) {
		h.backoff.MaxDelay = d
	}
}

// WithRand sets the jitter source.
func WithRand(r Rand) Option {
	return func(h *BackoffHandler) {
		h.backoff.Rand = r
	}
}

// WithLogger logs each wait at debug verbosity.
func WithLogger(l logr.Logger) Option {
	return func(h *BackoffHandler) {
		h.logger = l
	}
}

// WithSleep replaces the sleep function. Tests use it to record delays.
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(h *BackoffHandler) {
		h.sleep = sleep
	}
}

// Backoff returns the policy the handler waits by.
func (h *BackoffHandler) Backoff() Backoff {
	return h.backoff
}

// Retry waits Backoff.Delay(call.Attempt), or less if ctx ends first.
func (h *BackoffHandler) Retry(ctx context.Context, call Call) error {
	delay := h.backoff.Delay(call.Attempt)
	h.logger.V(1).Info("waiting before next attempt",
		"operation", call.Operation, "attempt", call.Attempt, "delay", delay.String())

	if err := h.sleep(ctx, delay); err != nil {
		return fmt.Errorf("%s: retry aborted after attempt %d: %w", call.Operation, call.Attempt, err)
	}
	return nil
}

// SleepWithContext sleeps for d unless ctx is done first.
func SleepWithContext(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
