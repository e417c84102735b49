// Package probe checks HTTP endpoints until they answer with an expected
// status code, and TCP ports until they accept connections.
package probe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/go-logr/logr"

	"github.com/imamik/opsretry/internal/config"
	"github.com/imamik/opsretry/internal/util/async"
	"github.com/imamik/opsretry/internal/util/retry"
)

// Operation is the retry profile name used by every probe.
const Operation = "http.probe"

// DefaultTimeout bounds a single probe request.
const DefaultTimeout = 10 * time.Second

// ErrUnexpectedStatus is returned when an endpoint never answered with the
// expected status.
var ErrUnexpectedStatus = errors.New("unexpected status")

// ErrInvalidURL is returned for targets that are not absolute http(s) URLs.
var ErrInvalidURL = errors.New("invalid probe URL")

// Result is the outcome of probing one URL.
type Result struct {
	URL    string
	Status int
	OK     bool
}

// Prober runs HTTP GET probes under the http.probe retry profile.
type Prober struct {
	httpClient *http.Client
	config     *config.Config
	handler    retry.Handler
	logger     logr.Logger
	expect     int
}

// Option configures a Prober.
type Option func(*Prober)

// WithHTTPClient sets the HTTP client (useful for testing).
func WithHTTPClient(c *http.Client) Option {
	return func(p *Prober) {
		p.httpClient = c
	}
}

// WithConfig sets the retry configuration.
func WithConfig(cfg *config.Config) Option {
	return func(p *Prober) {
		p.config = cfg
	}
}

// WithHandler adds a handler that runs before the backoff wait of every retry.
func WithHandler(h retry.Handler) Option {
	return func(p *Prober) {
		p.handler = h
	}
}

// WithLogger sets the logger.
func WithLogger(l logr.Logger) Option {
	return func(p *Prober) {
		p.logger = l
	}
}

// WithExpectedStatus sets the status code that ends probing.
func WithExpectedStatus(code int) Option {
	return func(p *Prober) {
		p.expect = code
	}
}

// New creates a Prober expecting 200 OK by default.
func New(opts ...Option) *Prober {
	p := &Prober{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		config:     config.Default(),
		logger:     logr.Discard(),
		expect:     http.StatusOK,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Status performs a single GET and returns the response status code.
func (p *Prober) Status(ctx context.Context, target string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	if (req.URL.Scheme != "http" && req.URL.Scheme != "https") || req.URL.Host == "" {
		return 0, fmt.Errorf("%w: %q needs an http or https scheme and a host", ErrInvalidURL, target)
	}
	req.Header.Set("User-Agent", "opsretry")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.StatusCode, nil
}

// Probe requests target until it answers with the expected status.
//
// Connection failures are retried, as are answers with any other status.
// When the attempts run out the last status is reported together with
// ErrUnexpectedStatus.
func (p *Prober) Probe(ctx context.Context, target string) (Result, error) {
	profile, h := p.profile(Operation)

	probe := retry.Wrap(Operation, p.Status, retry.Policy[int]{
		Retryable:   []retry.Kind{networkError},
		Guards:      []retry.Guard[int]{p.unexpected},
		MaxAttempts: profile.MaxAttempts,
	}, h)

	status, err := probe(ctx, target)
	res := Result{URL: target, Status: status}
	if err != nil {
		return res, err
	}
	if p.unexpected(status) {
		return res, fmt.Errorf("%w: %s answered %d, want %d", ErrUnexpectedStatus, target, status, p.expect)
	}

	res.OK = true
	p.logger.Info("endpoint ready", "url", target, "status", status)
	return res, nil
}

// ProbeAll probes every target concurrently. Results keep the order of
// targets; the error joins the failures of all targets.
func (p *Prober) ProbeAll(ctx context.Context, targets []string) ([]Result, error) {
	return p.all(ctx, targets, p.Probe)
}

func (p *Prober) all(ctx context.Context, targets []string, fn func(context.Context, string) (Result, error)) ([]Result, error) {
	results := make([]Result, len(targets))
	tasks := make([]async.Task, len(targets))
	for i, target := range targets {
		tasks[i] = async.Task{
			Name: target,
			Func: func(ctx context.Context) error {
				res, err := fn(ctx, target)
				results[i] = res
				return err
			},
		}
	}
	return results, async.RunParallel(ctx, tasks)
}

// networkError matches failed round trips. Malformed URLs fail in
// url.Parse with Op "parse" and are not retried.
func networkError(err error) bool {
	var ue *url.Error
	return errors.As(err, &ue) && ue.Op != "parse"
}

func (p *Prober) profile(operation string) (config.Profile, retry.Handler) {
	profile := p.config.Profile(operation)
	return profile, retry.Chain(
		p.handler,
		retry.LogHandler(p.logger.V(1)),
		profile.Handler(retry.WithLogger(p.logger)),
	)
}

func (p *Prober) unexpected(status int) bool {
	return status != p.expect
}
