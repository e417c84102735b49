// Package handlers implements the business logic for CLI commands.
//
// Each handler receives the command context, whose Env carries the retry
// configuration, the logger and the metrics recorder set up by the root
// command.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/go-logr/logr"

	"github.com/imamik/opsretry/internal/config"
	"github.com/imamik/opsretry/internal/logging"
	"github.com/imamik/opsretry/internal/metrics"
	"github.com/imamik/opsretry/internal/util/retry"
)

// GlobalOptions are the persistent flags of the root command.
type GlobalOptions struct {
	ConfigPath  string
	Verbose     bool
	LogFormat   string
	MetricsAddr string
}

// Env is shared by all handlers of one CLI invocation.
type Env struct {
	Config  *config.Config
	Logger  logr.Logger
	Metrics *metrics.Recorder

	server      *http.Server
	metricsAddr string
}

type envKey struct{}

// Factory function variables - can be replaced in tests.
var loadConfig = config.Load

// Setup builds the Env for opts and stores it in the returned context.
func Setup(ctx context.Context, opts GlobalOptions, stderr io.Writer) (context.Context, error) {
	logger, err := logging.New(stderr, logging.Options{
		Verbose: opts.Verbose,
		Format:  opts.LogFormat,
	})
	if err != nil {
		return ctx, err
	}

	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return ctx, err
	}

	env := &Env{
		Config:  cfg,
		Logger:  logger,
		Metrics: metrics.NewRecorder(),
	}
	if opts.MetricsAddr != "" {
		if err := env.serveMetrics(opts.MetricsAddr); err != nil {
			return ctx, err
		}
	}

	ctx = logging.IntoContext(ctx, logger)
	return context.WithValue(ctx, envKey{}, env), nil
}

// EnvFrom returns the Env stored by Setup, or a default Env.
func EnvFrom(ctx context.Context) *Env {
	if env, ok := ctx.Value(envKey{}).(*Env); ok {
		return env
	}
	return &Env{
		Config:  config.Default(),
		Logger:  logging.FromContext(ctx),
		Metrics: metrics.NewRecorder(),
	}
}

// Handler returns the handler every client chains in front of its backoff.
func (e *Env) Handler() retry.Handler {
	return e.Metrics.Handler()
}

// Observe records the outcome of operation and returns err unchanged.
func (e *Env) Observe(operation string, err error) error {
	e.Metrics.Observe(operation, err)
	return err
}

// Close stops the metrics server, if any. Calling Close again is a no-op.
func (e *Env) Close(ctx context.Context) error {
	if e.server == nil {
		return nil
	}
	srv := e.server
	e.server = nil

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

func (e *Env) serveMetrics(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on metrics address %s: %w", addr, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", e.Metrics.HTTPHandler())
	e.server = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	e.metricsAddr = ln.Addr().String()
	go func() {
		if err := e.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Error(err, "metrics server stopped")
		}
	}()
	e.Logger.Info("serving metrics", "addr", e.metricsAddr)
	return nil
}

// MetricsAddr returns the address the metrics server listens on, or "".
func (e *Env) MetricsAddr() string {
	return e.metricsAddr
}
