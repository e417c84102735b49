package handlers

import (
	"context"
	"fmt"
	"io"

	"github.com/imamik/opsretry/internal/probe"
)

// Factory function variables - can be replaced in tests.
var newProber = func(env *Env, expect int) *probe.Prober {
	return probe.New(
		probe.WithConfig(env.Config),
		probe.WithHandler(env.Handler()),
		probe.WithLogger(env.Logger),
		probe.WithExpectedStatus(expect),
	)
}

// ProbeOptions selects what Probe checks.
type ProbeOptions struct {
	// Targets are URLs, or host:port addresses when TCP is set.
	Targets []string
	Expect  int
	TCP     bool
}

// Probe checks all targets concurrently until each answers.
func Probe(ctx context.Context, out io.Writer, opts ProbeOptions) error {
	env := EnvFrom(ctx)
	prober := newProber(env, opts.Expect)

	operation := probe.Operation
	run := prober.ProbeAll
	if opts.TCP {
		operation = probe.PortOperation
		run = prober.PortAll
	}

	results, err := run(ctx, opts.Targets)
	for _, res := range results {
		env.Metrics.Observe(operation, resultErr(res, opts.TCP))
	}

	if _, werr := fmt.Fprint(out, renderProbeResults(results)); werr != nil && err == nil {
		err = werr
	}
	return err
}

func resultErr(res probe.Result, tcp bool) error {
	switch {
	case res.OK:
		return nil
	case tcp:
		return probe.ErrUnreachable
	}
	return probe.ErrUnexpectedStatus
}
