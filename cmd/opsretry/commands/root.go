// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument parsing,
// flag binding, and validation. Command execution is delegated to handler
// functions in the handlers package.
package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/imamik/opsretry/cmd/opsretry/handlers"
)

// Root returns the root command for the opsretry CLI.
//
// The persistent flags are resolved once in PersistentPreRunE; every
// subcommand finds the result in its context.
func Root() *cobra.Command {
	cmd, _ := newRoot()
	return cmd
}

// Execute runs the CLI. The Env set up for the invoked command is closed
// even when the command fails, which PersistentPostRunE alone does not do.
func Execute(ctx context.Context) error {
	cmd, envs := newRoot()
	return execute(ctx, cmd, envs)
}

func execute(ctx context.Context, cmd *cobra.Command, envs *envHolder) error {
	err := cmd.ExecuteContext(ctx)
	if cerr := envs.Close(ctx); err == nil {
		err = cerr
	}
	return err
}

// envHolder keeps the Env built by PersistentPreRunE.
type envHolder struct {
	env *handlers.Env
}

func (h *envHolder) Close(ctx context.Context) error {
	if h.env == nil {
		return nil
	}
	return h.env.Close(ctx)
}

func newRoot() (*cobra.Command, *envHolder) {
	var opts handlers.GlobalOptions
	envs := &envHolder{}

	cmd := &cobra.Command{
		Use:           "opsretry",
		Short:         "Run cloud operations with retry and exponential backoff",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			ctx, err := handlers.Setup(cmd.Context(), opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			cmd.SetContext(ctx)
			envs.env = handlers.EnvFrom(ctx)
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.EnvFrom(cmd.Context()).Close(cmd.Context())
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.ConfigPath, "config", "c", "", "Path to retry configuration file")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "Log every retry and backoff wait")
	flags.StringVar(&opts.LogFormat, "log-format", "text", "Log format: text or json")
	flags.StringVar(&opts.MetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090)")

	cmd.AddCommand(Delay())
	cmd.AddCommand(Probe())
	cmd.AddCommand(Action())
	cmd.AddCommand(Key())
	cmd.AddCommand(Export())
	cmd.AddCommand(Version())

	return cmd, envs
}
