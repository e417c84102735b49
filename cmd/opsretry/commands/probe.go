package commands

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/imamik/opsretry/cmd/opsretry/handlers"
)

// Probe returns the command waiting for HTTP endpoints.
func Probe() *cobra.Command {
	var opts handlers.ProbeOptions

	cmd := &cobra.Command{
		Use:   "probe TARGET...",
		Short: "Wait until HTTP endpoints answer with the expected status",
		Long: `Probe requests every URL concurrently under the http.probe retry profile.

Connection failures and unexpected status codes are retried. The command
fails if any URL still answers differently after the last attempt.

With --tcp every TARGET is a host:port address that is dialed under the
tcp.probe profile until it accepts a connection.

Examples:
  opsretry probe https://api.example.com/healthz --expect 204
  opsretry probe --tcp db.internal:5432 cache.internal:6379`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Targets = args
			return handlers.Probe(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().IntVar(&opts.Expect, "expect", http.StatusOK, "Expected HTTP status code")
	cmd.Flags().BoolVar(&opts.TCP, "tcp", false, "Treat targets as host:port and wait for TCP connections")

	return cmd
}
