package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/opsretry/cmd/opsretry/handlers"
)

// Delay returns the command printing a backoff schedule.
func Delay() *cobra.Command {
	var opts handlers.DelayOptions

	cmd := &cobra.Command{
		Use:   "delay [OPERATION]",
		Short: "Print the backoff schedule of a retry profile",
		Long: `Print the wait after each failed attempt of a retry profile.

Without OPERATION the defaults section of the configuration is used.
Jitter is disabled unless --jitter is given, so the table shows the
upper bound of every wait.

Example:
  opsretry delay hcloud.action.wait -c opsretry.yaml --attempts 10`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.Operation = args[0]
			}
			return handlers.Delay(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().IntVar(&opts.Attempts, "attempts", 0, "Number of attempts to show (default: the profile's max_attempts)")
	cmd.Flags().BoolVar(&opts.Jitter, "jitter", false, "Sample jittered delays")

	return cmd
}
