package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/imamik/opsretry/cmd/opsretry/handlers"
)

// Action returns the command group for Hetzner Cloud actions.
func Action() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "action",
		Short: "Work with Hetzner Cloud actions",
	}
	cmd.AddCommand(actionWait())
	return cmd
}

func actionWait() *cobra.Command {
	return &cobra.Command{
		Use:   "wait ID",
		Short: "Poll an action until it finishes",
		Long: `Poll a Hetzner Cloud action until it is no longer running.

Every poll is one attempt of the hcloud.action.wait profile. Requires
HCLOUD_TOKEN.

Example:
  opsretry action wait 123456`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid action ID %q", args[0])
			}
			return handlers.ActionWait(cmd.Context(), cmd.OutOrStdout(), id)
		},
	}
}
