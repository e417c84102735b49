package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/opsretry/cmd/opsretry/handlers"
	"github.com/imamik/opsretry/internal/util/keygen"
)

// Key returns the command group for SSH keys.
func Key() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Generate and manage SSH keys",
	}
	cmd.AddCommand(keyCreate())
	cmd.AddCommand(keyUpload())
	cmd.AddCommand(keyDelete())
	return cmd
}

func keyCreate() *cobra.Command {
	var opts handlers.KeyCreateOptions

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Generate an RSA key pair",
		Long: `Generate an RSA key pair and store it as <out>/<name>.json.

For NAME of the form user@domain only the part before "@" names the file.
With --upload the public key is also registered as a Hetzner Cloud SSH key
(requires HCLOUD_TOKEN).

Example:
  opsretry key create deploy@example.com --upload`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Name = args[0]
			return handlers.KeyCreate(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().IntVar(&opts.Bits, "bits", keygen.DefaultBits, "RSA key size in bits")
	cmd.Flags().StringVar(&opts.OutDir, "out", keygen.DefaultKeyDir, "Directory for key files")
	cmd.Flags().BoolVar(&opts.Upload, "upload", false, "Register the public key with Hetzner Cloud")
	cmd.Flags().StringToStringVar(&opts.Labels, "label", nil, "Extra label for the uploaded key (key=value, repeatable)")

	return cmd
}

func keyUpload() *cobra.Command {
	var opts handlers.KeyUploadOptions

	cmd := &cobra.Command{
		Use:   "upload NAME",
		Short: "Register an existing key file with Hetzner Cloud",
		Long: `Register the public key stored in <out>/<name>.json as a Hetzner Cloud
SSH key. A key with the same name and key material is left alone.

Requires HCLOUD_TOKEN.

Example:
  opsretry key upload deploy@example.com --label env=prod`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Name = args[0]
			return handlers.KeyUpload(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.OutDir, "out", keygen.DefaultKeyDir, "Directory for key files")
	cmd.Flags().StringToStringVar(&opts.Labels, "label", nil, "Extra label for the key (key=value, repeatable)")

	return cmd
}

func keyDelete() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a Hetzner Cloud SSH key",
		Long: `Delete a Hetzner Cloud SSH key by name. Missing keys are not an error.

Requires HCLOUD_TOKEN.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.KeyDelete(cmd.Context(), cmd.OutOrStdout(), args[0], yes)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}
