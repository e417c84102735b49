package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/opsretry/cmd/opsretry/handlers"
)

// Export returns the command uploading JSON documents to object storage.
func Export() *cobra.Command {
	var verify bool

	cmd := &cobra.Command{
		Use:   "export BUCKET KEY FILE",
		Short: "Upload a JSON file to object storage",
		Long: `Upload the JSON document in FILE to BUCKET/KEY, indented by two spaces.

Number literals are uploaded exactly as written. The bucket is created when
missing. With --verify the object is read back and compared with FILE.

Requires S3_ENDPOINT, S3_ACCESS_KEY and S3_SECRET_KEY; S3_REGION defaults
to fsn1.

Example:
  opsretry export backups keys/deploy.json sa_keys/deploy.json`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.Export(cmd.Context(), cmd.OutOrStdout(), handlers.ExportOptions{
				Bucket: args[0],
				Key:    args[1],
				File:   args[2],
				Verify: verify,
			})
		},
	}

	cmd.Flags().BoolVar(&verify, "verify", false, "Read the object back and compare it with FILE")

	return cmd
}
