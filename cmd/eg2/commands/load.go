package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/systmms/eg2/internal/config"
	"github.com/systmms/eg2/internal/dotenv"
	dserrors "github.com/systmms/eg2/internal/errors"
	"github.com/systmms/eg2/internal/logging"
)

// NewLoadCommand creates the load command
func NewLoadCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "load <path>",
		Short: "Upload every variable of a .env file",
		Long: `Read a .env file and store each variable as a secret of the current stage.

Variables are written one at a time in the order they appear in the file.
The first failure stops the upload; variables written before it are kept.

Examples:
  eg2 load .env
  eg2 load .env.production --stage prod`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			variables, err := dotenv.ReadFile(path)
			if err != nil {
				return dserrors.UserError{
					Message:    fmt.Sprintf("Failed to read %s", path),
					Details:    err.Error(),
					Suggestion: "Check that the file exists and uses NAME=value lines",
					Err:        err,
				}
			}

			client, err := openClient(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			for i, v := range variables {
				cfg.Logger.Debug("Setting %s to %s", client.Key(v.Name), logging.Secret(v.Value))
				if err := client.Set(cmd.Context(), v.Name, v.Value); err != nil {
					cfg.Logger.Warn("Uploaded %d of %d variables before %s failed", i, len(variables), v.Name)
					return dserrors.StoreError("set "+v.Name, err)
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Successfully uploaded %d environment variables\n", len(variables))
			return nil
		},
	}

	return cmd
}
