package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/systmms/eg2/internal/config"
	"github.com/systmms/eg2/internal/dotenv"
	dserrors "github.com/systmms/eg2/internal/errors"
	"github.com/systmms/eg2/pkg/secrets"
)

// NewExportCommand creates the export command
func NewExportCommand(cfg *config.Config) *cobra.Command {
	var pattern string

	cmd := &cobra.Command{
		Use:   "export <path>",
		Short: "Write the secrets of a stage to a .env file",
		Long: `Write the secrets of the current stage to a .env file readable only by you.

Examples:
  eg2 export .env
  eg2 export .env.db --pattern 'DB_*'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			client, err := openClient(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			list, err := filteredSecrets(cmd.Context(), client, pattern)
			if err != nil {
				return err
			}

			if err := dotenv.WriteFile(path, list); err != nil {
				return dserrors.UserError{
					Message:    fmt.Sprintf("Failed to write %s", path),
					Details:    err.Error(),
					Suggestion: "Check that the directory exists and is writable",
					Err:        err,
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Exported environment to %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&pattern, "pattern", "p", secrets.MatchAll, "Only export names matching this glob")

	return cmd
}
