package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/systmms/eg2/internal/config"
	dserrors "github.com/systmms/eg2/internal/errors"
	"github.com/systmms/eg2/internal/typegen"
	"github.com/systmms/eg2/pkg/secrets"
)

// NewExportTypesCommand creates the export-types command
func NewExportTypesCommand(cfg *config.Config) *cobra.Command {
	var global bool

	cmd := &cobra.Command{
		Use:   "export-types <path>",
		Short: "Generate TypeScript types for the secrets of a stage",
		Long: `Generate a TypeScript type listing the secret names of the current stage.

The type is named after the service, e.g. "billing-api" gives BillingApiSecrets.
With --global, NodeJS.ProcessEnv is extended with the generated type.

Examples:
  eg2 export-types src/env.d.ts --global`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := openClient(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			list, err := filteredSecrets(cmd.Context(), client, secrets.MatchAll)
			if err != nil {
				return err
			}

			env := client.Env()
			path, err := typegen.WriteFile(args[0], env.Service, list, typegen.Options{Global: global})
			if err != nil {
				return dserrors.UserError{
					Message:    fmt.Sprintf("Failed to write %s", path),
					Details:    err.Error(),
					Suggestion: "Check that the directory exists and is writable",
					Err:        err,
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Generated types for stage %q in %s\n", env.Stage, path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&global, "global", false, "Also declare the secrets on NodeJS.ProcessEnv")

	return cmd
}
