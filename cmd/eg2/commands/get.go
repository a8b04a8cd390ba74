package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/systmms/eg2/internal/config"
	dserrors "github.com/systmms/eg2/internal/errors"
)

// NewGetCommand creates the get command
func NewGetCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <name>",
		Short: "Print the value of a secret",
		Long: `Print a single secret value to stdout, suitable for scripting.

Examples:
  eg2 get DATABASE_URL
  export DB_URL=$(eg2 get DATABASE_URL --stage prod)`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeSecretNames(cfg),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			client, err := openClient(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			secret, ok, err := client.Get(cmd.Context(), name)
			if err != nil {
				return dserrors.StoreError("get", err)
			}
			if !ok {
				fmt.Fprintf(cmd.OutOrStdout(), "Secret %s has not been set\n", name)
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), secret.Value)
			return nil
		},
	}

	return cmd
}
