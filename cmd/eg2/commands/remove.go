package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/systmms/eg2/internal/config"
	dserrors "github.com/systmms/eg2/internal/errors"
)

// NewRemoveCommand creates the remove command
func NewRemoveCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "remove <name>",
		Aliases:           []string{"rm"},
		Short:             "Delete a secret",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeSecretNames(cfg),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			client, err := openClient(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			removed, err := client.Remove(cmd.Context(), name)
			if err != nil {
				return dserrors.StoreError("remove", err)
			}

			if !removed {
				fmt.Fprintf(cmd.OutOrStdout(), "Could not remove %s: it has not been set\n", name)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", name)
			return nil
		},
	}

	return cmd
}
