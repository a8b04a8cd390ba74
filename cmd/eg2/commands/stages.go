package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/systmms/eg2/internal/config"
	dserrors "github.com/systmms/eg2/internal/errors"
	"github.com/systmms/eg2/pkg/secrets"
)

// NewStagesCommand creates the stages command
func NewStagesCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stages",
		Short: "List the stages holding secrets for the service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := cfg.Resolve(config.FieldService)
			if err != nil {
				return err
			}

			store, err := cfg.Store(cmd.Context())
			if err != nil {
				return err
			}

			stages, err := secrets.Stages(cmd.Context(), store, env.Service)
			if err != nil {
				return dserrors.StoreError("list stages", err)
			}

			if len(stages) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No stages for service %q\n", env.Service)
				return nil
			}

			printStrings(cmd.OutOrStdout(), "Stages", stages)
			return nil
		},
	}

	return cmd
}

// NewServicesCommand creates the services command
func NewServicesCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "services",
		Short: "List every service holding secrets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := cfg.Store(cmd.Context())
			if err != nil {
				return err
			}

			services, err := secrets.Services(cmd.Context(), store)
			if err != nil {
				return dserrors.StoreError("list services", err)
			}

			if len(services) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No services found")
				return nil
			}

			printStrings(cmd.OutOrStdout(), "Services", services)
			return nil
		},
	}

	return cmd
}
