package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/systmms/eg2/internal/config"
)

// NewConfigCommand creates the config command
func NewConfigCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Set the default service and stage of this project",
		Long: `Ask for the default stage and service name and store them in .eg2/defaults.yaml.

Empty answers keep the proposed value. --service and --stage replace the
proposed values; with --non-interactive (or without a terminal) the proposed
values are saved without asking.

Examples:
  eg2 config
  eg2 config --service billing --stage dev --non-interactive`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			placeholders := config.DefaultPlaceholders()
			if cfg.Overrides.Service != "" {
				placeholders.Service = cfg.Overrides.Service
			}
			if cfg.Overrides.Stage != "" {
				placeholders.Stage = cfg.Overrides.Stage
			}

			out := cmd.OutOrStdout()
			env, err := cfg.Resolver().Configure(cfg.Input(), out, placeholders, cfg.Interactive)
			if err != nil {
				return err
			}
			if cfg.Interactive {
				fmt.Fprintln(out)
			}

			cfg.Logger.Info("Saved defaults to %s (service %q, stage %q)",
				config.DefaultsPath(cfg.Dir), env.Service, env.Stage)
			return nil
		},
	}

	return cmd
}
