package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/systmms/eg2/internal/config"
	"github.com/systmms/eg2/pkg/secrets"
)

// NewListCommand creates the list command
func NewListCommand(cfg *config.Config) *cobra.Command {
	var (
		pattern string
		raw     bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the secrets of a stage",
		Long: `List every secret of the current service and stage, sorted by name.

Examples:
  eg2 list
  eg2 list --pattern 'DB_*'
  eg2 ls --raw > .env.local`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := openClient(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			list, err := filteredSecrets(cmd.Context(), client, pattern)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(list) == 0 {
				fmt.Fprintf(out, "No secrets set for stage %q\n", client.Env().Stage)
				return nil
			}

			if raw {
				for _, s := range list {
					fmt.Fprintf(out, "%s=%s\n", s.Name, s.Value)
				}
				return nil
			}

			printSecrets(out, list)
			return nil
		},
	}

	cmd.Flags().StringVarP(&pattern, "pattern", "p", secrets.MatchAll, "Only list names matching this glob")
	cmd.Flags().BoolVar(&raw, "raw", false, "Print NAME=value lines instead of a table")

	return cmd
}
