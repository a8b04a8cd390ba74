package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/systmms/eg2/internal/config"
	dserrors "github.com/systmms/eg2/internal/errors"
	"github.com/systmms/eg2/internal/logging"
)

// NewSetCommand creates the set command
func NewSetCommand(cfg *config.Config) *cobra.Command {
	var show bool

	cmd := &cobra.Command{
		Use:   "set <name> <value>",
		Short: "Create or overwrite a secret",
		Long: `Store a secret in the current service and stage.

Values longer than 4096 bytes are stored in the advanced parameter tier.

Examples:
  eg2 set DATABASE_URL postgres://localhost/app
  eg2 set API_KEY "$(cat key.txt)" --stage prod`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, value := args[0], args[1]

			client, err := openClient(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			if err := client.Set(cmd.Context(), name, value); err != nil {
				return dserrors.StoreError("set", err)
			}

			var shown interface{} = logging.Secret(value)
			if show {
				shown = value
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Set %s to %s\n", client.Key(name), shown)
			return nil
		},
	}

	cmd.Flags().BoolVar(&show, "show", false, "Print the stored value instead of [REDACTED]")

	return cmd
}
