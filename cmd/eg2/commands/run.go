package commands

import (
	"github.com/spf13/cobra"
	"github.com/systmms/eg2/internal/config"
	dserrors "github.com/systmms/eg2/internal/errors"
	"github.com/systmms/eg2/internal/execenv"
	"github.com/systmms/eg2/internal/secure"
)

// NewRunCommand creates the run command
func NewRunCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run -- <command> [args...]",
		Short: "Run a command with the secrets of a stage in its environment",
		Long: `Run a command with every secret of the current stage added to its environment.

Secrets take precedence over variables of the same name already set in the
shell. The exit code of the command becomes the exit code of eg2.

Examples:
  eg2 run -- npm start
  eg2 run --stage prod -- ./migrate.sh up`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := openClient(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			list, err := client.List(cmd.Context())
			if err != nil {
				return dserrors.StoreError("list", err)
			}

			sealed := secure.NewEnvironment()
			sealed.SealAll(list)
			defer sealed.Destroy()

			return execenv.New(cfg.Logger).Exec(cmd.Context(), execenv.ExecOptions{
				Command: args,
				Secrets: sealed,
				Stdin:   cmd.InOrStdin(),
				Stdout:  cmd.OutOrStdout(),
				Stderr:  cmd.ErrOrStderr(),
			})
		},
	}

	// Everything after the command belongs to the child process.
	cmd.Flags().SetInterspersed(false)

	return cmd
}
