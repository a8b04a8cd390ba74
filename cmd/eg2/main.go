package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/awnumar/memguard"
	"github.com/spf13/cobra"
	"github.com/systmms/eg2/cmd/eg2/commands"
	"github.com/systmms/eg2/internal/config"
	dserrors "github.com/systmms/eg2/internal/errors"
	"github.com/systmms/eg2/internal/logging"
	"github.com/systmms/eg2/internal/metrics"
	"golang.org/x/term"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	err := run()

	// Wipe enclave keys before os.Exit skips deferred calls.
	memguard.Purge()

	if err != nil {
		// A failing child already reported its own error.
		var cmdErr dserrors.CommandError
		if !errors.As(err, &cmdErr) || cmdErr.Message != "" {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(dserrors.ExitCode(err))
	}
}

func run() error {
	// Global flags
	var (
		dir            string
		noColor        bool
		debug          bool
		nonInteractive bool
	)

	// Create config placeholder
	cfg := &config.Config{}

	rootCmd := &cobra.Command{
		Use:   "eg2",
		Short: "Manage environment secrets in AWS Systems Manager Parameter Store",
		Long: `eg2 stores the environment of your services in AWS SSM Parameter Store,
one namespace per service and stage, and loads it back into .env files,
TypeScript types or the environment of a command.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg.Logger = logging.New(debug, noColor)
			cfg.Dir = dir
			if cfg.Dir == "" {
				if wd, err := os.Getwd(); err == nil {
					cfg.Dir = wd
				}
			}
			cfg.NonInteractive = nonInteractive
			cfg.Interactive = !nonInteractive && term.IsTerminal(int(os.Stdin.Fd()))
			cfg.Stdin = os.Stdin
			if cfg.MetricsFile != "" {
				cfg.Metrics = metrics.NewRecorder()
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfg.Overrides.Service, "service", "", "Service name (overrides eg2.yaml and saved defaults)")
	flags.StringVar(&cfg.Overrides.Stage, "stage", "", "Stage name (overrides eg2.yaml and saved defaults)")
	flags.StringVar(&dir, "dir", "", "Project directory (default: current directory)")
	flags.StringVar(&cfg.AWS.Profile, "profile", "", "AWS shared config profile")
	flags.StringVar(&cfg.AWS.Region, "region", "", "AWS region")
	flags.StringVar(&cfg.AWS.AssumeRole, "assume-role", "", "ARN of an IAM role to assume")
	flags.StringVar(&cfg.KMSKeyID, "kms-key-id", "", "KMS key for SecureString values (default: alias/aws/ssm)")
	flags.StringVar(&cfg.StoreKind, "store", config.StoreSSM, "Secret store: ssm or memory")
	flags.StringVar(&cfg.MetricsFile, "metrics-file", "", "Write store metrics to this file (Prometheus text format)")
	flags.BoolVar(&noColor, "no-color", false, "Disable colored output")
	flags.BoolVar(&debug, "debug", false, "Enable debug logging")
	flags.BoolVar(&nonInteractive, "non-interactive", false, "Never prompt for input")

	// Add commands
	rootCmd.AddCommand(
		commands.NewConfigCommand(cfg),
		commands.NewSetCommand(cfg),
		commands.NewGetCommand(cfg),
		commands.NewListCommand(cfg),
		commands.NewRemoveCommand(cfg),
		commands.NewLoadCommand(cfg),
		commands.NewExportCommand(cfg),
		commands.NewExportTypesCommand(cfg),
		commands.NewRunCommand(cfg),
		commands.NewStagesCommand(cfg),
		commands.NewServicesCommand(cfg),
		commands.NewCompletionCommand(cfg),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)

	if cfg.Metrics != nil {
		if werr := cfg.Metrics.WriteTextfile(cfg.MetricsFile); werr != nil && cfg.Logger != nil {
			cfg.Logger.Warn("Failed to write metrics to %s: %v", cfg.MetricsFile, werr)
		}
	}

	return err
}
