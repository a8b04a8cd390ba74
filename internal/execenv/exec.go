package execenv

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
	"strings"
	"syscall"
	"time"

	dserrors "github.com/systmms/eg2/internal/errors"
	"github.com/systmms/eg2/internal/logging"
	"github.com/systmms/eg2/internal/secure"
)

// DefaultGracePeriod is how long an interrupted child may take to exit
// before it is killed.
const DefaultGracePeriod = 10 * time.Second

// Executor runs commands with secrets injected into their environment
type Executor struct {
	logger *logging.Logger

	// GracePeriod bounds the wait after the child has been interrupted.
	GracePeriod time.Duration
}

// New creates a new executor
func New(logger *logging.Logger) *Executor {
	return &Executor{
		logger:      logger,
		GracePeriod: DefaultGracePeriod,
	}
}

// ExecOptions configures command execution
type ExecOptions struct {
	Command []string            // Command and arguments to run
	Secrets *secure.Environment // Values injected into the child environment
	BaseEnv []string            // Inherited environment, os.Environ() when nil
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
}

// Exec runs the command and waits for it. A non-zero exit is returned as a
// dserrors.CommandError carrying the child's exit code; a child killed by
// a signal reports 128 plus the signal number. Cancelling ctx interrupts the
// child and lets it shut down; it is killed only after the grace period.
func (e *Executor) Exec(ctx context.Context, options ExecOptions) error {
	if len(options.Command) == 0 {
		return dserrors.UserError{
			Message:    "No command specified",
			Suggestion: "Provide a command after -- (e.g., eg2 run -- npm start)",
		}
	}

	cmdName := options.Command[0]
	if _, err := exec.LookPath(cmdName); err != nil {
		return dserrors.UserError{
			Message:    fmt.Sprintf("Command not found: %s", cmdName),
			Suggestion: "Check that the command is installed and available in your PATH",
			Err:        err,
		}
	}

	base := options.BaseEnv
	if base == nil {
		base = os.Environ()
	}
	env, err := buildEnvironment(base, options.Secrets)
	if err != nil {
		return dserrors.UserError{
			Message:    "Failed to build environment",
			Details:    err.Error(),
			Suggestion: "Run the command again; if it keeps failing check the memory lock limit (ulimit -l)",
			Err:        err,
		}
	}

	e.printEnvironment(options.Secrets)

	cmd := exec.CommandContext(ctx, cmdName, options.Command[1:]...)
	cmd.Cancel = func() error {
		return cmd.Process.Signal(os.Interrupt)
	}
	cmd.WaitDelay = e.GracePeriod
	cmd.Env = env
	cmd.Stdin = orReader(options.Stdin, os.Stdin)
	cmd.Stdout = orWriter(options.Stdout, os.Stdout)
	cmd.Stderr = orWriter(options.Stderr, os.Stderr)

	e.logger.Debug("Executing command: %s", strings.Join(options.Command, " "))

	if err := cmd.Run(); err != nil {
		// The child's own status wins over a cancelled context.
		if state := cmd.ProcessState; state != nil {
			if code := exitCode(state); code != 0 {
				return dserrors.CommandError{
					Command:  strings.Join(options.Command, " "),
					ExitCode: code,
				}
			}
			if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
				return nil
			}
		}
		return dserrors.CommandError{
			Command:    strings.Join(options.Command, " "),
			ExitCode:   1,
			Message:    err.Error(),
			Suggestion: "Check the command output above for details",
		}
	}

	return nil
}

func exitCode(state *os.ProcessState) int {
	if code := state.ExitCode(); code >= 0 {
		return code
	}
	if status, ok := state.Sys().(syscall.WaitStatus); ok && status.Signaled() {
		return 128 + int(status.Signal())
	}
	return 1
}

// buildEnvironment merges base with the sealed values. Sealed values win
// over inherited variables of the same name.
func buildEnvironment(base []string, sealed *secure.Environment) ([]string, error) {
	envMap := make(map[string]string, len(base))
	for _, kv := range base {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) == 2 {
			envMap[parts[0]] = parts[1]
		}
	}

	if sealed != nil {
		vars, err := sealed.Environ()
		if err != nil {
			return nil, err
		}
		for _, kv := range vars {
			parts := strings.SplitN(kv, "=", 2)
			envMap[parts[0]] = parts[1]
		}
	}

	result := make([]string, 0, len(envMap))
	for key, value := range envMap {
		result = append(result, key+"="+value)
	}
	sort.Strings(result)

	return result, nil
}

// printEnvironment lists the injected variables at debug level with
// masked values.
func (e *Executor) printEnvironment(sealed *secure.Environment) {
	if !e.logger.DebugEnabled() || sealed == nil {
		return
	}

	e.logger.Debug("Injecting %d environment variables", sealed.Len())
	for _, name := range sealed.Names() {
		value, _, err := sealed.Open(name)
		if err != nil {
			continue
		}
		e.logger.Debug("  %s=%s", name, maskValue(value))
	}
}

// maskValue masks a secret value for display
func maskValue(value string) string {
	if len(value) == 0 {
		return "(empty)"
	}
	if len(value) <= 3 {
		return strings.Repeat("*", len(value))
	}
	if len(value) <= 8 {
		return value[:1] + strings.Repeat("*", len(value)-2) + value[len(value)-1:]
	}
	return value[:3] + strings.Repeat("*", 8) + value[len(value)-2:]
}

func orReader(r io.Reader, fallback io.Reader) io.Reader {
	if r != nil {
		return r
	}
	return fallback
}

func orWriter(w io.Writer, fallback io.Writer) io.Writer {
	if w != nil {
		return w
	}
	return fallback
}
