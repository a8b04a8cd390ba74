package execenv

import (
	"bytes"
	"context"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	dserrors "github.com/systmms/eg2/internal/errors"
	"github.com/systmms/eg2/internal/logging"
	"github.com/systmms/eg2/internal/secure"
	"github.com/systmms/eg2/pkg/secrets"
)

func createTestExecutor() *Executor {
	return New(logging.New(false, true))
}

func sealed(t *testing.T, list ...secrets.Secret) *secure.Environment {
	t.Helper()
	env := secure.NewEnvironment()
	env.SealAll(list)
	t.Cleanup(env.Destroy)
	return env
}

func requireShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
}

func TestMaskValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", "(empty)"},
		{"single_char", "a", "*"},
		{"three_chars", "abc", "***"},
		{"four_chars", "abcd", "a**d"},
		{"eight_chars", "abcdefgh", "a******h"},
		{"nine_chars", "abcdefghi", "abc********hi"},
		{"long_value", "mysupersecretpassword", "mys********rd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, maskValue(tt.input))
		})
	}
}

func TestBuildEnvironment(t *testing.T) {
	t.Parallel()

	t.Run("secrets_override_inherited_values", func(t *testing.T) {
		t.Parallel()

		env, err := buildEnvironment(
			[]string{"PATH=/usr/bin", "API_KEY=from-shell"},
			sealed(t, secrets.Secret{Name: "API_KEY", Value: "from-store"}),
		)
		require.NoError(t, err)
		assert.Equal(t, []string{"API_KEY=from-store", "PATH=/usr/bin"}, env)
	})

	t.Run("values_containing_equals", func(t *testing.T) {
		t.Parallel()

		env, err := buildEnvironment(
			[]string{"OPTS=a=b"},
			sealed(t, secrets.Secret{Name: "DSN", Value: "host=db user=app"}),
		)
		require.NoError(t, err)
		assert.Equal(t, []string{"DSN=host=db user=app", "OPTS=a=b"}, env)
	})

	t.Run("no_secrets", func(t *testing.T) {
		t.Parallel()

		env, err := buildEnvironment([]string{"B=2", "A=1"}, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"A=1", "B=2"}, env)
	})
}

func TestExecutor_Exec_EmptyCommand(t *testing.T) {
	t.Parallel()

	err := createTestExecutor().Exec(context.Background(), ExecOptions{})

	var userErr dserrors.UserError
	require.ErrorAs(t, err, &userErr)
	assert.Contains(t, userErr.Message, "No command specified")
}

func TestExecutor_Exec_CommandNotFound(t *testing.T) {
	t.Parallel()

	err := createTestExecutor().Exec(context.Background(), ExecOptions{
		Command: []string{"eg2-command-that-does-not-exist"},
	})

	var userErr dserrors.UserError
	require.ErrorAs(t, err, &userErr)
	assert.Contains(t, userErr.Message, "Command not found")
}

func TestExecutor_Exec_InjectsSecrets(t *testing.T) {
	t.Parallel()
	requireShell(t)

	var stdout bytes.Buffer
	err := createTestExecutor().Exec(context.Background(), ExecOptions{
		Command: []string{"sh", "-c", `printf '%s|%s' "$API_KEY" "$KEEP"`},
		Secrets: sealed(t, secrets.Secret{Name: "API_KEY", Value: "from-store"}),
		BaseEnv: []string{"PATH=/usr/bin:/bin", "API_KEY=from-shell", "KEEP=yes"},
		Stdout:  &stdout,
		Stdin:   strings.NewReader(""),
	})
	require.NoError(t, err)
	assert.Equal(t, "from-store|yes", stdout.String())
}

func TestExecutor_Exec_PropagatesExitCode(t *testing.T) {
	t.Parallel()
	requireShell(t)

	err := createTestExecutor().Exec(context.Background(), ExecOptions{
		Command: []string{"sh", "-c", "exit 3"},
		BaseEnv: []string{"PATH=/usr/bin:/bin"},
		Stdin:   strings.NewReader(""),
		Stdout:  &bytes.Buffer{},
		Stderr:  &bytes.Buffer{},
	})

	var cmdErr dserrors.CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, 3, cmdErr.ExitCode)
	assert.Equal(t, 3, dserrors.ExitCode(err))
}

func TestExecutor_Exec_SignalExitCode(t *testing.T) {
	t.Parallel()
	requireShell(t)

	err := createTestExecutor().Exec(context.Background(), ExecOptions{
		Command: []string{"sh", "-c", "kill -TERM $$"},
		BaseEnv: []string{"PATH=/usr/bin:/bin"},
		Stdin:   strings.NewReader(""),
		Stdout:  &bytes.Buffer{},
		Stderr:  &bytes.Buffer{},
	})

	assert.Equal(t, 128+15, dserrors.ExitCode(err))
}

func TestExecutor_Exec_CancelInterruptsChild(t *testing.T) {
	t.Parallel()
	requireShell(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	time.AfterFunc(500*time.Millisecond, cancel)

	var stdout bytes.Buffer
	err := createTestExecutor().Exec(ctx, ExecOptions{
		Command: []string{"sh", "-c", "trap 'echo cleaned-up; exit 3' INT; while :; do sleep 1; done"},
		BaseEnv: []string{"PATH=/usr/bin:/bin"},
		Stdin:   strings.NewReader(""),
		Stdout:  &stdout,
		Stderr:  &bytes.Buffer{},
	})

	var cmdErr dserrors.CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, 3, cmdErr.ExitCode)
	assert.Equal(t, "cleaned-up\n", stdout.String())
}

func TestExecutor_Exec_CancelKillsAfterGracePeriod(t *testing.T) {
	t.Parallel()
	requireShell(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	time.AfterFunc(500*time.Millisecond, cancel)

	executor := createTestExecutor()
	executor.GracePeriod = 200 * time.Millisecond

	err := executor.Exec(ctx, ExecOptions{
		Command: []string{"sh", "-c", "trap '' INT; while :; do sleep 1; done"},
		BaseEnv: []string{"PATH=/usr/bin:/bin"},
		Stdin:   strings.NewReader(""),
		Stdout:  &bytes.Buffer{},
		Stderr:  &bytes.Buffer{},
	})

	assert.Equal(t, 128+9, dserrors.ExitCode(err))
}
