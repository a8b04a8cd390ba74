package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/systmms/eg2/internal/errors"
	"github.com/systmms/eg2/pkg/secrets"
)

// TestUserErrorFormatting verifies UserError displays properly
func TestUserErrorFormatting(t *testing.T) {
	t.Parallel()

	err := errors.UserError{
		Message:    "Operation failed",
		Details:    "Connection timeout",
		Suggestion: "Check network connectivity",
	}

	errMsg := err.Error()

	assert.Contains(t, errMsg, "Operation failed")
	assert.Contains(t, errMsg, "Connection timeout")
	assert.Contains(t, errMsg, "Check network connectivity")
	assert.Contains(t, errMsg, "💡")
}

func TestUserErrorFallsBackToWrapped(t *testing.T) {
	t.Parallel()

	inner := fmt.Errorf("boom")
	err := errors.UserError{Err: inner}
	assert.Equal(t, "boom", err.Error())
	assert.ErrorIs(t, err, inner)
}

// TestConfigErrorFormatting verifies ConfigError displays with context
func TestConfigErrorFormatting(t *testing.T) {
	t.Parallel()

	err := errors.ConfigError{
		Field:      "service",
		Value:      "a/b",
		Message:    "invalid value",
		Suggestion: "Use a single path segment",
	}

	errMsg := err.Error()

	assert.Contains(t, errMsg, "service")
	assert.Contains(t, errMsg, "a/b")
	assert.Contains(t, errMsg, "invalid value")
	assert.Contains(t, errMsg, "single path segment")
}

func TestMissingOptionError(t *testing.T) {
	t.Parallel()

	err := &errors.MissingOptionError{Option: "stage"}
	assert.Contains(t, err.Error(), `Option "--stage" is missing`)
	assert.Contains(t, err.Error(), "eg2 config")
}

// TestCommandErrorFormatting verifies CommandError includes exit code
func TestCommandErrorFormatting(t *testing.T) {
	t.Parallel()

	err := errors.CommandError{
		Command:  "npm start",
		ExitCode: 3,
		Message:  "exited",
	}

	assert.Contains(t, err.Error(), "npm start")
	assert.Contains(t, err.Error(), "exit code: 3")
	assert.Equal(t, 3, errors.ExitCode(fmt.Errorf("wrapped: %w", err)))
	assert.Equal(t, 1, errors.ExitCode(fmt.Errorf("other")))
	assert.Equal(t, 0, errors.ExitCode(nil))
}

func TestStoreErrorKeepsCause(t *testing.T) {
	t.Parallel()

	cause := &secrets.StoreError{Op: "GetParameter", Kind: secrets.KindAuthorization, Err: stderrors.New("AccessDeniedException")}
	err := errors.StoreError("get", cause)

	var se *secrets.StoreError
	require.ErrorAs(t, err, &se)
	assert.Same(t, cause, se)
	assert.Contains(t, err.Error(), "kms:Decrypt")
	assert.Contains(t, err.Error(), "during get")
}

func TestStoreErrorValidation(t *testing.T) {
	t.Parallel()

	err := errors.StoreError("set", secrets.ValidateName("a/b"))
	assert.Contains(t, err.Error(), "must not contain '/'")

	var verr *secrets.ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.NoError(t, errors.StoreError("set", nil))
}

func TestStoreErrorSuggestions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind secrets.Kind
		want string
	}{
		{secrets.KindThrottled, "throttled"},
		{secrets.KindInvalid, "advanced tier"},
		{secrets.KindTransport, "network"},
	}
	for _, tt := range tests {
		err := errors.StoreError("list", &secrets.StoreError{Op: "op", Kind: tt.kind, Err: stderrors.New("x")})
		assert.Contains(t, err.Error(), tt.want)
	}

	err := errors.StoreError("list", stderrors.New("failed to retrieve credentials"))
	assert.Contains(t, err.Error(), "aws configure")
}
