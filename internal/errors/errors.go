package errors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/systmms/eg2/pkg/secrets"
)

// UserError represents an error that should be shown to the user with helpful context
type UserError struct {
	Message    string
	Suggestion string
	Details    string
	Err        error
}

func (e UserError) Error() string {
	var parts []string

	if e.Message != "" {
		parts = append(parts, e.Message)
	} else if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}

	if e.Details != "" {
		parts = append(parts, "\n  Details: "+e.Details)
	}

	if e.Suggestion != "" {
		parts = append(parts, "\n  💡 Try: "+e.Suggestion)
	}

	return strings.Join(parts, "")
}

func (e UserError) Unwrap() error {
	return e.Err
}

// ConfigError represents a configuration error with helpful context
type ConfigError struct {
	Field      string
	Value      interface{}
	Message    string
	Suggestion string
}

func (e ConfigError) Error() string {
	msg := "Configuration error"
	if e.Field != "" {
		msg += fmt.Sprintf(" in field '%s'", e.Field)
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	msg += ": " + e.Message

	if e.Suggestion != "" {
		msg += "\n  💡 " + e.Suggestion
	}

	return msg
}

// MissingOptionError is returned when a required namespace option could not be
// resolved from any source.
type MissingOptionError struct {
	Option string
}

func (e *MissingOptionError) Error() string {
	return fmt.Sprintf("Option \"--%s\" is missing\n  💡 Pass --%s, declare it in eg2.yaml or run 'eg2 config'", e.Option, e.Option)
}

// CommandError represents a command execution error
type CommandError struct {
	Command    string
	ExitCode   int
	Message    string
	Suggestion string
}

func (e CommandError) Error() string {
	msg := fmt.Sprintf("Command '%s' failed", e.Command)
	if e.ExitCode != 0 {
		msg += fmt.Sprintf(" (exit code: %d)", e.ExitCode)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}

	if e.Suggestion != "" {
		msg += "\n  💡 " + e.Suggestion
	}

	return msg
}

// StoreError decorates a hard store failure with a suggestion. The original
// error stays reachable through errors.As and errors.Is.
func StoreError(operation string, err error) error {
	if err == nil {
		return nil
	}
	var verr *secrets.ValidationError
	if errors.As(err, &verr) {
		return UserError{
			Message:    verr.Error(),
			Suggestion: "Secret names are a single path segment and must not contain '/'",
			Err:        err,
		}
	}
	return UserError{
		Message:    fmt.Sprintf("Parameter Store error during %s", operation),
		Details:    err.Error(),
		Suggestion: storeSuggestion(err),
		Err:        err,
	}
}

// storeSuggestion provides helpful suggestions based on SSM errors
func storeSuggestion(err error) string {
	switch secrets.KindOf(err) {
	case secrets.KindAuthorization:
		return "Check IAM permissions: ssm:GetParameter, ssm:GetParametersByPath, ssm:PutParameter, ssm:DeleteParameter and kms:Decrypt"
	case secrets.KindThrottled:
		return "Request was throttled. Wait a moment and try again"
	case secrets.KindInvalid:
		return "Check the secret name and value. Values above 4096 bytes need the advanced tier to be enabled in your account"
	case secrets.KindTransport:
		return "Unable to reach AWS. Check your network connection and region"
	}

	errStr := strings.ToLower(err.Error())
	switch {
	case strings.Contains(errStr, "credentials"):
		return "Configure AWS credentials: 'aws configure' or set AWS_PROFILE"
	case strings.Contains(errStr, "region"):
		return "Check that you're using the correct AWS region, e.g. --region or AWS_REGION"
	default:
		return "Check AWS credentials, region, and IAM permissions for SSM Parameter Store"
	}
}

// ExitCode returns the process exit code that should be used for err.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var cmdErr CommandError
	if errors.As(err, &cmdErr) && cmdErr.ExitCode > 0 {
		return cmdErr.ExitCode
	}
	return 1
}
