package secrets

import (
	"context"
	"strings"
)

const (
	// Root is the first path segment of every key written by eg2.
	Root = "eg2"

	// Separator separates key path segments.
	Separator = "/"
)

// EnvironmentOptions identifies the namespace a client operates on.
type EnvironmentOptions struct {
	Service string `yaml:"service" json:"service"`
	Stage   string `yaml:"stage" json:"stage"`
}

// Secret is a single named value stored in a namespace.
type Secret struct {
	Name  string
	Value string
}

// Client provides secret operations scoped to one service and stage.
type Client interface {
	// Env returns the namespace the client is bound to.
	Env() EnvironmentOptions

	// Key returns the full key path for name. It performs no I/O.
	Key(name string) string

	// Set creates or overwrites a secret.
	Set(ctx context.Context, name, value string) error

	// Get returns the secret and true, or false with a nil error when the
	// secret has not been set.
	Get(ctx context.Context, name string) (Secret, bool, error)

	// Remove deletes a secret. It returns false with a nil error when the
	// secret did not exist.
	Remove(ctx context.Context, name string) (bool, error)

	// List returns every secret directly below the namespace path.
	List(ctx context.Context) ([]Secret, error)

	// Stages returns the distinct stages that hold secrets for the service.
	Stages(ctx context.Context) ([]string, error)

	// Services returns the distinct services that hold secrets.
	Services(ctx context.Context) ([]string, error)
}

// RootPath returns the path all eg2 keys live under.
func RootPath() string {
	return Separator + Root
}

// ServicePath returns the path holding every stage of service.
func ServicePath(service string) string {
	return RootPath() + Separator + service
}

// NamespacePath returns the path holding the secrets of env.
func NamespacePath(env EnvironmentOptions) string {
	return ServicePath(env.Service) + Separator + env.Stage
}

// KeyPath returns the full key path of name within env.
func KeyPath(env EnvironmentOptions, name string) string {
	return NamespacePath(env) + Separator + name
}

// NameFromPath returns the last segment of a key path.
func NameFromPath(key string) string {
	if i := strings.LastIndex(key, Separator); i >= 0 {
		return key[i+1:]
	}
	return key
}

// ParseKey splits a full key path into its namespace and name. It reports
// false for paths that are not of the form /eg2/<service>/<stage>/<name>.
func ParseKey(key string) (EnvironmentOptions, string, bool) {
	parts := strings.Split(key, Separator)
	// "", "eg2", service, stage, name
	if len(parts) != 5 || parts[0] != "" || parts[1] != Root {
		return EnvironmentOptions{}, "", false
	}
	for _, p := range parts[2:] {
		if p == "" {
			return EnvironmentOptions{}, "", false
		}
	}
	return EnvironmentOptions{Service: parts[2], Stage: parts[3]}, parts[4], true
}

// ValidateName checks that name can be used as a single key segment.
func ValidateName(name string) error {
	return validateSegment("name", name)
}

// ValidateEnv checks that both namespace segments are usable.
func ValidateEnv(env EnvironmentOptions) error {
	if err := validateSegment("service", env.Service); err != nil {
		return err
	}
	return validateSegment("stage", env.Stage)
}

func validateSegment(field, value string) error {
	if value == "" {
		return &ValidationError{Field: field, Value: value, Reason: "must not be empty"}
	}
	if strings.Contains(value, Separator) {
		return &ValidationError{Field: field, Value: value, Reason: "must not contain " + Separator}
	}
	return nil
}
