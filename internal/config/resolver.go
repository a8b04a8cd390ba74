package config

import (
	"errors"
	"os"

	dserrors "github.com/systmms/eg2/internal/errors"
	"github.com/systmms/eg2/internal/logging"
	"github.com/systmms/eg2/pkg/secrets"
)

// Field names one half of the namespace identity.
type Field string

const (
	FieldService Field = "service"
	FieldStage   Field = "stage"
)

func (f Field) value(env secrets.EnvironmentOptions) string {
	switch f {
	case FieldService:
		return env.Service
	case FieldStage:
		return env.Stage
	}
	return ""
}

// Resolver assembles the effective identity of a command from, in order of
// precedence, the command line overrides, the project manifest and the
// cached defaults.
type Resolver struct {
	Dir    string
	Logger *logging.Logger
}

// Resolve fills each field with the first non-empty value found and checks
// the required fields in the order given (both when none are given). The
// first empty required field is reported as *errors.MissingOptionError.
func (r *Resolver) Resolve(overrides secrets.EnvironmentOptions, require ...Field) (secrets.EnvironmentOptions, error) {
	if len(require) == 0 {
		require = []Field{FieldService, FieldStage}
	}

	manifest, path, err := LoadManifest(r.dir())
	if err != nil && !errors.Is(err, errNoManifest) {
		r.debug("Ignoring project manifest %s: %v", path, err)
	}

	cached, err := LoadDefaults(r.dir())
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		r.debug("Ignoring cached defaults: %v", err)
	}

	env := secrets.EnvironmentOptions{
		Service: firstNonEmpty(overrides.Service, manifest.Service, cached.Service),
		Stage:   firstNonEmpty(overrides.Stage, manifest.Stage, cached.Stage),
	}

	for _, field := range require {
		if field.value(env) == "" {
			return env, &dserrors.MissingOptionError{Option: string(field)}
		}
	}

	r.debug("Resolved service=%s stage=%s", env.Service, env.Stage)
	return env, nil
}

func (r *Resolver) dir() string {
	if r.Dir == "" {
		return "."
	}
	return r.Dir
}

func (r *Resolver) debug(format string, args ...interface{}) {
	if r.Logger != nil {
		r.Logger.Debug(format, args...)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
