package config

import (
	"fmt"
	"os"
	"path/filepath"

	dserrors "github.com/systmms/eg2/internal/errors"
	"github.com/systmms/eg2/pkg/secrets"
	"gopkg.in/yaml.v3"
)

const (
	// CacheDir holds per-project state written by "eg2 config".
	CacheDir = ".eg2"
	// DefaultsFile is the cached defaults artifact inside CacheDir.
	DefaultsFile = "defaults.yaml"
)

// DefaultsPath returns the location of the cached defaults for dir.
func DefaultsPath(dir string) string {
	return filepath.Join(dir, CacheDir, DefaultsFile)
}

// LoadDefaults reads the cached defaults of dir. Any failure, including a
// missing file or a document that does not match the schema, is returned as
// an error and callers treat it as "no cached value".
func LoadDefaults(dir string) (secrets.EnvironmentOptions, error) {
	path := DefaultsPath(dir)

	data, err := os.ReadFile(path)
	if err != nil {
		return secrets.EnvironmentOptions{}, err
	}

	var doc map[string]interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return secrets.EnvironmentOptions{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := validateWithSchema(doc, "defaults.schema.json"); err != nil {
		return secrets.EnvironmentOptions{}, fmt.Errorf("%s: %w", path, err)
	}

	var env secrets.EnvironmentOptions
	if err := yaml.Unmarshal(data, &env); err != nil {
		return secrets.EnvironmentOptions{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return env, nil
}

// SaveDefaults replaces the cached defaults of dir, creating the cache
// directory when needed.
func SaveDefaults(dir string, env secrets.EnvironmentOptions) error {
	if err := validateWithSchema(map[string]interface{}{
		"service": env.Service,
		"stage":   env.Stage,
	}, "defaults.schema.json"); err != nil {
		return dserrors.ConfigError{
			Field:      "defaults",
			Message:    err.Error(),
			Suggestion: "Service and stage must be non-empty and must not contain '/'",
		}
	}

	if err := os.MkdirAll(filepath.Join(dir, CacheDir), 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", CacheDir, err)
	}

	data, err := yaml.Marshal(env)
	if err != nil {
		return fmt.Errorf("failed to encode defaults: %w", err)
	}

	return os.WriteFile(DefaultsPath(dir), data, 0644)
}
