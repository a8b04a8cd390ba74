package testutil

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/systmms/eg2/internal/config"
	"github.com/systmms/eg2/pkg/secrets"
)

// TestConfigBuilder builds a config.Config for command tests. Every config
// it builds shares one in-memory store and one project directory.
//
//	b := NewTestConfig(t).
//	    WithOverrides("api", "dev").
//	    WithSecrets("api", "dev", map[string]string{"TOKEN": "abc"})
//	cfg := b.Build()
type TestConfigBuilder struct {
	t      *testing.T
	dir    string
	store  *secrets.MemoryStore
	logger *TestLogger

	overrides   secrets.EnvironmentOptions
	stdin       string
	interactive bool
}

// NewTestConfig creates a builder with an empty store and a fresh project
// directory.
func NewTestConfig(t *testing.T) *TestConfigBuilder {
	t.Helper()

	return &TestConfigBuilder{
		t:      t,
		dir:    t.TempDir(),
		store:  secrets.NewMemoryStore(),
		logger: NewTestLogger(t),
	}
}

// WithOverrides sets the --service and --stage values.
func (b *TestConfigBuilder) WithOverrides(service, stage string) *TestConfigBuilder {
	b.overrides = secrets.EnvironmentOptions{Service: service, Stage: stage}
	return b
}

// WithStdin makes prompts read input and marks the session interactive.
func (b *TestConfigBuilder) WithStdin(input string) *TestConfigBuilder {
	b.stdin = input
	b.interactive = true
	return b
}

// WithManifest writes eg2.yaml into the project directory.
func (b *TestConfigBuilder) WithManifest(content string) *TestConfigBuilder {
	b.WriteFile(config.ManifestFile, content)
	return b
}

// WithDefaults writes the cached defaults of the project.
func (b *TestConfigBuilder) WithDefaults(service, stage string) *TestConfigBuilder {
	b.t.Helper()
	require.NoError(b.t, config.SaveDefaults(b.dir, secrets.EnvironmentOptions{Service: service, Stage: stage}))
	return b
}

// WithSecrets stores values in the namespace of service and stage.
func (b *TestConfigBuilder) WithSecrets(service, stage string, values map[string]string) *TestConfigBuilder {
	b.t.Helper()

	client, err := secrets.NewClient(b.store, secrets.EnvironmentOptions{Service: service, Stage: stage})
	require.NoError(b.t, err)
	for name, value := range values {
		require.NoError(b.t, client.Set(context.Background(), name, value))
	}
	return b
}

// WriteFile writes content to name inside the project directory and
// returns the full path.
func (b *TestConfigBuilder) WriteFile(name, content string) string {
	b.t.Helper()

	path := filepath.Join(b.dir, name)
	require.NoError(b.t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(b.t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// Build returns a new config bound to the shared store.
func (b *TestConfigBuilder) Build() *config.Config {
	return &config.Config{
		Logger:      b.logger.Logger,
		Dir:         b.dir,
		Overrides:   b.overrides,
		StoreKind:   config.StoreMemory,
		Interactive: b.interactive,
		Stdin:       strings.NewReader(b.stdin),
		StoreFactory: func(context.Context, *config.Config) (secrets.Store, error) {
			return b.store, nil
		},
	}
}

// Dir returns the project directory.
func (b *TestConfigBuilder) Dir() string { return b.dir }

// Store returns the shared store.
func (b *TestConfigBuilder) Store() *secrets.MemoryStore { return b.store }

// Logger returns the captured logger.
func (b *TestConfigBuilder) Logger() *TestLogger { return b.logger }
