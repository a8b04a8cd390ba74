package config

import (
	"context"
	"io"
	"os"

	"github.com/systmms/eg2/internal/logging"
	"github.com/systmms/eg2/internal/metrics"
	"github.com/systmms/eg2/internal/providers"
	"github.com/systmms/eg2/pkg/secrets"
)

// Store kinds accepted by --store.
const (
	StoreSSM    = providers.TypeSSM
	StoreMemory = providers.TypeMemory
)

// StoreFactory opens the store backing every command of one invocation.
type StoreFactory func(ctx context.Context, cfg *Config) (secrets.Store, error)

// Config holds the runtime configuration
type Config struct {
	Logger *logging.Logger

	// Dir is the project directory holding eg2.yaml and .eg2/.
	Dir string

	// Overrides come from --service and --stage.
	Overrides secrets.EnvironmentOptions

	AWS       providers.AWSOptions
	StoreKind string

	// KMSKeyID is passed to the SSM store for new SecureString values.
	KMSKeyID string

	// MetricsFile, when set, receives the store metrics after the command.
	MetricsFile string
	Metrics     *metrics.Recorder

	// Interactive is set when stdin is a terminal and --non-interactive
	// was not given.
	Interactive    bool
	NonInteractive bool
	Stdin          io.Reader

	// StoreFactory replaces the store selected by StoreKind. Tests use it to
	// share one MemoryStore between commands.
	StoreFactory StoreFactory

	store secrets.Store
}

// Resolver returns a resolver bound to the project directory.
func (c *Config) Resolver() *Resolver {
	return &Resolver{Dir: c.Dir, Logger: c.Logger}
}

// Resolve resolves the namespace identity using the command line overrides.
func (c *Config) Resolve(require ...Field) (secrets.EnvironmentOptions, error) {
	return c.Resolver().Resolve(c.Overrides, require...)
}

// Input returns the reader prompts are read from.
func (c *Config) Input() io.Reader {
	if c.Stdin != nil {
		return c.Stdin
	}
	return os.Stdin
}

// Store opens the configured store once and caches it for the invocation.
func (c *Config) Store(ctx context.Context) (secrets.Store, error) {
	if c.store != nil {
		return c.store, nil
	}

	factory := c.StoreFactory
	if factory == nil {
		factory = DefaultStoreFactory
	}

	store, err := factory(ctx, c)
	if err != nil {
		return nil, err
	}
	if c.Metrics != nil {
		store = metrics.InstrumentStore(store, c.Metrics)
	}

	c.store = store
	return store, nil
}

// Client returns a secrets client bound to env.
func (c *Config) Client(ctx context.Context, env secrets.EnvironmentOptions) (secrets.Client, error) {
	store, err := c.Store(ctx)
	if err != nil {
		return nil, err
	}
	return secrets.NewClient(store, env)
}
