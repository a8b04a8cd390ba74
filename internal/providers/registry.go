package providers

import (
	"context"
	"fmt"
	"sort"

	"github.com/systmms/eg2/internal/logging"
	"github.com/systmms/eg2/pkg/secrets"
)

// Built-in store types.
const (
	TypeSSM    = "ssm"
	TypeMemory = "memory"
)

// StoreOptions carries the settings every store factory may read.
type StoreOptions struct {
	AWS    AWSOptions
	Logger *logging.Logger

	// KMSKeyID is the key SecureString values are encrypted with.
	KMSKeyID string
}

// StoreFactory creates a store instance from options
type StoreFactory func(ctx context.Context, opts StoreOptions) (secrets.Store, error)

// Registry manages store creation and registration
type Registry struct {
	factories map[string]StoreFactory
}

// NewRegistry creates a new store registry with the built-in stores
func NewRegistry() *Registry {
	registry := &Registry{
		factories: make(map[string]StoreFactory),
	}

	registry.RegisterFactory(TypeSSM, NewSSMStoreFactory)
	registry.RegisterFactory(TypeMemory, NewMemoryStoreFactory)

	return registry
}

// RegisterFactory registers a store factory for a given type
func (r *Registry) RegisterFactory(storeType string, factory StoreFactory) {
	r.factories[storeType] = factory
}

// CreateStore creates a store of the given type
func (r *Registry) CreateStore(ctx context.Context, storeType string, opts StoreOptions) (secrets.Store, error) {
	factory, exists := r.factories[storeType]
	if !exists {
		return nil, fmt.Errorf("unknown store type: %s", storeType)
	}

	return factory(ctx, opts)
}

// GetSupportedTypes returns the registered store types, sorted
func (r *Registry) GetSupportedTypes() []string {
	types := make([]string, 0, len(r.factories))
	for storeType := range r.factories {
		types = append(types, storeType)
	}
	sort.Strings(types)
	return types
}

// IsSupported checks if a store type is supported
func (r *Registry) IsSupported(storeType string) bool {
	_, exists := r.factories[storeType]
	return exists
}

// NewSSMStoreFactory creates an SSM Parameter Store backed store
func NewSSMStoreFactory(ctx context.Context, opts StoreOptions) (secrets.Store, error) {
	var storeOpts []SSMStoreOption
	if opts.Logger != nil {
		storeOpts = append(storeOpts, WithLogger(opts.Logger))
	}

	store, err := NewSSMStore(ctx, SSMConfig{AWS: opts.AWS, KMSKeyID: opts.KMSKeyID}, storeOpts...)
	if err != nil {
		return nil, err
	}
	return store, nil
}

// NewMemoryStoreFactory creates an empty in-memory store. Nothing written to
// it outlives the process.
func NewMemoryStoreFactory(ctx context.Context, opts StoreOptions) (secrets.Store, error) {
	if opts.Logger != nil {
		opts.Logger.Warn("Using the in-memory store, nothing will be persisted")
	}
	return secrets.NewMemoryStore(), nil
}
