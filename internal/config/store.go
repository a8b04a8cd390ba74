package config

import (
	"context"
	"strings"

	dserrors "github.com/systmms/eg2/internal/errors"
	"github.com/systmms/eg2/internal/providers"
	"github.com/systmms/eg2/pkg/secrets"
)

// DefaultStoreFactory builds the store named by cfg.StoreKind from the
// built-in store registry.
func DefaultStoreFactory(ctx context.Context, cfg *Config) (secrets.Store, error) {
	kind := cfg.StoreKind
	if kind == "" {
		kind = StoreSSM
	}

	registry := providers.NewRegistry()
	if !registry.IsSupported(kind) {
		return nil, dserrors.ConfigError{
			Field:      "store",
			Value:      kind,
			Message:    "unknown store",
			Suggestion: "Use one of: " + strings.Join(registry.GetSupportedTypes(), ", "),
		}
	}

	return registry.CreateStore(ctx, kind, providers.StoreOptions{
		AWS:      cfg.AWS,
		Logger:   cfg.Logger,
		KMSKeyID: cfg.KMSKeyID,
	})
}
