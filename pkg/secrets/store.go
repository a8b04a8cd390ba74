package secrets

import "context"

// Tier is a storage class hint passed to Store.Put.
type Tier string

const (
	TierStandard Tier = "Standard"
	TierAdvanced Tier = "Advanced"
)

// StandardTierLimit is the largest value, in bytes, stored in the standard tier.
const StandardTierLimit = 4096

// TierFor returns the tier a value should be written with.
func TierFor(value string) Tier {
	if len(value) > StandardTierLimit {
		return TierAdvanced
	}
	return TierStandard
}

// Entry is a key and its value as returned by Store.List.
type Entry struct {
	Key   string
	Value string
}

// Store is the set of primitives a backing key-value store provides.
//
// Implementations must return ErrNotFound (possibly wrapped) from Get and
// Delete when the key does not exist.
type Store interface {
	Put(ctx context.Context, key, value string, tier Tier) error
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
	List(ctx context.Context, path string, recursive bool) ([]Entry, error)
}
