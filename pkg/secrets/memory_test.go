package secrets_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/systmms/eg2/pkg/secrets"
	"github.com/systmms/eg2/tests/testutil"
)

func TestMemoryStoreContract(t *testing.T) {
	testutil.RunStoreContractTests(t, testutil.StoreTestCase{
		Name:     "memory",
		NewStore: func(t *testing.T) secrets.Store { return secrets.NewMemoryStore() },
	})
}

func TestMemoryStoreKeepsInsertionOrder(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := secrets.NewMemoryStore()
	for _, k := range []string{"C", "A", "B"} {
		require.NoError(t, s.Put(ctx, "/eg2/app/dev/"+k, k, secrets.TierStandard))
	}
	// overwrite keeps position
	require.NoError(t, s.Put(ctx, "/eg2/app/dev/C", "c2", secrets.TierStandard))

	entries, err := s.List(ctx, "/eg2/app/dev", false)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "/eg2/app/dev/C", entries[0].Key)
	assert.Equal(t, "c2", entries[0].Value)
	assert.Equal(t, "/eg2/app/dev/A", entries[1].Key)
	assert.Equal(t, "/eg2/app/dev/B", entries[2].Key)
}

func TestMemoryStoreRecordsTier(t *testing.T) {
	t.Parallel()

	s := secrets.NewMemoryStore()
	require.NoError(t, s.Put(context.Background(), "/eg2/app/dev/K", "v", secrets.TierAdvanced))

	tier, ok := s.Tier("/eg2/app/dev/K")
	require.True(t, ok)
	assert.Equal(t, secrets.TierAdvanced, tier)
	assert.Equal(t, 1, s.Len())
}

func TestMemoryStoreHonorsCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := secrets.NewMemoryStore()
	assert.ErrorIs(t, s.Put(ctx, "/eg2/app/dev/K", "v", secrets.TierStandard), context.Canceled)
	_, err := s.List(ctx, "/eg2", true)
	assert.ErrorIs(t, err, context.Canceled)
}
