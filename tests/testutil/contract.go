// Package testutil provides testing utilities and helpers for eg2 tests.
//
// This file implements the store contract test framework that validates
// every secrets.Store implementation behaves the same way for the four
// primitives the secrets client is built on.
package testutil

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/systmms/eg2/pkg/secrets"
)

// StoreTestCase defines a store under test.
type StoreTestCase struct {
	// Name is a descriptive name for this test case (usually the store name)
	Name string

	// NewStore returns an empty store. It is called once per subtest.
	NewStore func(t *testing.T) secrets.Store
}

// RunStoreContractTests runs all contract tests for a store.
//
// Example usage:
//
//	testutil.RunStoreContractTests(t, testutil.StoreTestCase{
//	    Name:     "memory",
//	    NewStore: func(t *testing.T) secrets.Store { return secrets.NewMemoryStore() },
//	})
func RunStoreContractTests(t *testing.T, tc StoreTestCase) {
	t.Helper()

	t.Run(tc.Name+"/GetMissing", func(t *testing.T) {
		s := tc.NewStore(t)
		_, err := s.Get(context.Background(), "/eg2/app/dev/MISSING")
		require.Error(t, err)
		assert.ErrorIs(t, err, secrets.ErrNotFound)
	})

	t.Run(tc.Name+"/PutGet", func(t *testing.T) {
		s := tc.NewStore(t)
		ctx := context.Background()
		require.NoError(t, s.Put(ctx, "/eg2/app/dev/KEY", "v1", secrets.TierStandard))

		got, err := s.Get(ctx, "/eg2/app/dev/KEY")
		require.NoError(t, err)
		assert.Equal(t, "v1", got)
	})

	t.Run(tc.Name+"/PutOverwrites", func(t *testing.T) {
		s := tc.NewStore(t)
		ctx := context.Background()
		require.NoError(t, s.Put(ctx, "/eg2/app/dev/KEY", "v1", secrets.TierStandard))
		require.NoError(t, s.Put(ctx, "/eg2/app/dev/KEY", "v2", secrets.TierStandard))

		got, err := s.Get(ctx, "/eg2/app/dev/KEY")
		require.NoError(t, err)
		assert.Equal(t, "v2", got)
	})

	t.Run(tc.Name+"/AdvancedTier", func(t *testing.T) {
		s := tc.NewStore(t)
		ctx := context.Background()
		big := strings.Repeat("x", secrets.StandardTierLimit+1)
		require.NoError(t, s.Put(ctx, "/eg2/app/dev/BIG", big, secrets.TierAdvanced))

		got, err := s.Get(ctx, "/eg2/app/dev/BIG")
		require.NoError(t, err)
		assert.Len(t, got, secrets.StandardTierLimit+1)
	})

	t.Run(tc.Name+"/Delete", func(t *testing.T) {
		s := tc.NewStore(t)
		ctx := context.Background()
		assert.ErrorIs(t, s.Delete(ctx, "/eg2/app/dev/KEY"), secrets.ErrNotFound)

		require.NoError(t, s.Put(ctx, "/eg2/app/dev/KEY", "v", secrets.TierStandard))
		require.NoError(t, s.Delete(ctx, "/eg2/app/dev/KEY"))

		_, err := s.Get(ctx, "/eg2/app/dev/KEY")
		assert.ErrorIs(t, err, secrets.ErrNotFound)
	})

	t.Run(tc.Name+"/ListDirectChildren", func(t *testing.T) {
		s := tc.NewStore(t)
		ctx := context.Background()
		seed(t, s, map[string]string{
			"/eg2/app/dev/A":   "1",
			"/eg2/app/dev/B":   "2",
			"/eg2/app/prod/A":  "3",
			"/eg2/other/dev/C": "4",
		})

		entries, err := s.List(ctx, "/eg2/app/dev", false)
		require.NoError(t, err)
		assert.ElementsMatch(t, []secrets.Entry{
			{Key: "/eg2/app/dev/A", Value: "1"},
			{Key: "/eg2/app/dev/B", Value: "2"},
		}, entries)
	})

	t.Run(tc.Name+"/ListRecursive", func(t *testing.T) {
		s := tc.NewStore(t)
		ctx := context.Background()
		seed(t, s, map[string]string{
			"/eg2/app/dev/A":   "1",
			"/eg2/app/prod/A":  "3",
			"/eg2/other/dev/C": "4",
		})

		entries, err := s.List(ctx, "/eg2/app", true)
		require.NoError(t, err)
		keys := make([]string, 0, len(entries))
		for _, e := range entries {
			keys = append(keys, e.Key)
		}
		assert.ElementsMatch(t, []string{"/eg2/app/dev/A", "/eg2/app/prod/A"}, keys)
	})

	t.Run(tc.Name+"/ListEmpty", func(t *testing.T) {
		s := tc.NewStore(t)
		entries, err := s.List(context.Background(), "/eg2/nothing/here", false)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}

func seed(t *testing.T, s secrets.Store, values map[string]string) {
	t.Helper()
	for k, v := range values {
		require.NoError(t, s.Put(context.Background(), k, v, secrets.TierStandard))
	}
}
