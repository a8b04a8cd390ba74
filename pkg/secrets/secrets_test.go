package secrets_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/systmms/eg2/pkg/secrets"
)

func TestKeyPath(t *testing.T) {
	t.Parallel()

	env := secrets.EnvironmentOptions{Service: "billing", Stage: "prod"}
	assert.Equal(t, "/eg2", secrets.RootPath())
	assert.Equal(t, "/eg2/billing", secrets.ServicePath("billing"))
	assert.Equal(t, "/eg2/billing/prod", secrets.NamespacePath(env))
	assert.Equal(t, "/eg2/billing/prod/DB_URL", secrets.KeyPath(env, "DB_URL"))
}

func TestKeyPathIsReversible(t *testing.T) {
	t.Parallel()

	triples := []struct {
		service, stage, name string
	}{
		{"a", "b", "c"},
		{"a", "bc", "d"},
		{"ab", "c", "d"},
		{"a", "b", "cd"},
		{"eg2-app", "alice", "API_KEY"},
		{"svc", "dev", "with.dots-and_underscores"},
	}

	seen := make(map[string]bool)
	for _, tt := range triples {
		env := secrets.EnvironmentOptions{Service: tt.service, Stage: tt.stage}
		key := secrets.KeyPath(env, tt.name)

		assert.False(t, seen[key], "key %s produced twice", key)
		seen[key] = true

		assert.Equal(t, tt.name, secrets.NameFromPath(key))

		gotEnv, gotName, ok := secrets.ParseKey(key)
		require.True(t, ok, key)
		assert.Equal(t, env, gotEnv)
		assert.Equal(t, tt.name, gotName)
	}
}

func TestParseKeyRejectsMalformed(t *testing.T) {
	t.Parallel()

	for _, key := range []string{
		"",
		"/eg2",
		"/eg2/app/dev",
		"/other/app/dev/NAME",
		"eg2/app/dev/NAME",
		"/eg2/app/dev/nested/NAME",
		"/eg2//dev/NAME",
	} {
		_, _, ok := secrets.ParseKey(key)
		assert.False(t, ok, key)
	}
}

func TestNameFromPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "NAME", secrets.NameFromPath("/eg2/app/dev/NAME"))
	assert.Equal(t, "NAME", secrets.NameFromPath("NAME"))
}

func TestValidateName(t *testing.T) {
	t.Parallel()

	assert.NoError(t, secrets.ValidateName("DB_HOST"))

	var verr *secrets.ValidationError
	require.ErrorAs(t, secrets.ValidateName(""), &verr)
	assert.Equal(t, "name", verr.Field)

	require.ErrorAs(t, secrets.ValidateName("a/b"), &verr)
	assert.Contains(t, verr.Error(), `invalid name "a/b"`)
}

func TestValidateEnv(t *testing.T) {
	t.Parallel()

	assert.NoError(t, secrets.ValidateEnv(secrets.EnvironmentOptions{Service: "s", Stage: "d"}))

	var verr *secrets.ValidationError
	require.ErrorAs(t, secrets.ValidateEnv(secrets.EnvironmentOptions{Stage: "d"}), &verr)
	assert.Equal(t, "service", verr.Field)

	require.ErrorAs(t, secrets.ValidateEnv(secrets.EnvironmentOptions{Service: "s", Stage: "a/b"}), &verr)
	assert.Equal(t, "stage", verr.Field)
}

func TestTierFor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, secrets.TierStandard, secrets.TierFor(""))
	assert.Equal(t, secrets.TierStandard, secrets.TierFor(string(make([]byte, 4096))))
	assert.Equal(t, secrets.TierAdvanced, secrets.TierFor(string(make([]byte, 4097))))
}

func TestTierForCountsBytes(t *testing.T) {
	t.Parallel()

	// 2048 two-byte runes fill the standard tier exactly; one more crosses it.
	assert.Equal(t, secrets.TierStandard, secrets.TierFor(strings.Repeat("é", 2048)))
	assert.Equal(t, secrets.TierAdvanced, secrets.TierFor(strings.Repeat("é", 2049)))
}
