package secrets_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/systmms/eg2/pkg/secrets"
)

func names(list []secrets.Secret) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		out = append(out, s.Name)
	}
	return out
}

func TestFilter(t *testing.T) {
	t.Parallel()

	all := []secrets.Secret{
		{Name: "DB_HOST", Value: "h"},
		{Name: "DB_PORT", Value: "5432"},
		{Name: "API_KEY", Value: "k"},
	}

	tests := []struct {
		pattern string
		want    []string
	}{
		{"DB_*", []string{"DB_HOST", "DB_PORT"}},
		{"", []string{"DB_HOST", "DB_PORT", "API_KEY"}},
		{"*", []string{"DB_HOST", "DB_PORT", "API_KEY"}},
		{"*_KEY", []string{"API_KEY"}},
		{"DB_PO?T", []string{"DB_PORT"}},
		{"DB_{HOST,USER}", []string{"DB_HOST"}},
		{"NOPE*", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			got, err := secrets.Filter(all, tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(got))
		})
	}
}

func TestFilterInvalidPattern(t *testing.T) {
	t.Parallel()

	_, err := secrets.Filter(nil, "DB_[")
	var verr *secrets.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "pattern", verr.Field)
}

func TestSortByName(t *testing.T) {
	t.Parallel()

	list := []secrets.Secret{{Name: "b"}, {Name: "C"}, {Name: "a"}}
	secrets.SortByName(list)
	assert.Equal(t, []string{"C", "a", "b"}, names(list))
}
