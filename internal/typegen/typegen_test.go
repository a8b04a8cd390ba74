package typegen_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/systmms/eg2/internal/typegen"
	"github.com/systmms/eg2/pkg/secrets"
)

func TestPascalCase(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"hello world":      "HelloWorld",
		"snake_case":       "SnakeCase",
		"kebab-case":       "KebabCase",
		"camelCase":        "Camelcase",
		"eg2-app":          "Eg2App",
		"my--weird__name":  "MyWeirdName",
		"billing.api v2":   "BillingapiV2",
		"":                 "",
		"  padded  words ": "PaddedWords",
	}

	for in, want := range tests {
		assert.Equal(t, want, typegen.PascalCase(in), "PascalCase(%q)", in)
	}
}

func TestWrite(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	err := typegen.Write(&b, "web-api", []secrets.Secret{
		{Name: "API_KEY", Value: "x"},
		{Name: "DB_URL", Value: "y"},
	}, typegen.Options{})
	require.NoError(t, err)

	assert.Equal(t, "export type WebApiSecrets = {\n   API_KEY: string;\n   DB_URL: string;\n}\n", b.String())
}

func TestWriteGlobal(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	require.NoError(t, typegen.Write(&b, "api", nil, typegen.Options{Global: true}))

	assert.Contains(t, b.String(), "export type ApiSecrets = {\n}\n")
	assert.Contains(t, b.String(), "interface ProcessEnv extends ApiSecrets {}")
	assert.Contains(t, b.String(), "declare global {")
}

func TestWriteFileAppendsExtension(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path, err := typegen.WriteFile(filepath.Join(dir, "env"), "api", []secrets.Secret{{Name: "A"}}, typegen.Options{})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "env.ts"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "   A: string;")

	assert.Equal(t, "types.ts", typegen.Path("types.ts"))
}
