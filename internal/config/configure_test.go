package config_test

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/systmms/eg2/internal/config"
	"github.com/systmms/eg2/pkg/secrets"
)

var testPlaceholders = config.Placeholders{Service: "eg2-app", Stage: "alice"}

func TestConfigureAnswers(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	r := &config.Resolver{Dir: dir}

	var out bytes.Buffer
	env, err := r.Configure(strings.NewReader("prod\nbilling\n"), &out, testPlaceholders, true)
	require.NoError(t, err)
	assert.Equal(t, secrets.EnvironmentOptions{Service: "billing", Stage: "prod"}, env)

	assert.Equal(t,
		"Give a default stage for your variables (alice): Give a name for your service (eg2-app): ",
		out.String())

	saved, err := config.LoadDefaults(dir)
	require.NoError(t, err)
	assert.Equal(t, env, saved)
}

func TestConfigureEmptyAnswersTakePlaceholders(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	r := &config.Resolver{Dir: dir}

	env, err := r.Configure(strings.NewReader("\n"), &bytes.Buffer{}, testPlaceholders, true)
	require.NoError(t, err)
	assert.Equal(t, secrets.EnvironmentOptions{Service: "eg2-app", Stage: "alice"}, env)

	info, err := os.Stat(config.DefaultsPath(dir))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())
}

func TestConfigureNonInteractive(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	r := &config.Resolver{Dir: dir}

	var out bytes.Buffer
	env, err := r.Configure(strings.NewReader("ignored\n"), &out, config.Placeholders{Service: "api", Stage: "ci"}, false)
	require.NoError(t, err)
	assert.Equal(t, secrets.EnvironmentOptions{Service: "api", Stage: "ci"}, env)
	assert.Empty(t, out.String())
}

func TestConfigureReplacesCache(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, config.DefaultsPath(dir), "service: old\nstage: old\n")

	r := &config.Resolver{Dir: dir}
	_, err := r.Configure(strings.NewReader("new-stage\nnew-service\n"), &bytes.Buffer{}, testPlaceholders, true)
	require.NoError(t, err)

	env, err := r.Resolve(secrets.EnvironmentOptions{})
	require.NoError(t, err)
	assert.Equal(t, secrets.EnvironmentOptions{Service: "new-service", Stage: "new-stage"}, env)
}

func TestConfigureRejectsSeparator(t *testing.T) {
	t.Parallel()

	r := &config.Resolver{Dir: t.TempDir()}
	_, err := r.Configure(strings.NewReader("a/b\n\n"), &bytes.Buffer{}, testPlaceholders, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must not contain '/'")
}

func TestDefaultPlaceholders(t *testing.T) {
	t.Parallel()

	p := config.DefaultPlaceholders()
	assert.Equal(t, "eg2-app", p.Service)
	assert.NotEmpty(t, p.Stage)
}
