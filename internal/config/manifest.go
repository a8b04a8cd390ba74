package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/systmms/eg2/pkg/secrets"
	"gopkg.in/yaml.v3"
)

const (
	// ManifestFile is the eg2 project manifest.
	ManifestFile = "eg2.yaml"
	// PackageJSONFile carries an "eg2" object in JavaScript projects.
	PackageJSONFile = "package.json"
	packageJSONKey  = "eg2"
)

// errNoManifest is returned when the project declares no eg2 settings.
var errNoManifest = errors.New("no project manifest")

// LoadManifest reads the project settings of dir. eg2.yaml wins over the
// "eg2" object of package.json; only the first file found is read.
func LoadManifest(dir string) (secrets.EnvironmentOptions, string, error) {
	path := filepath.Join(dir, ManifestFile)
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		var doc map[string]interface{}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return secrets.EnvironmentOptions{}, path, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		env, err := manifestOptions(doc)
		return env, path, err
	case !errors.Is(err, os.ErrNotExist):
		return secrets.EnvironmentOptions{}, path, err
	}

	path = filepath.Join(dir, PackageJSONFile)
	data, err = os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return secrets.EnvironmentOptions{}, "", errNoManifest
	}
	if err != nil {
		return secrets.EnvironmentOptions{}, path, err
	}

	var pkg map[string]json.RawMessage
	if err := json.Unmarshal(data, &pkg); err != nil {
		return secrets.EnvironmentOptions{}, path, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	raw, ok := pkg[packageJSONKey]
	if !ok {
		return secrets.EnvironmentOptions{}, path, errNoManifest
	}

	var doc map[string]interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return secrets.EnvironmentOptions{}, path, fmt.Errorf("%s: %q must be an object: %w", path, packageJSONKey, err)
	}
	env, err := manifestOptions(doc)
	return env, path, err
}

func manifestOptions(doc map[string]interface{}) (secrets.EnvironmentOptions, error) {
	if doc == nil {
		return secrets.EnvironmentOptions{}, errNoManifest
	}
	if err := validateWithSchema(doc, "manifest.schema.json"); err != nil {
		return secrets.EnvironmentOptions{}, err
	}

	service, _ := doc["service"].(string)
	stage, _ := doc["stage"].(string)
	return secrets.EnvironmentOptions{Service: service, Stage: stage}, nil
}
