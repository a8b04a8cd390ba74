// Package dotenv reads and writes .env files as ordered secret lists.
package dotenv

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"github.com/systmms/eg2/pkg/secrets"
)

// declaration matches the key of a NAME=value or NAME: value line.
var declaration = regexp.MustCompile(`(?m)^\s*(?:export\s+)?([A-Za-z0-9_.\-]+)\s*[=:]`)

// Parse reads a .env document. Variables are returned in the order they are
// first declared in the document; the value is the one godotenv resolves.
func Parse(r io.Reader) ([]secrets.Secret, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	values, err := godotenv.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	result := make([]secrets.Secret, 0, len(values))
	seen := make(map[string]bool, len(values))
	for _, m := range declaration.FindAllSubmatch(data, -1) {
		name := string(m[1])
		value, ok := values[name]
		if !ok || seen[name] {
			continue
		}
		seen[name] = true
		result = append(result, secrets.Secret{Name: name, Value: value})
	}

	// Anything the scan could not place keeps a stable position at the end.
	if len(result) < len(values) {
		rest := make([]secrets.Secret, 0, len(values)-len(result))
		for name, value := range values {
			if !seen[name] {
				rest = append(rest, secrets.Secret{Name: name, Value: value})
			}
		}
		secrets.SortByName(rest)
		result = append(result, rest...)
	}

	return result, nil
}

// ReadFile parses the .env file at path.
func ReadFile(path string) ([]secrets.Secret, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	list, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return list, nil
}

// Render encodes list as a .env document, one NAME="value" line per secret
// sorted by name. Every value is double quoted, so numeric looking values
// keep leading zeros and signs.
func Render(list []secrets.Secret) string {
	values := make(map[string]string, len(list))
	for _, s := range list {
		values[s.Name] = s.Value
	}

	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		fmt.Fprintf(&b, "%s=\"%s\"\n", name, quoteEscaper.Replace(values[name]))
	}
	return b.String()
}

// quoteEscaper escapes what godotenv unescapes inside double quotes.
var quoteEscaper = strings.NewReplacer(
	`\`, `\\`,
	"\n", `\n`,
	"\r", `\r`,
	`"`, `\"`,
	`!`, `\!`,
	`$`, `\$`,
	"`", "\\`",
)

// WriteFile writes list to path. The file is only readable by its owner.
func WriteFile(path string, list []secrets.Secret) error {
	if err := os.WriteFile(path, []byte(Render(list)), 0600); err != nil {
		return err
	}
	// WriteFile keeps the mode of an existing file.
	return os.Chmod(path, 0600)
}
