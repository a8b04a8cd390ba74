// Package typegen renders TypeScript declarations for the secrets of a stage.
package typegen

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/systmms/eg2/pkg/secrets"
)

var (
	wordSeparators = regexp.MustCompile(`[-_]+`)
	nonWord        = regexp.MustCompile(`[^\w\s]`)
	title          = cases.Title(language.Und)
)

// PascalCase lower-cases s, splits it on spaces, dashes and underscores,
// drops other punctuation and capitalizes each word:
// "hello world" and "hello_world" both become "HelloWorld", "camelCase"
// becomes "Camelcase".
func PascalCase(s string) string {
	s = strings.ToLower(s)
	s = wordSeparators.ReplaceAllString(s, " ")
	s = nonWord.ReplaceAllString(s, "")

	var b strings.Builder
	for _, word := range strings.Fields(s) {
		b.WriteString(title.String(word))
	}
	return b.String()
}

// TypeName returns the name of the secrets type generated for service.
func TypeName(service string) string {
	return PascalCase(service) + "Secrets"
}

// Options controls the generated declarations.
type Options struct {
	// Global also augments NodeJS.ProcessEnv with the secrets type.
	Global bool
}

// Write renders the declarations for list to w. Properties keep the order of
// list.
func Write(w io.Writer, service string, list []secrets.Secret, opts Options) error {
	name := TypeName(service)

	var b strings.Builder
	fmt.Fprintf(&b, "export type %s = {\n", name)
	for _, s := range list {
		fmt.Fprintf(&b, "   %s: string;\n", s.Name)
	}
	b.WriteString("}\n")

	if opts.Global {
		fmt.Fprintf(&b, `
declare global {
    namespace NodeJS {
        interface ProcessEnv extends %s {}
    }
}
`, name)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// Path appends the ".ts" extension when path lacks it.
func Path(path string) string {
	if strings.HasSuffix(path, ".ts") {
		return path
	}
	return path + ".ts"
}

// WriteFile writes the declarations to Path(path) and returns the path used.
func WriteFile(path, service string, list []secrets.Secret, opts Options) (string, error) {
	path = Path(path)

	f, err := os.Create(path)
	if err != nil {
		return path, err
	}
	if err := Write(f, service, list, opts); err != nil {
		f.Close()
		return path, err
	}
	return path, f.Close()
}
