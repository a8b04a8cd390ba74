package secrets

import (
	"fmt"
	"sort"

	"github.com/gobwas/glob"
)

// MatchAll is the pattern used when no filter is given.
const MatchAll = "*"

// Matcher reports whether a secret name matches a glob pattern.
type Matcher struct {
	g glob.Glob
}

// CompilePattern compiles a shell-style glob. An empty pattern matches
// every name.
func CompilePattern(pattern string) (*Matcher, error) {
	if pattern == "" {
		pattern = MatchAll
	}
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, &ValidationError{Field: "pattern", Value: pattern, Reason: fmt.Sprintf("invalid glob: %v", err)}
	}
	return &Matcher{g: g}, nil
}

// Match reports whether name matches.
func (m *Matcher) Match(name string) bool {
	return m.g.Match(name)
}

// Filter returns the secrets whose names match pattern, preserving order.
func Filter(list []Secret, pattern string) ([]Secret, error) {
	m, err := CompilePattern(pattern)
	if err != nil {
		return nil, err
	}
	out := make([]Secret, 0, len(list))
	for _, s := range list {
		if m.Match(s.Name) {
			out = append(out, s)
		}
	}
	return out, nil
}

// SortByName sorts secrets by name for display.
func SortByName(list []Secret) {
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
}
