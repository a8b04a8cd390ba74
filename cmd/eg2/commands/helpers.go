package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/systmms/eg2/internal/config"
	dserrors "github.com/systmms/eg2/internal/errors"
	"github.com/systmms/eg2/pkg/secrets"
)

// openClient resolves the namespace and returns a client bound to it.
func openClient(ctx context.Context, cfg *config.Config) (secrets.Client, error) {
	env, err := cfg.Resolve()
	if err != nil {
		return nil, err
	}

	client, err := cfg.Client(ctx, env)
	if err != nil {
		// Store open failures are already user facing.
		var verr *secrets.ValidationError
		if errors.As(err, &verr) {
			return nil, dserrors.StoreError("connect", err)
		}
		return nil, err
	}
	return client, nil
}

// filteredSecrets lists the namespace and keeps the names matching pattern,
// sorted by name.
func filteredSecrets(ctx context.Context, client secrets.Client, pattern string) ([]secrets.Secret, error) {
	all, err := client.List(ctx)
	if err != nil {
		return nil, dserrors.StoreError("list", err)
	}

	out, err := secrets.Filter(all, pattern)
	if err != nil {
		return nil, dserrors.UserError{
			Message:    err.Error(),
			Suggestion: "Use a glob pattern such as 'DB_*' or 'API_{KEY,SECRET}'",
			Err:        err,
		}
	}
	secrets.SortByName(out)
	return out, nil
}

// printSecrets prints a two column table of names and values.
func printSecrets(w io.Writer, list []secrets.Secret) {
	keyLen, valueLen := width("Secrets"), width("Values")
	for _, s := range list {
		keyLen = max(keyLen, width(s.Name))
		valueLen = max(valueLen, width(s.Value))
	}

	fmt.Fprintln(w, rule("┌", "┬", "┐", keyLen, valueLen))
	fmt.Fprintln(w, row("Secrets", keyLen, "Values", valueLen))
	fmt.Fprintln(w, rule("├", "┼", "┤", keyLen, valueLen))
	for _, s := range list {
		fmt.Fprintln(w, row(s.Name, keyLen, s.Value, valueLen))
	}
	fmt.Fprintln(w, rule("└", "┴", "┘", keyLen, valueLen))
}

// printStrings prints a one column table headed by label, sorted.
func printStrings(w io.Writer, label string, values []string) {
	sorted := append([]string(nil), values...)
	sort.Strings(sorted)

	n := width(label)
	for _, v := range sorted {
		n = max(n, width(v))
	}

	fmt.Fprintln(w, "┌"+strings.Repeat("─", n+2)+"┐")
	fmt.Fprintln(w, "│ "+pad(label, n)+" │")
	fmt.Fprintln(w, "├"+strings.Repeat("─", n+2)+"┤")
	for _, v := range sorted {
		fmt.Fprintln(w, "│ "+pad(v, n)+" │")
	}
	fmt.Fprintln(w, "└"+strings.Repeat("─", n+2)+"┘")
}

func rule(left, mid, right string, a, b int) string {
	return left + strings.Repeat("─", a+2) + mid + strings.Repeat("─", b+2) + right
}

func row(a string, aw int, b string, bw int) string {
	return "│ " + pad(a, aw) + " │ " + pad(b, bw) + " │"
}

func width(s string) int {
	return utf8.RuneCountInString(s)
}

func pad(s string, n int) string {
	return s + strings.Repeat(" ", n-width(s))
}
