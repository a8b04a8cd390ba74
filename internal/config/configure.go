package config

import (
	"bufio"
	"fmt"
	"io"
	"os/user"
	"strings"

	"github.com/systmms/eg2/pkg/secrets"
)

// DefaultServicePlaceholder is proposed when no service name is given.
const DefaultServicePlaceholder = "eg2-app"

// Placeholders are the values proposed by the configuration prompts and
// used when an answer is left empty.
type Placeholders struct {
	Service string
	Stage   string
}

// DefaultPlaceholders returns the production placeholders: a fixed service
// name and the current OS user as stage.
func DefaultPlaceholders() Placeholders {
	p := Placeholders{Service: DefaultServicePlaceholder, Stage: "dev"}
	if u, err := user.Current(); err == nil && u.Username != "" {
		p.Stage = u.Username
	}
	return p
}

// Configure asks for the default stage and service and persists them as the
// cached defaults of the project. When interactive is false nothing is read
// and the placeholders are saved as they are.
func (r *Resolver) Configure(in io.Reader, out io.Writer, placeholders Placeholders, interactive bool) (secrets.EnvironmentOptions, error) {
	env := secrets.EnvironmentOptions{
		Service: placeholders.Service,
		Stage:   placeholders.Stage,
	}

	if interactive {
		reader := bufio.NewReader(in)

		stage, err := prompt(reader, out, fmt.Sprintf("Give a default stage for your variables (%s): ", placeholders.Stage))
		if err != nil {
			return env, err
		}
		service, err := prompt(reader, out, fmt.Sprintf("Give a name for your service (%s): ", placeholders.Service))
		if err != nil {
			return env, err
		}

		env.Stage = firstNonEmpty(stage, placeholders.Stage)
		env.Service = firstNonEmpty(service, placeholders.Service)
	}

	if err := SaveDefaults(r.dir(), env); err != nil {
		return env, err
	}

	r.debug("Saved defaults to %s", DefaultsPath(r.dir()))
	return env, nil
}

// prompt writes question and returns the trimmed answer. End of input is
// an empty answer.
func prompt(reader *bufio.Reader, out io.Writer, question string) (string, error) {
	if _, err := fmt.Fprint(out, question); err != nil {
		return "", err
	}

	line, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}
