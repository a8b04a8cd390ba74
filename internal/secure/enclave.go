package secure

import (
	"fmt"
	"sync"

	"github.com/awnumar/memguard"
	"github.com/systmms/eg2/pkg/secrets"
)

// Environment is an ordered set of named values, each sealed in its own
// memguard enclave.
type Environment struct {
	mu        sync.RWMutex
	names     []string
	enclaves  map[string]*memguard.Enclave
	destroyed bool
}

// NewEnvironment returns an empty Environment.
func NewEnvironment() *Environment {
	return &Environment{enclaves: make(map[string]*memguard.Enclave)}
}

// Seal stores value under name, replacing any previous value. The name
// keeps its first position.
func (e *Environment) Seal(name, value string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.destroyed {
		return
	}
	if _, ok := e.enclaves[name]; !ok {
		e.names = append(e.names, name)
	}

	// NewEnclave wipes its argument, so it gets a private copy.
	e.enclaves[name] = memguard.NewEnclave([]byte(value))
}

// SealAll seals every secret of list in order.
func (e *Environment) SealAll(list []secrets.Secret) {
	for _, s := range list {
		e.Seal(s.Name, s.Value)
	}
}

// Names returns the sealed names in insertion order.
func (e *Environment) Names() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]string, len(e.names))
	copy(out, e.names)
	return out
}

// Len returns the number of sealed values.
func (e *Environment) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.names)
}

// Open decrypts the value stored under name.
func (e *Environment) Open(name string) (string, bool, error) {
	e.mu.RLock()
	enclave, ok := e.enclaves[name]
	e.mu.RUnlock()

	if !ok {
		return "", false, nil
	}
	// An empty value has no enclave content to decrypt.
	if enclave == nil {
		return "", true, nil
	}

	locked, err := enclave.Open()
	if err != nil {
		return "", true, fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer locked.Destroy()

	return string(locked.Bytes()), true, nil
}

// Environ decrypts every value into NAME=value pairs, in insertion order.
func (e *Environment) Environ() ([]string, error) {
	names := e.Names()
	out := make([]string, 0, len(names))
	for _, name := range names {
		value, _, err := e.Open(name)
		if err != nil {
			return nil, err
		}
		out = append(out, name+"="+value)
	}
	return out, nil
}

// Destroy drops every enclave. Further Seal calls are ignored and the
// Environment reads as empty. It is safe to call more than once.
func (e *Environment) Destroy() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.names = nil
	e.enclaves = make(map[string]*memguard.Enclave)
	e.destroyed = true
}
