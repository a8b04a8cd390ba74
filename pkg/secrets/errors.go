package secrets

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by stores when a key does not exist.
var ErrNotFound = errors.New("secret not found")

// ValidationError reports a name or namespace segment that cannot be encoded
// into a key path.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// Kind classifies hard store failures.
type Kind string

const (
	KindUnknown       Kind = "unknown"
	KindAuthorization Kind = "authorization"
	KindTransport     Kind = "transport"
	KindThrottled     Kind = "throttled"
	KindInvalid       Kind = "invalid"
)

// StoreError is a hard failure reported by a store. Err is the error returned
// by the underlying SDK and is reachable through errors.As.
type StoreError struct {
	Op   string
	Key  string
	Kind Kind
	Err  error
}

func (e *StoreError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of the first StoreError in err's chain.
func KindOf(err error) Kind {
	var se *StoreError
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindUnknown
}
