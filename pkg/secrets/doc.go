// Package secrets defines the namespace-scoped secrets contract used by eg2.
//
// Secrets live in a hierarchical key-value store under the path
//
//	/eg2/<service>/<stage>/<name>
//
// A Client is bound to one (service, stage) pair, the EnvironmentOptions, and
// exposes CRUD, listing and namespace discovery for that pair. Clients are built
// with NewClient on top of a Store, the four primitives every backing store has
// to provide:
//
//   - Put overwrites a value unconditionally, with a size tier hint
//   - Get returns a value or ErrNotFound
//   - Delete removes a value or returns ErrNotFound
//   - List returns the entries below a path, optionally recursively
//
// # Not Found Handling
//
// A missing secret is a normal outcome, not a failure. Client.Get reports it
// through its boolean result and Client.Remove returns false. Every other store
// error (authorization, transport, throttling) is returned unchanged so callers
// can inspect it with errors.As.
//
// # Stores
//
// The production store is the AWS SSM Parameter Store implementation in
// internal/providers. MemoryStore keeps entries in an insertion-ordered map and
// is used for tests and dry runs.
package secrets
