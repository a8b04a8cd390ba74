package secrets

import (
	"context"
	"errors"
)

// NewClient returns a Client bound to env that stores secrets in store.
func NewClient(store Store, env EnvironmentOptions) (Client, error) {
	if err := ValidateEnv(env); err != nil {
		return nil, err
	}
	return &namespaceClient{store: store, env: env}, nil
}

type namespaceClient struct {
	store Store
	env   EnvironmentOptions
}

func (c *namespaceClient) Env() EnvironmentOptions {
	return c.env
}

func (c *namespaceClient) Key(name string) string {
	return KeyPath(c.env, name)
}

func (c *namespaceClient) Set(ctx context.Context, name, value string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	return c.store.Put(ctx, c.Key(name), value, TierFor(value))
}

func (c *namespaceClient) Get(ctx context.Context, name string) (Secret, bool, error) {
	if err := ValidateName(name); err != nil {
		return Secret{}, false, err
	}
	value, err := c.store.Get(ctx, c.Key(name))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Secret{}, false, nil
		}
		return Secret{}, false, err
	}
	return Secret{Name: name, Value: value}, true, nil
}

func (c *namespaceClient) Remove(ctx context.Context, name string) (bool, error) {
	if err := ValidateName(name); err != nil {
		return false, err
	}
	if err := c.store.Delete(ctx, c.Key(name)); err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (c *namespaceClient) List(ctx context.Context) ([]Secret, error) {
	entries, err := c.store.List(ctx, NamespacePath(c.env), false)
	if err != nil {
		return nil, err
	}
	out := make([]Secret, 0, len(entries))
	for _, e := range entries {
		out = append(out, Secret{Name: NameFromPath(e.Key), Value: e.Value})
	}
	return out, nil
}

func (c *namespaceClient) Stages(ctx context.Context) ([]string, error) {
	return Stages(ctx, c.store, c.env.Service)
}

func (c *namespaceClient) Services(ctx context.Context) ([]string, error) {
	return Services(ctx, c.store)
}

// Stages returns the distinct stages holding secrets for service. It only
// needs the service, so it can run before a stage is known.
func Stages(ctx context.Context, store Store, service string) ([]string, error) {
	if err := validateSegment("service", service); err != nil {
		return nil, err
	}
	entries, err := store.List(ctx, ServicePath(service), true)
	if err != nil {
		return nil, err
	}
	return distinct(entries, func(env EnvironmentOptions) string { return env.Stage }), nil
}

// Services returns the distinct services holding secrets.
func Services(ctx context.Context, store Store) ([]string, error) {
	entries, err := store.List(ctx, RootPath(), true)
	if err != nil {
		return nil, err
	}
	return distinct(entries, func(env EnvironmentOptions) string { return env.Service }), nil
}

// distinct extracts one namespace segment from every well-formed key,
// keeping the first-seen order.
func distinct(entries []Entry, segment func(EnvironmentOptions) string) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, e := range entries {
		env, _, ok := ParseKey(e.Key)
		if !ok {
			continue
		}
		s := segment(env)
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
