package secrets

import (
	"context"
	"strings"
	"sync"
)

// MemoryStore is a Store backed by an insertion-ordered map.
//
// Overwriting a key keeps its original position. Deleting and re-adding a key
// moves it to the end, matching a freshly created entry.
type MemoryStore struct {
	mu    sync.RWMutex
	keys  []string
	data  map[string]string
	tiers map[string]Tier
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data:  make(map[string]string),
		tiers: make(map[string]Tier),
	}
}

func (m *MemoryStore) Put(ctx context.Context, key, value string, tier Tier) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.data[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.data[key] = value
	m.tiers[key] = tier
	return nil
}

func (m *MemoryStore) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.data[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

func (m *MemoryStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.data[key]; !ok {
		return ErrNotFound
	}
	delete(m.data, key)
	delete(m.tiers, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
	return nil
}

// List returns the entries below path. Without recursive only direct
// children are returned, like GetParametersByPath.
func (m *MemoryStore) List(ctx context.Context, path string, recursive bool) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	prefix := strings.TrimSuffix(path, Separator) + Separator
	var out []Entry
	for _, key := range m.keys {
		rest, ok := strings.CutPrefix(key, prefix)
		if !ok || rest == "" {
			continue
		}
		if !recursive && strings.Contains(rest, Separator) {
			continue
		}
		out = append(out, Entry{Key: key, Value: m.data[key]})
	}
	return out, nil
}

// Tier returns the tier key was last written with.
func (m *MemoryStore) Tier(key string) (Tier, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.tiers[key]
	return t, ok
}

// Len returns the number of stored keys.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.keys)
}
