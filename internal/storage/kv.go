package storage

import (
	"context"
	"log/slog"
	"sort"
	"sync"
)

// KeyValueStore is a string-keyed store of text records.
// Each Set replaces the whole value under its key.
type KeyValueStore interface {
	// Get returns the value stored under key and whether it exists.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
	Close() error
}

// MemoryKV is a process-local KeyValueStore.
type MemoryKV struct {
	values map[string]string
	mu     sync.RWMutex
	closed bool
}

// NewMemoryKV creates an empty in-memory store.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: make(map[string]string)}
}

// Get implements KeyValueStore.
func (m *MemoryKV) Get(ctx context.Context, key string) (string, bool, error) {
	if err := validateKeyOp(ctx, key); err != nil {
		return "", false, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return "", false, ErrStoreClosed
	}
	v, ok := m.values[key]
	return v, ok, nil
}

// Set implements KeyValueStore.
func (m *MemoryKV) Set(ctx context.Context, key, value string) error {
	if err := validateKeyOp(ctx, key); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}
	m.values[key] = value
	slog.Debug("stored record", "key", key, "bytes", len(value))
	return nil
}

// Remove implements KeyValueStore.
func (m *MemoryKV) Remove(ctx context.Context, key string) error {
	if err := validateKeyOp(ctx, key); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}
	delete(m.values, key)
	return nil
}

// Keys returns the stored keys in sorted order.
func (m *MemoryKV) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.values))
	for k := range m.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Close implements KeyValueStore. Later operations fail with ErrStoreClosed.
func (m *MemoryKV) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
