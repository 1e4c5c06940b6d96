// Package memory implements the store interfaces over a narrow key-value
// store: each entity collection is one JSON-encoded value under a fixed key.
// This is the local backend; it is also what the service tests run against.
package memory

import (
	"encoding/json"
	"sync"
)

// KV is the injected storage mechanism. The adapters depend only on this
// surface, so any get/set string store can back them.
type KV interface {
	Get(key string) (string, bool)
	Set(key string, value string)
}

// MapKV is the in-process KV implementation.
type MapKV struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMapKV() *MapKV {
	return &MapKV{data: make(map[string]string)}
}

func (m *MapKV) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok
}

func (m *MapKV) Set(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
}

// readAll decodes the collection under key. A missing or corrupt value
// degrades to an empty collection rather than surfacing an error.
func readAll[T any](kv KV, key string) []T {
	raw, ok := kv.Get(key)
	if !ok || raw == "" {
		return nil
	}
	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil
	}
	return items
}

func writeAll[T any](kv KV, key string, items []T) {
	raw, err := json.Marshal(items)
	if err != nil {
		return
	}
	kv.Set(key, string(raw))
}
