package memory

import (
	"sync"

	"github.com/google/uuid"

	"github.com/shieldline/warranty-service/internal/store"
)

// collection serializes read-modify-write cycles over one KV key. The lock
// only covers this process; concurrent writers through another client remain
// an accepted limitation.
type collection[T any] struct {
	kv  KV
	key string
	mu  sync.Mutex
	id  func(T) uuid.UUID
}

func newCollection[T any](kv KV, key string, id func(T) uuid.UUID) *collection[T] {
	return &collection[T]{kv: kv, key: key, id: id}
}

func (c *collection[T]) list() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return readAll[T](c.kv, c.key)
}

func (c *collection[T]) get(id uuid.UUID) (*T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, item := range readAll[T](c.kv, c.key) {
		if c.id(item) == id {
			found := item
			return &found, nil
		}
	}
	return nil, store.ErrNotFound
}

func (c *collection[T]) create(item T) (*T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := readAll[T](c.kv, c.key)
	items = append(items, item)
	writeAll(c.kv, c.key, items)
	return &item, nil
}

func (c *collection[T]) update(item T) (*T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := readAll[T](c.kv, c.key)
	for i := range items {
		if c.id(items[i]) == c.id(item) {
			items[i] = item
			writeAll(c.kv, c.key, items)
			return &item, nil
		}
	}
	return nil, store.ErrNotFound
}

func (c *collection[T]) remove(id uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := readAll[T](c.kv, c.key)
	for i := range items {
		if c.id(items[i]) == id {
			items = append(items[:i], items[i+1:]...)
			writeAll(c.kv, c.key, items)
			return nil
		}
	}
	return store.ErrNotFound
}
