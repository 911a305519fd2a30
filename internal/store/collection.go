package store

import (
	"encoding/json"
	"log"
	"sync"
)

// Entity is anything a Collection can hold: it must expose a stable id.
type Entity interface {
	Key() string
}

// Collection is a typed repository over one named JSON array in the backend.
// Entities are indexed in memory by id; every mutation re-serializes the
// whole collection back to the backend (serialize-on-write), so the stored
// form stays a single flat JSON array per collection key.
type Collection[T Entity] struct {
	name    string
	backend Backend

	mu    sync.RWMutex
	items map[string]T
	order []string // ids in insertion order, preserved across reloads
}

// NewCollection loads the named collection from the backend. An absent or
// malformed payload yields an empty collection rather than an error; the
// malformed case is logged and then overwritten on the next write.
func NewCollection[T Entity](backend Backend, name string) *Collection[T] {
	c := &Collection[T]{
		name:    name,
		backend: backend,
		items:   make(map[string]T),
	}
	data, err := backend.Get(name)
	if err != nil {
		if err != ErrKeyNotFound {
			log.Printf("[store] failed to load collection %q: %v", name, err)
		}
		return c
	}
	var list []T
	if err := json.Unmarshal(data, &list); err != nil {
		log.Printf("[store] malformed collection %q, starting empty: %v", name, err)
		return c
	}
	for _, item := range list {
		c.items[item.Key()] = item
		c.order = append(c.order, item.Key())
	}
	return c
}

// Get returns the entity with the given id.
func (c *Collection[T]) Get(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	item, ok := c.items[id]
	return item, ok
}

// All returns every entity in insertion order.
func (c *Collection[T]) All() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.items[id])
	}
	return out
}

// Find returns the entities matching pred, in insertion order.
func (c *Collection[T]) Find(pred func(T) bool) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []T
	for _, id := range c.order {
		if item := c.items[id]; pred(item) {
			out = append(out, item)
		}
	}
	return out
}

// Len reports the number of stored entities.
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Upsert inserts or replaces the entity and writes the collection through to
// the backend.
func (c *Collection[T]) Upsert(item T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := item.Key()
	if _, exists := c.items[id]; !exists {
		c.order = append(c.order, id)
	}
	c.items[id] = item
	return c.flush()
}

// UpsertAll applies several upserts with a single write-through. Used by the
// read-receipt sweep so one conversation load is one backend write.
func (c *Collection[T]) UpsertAll(items []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, item := range items {
		id := item.Key()
		if _, exists := c.items[id]; !exists {
			c.order = append(c.order, id)
		}
		c.items[id] = item
	}
	return c.flush()
}

// flush serializes the full collection. Callers must hold the write lock.
func (c *Collection[T]) flush() error {
	list := make([]T, 0, len(c.order))
	for _, id := range c.order {
		list = append(list, c.items[id])
	}
	data, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return c.backend.Put(c.name, data)
}
