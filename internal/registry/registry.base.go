// Package registry provides a thread-safe generic name -> item registry.
// The Mongo store keeps one *mongo.Collection handle per collection type in it.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrEmptyName is returned when an item is registered without a name
var ErrEmptyName = errors.New("registry: name cannot be empty")

// Registry is a thread-safe generic registry.
//
// Example:
//
//	cols := NewRegistry[*mongo.Collection]()
//	cols.Register("products", db.Collection("products"))
//	if col, ok := cols.Get("products"); ok {
//	    ...
//	}
type Registry[T any] struct {
	items map[string]T
	mu    sync.RWMutex
}

// NewRegistry creates an empty registry
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{
		items: make(map[string]T),
	}
}

// ====================================
// REGISTRY METHODS
// ====================================

// Register stores item under name, replacing any previous item.
// isNew is false when an existing item was replaced.
func (r *Registry[T]) Register(name string, item T) (isNew bool, err error) {
	if name == "" {
		return false, ErrEmptyName
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	_, exists := r.items[name]
	r.items[name] = item
	return !exists, nil
}

// Get returns the item registered under name
func (r *Registry[T]) Get(name string) (item T, exists bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, exists = r.items[name]
	return item, exists
}

// GetOrCreate returns the item registered under name, creating it with creator when absent.
// creator runs under the registry lock.
func (r *Registry[T]) GetOrCreate(name string, creator func() (T, error)) (item T, err error) {
	if name == "" {
		return item, ErrEmptyName
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, exists := r.items[name]; exists {
		return existing, nil
	}

	created, err := creator()
	if err != nil {
		return item, fmt.Errorf("failed to create %s: %w", name, err)
	}
	r.items[name] = created
	return created, nil
}

// Names returns the registered names in sorted order
func (r *Registry[T]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.items))
	for name := range r.items {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ClearAll removes every item, calling cleanup on each one first when given.
// Items are removed even when cleanup fails; the cleanup errors are joined.
func (r *Registry[T]) ClearAll(cleanup func(T) error) (count int, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	count = len(r.items)
	var errs []error
	if cleanup != nil {
		for name, item := range r.items {
			if cerr := cleanup(item); cerr != nil {
				errs = append(errs, fmt.Errorf("failed to cleanup %s: %w", name, cerr))
			}
		}
	}
	r.items = make(map[string]T)
	return count, errors.Join(errs...)
}
