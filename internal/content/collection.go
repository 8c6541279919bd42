// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"errors"
	"sync"
)

// ErrNotFound is returned when no entity has the requested ID.
var ErrNotFound = errors.New("content: not found")

// collection is an ordered, concurrency-safe list of entities keyed by ID.
type collection[T any] struct {
	mu    sync.RWMutex
	items []T
	id    func(T) string
}

func newCollection[T any](items []T, id func(T) string) *collection[T] {
	return &collection[T]{items: items, id: id}
}

// all returns a copy of every item in order.
func (c *collection[T]) all() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// filter returns the items matching keep, in order.
func (c *collection[T]) filter(keep func(T) bool) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []T
	for _, it := range c.items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

func (c *collection[T]) count(keep func(T) bool) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := 0
	for _, it := range c.items {
		if keep == nil || keep(it) {
			n++
		}
	}
	return n
}

func (c *collection[T]) get(id string) (T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, it := range c.items {
		if c.id(it) == id {
			return it, nil
		}
	}
	var zero T
	return zero, ErrNotFound
}

func (c *collection[T]) prepend(item T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append([]T{item}, c.items...)
}

func (c *collection[T]) append(item T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, item)
}

// update applies fn to the item with the given ID and returns the result.
func (c *collection[T]) update(id string, fn func(*T)) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.id(c.items[i]) == id {
			fn(&c.items[i])
			return c.items[i], nil
		}
	}
	var zero T
	return zero, ErrNotFound
}

func (c *collection[T]) remove(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.id(c.items[i]) == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
