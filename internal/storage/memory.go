// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package storage

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"
)

// MemoryBackend keeps values in process memory. Values are lost on restart,
// which makes it suitable for development and tests.
type MemoryBackend struct {
	data   sync.Map // namespacedKey -> string
	closed atomic.Bool

	sets    atomic.Int64
	deletes atomic.Int64
}

type namespacedKey struct {
	namespace string
	key       string
}

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

// Get implements Backend.
func (m *MemoryBackend) Get(_ context.Context, namespace, key string) (string, error) {
	if m.closed.Load() {
		return "", ErrClosed
	}
	val, ok := m.data.Load(namespacedKey{namespace, key})
	if !ok {
		return "", ErrNotFound
	}
	return val.(string), nil
}

// Set implements Backend.
func (m *MemoryBackend) Set(_ context.Context, namespace, key, value string) error {
	if m.closed.Load() {
		return ErrClosed
	}
	m.data.Store(namespacedKey{namespace, key}, value)
	m.sets.Add(1)
	return nil
}

// Delete implements Backend.
func (m *MemoryBackend) Delete(_ context.Context, namespace, key string) error {
	if m.closed.Load() {
		return ErrClosed
	}
	if _, loaded := m.data.LoadAndDelete(namespacedKey{namespace, key}); loaded {
		m.deletes.Add(1)
	}
	return nil
}

// Close marks the backend closed. Further calls return ErrClosed.
func (m *MemoryBackend) Close() error {
	m.closed.Store(true)
	return nil
}

// Len returns the number of stored values across all namespaces.
func (m *MemoryBackend) Len() int {
	n := 0
	m.data.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// Writes returns how many Set calls have succeeded.
func (m *MemoryBackend) Writes() int64 {
	return m.sets.Load()
}

// Namespaces returns the distinct namespaces holding at least one value.
func (m *MemoryBackend) Namespaces() []string {
	seen := make(map[string]struct{})
	m.data.Range(func(k, _ any) bool {
		seen[k.(namespacedKey).namespace] = struct{}{}
		return true
	})
	out := make([]string, 0, len(seen))
	for ns := range seen {
		out = append(out, ns)
	}
	slices.Sort(out)
	return out
}
