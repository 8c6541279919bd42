// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package storage is the persisted key-value store each client keeps its
// session, cart and theme in. Values are opaque strings; every client gets
// its own namespace inside a shared Backend.
package storage

import "context"

// Keys owned by the client stores. Each key is written by exactly one store.
const (
	KeyAuthToken = "cdg_lobos_token"
	KeyUserData  = "cdg_lobos_user"
	KeyCart      = "cdg_lobos_cart"
	KeyTheme     = "cdg_lobos_theme"
)

// Storage is a single client's view of the key-value store.
type Storage interface {
	// GetItem returns the value stored under key, or ErrNotFound.
	GetItem(ctx context.Context, key string) (string, error)

	// SetItem stores value under key, replacing any previous value.
	SetItem(ctx context.Context, key, value string) error

	// RemoveItem deletes key. Removing a missing key is not an error.
	RemoveItem(ctx context.Context, key string) error
}

// Backend holds the values of every client, partitioned by namespace.
// All implementations must be safe for concurrent use.
type Backend interface {
	Get(ctx context.Context, namespace, key string) (string, error)
	Set(ctx context.Context, namespace, key, value string) error
	Delete(ctx context.Context, namespace, key string) error
	Close() error
}

// Error represents an error type for storage operations.
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	// ErrNotFound indicates the key has no stored value.
	ErrNotFound Error = "storage: item not found"

	// ErrClosed indicates the backend has been closed.
	ErrClosed Error = "storage: backend closed"
)

// Local binds a Backend to one namespace.
type Local struct {
	backend   Backend
	namespace string
}

// Bind returns the Storage of namespace inside backend.
func Bind(backend Backend, namespace string) *Local {
	return &Local{backend: backend, namespace: namespace}
}

// Namespace returns the namespace this view is bound to.
func (l *Local) Namespace() string {
	return l.namespace
}

// GetItem implements Storage.
func (l *Local) GetItem(ctx context.Context, key string) (string, error) {
	return l.backend.Get(ctx, l.namespace, key)
}

// SetItem implements Storage.
func (l *Local) SetItem(ctx context.Context, key, value string) error {
	return l.backend.Set(ctx, l.namespace, key, value)
}

// RemoveItem implements Storage.
func (l *Local) RemoveItem(ctx context.Context, key string) error {
	return l.backend.Delete(ctx, l.namespace, key)
}
