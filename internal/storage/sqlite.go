// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/olegiv/lobos/internal/store"
)

// SQLiteBackend stores values in the local_storage table.
type SQLiteBackend struct {
	queries *store.Queries
	closed  atomic.Bool
}

// NewSQLiteBackend creates a backend on a migrated database.
func NewSQLiteBackend(db *sql.DB) *SQLiteBackend {
	return &SQLiteBackend{queries: store.New(db)}
}

// Get implements Backend.
func (s *SQLiteBackend) Get(ctx context.Context, namespace, key string) (string, error) {
	if s.closed.Load() {
		return "", ErrClosed
	}
	value, err := s.queries.GetStorageItem(ctx, namespace, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("reading %s: %w", key, err)
	}
	return value, nil
}

// Set implements Backend.
func (s *SQLiteBackend) Set(ctx context.Context, namespace, key, value string) error {
	if s.closed.Load() {
		return ErrClosed
	}
	if err := s.queries.SetStorageItem(ctx, namespace, key, value); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

// Delete implements Backend.
func (s *SQLiteBackend) Delete(ctx context.Context, namespace, key string) error {
	if s.closed.Load() {
		return ErrClosed
	}
	if err := s.queries.DeleteStorageItem(ctx, namespace, key); err != nil {
		return fmt.Errorf("removing %s: %w", key, err)
	}
	return nil
}

// Close marks the backend closed. The database itself is owned by the caller.
func (s *SQLiteBackend) Close() error {
	s.closed.Store(true)
	return nil
}
