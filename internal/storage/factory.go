// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package storage

import (
	"database/sql"
	"fmt"
)

// Config selects and configures a backend.
type Config struct {
	// Type is the backend: "sqlite", "redis" or "memory".
	Type string

	// DB is the migrated database used by the sqlite backend.
	DB *sql.DB

	// RedisURL and Prefix configure the redis backend.
	RedisURL string
	Prefix   string
}

// NewBackend creates the backend described by cfg.
func NewBackend(cfg Config) (Backend, error) {
	switch cfg.Type {
	case "", "sqlite":
		if cfg.DB == nil {
			return nil, fmt.Errorf("sqlite storage requires a database")
		}
		return NewSQLiteBackend(cfg.DB), nil
	case "redis":
		b, err := NewRedisBackendFromURL(cfg.RedisURL, cfg.Prefix)
		if err != nil {
			return nil, fmt.Errorf("connecting to redis: %w", err)
		}
		return b, nil
	case "memory":
		return NewMemoryBackend(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Type)
	}
}
