// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package storage

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisBackend stores each namespace as a Redis hash named prefix+namespace.
type RedisBackend struct {
	client *redis.Client
	prefix string
	closed atomic.Bool
}

// RedisOptions configures the Redis backend.
type RedisOptions struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379/0)
	URL string

	// Prefix is prepended to every namespace (e.g., "lobos:")
	Prefix string

	// PoolSize is the maximum number of connections (0 = use default)
	PoolSize int

	// ConnectTimeout is the timeout for establishing a connection
	ConnectTimeout time.Duration

	// ReadTimeout is the timeout for read operations
	ReadTimeout time.Duration

	// WriteTimeout is the timeout for write operations
	WriteTimeout time.Duration
}

// DefaultRedisOptions returns sensible defaults.
func DefaultRedisOptions() RedisOptions {
	return RedisOptions{
		Prefix:         "lobos:",
		PoolSize:       10,
		ConnectTimeout: 5 * time.Second,
		ReadTimeout:    3 * time.Second,
		WriteTimeout:   3 * time.Second,
	}
}

// NewRedisBackend connects to Redis and verifies the connection.
func NewRedisBackend(opts RedisOptions) (*RedisBackend, error) {
	if opts.URL == "" {
		return nil, errors.New("redis URL is required")
	}

	redisOpts, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, err
	}

	if opts.PoolSize > 0 {
		redisOpts.PoolSize = opts.PoolSize
	}
	if opts.ConnectTimeout > 0 {
		redisOpts.DialTimeout = opts.ConnectTimeout
	}
	if opts.ReadTimeout > 0 {
		redisOpts.ReadTimeout = opts.ReadTimeout
	}
	if opts.WriteTimeout > 0 {
		redisOpts.WriteTimeout = opts.WriteTimeout
	}

	client := redis.NewClient(redisOpts)

	timeout := opts.ConnectTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return &RedisBackend{
		client: client,
		prefix: opts.Prefix,
	}, nil
}

// NewRedisBackendFromURL creates a Redis backend from a URL with default options.
func NewRedisBackendFromURL(url, prefix string) (*RedisBackend, error) {
	opts := DefaultRedisOptions()
	opts.URL = url
	if prefix != "" {
		opts.Prefix = prefix
	}
	return NewRedisBackend(opts)
}

func (r *RedisBackend) hashKey(namespace string) string {
	return r.prefix + namespace
}

// Get implements Backend.
func (r *RedisBackend) Get(ctx context.Context, namespace, key string) (string, error) {
	if r.closed.Load() {
		return "", ErrClosed
	}
	val, err := r.client.HGet(ctx, r.hashKey(namespace), key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", err
	}
	return val, nil
}

// Set implements Backend.
func (r *RedisBackend) Set(ctx context.Context, namespace, key, value string) error {
	if r.closed.Load() {
		return ErrClosed
	}
	return r.client.HSet(ctx, r.hashKey(namespace), key, value).Err()
}

// Delete implements Backend.
func (r *RedisBackend) Delete(ctx context.Context, namespace, key string) error {
	if r.closed.Load() {
		return ErrClosed
	}
	return r.client.HDel(ctx, r.hashKey(namespace), key).Err()
}

// Close closes the Redis connection.
func (r *RedisBackend) Close() error {
	if r.closed.CompareAndSwap(false, true) {
		return r.client.Close()
	}
	return nil
}
