// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package client

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/olegiv/lobos/internal/auth"
	"github.com/olegiv/lobos/internal/model"
	"github.com/olegiv/lobos/internal/storage"
)

// initTimeout bounds the background session restore of a new client.
const initTimeout = 10 * time.Second

// RegistryConfig configures a Registry.
type RegistryConfig struct {
	Backend       storage.Backend
	Provider      auth.Provider
	Logger        *slog.Logger
	ToastDuration time.Duration

	// Now overrides the clock used for last-access tracking.
	Now func() time.Time
}

// Registry maps client IDs to their live state. A client is built the first
// time its ID is seen and dropped again once it has been idle too long; the
// next request for that ID rebuilds it from storage.
type Registry struct {
	backend       storage.Backend
	provider      auth.Provider
	logger        *slog.Logger
	toastDuration time.Duration
	now           func() time.Time

	mu      sync.Mutex
	clients map[string]*Client
	inits   sync.WaitGroup
}

// NewRegistry creates an empty registry.
func NewRegistry(cfg RegistryConfig) *Registry {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	provider := cfg.Provider
	if provider == nil {
		provider = auth.NewMockProvider()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Registry{
		backend:       cfg.Backend,
		provider:      provider,
		logger:        logger,
		toastDuration: cfg.ToastDuration,
		now:           now,
		clients:       make(map[string]*Client),
	}
}

// Get returns the client for id, creating it when needed. The saved cart is
// loaded before Get returns, for the creating caller and for anyone racing
// it. A new client's session restore runs in the background; until it
// finishes the session reports StateLoading.
func (r *Registry) Get(ctx context.Context, id string) *Client {
	r.mu.Lock()
	c, ok := r.clients[id]
	if ok {
		r.mu.Unlock()
		c.Touch(r.now())
		c.Cart.Load(ctx)
		return c
	}

	c = r.build(id)
	c.Touch(r.now())
	r.clients[id] = c
	r.inits.Add(1)
	r.mu.Unlock()

	r.logger.Debug("client created", "client_id", id, "category", model.EventCategorySystem)

	c.Cart.Load(ctx)

	initCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), initTimeout)
	go func() {
		defer r.inits.Done()
		defer cancel()
		c.Session.Initialize(initCtx)
	}()

	return c
}

func (r *Registry) build(id string) *Client {
	st := storage.Bind(r.backend, id)
	c := New(id, st, r.provider, r.logger.With("client_id", id), r.toastDuration)
	c.Session.MarkLoading()
	return c
}

// Len returns the number of live clients.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.clients)
}

// EvictIdle drops clients not seen for longer than ttl and returns how many
// were removed. Their pending toasts are discarded.
func (r *Registry) EvictIdle(ttl time.Duration) int {
	cutoff := r.now().Add(-ttl)

	r.mu.Lock()
	var evicted []*Client
	for id, c := range r.clients {
		if c.LastSeen().Before(cutoff) {
			evicted = append(evicted, c)
			delete(r.clients, id)
		}
	}
	r.mu.Unlock()

	for _, c := range evicted {
		c.Toasts.Close()
	}
	if len(evicted) > 0 {
		r.logger.Info("evicted idle clients", "count", len(evicted), "category", model.EventCategorySystem)
	}
	return len(evicted)
}

// Wait blocks until every background session restore has finished.
func (r *Registry) Wait() {
	r.inits.Wait()
}

// Close waits for pending restores and stops all toast timers.
func (r *Registry) Close() {
	r.inits.Wait()

	r.mu.Lock()
	defer r.mu.Unlock()
	for id, c := range r.clients {
		c.Toasts.Close()
		delete(r.clients, id)
	}
}
