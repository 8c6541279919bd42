// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/lobos/internal/client"
	"github.com/olegiv/lobos/internal/session"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// ContextKeyClient holds the *client.Client of the request.
const ContextKeyClient ContextKey = "client"

// Client creates middleware that resolves the visitor's client. The client
// ID lives in the cookie session; a new ID is issued on first visit. It must
// run inside sm.LoadAndSave.
func Client(sm *scs.SessionManager, reg *client.Registry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			id := sm.GetString(ctx, session.ClientIDKey)
			if id == "" {
				id = client.NewID()
				sm.Put(ctx, session.ClientIDKey, id)
			}

			c := reg.Get(ctx, id)
			next.ServeHTTP(w, r.WithContext(WithClient(ctx, c)))
		})
	}
}

// WithClient returns a copy of ctx carrying c.
func WithClient(ctx context.Context, c *client.Client) context.Context {
	return context.WithValue(ctx, ContextKeyClient, c)
}

// GetClient retrieves the current client from the request context.
// Returns nil if no client is in context.
func GetClient(r *http.Request) *client.Client {
	c, ok := r.Context().Value(ContextKeyClient).(*client.Client)
	if !ok {
		return nil
	}
	return c
}
