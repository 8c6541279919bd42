// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package client owns the per-visitor state of the portal. Each client has
// one session store, one cart, one toast queue and a theme preference, all
// bound to the same storage namespace.
package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/olegiv/lobos/internal/auth"
	"github.com/olegiv/lobos/internal/cart"
	"github.com/olegiv/lobos/internal/session"
	"github.com/olegiv/lobos/internal/storage"
	"github.com/olegiv/lobos/internal/toast"
)

// Theme values.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// ErrInvalidTheme is returned by SetTheme for unknown values.
var ErrInvalidTheme = errors.New("invalid theme")

// Client is the state bundle of one visitor device.
type Client struct {
	ID      string
	Session *session.Store
	Cart    *cart.Store
	Toasts  *toast.Queue

	storage  storage.Storage
	logger   *slog.Logger
	lastSeen atomic.Int64
}

// New builds a client whose stores all use st. The session is left
// uninitialized.
func New(id string, st storage.Storage, provider auth.Provider, logger *slog.Logger, toastDuration time.Duration) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		ID:      id,
		Session: session.New(st, provider, logger),
		Cart:    cart.New(st, logger),
		Toasts:  toast.New(toastDuration),
		storage: st,
		logger:  logger,
	}
}

// NewID returns a fresh client identifier.
func NewID() string {
	return uuid.NewString()
}

// Theme returns the stored theme preference, defaulting to light.
func (c *Client) Theme(ctx context.Context) string {
	v, err := c.storage.GetItem(ctx, storage.KeyTheme)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			c.logger.Warn("error loading theme", "error", err)
		}
		return ThemeLight
	}
	if v != ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// SetTheme persists the theme preference.
func (c *Client) SetTheme(ctx context.Context, theme string) error {
	if theme != ThemeLight && theme != ThemeDark {
		return fmt.Errorf("%w: %q", ErrInvalidTheme, theme)
	}
	if err := c.storage.SetItem(ctx, storage.KeyTheme, theme); err != nil {
		return fmt.Errorf("saving theme: %w", err)
	}
	return nil
}

// LastSeen returns the time of the last Touch.
func (c *Client) LastSeen() time.Time {
	return time.UnixMilli(c.lastSeen.Load()).UTC()
}

// Touch records an access at t.
func (c *Client) Touch(t time.Time) {
	c.lastSeen.Store(t.UnixMilli())
}
