// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package client

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/lobos/internal/model"
	"github.com/olegiv/lobos/internal/session"
	"github.com/olegiv/lobos/internal/storage"
	"github.com/olegiv/lobos/internal/testutil"
)

type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func isLive(r *Registry, id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.clients[id]
	return ok
}

// gatedBackend holds the first cart read until release is closed.
type gatedBackend struct {
	*storage.MemoryBackend

	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func (b *gatedBackend) Get(ctx context.Context, namespace, key string) (string, error) {
	if key == storage.KeyCart {
		b.once.Do(func() {
			close(b.entered)
			<-b.release
		})
	}
	return b.MemoryBackend.Get(ctx, namespace, key)
}

func newRegistry(t *testing.T, backend storage.Backend) (*Registry, *manualClock) {
	t.Helper()
	clock := &manualClock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	r := NewRegistry(RegistryConfig{
		Backend: backend,
		Logger:  testutil.TestLoggerSilent(),
		Now:     clock.Now,
	})
	t.Cleanup(r.Close)
	return r, clock
}

func TestRegistry_GetCreatesOnce(t *testing.T) {
	r, _ := newRegistry(t, storage.NewMemoryBackend())
	ctx := context.Background()

	a := r.Get(ctx, "abc")
	b := r.Get(ctx, "abc")
	assert.Same(t, a, b)
	assert.Equal(t, 1, r.Len())

	other := r.Get(ctx, "xyz")
	assert.NotSame(t, a, other)
	assert.Equal(t, 2, r.Len())
}

func TestRegistry_NewClientResolvesSession(t *testing.T) {
	r, _ := newRegistry(t, storage.NewMemoryBackend())

	c := r.Get(context.Background(), "abc")
	assert.NotEqual(t, session.StateUninitialized, c.Session.State())

	<-c.Session.Ready()
	assert.Equal(t, session.StateUnauthenticated, c.Session.State())
}

func TestRegistry_ConcurrentGet(t *testing.T) {
	r, _ := newRegistry(t, storage.NewMemoryBackend())

	var wg sync.WaitGroup
	got := make([]*Client, 20)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i] = r.Get(context.Background(), "same")
		}(i)
	}
	wg.Wait()

	for _, c := range got {
		assert.Same(t, got[0], c)
	}
}

func TestRegistry_EvictionRestoresFromStorage(t *testing.T) {
	backend := storage.NewMemoryBackend()
	r, clock := newRegistry(t, backend)
	ctx := context.Background()

	c := r.Get(ctx, "abc")
	<-c.Session.Ready()
	_, err := c.Session.Login(ctx, "admin@cdglobos.com", "secreto123")
	require.NoError(t, err)
	c.Cart.AddItem(ctx, model.Product{ID: "p1", Price: 10}, 2)
	require.NoError(t, c.SetTheme(ctx, ThemeDark))
	c.Toasts.Success("Bienvenido")

	clock.Advance(time.Hour)
	assert.Equal(t, 1, r.EvictIdle(30*time.Minute))
	assert.Zero(t, c.Toasts.Len(), "toasts are not kept across eviction")

	assert.False(t, isLive(r, "abc"))

	restored := r.Get(ctx, "abc")
	assert.NotSame(t, c, restored)
	<-restored.Session.Ready()

	assert.True(t, restored.Session.IsAuthenticated())
	assert.True(t, restored.Session.IsAdmin())
	assert.Equal(t, 2, restored.Cart.ItemCount())
	assert.Equal(t, ThemeDark, restored.Theme(ctx))
	assert.Zero(t, restored.Toasts.Len())
}

func TestRegistry_RacingGetWaitsForSavedCart(t *testing.T) {
	backend := &gatedBackend{
		MemoryBackend: storage.NewMemoryBackend(),
		entered:       make(chan struct{}),
		release:       make(chan struct{}),
	}
	ctx := context.Background()
	require.NoError(t, backend.Set(ctx, "abc", storage.KeyCart, `[{"id":"p1","name":"Camiseta","price":10,"quantity":2}]`))
	r, _ := newRegistry(t, backend)

	first := make(chan *Client)
	go func() { first <- r.Get(ctx, "abc") }()
	<-backend.entered

	added := make(chan struct{})
	go func() {
		c := r.Get(ctx, "abc")
		c.Cart.AddItem(ctx, model.Product{ID: "p2", Name: "Gorra", Price: 5}, 1)
		close(added)
	}()

	select {
	case <-added:
		t.Fatal("cart changed before the saved cart was read")
	case <-time.After(50 * time.Millisecond):
	}

	close(backend.release)
	c := <-first
	<-added

	items := c.Cart.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "p1", items[0].ID)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, "p2", items[1].ID)

	raw, err := backend.MemoryBackend.Get(ctx, "abc", storage.KeyCart)
	require.NoError(t, err)
	assert.Contains(t, raw, `"id":"p1"`)
	assert.Contains(t, raw, `"id":"p2"`)
}

func TestRegistry_EvictIdleKeepsActive(t *testing.T) {
	r, clock := newRegistry(t, storage.NewMemoryBackend())
	ctx := context.Background()

	r.Get(ctx, "old")
	clock.Advance(20 * time.Minute)
	r.Get(ctx, "fresh")
	clock.Advance(15 * time.Minute)

	assert.Equal(t, 1, r.EvictIdle(30*time.Minute))
	assert.True(t, isLive(r, "fresh"))
	assert.False(t, isLive(r, "old"))
}

func TestRegistry_GetTouches(t *testing.T) {
	r, clock := newRegistry(t, storage.NewMemoryBackend())
	ctx := context.Background()

	c := r.Get(ctx, "abc")
	clock.Advance(25 * time.Minute)
	r.Get(ctx, "abc")
	assert.Equal(t, clock.Now().UnixMilli(), c.LastSeen().UnixMilli())

	clock.Advance(25 * time.Minute)
	assert.Zero(t, r.EvictIdle(30*time.Minute))
}

func TestClient_Theme(t *testing.T) {
	r, _ := newRegistry(t, storage.NewMemoryBackend())
	ctx := context.Background()
	c := r.Get(ctx, "abc")

	assert.Equal(t, ThemeLight, c.Theme(ctx))
	require.NoError(t, c.SetTheme(ctx, ThemeDark))
	assert.Equal(t, ThemeDark, c.Theme(ctx))

	err := c.SetTheme(ctx, "sepia")
	assert.ErrorIs(t, err, ErrInvalidTheme)
	assert.Equal(t, ThemeDark, c.Theme(ctx))
}

func TestNewID(t *testing.T) {
	a, b := NewID(), NewID()
	assert.NotEqual(t, a, b)
	assert.Len(t, a, 36)
}
