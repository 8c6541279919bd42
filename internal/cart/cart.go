// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package cart implements a client's shopping cart. Line items are unique per
// product ID, and every change is written through to the client's storage.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"slices"
	"sync"

	"github.com/olegiv/lobos/internal/model"
	"github.com/olegiv/lobos/internal/storage"
)

// Store holds the line items of one client.
type Store struct {
	storage storage.Storage
	logger  *slog.Logger

	// mu is held for the whole of each mutation, including the write to
	// storage, so mutations apply one after another to the current items
	// and storage always receives them in the same order.
	mu    sync.Mutex
	items []model.LineItem
	open  bool

	loadOnce sync.Once
}

// New creates an empty cart over st. Call Load to restore saved items.
func New(st storage.Storage, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{storage: st, logger: logger}
}

// Load reads the saved cart once. Missing data leaves the cart empty;
// corrupt data is logged and also leaves it empty. Concurrent callers block
// until the first read has finished.
func (s *Store) Load(ctx context.Context) {
	s.loadOnce.Do(func() {
		raw, err := s.storage.GetItem(ctx, storage.KeyCart)
		if err != nil {
			if !errors.Is(err, storage.ErrNotFound) {
				s.logger.Warn("error loading cart", "category", model.EventCategoryStorage, "error", err)
			}
			return
		}

		var items []model.LineItem
		if err := json.Unmarshal([]byte(raw), &items); err != nil {
			s.logger.Warn("error loading cart", "category", model.EventCategoryStorage, "error", err)
			return
		}

		s.mu.Lock()
		s.items = normalize(items)
		s.mu.Unlock()
	})
}

// normalize merges duplicate product IDs and drops non-positive quantities,
// so a hand-edited or legacy payload cannot break the uniqueness invariant.
func normalize(items []model.LineItem) []model.LineItem {
	out := make([]model.LineItem, 0, len(items))
	index := make(map[string]int, len(items))
	for _, item := range items {
		if item.Quantity <= 0 {
			continue
		}
		if i, ok := index[item.ID]; ok {
			out[i].Quantity += item.Quantity
			continue
		}
		index[item.ID] = len(out)
		out = append(out, item)
	}
	return out
}

// mutate applies fn to the current items and then saves the result. The
// saved cart is loaded first, so a write never replaces items that have not
// been read yet.
func (s *Store) mutate(ctx context.Context, fn func([]model.LineItem) []model.LineItem) {
	s.Load(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = fn(s.items)
	s.save(ctx)
}

// save serializes the items. Write failures are logged and otherwise ignored.
func (s *Store) save(ctx context.Context) {
	items := s.items
	if items == nil {
		items = []model.LineItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		s.logger.Error("error encoding cart", "category", model.EventCategoryCart, "error", err)
		return
	}
	if err := s.storage.SetItem(ctx, storage.KeyCart, string(data)); err != nil {
		s.logger.Warn("error saving cart", "category", model.EventCategoryStorage, "error", err)
	}
}

// AddItem adds quantity units of product. A product already in the cart has
// its quantity increased instead of getting a second line. A quantity below
// one is treated as one.
func (s *Store) AddItem(ctx context.Context, product model.Product, quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	s.mutate(ctx, func(items []model.LineItem) []model.LineItem {
		for i := range items {
			if items[i].ID == product.ID {
				next := slices.Clone(items)
				next[i].Quantity += quantity
				return next
			}
		}
		return append(slices.Clone(items), model.LineItem{Product: product, Quantity: quantity})
	})
}

// RemoveItem deletes the line of productID. Unknown IDs are ignored.
func (s *Store) RemoveItem(ctx context.Context, productID string) {
	s.mutate(ctx, func(items []model.LineItem) []model.LineItem {
		return slices.DeleteFunc(slices.Clone(items), func(item model.LineItem) bool {
			return item.ID == productID
		})
	})
}

// UpdateQuantity sets the quantity of productID. Zero or less removes the line.
func (s *Store) UpdateQuantity(ctx context.Context, productID string, quantity int) {
	if quantity <= 0 {
		s.RemoveItem(ctx, productID)
		return
	}
	s.mutate(ctx, func(items []model.LineItem) []model.LineItem {
		next := slices.Clone(items)
		for i := range next {
			if next[i].ID == productID {
				next[i].Quantity = quantity
			}
		}
		return next
	})
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context) {
	s.mutate(ctx, func([]model.LineItem) []model.LineItem {
		return nil
	})
}

// Items returns a copy of the line items in insertion order.
func (s *Store) Items() []model.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.items)
}

// Total returns the sum of price times quantity over all lines.
func (s *Store) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total float64
	for _, item := range s.items {
		total += item.Subtotal()
	}
	return total
}

// ItemCount returns the sum of quantities over all lines.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

// Toggle flips the visibility of the cart panel.
func (s *Store) Toggle() {
	s.mu.Lock()
	s.open = !s.open
	s.mu.Unlock()
}

// SetOpen sets the visibility of the cart panel.
func (s *Store) SetOpen(open bool) {
	s.mu.Lock()
	s.open = open
	s.mu.Unlock()
}

// IsOpen reports whether the cart panel is shown.
func (s *Store) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}
