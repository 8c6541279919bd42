// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package content serves the club's news, match schedule, business
// directory, shop products and member directory. The data is loaded from
// embedded fixtures; admin edits live in memory only and are lost on
// restart.
package content

import (
	"embed"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/olegiv/lobos/internal/model"
)

//go:embed fixtures/*.json
var fixturesFS embed.FS

// Repository holds the content collections.
type Repository struct {
	news       *collection[model.NewsItem]
	matches    *collection[model.Match]
	businesses *collection[model.Business]
	products   *collection[model.Product]
	members    *collection[model.Member]

	now    func() time.Time
	idMu   sync.Mutex
	lastID int64
}

// Load builds a repository from the embedded fixtures.
func Load() (*Repository, error) {
	return LoadWithClock(time.Now)
}

// LoadWithClock is Load with an injectable clock for generated IDs and
// timestamps.
func LoadWithClock(now func() time.Time) (*Repository, error) {
	var (
		news       []model.NewsItem
		matches    []model.Match
		businesses []model.Business
		products   []model.Product
		members    []model.Member
	)

	files := []struct {
		name string
		dst  any
	}{
		{"news.json", &news},
		{"matches.json", &matches},
		{"businesses.json", &businesses},
		{"products.json", &products},
		{"members.json", &members},
	}
	for _, f := range files {
		if err := readFixture(f.name, f.dst); err != nil {
			return nil, err
		}
	}

	return &Repository{
		news:       newCollection(news, func(n model.NewsItem) string { return n.ID }),
		matches:    newCollection(matches, func(m model.Match) string { return m.ID }),
		businesses: newCollection(businesses, func(b model.Business) string { return b.ID }),
		products:   newCollection(products, func(p model.Product) string { return p.ID }),
		members:    newCollection(members, func(m model.Member) string { return m.ID }),
		now:        now,
	}, nil
}

func readFixture(name string, dst any) error {
	data, err := fixturesFS.ReadFile("fixtures/" + name)
	if err != nil {
		return fmt.Errorf("reading fixture %s: %w", name, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("parsing fixture %s: %w", name, err)
	}
	return nil
}

// nextMillis returns the current time in milliseconds, bumped past the last
// value handed out so generated IDs never collide.
func (r *Repository) nextMillis() int64 {
	r.idMu.Lock()
	defer r.idMu.Unlock()
	ms := r.now().UnixMilli()
	if ms <= r.lastID {
		ms = r.lastID + 1
	}
	r.lastID = ms
	return ms
}

func (r *Repository) newID(prefix string) (string, int64) {
	ms := r.nextMillis()
	return prefix + "-" + strconv.FormatInt(ms, 10), ms
}

// containsFold reports whether any field contains query, case-insensitively.
// An empty query matches everything.
func containsFold(query string, fields ...string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

func limit[T any](items []T, n int) []T {
	if n >= 0 && len(items) > n {
		return items[:n]
	}
	return items
}
