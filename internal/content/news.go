// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"github.com/olegiv/lobos/internal/model"
	"github.com/olegiv/lobos/internal/util"
)

// NewsAuthor is the author recorded for news written in the admin area.
const NewsAuthor = "Admin"

// NewsInput holds the editable fields of a news item.
type NewsInput struct {
	Title       string
	Description string
	Content     string
	Image       string
	Category    string
	IsPinned    bool
	IsNew       bool
}

// ListNews returns pinned news first, then the rest, each group in
// collection order.
func (r *Repository) ListNews() []model.NewsItem {
	all := r.news.all()
	out := make([]model.NewsItem, 0, len(all))
	for _, n := range all {
		if n.IsPinned {
			out = append(out, n)
		}
	}
	for _, n := range all {
		if !n.IsPinned {
			out = append(out, n)
		}
	}
	return out
}

// NewsByCategory returns ListNews restricted to items whose category slug is
// slug. An empty slug returns every item.
func (r *Repository) NewsByCategory(slug string) []model.NewsItem {
	all := r.ListNews()
	if slug == "" {
		return all
	}
	out := make([]model.NewsItem, 0, len(all))
	for _, n := range all {
		if util.Slugify(n.Category) == slug {
			out = append(out, n)
		}
	}
	return out
}

// LatestNews returns the first n items in collection order.
func (r *Repository) LatestNews(n int) []model.NewsItem {
	return limit(r.news.all(), n)
}

// GetNews returns the news item with the given ID.
func (r *Repository) GetNews(id string) (model.NewsItem, error) {
	return r.news.get(id)
}

// SearchNews filters news by title or category.
func (r *Repository) SearchNews(query string) []model.NewsItem {
	return r.news.filter(func(n model.NewsItem) bool {
		return containsFold(query, n.Title, n.Category)
	})
}

// CreateNews adds a news item at the top of the list.
func (r *Repository) CreateNews(in NewsInput) model.NewsItem {
	id, _ := r.newID("news")
	item := model.NewsItem{ID: id, CreatedAt: r.now()}
	in.apply(&item)
	r.news.prepend(item)
	return item
}

// UpdateNews replaces the editable fields of a news item. The creation time
// is kept and the author reset to NewsAuthor.
func (r *Repository) UpdateNews(id string, in NewsInput) (model.NewsItem, error) {
	return r.news.update(id, in.apply)
}

// DeleteNews removes a news item.
func (r *Repository) DeleteNews(id string) error {
	return r.news.remove(id)
}

// ToggleNewsPin flips the pinned flag.
func (r *Repository) ToggleNewsPin(id string) (model.NewsItem, error) {
	return r.news.update(id, func(n *model.NewsItem) { n.IsPinned = !n.IsPinned })
}

func (in NewsInput) apply(n *model.NewsItem) {
	n.Title = in.Title
	n.Description = in.Description
	n.Content = in.Content
	n.Image = in.Image
	n.Category = in.Category
	n.IsPinned = in.IsPinned
	n.IsNew = in.IsNew
	n.Author = NewsAuthor
}
