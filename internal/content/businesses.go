// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import "github.com/olegiv/lobos/internal/model"

// BusinessInput holds the editable fields of a business.
type BusinessInput struct {
	Name        string
	Description string
	Category    string
	Logo        string
	Rating      *float64
	Phone       string
	Address     string
	IsOpen      bool
	Hours       model.Hours
	IsFeatured  bool
}

// BusinessesByCategory lists one category's businesses whose name or
// description contains query.
func (r *Repository) BusinessesByCategory(category, query string) []model.Business {
	return r.businesses.filter(func(b model.Business) bool {
		return b.Category == category && containsFold(query, b.Name, b.Description)
	})
}

// FeaturedBusinesses returns up to n featured businesses.
func (r *Repository) FeaturedBusinesses(n int) []model.Business {
	return limit(r.businesses.filter(func(b model.Business) bool { return b.IsFeatured }), n)
}

// CountBusinesses returns the number of businesses in a category.
func (r *Repository) CountBusinesses(category string) int {
	return r.businesses.count(func(b model.Business) bool { return b.Category == category })
}

// GetBusiness returns a business by ID, provided it belongs to category.
func (r *Repository) GetBusiness(category, id string) (model.Business, error) {
	b, err := r.businesses.get(id)
	if err != nil {
		return model.Business{}, err
	}
	if b.Category != category {
		return model.Business{}, ErrNotFound
	}
	return b, nil
}

// SearchBusinesses filters businesses by name or category.
func (r *Repository) SearchBusinesses(query string) []model.Business {
	return r.businesses.filter(func(b model.Business) bool {
		return containsFold(query, b.Name, b.Category)
	})
}

// CreateBusiness appends a business.
func (r *Repository) CreateBusiness(in BusinessInput) model.Business {
	id, _ := r.newID("business")
	b := model.Business{ID: id}
	in.apply(&b)
	r.businesses.append(b)
	return b
}

// UpdateBusiness replaces the editable fields of a business.
func (r *Repository) UpdateBusiness(id string, in BusinessInput) (model.Business, error) {
	return r.businesses.update(id, in.apply)
}

// DeleteBusiness removes a business.
func (r *Repository) DeleteBusiness(id string) error {
	return r.businesses.remove(id)
}

// ToggleBusinessFeatured flips the featured flag.
func (r *Repository) ToggleBusinessFeatured(id string) (model.Business, error) {
	return r.businesses.update(id, func(b *model.Business) { b.IsFeatured = !b.IsFeatured })
}

func (in BusinessInput) apply(b *model.Business) {
	b.Name = in.Name
	b.Description = in.Description
	b.Category = in.Category
	b.Logo = in.Logo
	b.Rating = in.Rating
	b.Phone = in.Phone
	b.Address = in.Address
	b.IsOpen = in.IsOpen
	b.Hours = in.Hours
	b.IsFeatured = in.IsFeatured
}
