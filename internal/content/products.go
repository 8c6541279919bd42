// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import "github.com/olegiv/lobos/internal/model"

// ProductInput holds the editable fields of a product.
type ProductInput struct {
	Name        string
	Description string
	Price       float64
	Image       string
	Category    string
	Stock       int
}

// ListProducts returns the shop catalog.
func (r *Repository) ListProducts() []model.Product {
	return r.products.all()
}

// GetProduct returns the product with the given ID.
func (r *Repository) GetProduct(id string) (model.Product, error) {
	return r.products.get(id)
}

// SearchProducts filters products by name or category.
func (r *Repository) SearchProducts(query string) []model.Product {
	return r.products.filter(func(p model.Product) bool {
		return containsFold(query, p.Name, p.Category)
	})
}

// CreateProduct appends a product.
func (r *Repository) CreateProduct(in ProductInput) model.Product {
	id, _ := r.newID("product")
	p := model.Product{ID: id}
	in.apply(&p)
	r.products.append(p)
	return p
}

// UpdateProduct replaces the editable fields of a product.
func (r *Repository) UpdateProduct(id string, in ProductInput) (model.Product, error) {
	return r.products.update(id, in.apply)
}

// DeleteProduct removes a product. Carts that already hold it keep their
// copy of the line item.
func (r *Repository) DeleteProduct(id string) error {
	return r.products.remove(id)
}

func (in ProductInput) apply(p *model.Product) {
	p.Name = in.Name
	p.Description = in.Description
	p.Price = in.Price
	p.Image = in.Image
	p.Category = in.Category
	p.Stock = in.Stock
}
