// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Product is something the club sells. Price is in Argentine pesos.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Image       string  `json:"image,omitempty"`
	Category    string  `json:"category,omitempty"`
	Stock       int     `json:"stock"`
}

// LineItem is a product merged with a quantity. It serializes flat, as the
// product fields plus "quantity".
type LineItem struct {
	Product
	Quantity int `json:"quantity"`
}

// Subtotal returns unit price times quantity.
func (li LineItem) Subtotal() float64 {
	return li.Price * float64(li.Quantity)
}
