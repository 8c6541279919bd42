// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/lobos/internal/client"
	"github.com/olegiv/lobos/internal/content"
	"github.com/olegiv/lobos/internal/middleware"
	"github.com/olegiv/lobos/internal/model"
	"github.com/olegiv/lobos/internal/toast"
)

// CartHandler handles the cart endpoints. Each responds with a redirect back
// to the referring page, or with the cart as JSON when asked for it.
type CartHandler struct {
	content *content.Repository
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(repo *content.Repository) *CartHandler {
	return &CartHandler{content: repo}
}

// CartResponse is the JSON view of a cart.
type CartResponse struct {
	Items     []model.LineItem `json:"items"`
	Total     float64          `json:"total"`
	ItemCount int              `json:"itemCount"`
	IsOpen    bool             `json:"isOpen"`
}

// Add puts a catalog product into the cart.
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	c, ok := h.client(w, r)
	if !ok {
		return
	}

	product, err := h.content.GetProduct(r.FormValue("product_id"))
	if err != nil {
		if !errors.Is(err, content.ErrNotFound) {
			logAndInternalError(w, "failed to load product", "error", err)
			return
		}
		h.fail(w, r, http.StatusNotFound, msgProductNotFound)
		return
	}

	c.Cart.AddItem(r.Context(), product, parseQuantity(r.FormValue("quantity"), 1))
	h.respond(w, r, c, msgAddedToCart, toast.Success)
}

// UpdateQuantity replaces a line item's quantity; zero or less removes it.
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	c, ok := h.client(w, r)
	if !ok {
		return
	}

	qty := parseQuantity(r.FormValue("quantity"), -1)
	c.Cart.UpdateQuantity(r.Context(), chi.URLParam(r, "id"), qty)
	if qty <= 0 {
		h.respond(w, r, c, msgRemovedFromCart, toast.Info)
		return
	}
	h.respond(w, r, c, "", "")
}

// Remove drops a line item.
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	c, ok := h.client(w, r)
	if !ok {
		return
	}
	c.Cart.RemoveItem(r.Context(), chi.URLParam(r, "id"))
	h.respond(w, r, c, msgRemovedFromCart, toast.Info)
}

// Clear empties the cart.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	c, ok := h.client(w, r)
	if !ok {
		return
	}
	c.Cart.Clear(r.Context())
	h.respond(w, r, c, msgCartCleared, toast.Info)
}

// Toggle flips the cart panel, or sets it explicitly when the form carries
// open=true|false.
func (h *CartHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	c, ok := h.client(w, r)
	if !ok {
		return
	}
	if v := r.FormValue("open"); v != "" {
		open, err := strconv.ParseBool(v)
		if err != nil {
			h.fail(w, r, http.StatusBadRequest, msgInvalidForm)
			return
		}
		c.Cart.SetOpen(open)
	} else {
		c.Cart.Toggle()
	}
	h.respond(w, r, c, "", "")
}

// Show returns the cart as JSON.
func (h *CartHandler) Show(w http.ResponseWriter, r *http.Request) {
	c, ok := h.client(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, cartResponse(c))
}

func (h *CartHandler) client(w http.ResponseWriter, r *http.Request) (*client.Client, bool) {
	c := middleware.GetClient(r)
	if c == nil {
		http.Redirect(w, r, RouteLogin, http.StatusSeeOther)
		return nil, false
	}
	if err := r.ParseForm(); err != nil {
		h.fail(w, r, http.StatusBadRequest, msgInvalidForm)
		return nil, false
	}
	return c, true
}

func (h *CartHandler) respond(w http.ResponseWriter, r *http.Request, c *client.Client, message string, severity toast.Severity) {
	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, cartResponse(c))
		return
	}
	if message != "" {
		notify(r, message, severity)
	}
	http.Redirect(w, r, backURL(r, RouteRoot), http.StatusSeeOther)
}

func (h *CartHandler) fail(w http.ResponseWriter, r *http.Request, status int, message string) {
	if wantsJSON(r) {
		writeJSONError(w, status, message)
		return
	}
	toastError(w, r, backURL(r, RouteRoot), message)
}

func cartResponse(c *client.Client) CartResponse {
	return CartResponse{
		Items:     c.Cart.Items(),
		Total:     c.Cart.Total(),
		ItemCount: c.Cart.ItemCount(),
		IsOpen:    c.Cart.IsOpen(),
	}
}
