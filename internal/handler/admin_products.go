// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/lobos/internal/content"
	"github.com/olegiv/lobos/internal/model"
	"github.com/olegiv/lobos/internal/render"
	"github.com/olegiv/lobos/internal/util"
)

var productFields = []string{"name", "description", "price", "stock", "image", "category"}

// AdminProductsData is the product editor content.
type AdminProductsData struct {
	Query  string
	EditID string
	Items  []model.Product
}

// ProductsList renders the product editor.
func (h *AdminHandler) ProductsList(w http.ResponseWriter, r *http.Request) {
	query, editID := adminListParams(r)
	form := map[string]string{"stock": "0"}
	if editID != "" {
		p, err := h.content.GetProduct(editID)
		if err != nil {
			toastError(w, r, redirectAdminProducts, msgProductNotFound)
			return
		}
		form = productForm(p)
	}
	h.renderProducts(w, r, http.StatusOK, query, editID, form, nil)
}

// ProductCreate handles the new-product form.
func (h *AdminHandler) ProductCreate(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, redirectAdminProducts) {
		return
	}
	form := formFields(r, productFields...)
	in, errs := validateProductInput(form)
	if len(errs) > 0 {
		h.renderProducts(w, r, http.StatusUnprocessableEntity, "", "", form, errs)
		return
	}

	p := h.content.CreateProduct(in)
	slog.Info("product created", "id", p.ID, "category", model.EventCategoryContent)
	toastSuccess(w, r, redirectAdminProducts, msgCreated)
}

// ProductUpdate handles the edit form.
func (h *AdminHandler) ProductUpdate(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, redirectAdminProducts) {
		return
	}
	form := formFields(r, productFields...)
	in, errs := validateProductInput(form)
	if len(errs) > 0 {
		h.renderProducts(w, r, http.StatusUnprocessableEntity, "", chi.URLParam(r, "id"), form, errs)
		return
	}
	updateAndRedirect(w, r, redirectAdminProducts, "product", func(id string) (model.Product, error) {
		return h.content.UpdateProduct(id, in)
	})
}

// ProductDelete removes a product from the catalog. Carts keep their copy.
func (h *AdminHandler) ProductDelete(w http.ResponseWriter, r *http.Request) {
	deleteAndRedirect(w, r, redirectAdminProducts, "product", h.content.DeleteProduct)
}

func (h *AdminHandler) renderProducts(w http.ResponseWriter, r *http.Request, status int, query, editID string, form, errs map[string]string) {
	h.renderer.MustRender(w, r, status, tmplAdminProducts, render.TemplateData{
		Title:  "Productos",
		Form:   form,
		Errors: errs,
		Data: AdminProductsData{
			Query:  query,
			EditID: editID,
			Items:  h.content.SearchProducts(query),
		},
	})
}

func productForm(p model.Product) map[string]string {
	return map[string]string{
		"name":        p.Name,
		"description": p.Description,
		"price":       strconv.FormatFloat(p.Price, 'f', -1, 64),
		"stock":       strconv.Itoa(p.Stock),
		"image":       p.Image,
		"category":    p.Category,
	}
}

func validateProductInput(form map[string]string) (content.ProductInput, map[string]string) {
	errs := make(map[string]string)
	if !util.IsNotEmpty(form["name"]) {
		errs["name"] = msgNameRequired
	}
	price, err := strconv.ParseFloat(form["price"], 64)
	if err != nil || price < 0 {
		errs["price"] = "Precio inválido"
	}
	stock := 0
	if form["stock"] != "" {
		stock, err = strconv.Atoi(form["stock"])
		if err != nil || stock < 0 {
			errs["stock"] = "Stock inválido"
		}
	}
	if form["image"] != "" && !util.IsValidURL(form["image"]) {
		errs["image"] = "URL de imagen inválida"
	}
	return content.ProductInput{
		Name:        form["name"],
		Description: form["description"],
		Price:       price,
		Image:       form["image"],
		Category:    form["category"],
		Stock:       stock,
	}, errs
}
