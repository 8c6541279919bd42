// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/lobos/internal/content"
	"github.com/olegiv/lobos/internal/model"
	"github.com/olegiv/lobos/internal/render"
	"github.com/olegiv/lobos/internal/util"
)

var businessFields = []string{
	"name", "description", "category", "logo", "rating", "phone", "address",
	"hours_open", "hours_close", "is_open", "is_featured",
}

// AdminBusinessesData is the business editor content.
type AdminBusinessesData struct {
	Query      string
	EditID     string
	Items      []model.Business
	Categories []model.BusinessCategory
}

// BusinessesList renders the business editor.
func (h *AdminHandler) BusinessesList(w http.ResponseWriter, r *http.Request) {
	query, editID := adminListParams(r)
	form := map[string]string{"category": model.BusinessCategories[0].ID, "is_open": checkboxOn}
	if editID != "" {
		b, ok := h.findBusiness(editID)
		if !ok {
			toastError(w, r, redirectAdminBusinesses, msgBusinessNotFound)
			return
		}
		form = businessForm(b)
	}
	h.renderBusinesses(w, r, http.StatusOK, query, editID, form, nil)
}

// BusinessCreate handles the new-business form.
func (h *AdminHandler) BusinessCreate(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, redirectAdminBusinesses) {
		return
	}
	form := formFields(r, businessFields...)
	in, errs := validateBusinessInput(form)
	if len(errs) > 0 {
		h.renderBusinesses(w, r, http.StatusUnprocessableEntity, "", "", form, errs)
		return
	}

	b := h.content.CreateBusiness(in)
	slog.Info("business created", "id", b.ID, "category", model.EventCategoryContent)
	toastSuccess(w, r, redirectAdminBusinesses, msgCreated)
}

// BusinessUpdate handles the edit form.
func (h *AdminHandler) BusinessUpdate(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, redirectAdminBusinesses) {
		return
	}
	form := formFields(r, businessFields...)
	in, errs := validateBusinessInput(form)
	if len(errs) > 0 {
		h.renderBusinesses(w, r, http.StatusUnprocessableEntity, "", chi.URLParam(r, "id"), form, errs)
		return
	}
	updateAndRedirect(w, r, redirectAdminBusinesses, "business", func(id string) (model.Business, error) {
		return h.content.UpdateBusiness(id, in)
	})
}

// BusinessDelete removes a business.
func (h *AdminHandler) BusinessDelete(w http.ResponseWriter, r *http.Request) {
	deleteAndRedirect(w, r, redirectAdminBusinesses, "business", h.content.DeleteBusiness)
}

// BusinessToggleFeatured features or unfeatures a business.
func (h *AdminHandler) BusinessToggleFeatured(w http.ResponseWriter, r *http.Request) {
	toggleAndRedirect(w, r, redirectAdminBusinesses, h.content.ToggleBusinessFeatured)
}

// findBusiness looks a business up by ID across all categories.
func (h *AdminHandler) findBusiness(id string) (model.Business, bool) {
	for _, b := range h.content.SearchBusinesses("") {
		if b.ID == id {
			return b, true
		}
	}
	return model.Business{}, false
}

func (h *AdminHandler) renderBusinesses(w http.ResponseWriter, r *http.Request, status int, query, editID string, form, errs map[string]string) {
	h.renderer.MustRender(w, r, status, tmplAdminBusinesses, render.TemplateData{
		Title:  "Negocios",
		Form:   form,
		Errors: errs,
		Data: AdminBusinessesData{
			Query:      query,
			EditID:     editID,
			Items:      h.content.SearchBusinesses(query),
			Categories: model.BusinessCategories,
		},
	})
}

func businessForm(b model.Business) map[string]string {
	rating := ""
	if b.Rating != nil {
		rating = strconv.FormatFloat(*b.Rating, 'f', -1, 64)
	}
	return map[string]string{
		"name":        b.Name,
		"description": b.Description,
		"category":    b.Category,
		"logo":        b.Logo,
		"rating":      rating,
		"phone":       b.Phone,
		"address":     b.Address,
		"hours_open":  b.Hours.Open,
		"hours_close": b.Hours.Close,
		"is_open":     checkboxValue(b.IsOpen),
		"is_featured": checkboxValue(b.IsFeatured),
	}
}

// validateBusinessInput validates the business form. An empty rating means
// the business has not been rated.
func validateBusinessInput(form map[string]string) (content.BusinessInput, map[string]string) {
	errs := make(map[string]string)
	if !util.IsNotEmpty(form["name"]) {
		errs["name"] = msgNameRequired
	}
	if _, ok := model.FindBusinessCategory(form["category"]); !ok {
		errs["category"] = "Categoría inválida"
	}
	if form["logo"] != "" && !util.IsValidURL(form["logo"]) {
		errs["logo"] = "URL de logo inválida"
	}
	if form["phone"] != "" && !util.IsValidPhone(form["phone"]) {
		errs["phone"] = msgPhoneInvalid
	}

	var rating *float64
	if form["rating"] != "" {
		v, err := strconv.ParseFloat(form["rating"], 64)
		if err != nil || v < 0 || v > 5 {
			errs["rating"] = "La calificación debe estar entre 0 y 5"
		} else {
			rating = &v
		}
	}
	for _, f := range []string{"hours_open", "hours_close"} {
		if form[f] == "" {
			continue
		}
		if _, err := time.Parse("15:04", form[f]); err != nil {
			errs[f] = "Hora inválida"
		}
	}

	return content.BusinessInput{
		Name:        form["name"],
		Description: form["description"],
		Category:    form["category"],
		Logo:        form["logo"],
		Rating:      rating,
		Phone:       form["phone"],
		Address:     form["address"],
		IsOpen:      checkbox(form["is_open"]),
		Hours:       model.Hours{Open: form["hours_open"], Close: form["hours_close"]},
		IsFeatured:  checkbox(form["is_featured"]),
	}, errs
}
