// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/lobos/internal/content"
	"github.com/olegiv/lobos/internal/model"
	"github.com/olegiv/lobos/internal/render"
	"github.com/olegiv/lobos/internal/util"
)

var newsFields = []string{"title", "description", "content", "image", "category", "is_pinned", "is_new"}

// AdminNewsData is the news editor content.
type AdminNewsData struct {
	Query      string
	EditID     string
	Items      []model.NewsItem
	Categories []string
}

// NewsList renders the news editor. ?q filters by title or category and
// ?edit=<id> loads an item into the form.
func (h *AdminHandler) NewsList(w http.ResponseWriter, r *http.Request) {
	query, editID := adminListParams(r)
	form := map[string]string{"category": model.NewsCategories[0]}
	if editID != "" {
		item, err := h.content.GetNews(editID)
		if err != nil {
			toastError(w, r, redirectAdminNews, msgNewsNotFound)
			return
		}
		form = newsForm(item)
	}
	h.renderNews(w, r, http.StatusOK, query, editID, form, nil)
}

// NewsCreate handles the new-item form.
func (h *AdminHandler) NewsCreate(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, redirectAdminNews) {
		return
	}
	form := formFields(r, newsFields...)
	in, errs := validateNewsInput(form)
	if len(errs) > 0 {
		h.renderNews(w, r, http.StatusUnprocessableEntity, "", "", form, errs)
		return
	}

	item := h.content.CreateNews(in)
	slog.Info("news created", "id", item.ID, "category", model.EventCategoryContent)
	toastSuccess(w, r, redirectAdminNews, msgCreated)
}

// NewsUpdate handles the edit form.
func (h *AdminHandler) NewsUpdate(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, redirectAdminNews) {
		return
	}
	form := formFields(r, newsFields...)
	in, errs := validateNewsInput(form)
	if len(errs) > 0 {
		h.renderNews(w, r, http.StatusUnprocessableEntity, "", chi.URLParam(r, "id"), form, errs)
		return
	}
	updateAndRedirect(w, r, redirectAdminNews, "news", func(id string) (model.NewsItem, error) {
		return h.content.UpdateNews(id, in)
	})
}

// NewsDelete removes a news item.
func (h *AdminHandler) NewsDelete(w http.ResponseWriter, r *http.Request) {
	deleteAndRedirect(w, r, redirectAdminNews, "news", h.content.DeleteNews)
}

// NewsTogglePin pins or unpins a news item.
func (h *AdminHandler) NewsTogglePin(w http.ResponseWriter, r *http.Request) {
	toggleAndRedirect(w, r, redirectAdminNews, h.content.ToggleNewsPin)
}

func (h *AdminHandler) renderNews(w http.ResponseWriter, r *http.Request, status int, query, editID string, form, errs map[string]string) {
	h.renderer.MustRender(w, r, status, tmplAdminNews, render.TemplateData{
		Title:  "Noticias",
		Form:   form,
		Errors: errs,
		Data: AdminNewsData{
			Query:      query,
			EditID:     editID,
			Items:      h.content.SearchNews(query),
			Categories: model.NewsCategories,
		},
	})
}

func newsForm(n model.NewsItem) map[string]string {
	return map[string]string{
		"title":       n.Title,
		"description": n.Description,
		"content":     n.Content,
		"image":       n.Image,
		"category":    n.Category,
		"is_pinned":   checkboxValue(n.IsPinned),
		"is_new":      checkboxValue(n.IsNew),
	}
}

// validateNewsInput validates the news form and returns the input and field errors.
func validateNewsInput(form map[string]string) (content.NewsInput, map[string]string) {
	errs := make(map[string]string)
	if !util.IsNotEmpty(form["title"]) {
		errs["title"] = "El título es requerido"
	}
	if !util.IsNotEmpty(form["description"]) {
		errs["description"] = "La descripción es requerida"
	}
	if !slices.Contains(model.NewsCategories, form["category"]) {
		errs["category"] = "Categoría inválida"
	}
	if form["image"] != "" && !util.IsValidURL(form["image"]) {
		errs["image"] = "URL de imagen inválida"
	}
	return content.NewsInput{
		Title:       form["title"],
		Description: form["description"],
		Content:     form["content"],
		Image:       form["image"],
		Category:    form["category"],
		IsPinned:    checkbox(form["is_pinned"]),
		IsNew:       checkbox(form["is_new"]),
	}, errs
}
