// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/lobos/internal/client"
	"github.com/olegiv/lobos/internal/content"
	"github.com/olegiv/lobos/internal/middleware"
	"github.com/olegiv/lobos/internal/model"
	"github.com/olegiv/lobos/internal/render"
	"github.com/olegiv/lobos/internal/toast"
	"github.com/olegiv/lobos/internal/util"
)

// Home page section sizes.
const (
	homeNewsCount     = 3
	homeMatchCount    = 3
	homeFeaturedCount = 4
	featuredCount     = 4
)

// PagesHandler serves the member area.
type PagesHandler struct {
	renderer *render.Renderer
	content  *content.Repository
}

// NewPagesHandler creates a new PagesHandler.
func NewPagesHandler(renderer *render.Renderer, repo *content.Repository) *PagesHandler {
	return &PagesHandler{renderer: renderer, content: repo}
}

// HomeData is the home page content.
type HomeData struct {
	News     []model.NewsItem
	Upcoming []model.Match
	Featured []model.Business
	Products []model.Product
}

// Home renders the home page.
func (h *PagesHandler) Home(w http.ResponseWriter, r *http.Request) {
	h.renderer.MustRender(w, r, http.StatusOK, tmplHome, render.TemplateData{
		Title: "Inicio",
		Data: HomeData{
			News:     h.content.LatestNews(homeNewsCount),
			Upcoming: h.content.UpcomingMatches(homeMatchCount),
			Featured: h.content.FeaturedBusinesses(homeFeaturedCount),
			Products: h.content.ListProducts(),
		},
	})
}

// NewsListData is the news listing content.
type NewsListData struct {
	Categories []string
	Selected   string
	Items      []model.NewsItem
}

// News renders the news listing, pinned items first, optionally narrowed to
// one category by its slug. Malformed slugs show every item.
func (h *PagesHandler) News(w http.ResponseWriter, r *http.Request) {
	selected := r.URL.Query().Get("categoria")
	if !util.IsValidSlug(selected) {
		selected = ""
	}
	h.renderer.MustRender(w, r, http.StatusOK, tmplNews, render.TemplateData{
		Title: "Noticias",
		Data: NewsListData{
			Categories: model.NewsCategories,
			Selected:   selected,
			Items:      h.content.NewsByCategory(selected),
		},
	})
}

// NewsDetail renders one news item.
func (h *PagesHandler) NewsDetail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	item, ok := requireContent(w, r, h.renderer,
		NotFoundData{Message: msgNewsNotFound, BackURL: RouteNews, BackLabel: "Volver a noticias"},
		func() (model.NewsItem, error) { return h.content.GetNews(id) })
	if !ok {
		return
	}
	h.renderer.MustRender(w, r, http.StatusOK, tmplNewsDetail, render.TemplateData{
		Title: item.Title,
		Data:  item,
	})
}

// ScheduleData is the match schedule content.
type ScheduleData struct {
	Categories []model.Category
	Selected   string
	Matches    []model.Match
}

// Schedule renders the matches of one team category. Unknown categories
// fall back to the default one.
func (h *PagesHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	selected := r.URL.Query().Get("categoria")
	if _, ok := model.FindCategory(selected); !ok {
		selected = model.DefaultCategory
	}
	h.renderer.MustRender(w, r, http.StatusOK, tmplSchedule, render.TemplateData{
		Title: "Programación",
		Data: ScheduleData{
			Categories: model.Categories,
			Selected:   selected,
			Matches:    h.content.MatchesByCategory(selected),
		},
	})
}

// MatchDetail renders one match.
func (h *PagesHandler) MatchDetail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	match, ok := requireContent(w, r, h.renderer,
		NotFoundData{Message: msgMatchNotFound, BackURL: RouteSchedule, BackLabel: "Volver a la programación"},
		func() (model.Match, error) { return h.content.GetMatch(id) })
	if !ok {
		return
	}
	h.renderer.MustRender(w, r, http.StatusOK, tmplMatchDetail, render.TemplateData{
		Title: match.HomeTeam.Name + " vs " + match.AwayTeam.Name,
		Data:  match,
	})
}

// CategorySummary is a business category with its business count.
type CategorySummary struct {
	model.BusinessCategory
	Count int
}

// BusinessesData is the business directory index content.
type BusinessesData struct {
	Categories []CategorySummary
	Featured   []model.Business
}

// Businesses renders the business directory index.
func (h *PagesHandler) Businesses(w http.ResponseWriter, r *http.Request) {
	cats := make([]CategorySummary, 0, len(model.BusinessCategories))
	for _, c := range model.BusinessCategories {
		cats = append(cats, CategorySummary{BusinessCategory: c, Count: h.content.CountBusinesses(c.ID)})
	}
	h.renderer.MustRender(w, r, http.StatusOK, tmplBusinesses, render.TemplateData{
		Title: "Emprendimientos",
		Data: BusinessesData{
			Categories: cats,
			Featured:   h.content.FeaturedBusinesses(featuredCount),
		},
	})
}

// BusinessCategoryData is one directory section's content.
type BusinessCategoryData struct {
	Category   model.BusinessCategory
	Query      string
	Businesses []model.Business
}

// BusinessCategory renders one directory section, optionally filtered by
// the q query parameter.
func (h *PagesHandler) BusinessCategory(w http.ResponseWriter, r *http.Request) {
	cat, ok := h.requireBusinessCategory(w, r)
	if !ok {
		return
	}
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	h.renderer.MustRender(w, r, http.StatusOK, tmplBusinessCategory, render.TemplateData{
		Title: cat.Name,
		Data: BusinessCategoryData{
			Category:   cat,
			Query:      query,
			Businesses: h.content.BusinessesByCategory(cat.ID, query),
		},
	})
}

// BusinessDetailData is a business page's content.
type BusinessDetailData struct {
	Category model.BusinessCategory
	Business model.Business
}

// BusinessDetail renders one business of a section.
func (h *PagesHandler) BusinessDetail(w http.ResponseWriter, r *http.Request) {
	cat, ok := h.requireBusinessCategory(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "negocioId")
	b, ok := requireContent(w, r, h.renderer,
		NotFoundData{Message: msgBusinessNotFound, BackURL: RouteBusinesses + "/" + cat.ID, BackLabel: "Volver a " + cat.Name},
		func() (model.Business, error) { return h.content.GetBusiness(cat.ID, id) })
	if !ok {
		return
	}
	h.renderer.MustRender(w, r, http.StatusOK, tmplBusinessDetail, render.TemplateData{
		Title: b.Name,
		Data:  BusinessDetailData{Category: cat, Business: b},
	})
}

func (h *PagesHandler) requireBusinessCategory(w http.ResponseWriter, r *http.Request) (model.BusinessCategory, bool) {
	slug := chi.URLParam(r, "categoria")
	var (
		cat model.BusinessCategory
		ok  bool
	)
	if util.IsValidSlug(slug) {
		cat, ok = model.FindBusinessCategory(slug)
	}
	if !ok {
		renderNotFound(w, r, h.renderer, NotFoundData{
			Message:   msgCategoryNotFound,
			BackURL:   RouteBusinesses,
			BackLabel: "Volver a emprendimientos",
		})
	}
	return cat, ok
}

// Profile renders the profile page.
func (h *PagesHandler) Profile(w http.ResponseWriter, r *http.Request) {
	h.renderer.MustRender(w, r, http.StatusOK, tmplProfile, render.TemplateData{
		Title: "Mi Perfil",
	})
}

// SetTheme stores the client's theme preference.
func (h *PagesHandler) SetTheme(w http.ResponseWriter, r *http.Request) {
	c := middleware.GetClient(r)
	if c == nil {
		http.Redirect(w, r, RouteLogin, http.StatusSeeOther)
		return
	}
	if !parseFormOrRedirect(w, r, RouteProfile) {
		return
	}

	if err := c.SetTheme(r.Context(), r.FormValue("theme")); err != nil {
		if !errors.Is(err, client.ErrInvalidTheme) {
			slog.Error("failed to save theme", "error", err, "client_id", c.ID, "category", model.EventCategoryStorage)
		}
		toastError(w, r, RouteProfile, msgThemeError)
		return
	}
	toastAndRedirect(w, r, RouteProfile, msgThemeSaved, toast.Success)
}

// Pending renders the placeholder shown while a client's session is still
// being restored. The page reloads itself.
func Pending(renderer *render.Renderer) middleware.PendingFunc {
	return func(w http.ResponseWriter, r *http.Request, message string) {
		w.Header().Set("Cache-Control", "no-store")
		w.Header().Set("Refresh", "1")
		renderer.MustRender(w, r, http.StatusOK, tmplPending, render.TemplateData{
			Title: message,
			Data:  message,
		})
	}
}

// NotFound sends unmatched routes home.
func NotFound(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, RouteRoot, http.StatusSeeOther)
}
