// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"io/fs"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/olegiv/lobos/internal/client"
	"github.com/olegiv/lobos/internal/content"
	"github.com/olegiv/lobos/internal/middleware"
	"github.com/olegiv/lobos/internal/render"
)

// defaultRequestTimeout bounds every request.
const defaultRequestTimeout = 30 * time.Second

// staticMaxAge is the Cache-Control max-age of embedded assets, in seconds.
const staticMaxAge = "86400"

// RouterConfig holds everything the HTTP surface needs.
type RouterConfig struct {
	Renderer *render.Renderer
	Content  *content.Repository
	Sessions *scs.SessionManager
	Registry *client.Registry
	StaticFS fs.FS

	// Health is optional; /health is not registered without it.
	Health *HealthHandler
	Events EventLister
	Jobs   JobRunner

	CSRF           middleware.CSRFConfig
	Security       middleware.SecurityHeadersConfig
	GuardWait      time.Duration
	AuthRateLimit  float64
	AuthBurst      int
	RequestTimeout time.Duration

	// Quiet disables the per-request access log.
	Quiet bool
}

// crudHandlers defines the handlers of an admin content editor.
type crudHandlers struct {
	List   http.HandlerFunc
	Create http.HandlerFunc
	Update http.HandlerFunc
	Delete http.HandlerFunc
}

// registerCRUD registers an editor's routes.
// Routes: GET base, POST base, POST base/{id}, POST base/{id}/eliminar
func registerCRUD(r chi.Router, base string, h crudHandlers) {
	r.Get(base, h.List)
	r.Post(base, h.Create)
	r.Post(base+RouteParamID, h.Update) // HTML forms can't send PUT
	r.Post(base+RouteParamID+RouteSuffixDelete, h.Delete)
}

// NewRouter builds the application's HTTP handler.
func NewRouter(cfg RouterConfig) http.Handler {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	authHandler := NewAuthHandler(cfg.Renderer)
	pagesHandler := NewPagesHandler(cfg.Renderer, cfg.Content)
	cartHandler := NewCartHandler(cfg.Content)
	toastHandler := NewToastHandler()
	adminHandler := NewAdminHandler(AdminConfig{
		Renderer: cfg.Renderer,
		Content:  cfg.Content,
		Events:   cfg.Events,
		Jobs:     cfg.Jobs,
		Clients:  cfg.Registry,
	})

	guard := middleware.GuardConfig{Wait: cfg.GuardWait, Pending: Pending(cfg.Renderer)}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	if !cfg.Quiet {
		r.Use(chimw.Logger)
	}
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(chimw.Timeout(timeout))
	r.Use(chimw.RedirectSlashes)
	r.Use(middleware.SecurityHeaders(cfg.Security))

	if cfg.StaticFS != nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(cfg.StaticFS)))
		r.With(chimw.SetHeader("Cache-Control", "public, max-age="+staticMaxAge)).Handle(RouteStatic, static)
	}
	if cfg.Health != nil {
		r.Get(RouteHealth, cfg.Health.Health)
		r.Get(RouteHealth+"/live", cfg.Health.Liveness)
		r.Get(RouteHealth+"/ready", cfg.Health.Readiness)
	}

	// Everything below belongs to a client.
	r.Group(func(r chi.Router) {
		r.Use(cfg.Sessions.LoadAndSave)
		r.Use(middleware.Client(cfg.Sessions, cfg.Registry))
		r.Use(middleware.CSRF(cfg.CSRF))

		// Public
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthRateLimit(cfg.AuthRateLimit, cfg.AuthBurst))
			r.Get(RouteLogin, authHandler.LoginForm)
			r.Post(RouteLogin, authHandler.Login)
			r.Get(RouteRegister, authHandler.RegisterForm)
			r.Post(RouteRegister, authHandler.Register)
		})

		// Toasts are readable and dismissable from every page, including login.
		r.Get(RouteToasts, toastHandler.List)
		r.Post(RouteToastDismiss, toastHandler.Dismiss)

		// Authenticated
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(guard))

			r.Get(RouteRoot, pagesHandler.Home)
			r.Get(RouteNews, pagesHandler.News)
			r.Get(RouteNewsID, pagesHandler.NewsDetail)
			r.Get(RouteSchedule, pagesHandler.Schedule)
			r.Get(RouteScheduleID, pagesHandler.MatchDetail)
			r.Get(RouteBusinesses, pagesHandler.Businesses)
			r.Get(RouteBusinessCategory, pagesHandler.BusinessCategory)
			r.Get(RouteBusinessDetail, pagesHandler.BusinessDetail)
			r.Get(RouteProfile, pagesHandler.Profile)
			r.Post(RouteProfileTheme, pagesHandler.SetTheme)
			r.Post(RouteLogout, authHandler.Logout)

			r.Get(RouteCart, cartHandler.Show)
			r.Post(RouteCart, cartHandler.Add)
			r.Post(RouteCartToggle, cartHandler.Toggle)
			r.Post(RouteCartClear, cartHandler.Clear)
			r.Post(RouteCartQuantity, cartHandler.UpdateQuantity)
			r.Post(RouteCartRemove, cartHandler.Remove)
		})

		// Admin
		r.Route(RouteAdmin, func(r chi.Router) {
			r.Use(middleware.RequireAdmin(guard))

			r.Get(RouteRoot, adminHandler.Dashboard)
			r.Post(RouteAdminJobRun, adminHandler.RunJob)

			registerCRUD(r, RouteAdminNews, crudHandlers{
				List: adminHandler.NewsList, Create: adminHandler.NewsCreate,
				Update: adminHandler.NewsUpdate, Delete: adminHandler.NewsDelete,
			})
			r.Post(RouteAdminNews+RouteParamID+RouteSuffixPin, adminHandler.NewsTogglePin)

			registerCRUD(r, RouteAdminMatches, crudHandlers{
				List: adminHandler.MatchesList, Create: adminHandler.MatchCreate,
				Update: adminHandler.MatchUpdate, Delete: adminHandler.MatchDelete,
			})

			registerCRUD(r, RouteAdminBusinesses, crudHandlers{
				List: adminHandler.BusinessesList, Create: adminHandler.BusinessCreate,
				Update: adminHandler.BusinessUpdate, Delete: adminHandler.BusinessDelete,
			})
			r.Post(RouteAdminBusinesses+RouteParamID+RouteSuffixFeature, adminHandler.BusinessToggleFeatured)

			registerCRUD(r, RouteAdminProducts, crudHandlers{
				List: adminHandler.ProductsList, Create: adminHandler.ProductCreate,
				Update: adminHandler.ProductUpdate, Delete: adminHandler.ProductDelete,
			})

			registerCRUD(r, RouteAdminUsers, crudHandlers{
				List: adminHandler.UsersList, Create: adminHandler.UserCreate,
				Update: adminHandler.UserUpdate, Delete: adminHandler.UserDelete,
			})
			r.Post(RouteAdminUsers+RouteParamID+RouteSuffixActive, adminHandler.UserToggleActive)
		})
	})

	r.NotFound(NotFound)

	return r
}
