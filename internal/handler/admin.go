// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/lobos/internal/content"
	"github.com/olegiv/lobos/internal/model"
	"github.com/olegiv/lobos/internal/render"
	"github.com/olegiv/lobos/internal/scheduler"
	"github.com/olegiv/lobos/internal/store"
)

// dashboardEventLimit is how many recent events the dashboard shows.
const dashboardEventLimit = 20

// EventLister reads the operator event log.
type EventLister interface {
	ListRecentEvents(ctx context.Context, limit int64) ([]store.Event, error)
}

// JobRunner lists and triggers scheduled jobs.
type JobRunner interface {
	Jobs() []scheduler.JobInfo
	Trigger(name string) error
}

// ClientCounter reports how many clients are held in memory.
type ClientCounter interface {
	Len() int
}

// AdminHandler handles the admin dashboard and the content editors.
type AdminHandler struct {
	renderer *render.Renderer
	content  *content.Repository
	events   EventLister
	jobs     JobRunner
	clients  ClientCounter
}

// AdminConfig holds the AdminHandler's dependencies. Events, Jobs and
// Clients are optional.
type AdminConfig struct {
	Renderer *render.Renderer
	Content  *content.Repository
	Events   EventLister
	Jobs     JobRunner
	Clients  ClientCounter
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(cfg AdminConfig) *AdminHandler {
	return &AdminHandler{
		renderer: cfg.Renderer,
		content:  cfg.Content,
		events:   cfg.Events,
		jobs:     cfg.Jobs,
		clients:  cfg.Clients,
	}
}

// DashboardData is the admin dashboard content.
type DashboardData struct {
	Stats   content.DashboardStats
	Events  []store.Event
	Jobs    []scheduler.JobInfo
	Clients int
}

// Dashboard renders entity counts, scheduled jobs and recent events.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	data := DashboardData{Stats: h.content.Stats()}

	if h.events != nil {
		events, err := h.events.ListRecentEvents(r.Context(), dashboardEventLimit)
		if err != nil {
			slog.Error("failed to list events", "error", err, "category", model.EventCategorySystem)
		}
		data.Events = events
	}
	if h.jobs != nil {
		data.Jobs = h.jobs.Jobs()
	}
	if h.clients != nil {
		data.Clients = h.clients.Len()
	}

	h.renderer.MustRender(w, r, http.StatusOK, tmplAdminDashboard, render.TemplateData{
		Title: "Panel de Administración",
		Data:  data,
	})
}

// RunJob triggers a scheduled job immediately.
func (h *AdminHandler) RunJob(w http.ResponseWriter, r *http.Request) {
	if h.jobs == nil {
		toastError(w, r, redirectAdmin, msgJobNotFound)
		return
	}

	name := chi.URLParam(r, "name")
	if err := h.jobs.Trigger(name); err != nil {
		if errors.Is(err, scheduler.ErrJobNotFound) {
			toastError(w, r, redirectAdmin, msgJobNotFound)
			return
		}
		toastError(w, r, redirectAdmin, "Error: "+err.Error())
		return
	}
	toastSuccess(w, r, redirectAdmin, msgJobTriggered)
}

// adminListParams reads the search and edit query parameters of an editor page.
func adminListParams(r *http.Request) (query, editID string) {
	q := r.URL.Query()
	return strings.TrimSpace(q.Get("q")), q.Get("edit")
}

// deleteAndRedirect runs del and reports the outcome as a toast.
func deleteAndRedirect(w http.ResponseWriter, r *http.Request, redirect, entity string, del func(id string) error) {
	id := chi.URLParam(r, "id")
	if err := del(id); err != nil {
		if errors.Is(err, content.ErrNotFound) {
			toastError(w, r, redirect, msgNotFound)
			return
		}
		logAndInternalError(w, "failed to delete "+entity, "error", err, "id", id)
		return
	}
	slog.Info(entity+" deleted", "id", id, "category", model.EventCategoryContent)
	toastSuccess(w, r, redirect, msgDeleted)
}

// toggleAndRedirect runs toggle and reports not-found as a toast.
func toggleAndRedirect[T any](w http.ResponseWriter, r *http.Request, redirect string, toggle func(id string) (T, error)) {
	id := chi.URLParam(r, "id")
	if _, err := toggle(id); err != nil {
		if errors.Is(err, content.ErrNotFound) {
			toastError(w, r, redirect, msgNotFound)
			return
		}
		logAndInternalError(w, "failed to toggle", "error", err, "id", id)
		return
	}
	toastSuccess(w, r, redirect, msgSaved)
}

// updateAndRedirect runs update and reports the outcome as a toast.
func updateAndRedirect[T any](w http.ResponseWriter, r *http.Request, redirect, entity string, update func(id string) (T, error)) {
	id := chi.URLParam(r, "id")
	if _, err := update(id); err != nil {
		if errors.Is(err, content.ErrNotFound) {
			toastError(w, r, redirect, msgNotFound)
			return
		}
		logAndInternalError(w, "failed to update "+entity, "error", err, "id", id)
		return
	}
	slog.Info(entity+" updated", "id", id, "category", model.EventCategoryContent)
	toastSuccess(w, r, redirect, msgSaved)
}
