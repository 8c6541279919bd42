// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/olegiv/lobos/internal/content"
	"github.com/olegiv/lobos/internal/middleware"
	"github.com/olegiv/lobos/internal/model"
	"github.com/olegiv/lobos/internal/render"
	"github.com/olegiv/lobos/internal/toast"
)

// notify hands a message to the request client's toast queue.
func notify(r *http.Request, message string, severity toast.Severity) {
	c := middleware.GetClient(r)
	if c == nil {
		return
	}
	switch severity {
	case toast.Success:
		c.Toasts.Success(message)
	case toast.Error:
		c.Toasts.Error(message)
	case toast.Warning:
		c.Toasts.Warning(message)
	default:
		c.Toasts.Info(message)
	}
}

// toastAndRedirect queues a toast and redirects to the given URL.
// Uses http.StatusSeeOther (303) for POST redirects.
func toastAndRedirect(w http.ResponseWriter, r *http.Request, url, message string, severity toast.Severity) {
	notify(r, message, severity)
	http.Redirect(w, r, url, http.StatusSeeOther)
}

// toastError queues an error toast and redirects to the given URL.
func toastError(w http.ResponseWriter, r *http.Request, url, message string) {
	toastAndRedirect(w, r, url, message, toast.Error)
}

// toastSuccess queues a success toast and redirects to the given URL.
func toastSuccess(w http.ResponseWriter, r *http.Request, url, message string) {
	toastAndRedirect(w, r, url, message, toast.Success)
}

// parseFormOrRedirect parses the request form and redirects with an error toast on failure.
// Returns true if parsing succeeded, false if it failed (and redirect was performed).
func parseFormOrRedirect(w http.ResponseWriter, r *http.Request, redirectURL string) bool {
	if err := r.ParseForm(); err != nil {
		toastError(w, r, redirectURL, msgInvalidForm)
		return false
	}
	return true
}

// NotFoundData is the not-found placeholder's content.
type NotFoundData struct {
	Message   string
	BackURL   string
	BackLabel string
}

// renderNotFound renders the not-found placeholder with a link back to a listing.
func renderNotFound(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, data NotFoundData) {
	renderer.MustRender(w, r, http.StatusNotFound, tmplNotFound, render.TemplateData{
		Title: data.Message,
		Data:  data,
	})
}

// requireContent fetches a content item. On content.ErrNotFound it renders
// the not-found placeholder; other errors become a 500. Returns the item and
// true if successful, or zero value and false if a response was written.
func requireContent[T any](
	w http.ResponseWriter,
	r *http.Request,
	renderer *render.Renderer,
	notFound NotFoundData,
	queryFn func() (T, error),
) (T, bool) {
	var zero T
	item, err := queryFn()
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			renderNotFound(w, r, renderer, notFound)
		} else {
			logAndInternalError(w, "failed to load content", "error", err, "path", r.URL.Path)
		}
		return zero, false
	}
	return item, true
}

// logAndHTTPError logs an error and writes an HTTP error response.
func logAndHTTPError(w http.ResponseWriter, message string, statusCode int, logMsg string, args ...any) {
	slog.Error(logMsg, append(args, "category", model.EventCategorySystem)...)
	http.Error(w, message, statusCode)
}

// logAndInternalError logs an error and writes a 500 Internal Server Error response.
func logAndInternalError(w http.ResponseWriter, logMsg string, args ...any) {
	logAndHTTPError(w, "Error interno del servidor", http.StatusInternalServerError, logMsg, args...)
}
