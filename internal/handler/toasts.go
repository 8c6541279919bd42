// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/lobos/internal/middleware"
	"github.com/olegiv/lobos/internal/toast"
)

// ToastHandler exposes the client's toast queue.
type ToastHandler struct{}

// NewToastHandler creates a new ToastHandler.
func NewToastHandler() *ToastHandler {
	return &ToastHandler{}
}

// List returns the pending toasts in enqueue order.
func (h *ToastHandler) List(w http.ResponseWriter, r *http.Request) {
	toasts := []toast.Toast{}
	if c := middleware.GetClient(r); c != nil {
		toasts = append(toasts, c.Toasts.List()...)
	}
	writeJSON(w, http.StatusOK, map[string]any{"toasts": toasts})
}

// Dismiss removes one toast. Unknown IDs are not an error.
func (h *ToastHandler) Dismiss(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		if wantsJSON(r) {
			writeJSONError(w, http.StatusBadRequest, "ID inválido")
			return
		}
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	dismissed := false
	if c := middleware.GetClient(r); c != nil {
		dismissed = c.Toasts.Dismiss(id)
	}

	if wantsJSON(r) {
		writeJSONSuccess(w, map[string]any{"dismissed": dismissed})
		return
	}
	http.Redirect(w, r, backURL(r, RouteRoot), http.StatusSeeOther)
}
