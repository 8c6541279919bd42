// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for client resolution,
// route guards, and request protection.
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/olegiv/lobos/internal/model"
	"github.com/olegiv/lobos/internal/session"
)

// Placeholder texts shown while a client's session is still being restored.
const (
	MsgCheckingAuth        = "Verificando autenticación..."
	MsgCheckingPermissions = "Verificando permisos..."
)

// Redirect targets of the guards.
const (
	LoginPath = "/login"
	HomePath  = "/"
)

// PendingFunc renders the placeholder page for a guarded route whose
// session is still loading.
type PendingFunc func(w http.ResponseWriter, r *http.Request, message string)

// GuardConfig configures RequireAuth and RequireAdmin.
type GuardConfig struct {
	// Wait is how long a guard blocks on a loading session before it
	// falls back to the pending placeholder. Zero renders the placeholder
	// immediately.
	Wait time.Duration

	// Pending renders the placeholder. Nil uses a minimal self-refreshing page.
	Pending PendingFunc
}

type guardDecision int

const (
	decisionAllow guardDecision = iota
	decisionPending
	decisionLogin
	decisionHome
)

// RequireAuth creates middleware that admits authenticated clients only.
// Unauthenticated clients are redirected to the login page; no return-to
// location is kept.
func RequireAuth(cfg GuardConfig) func(http.Handler) http.Handler {
	return guard(cfg, MsgCheckingAuth, false)
}

// RequireAdmin creates middleware that admits authenticated admins only.
// Unauthenticated clients go to the login page and other users to home.
func RequireAdmin(cfg GuardConfig) func(http.Handler) http.Handler {
	return guard(cfg, MsgCheckingPermissions, true)
}

func guard(cfg GuardConfig, pendingMsg string, needAdmin bool) func(http.Handler) http.Handler {
	pending := cfg.Pending
	if pending == nil {
		pending = defaultPending
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c := GetClient(r)
			if c == nil {
				http.Redirect(w, r, LoginPath, http.StatusSeeOther)
				return
			}

			awaitSession(r.Context(), c.Session, cfg.Wait)

			switch decide(c.Session, needAdmin) {
			case decisionPending:
				pending(w, r, pendingMsg)
			case decisionLogin:
				http.Redirect(w, r, LoginPath, http.StatusSeeOther)
			case decisionHome:
				user, _ := c.Session.User()
				slog.Warn("access denied",
					"status", http.StatusForbidden,
					"method", r.Method,
					"path", r.URL.Path,
					"user_id", user.ID,
					"user_role", user.Role,
					"category", model.EventCategoryAuth,
				)
				http.Redirect(w, r, HomePath, http.StatusSeeOther)
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}

// decide maps a session snapshot to a guard outcome.
func decide(s *session.Store, needAdmin bool) guardDecision {
	if s.IsLoading() {
		return decisionPending
	}
	if !s.IsAuthenticated() {
		return decisionLogin
	}
	if needAdmin && !s.IsAdmin() {
		return decisionHome
	}
	return decisionAllow
}

// awaitSession blocks until the session has finished loading, wait has
// elapsed, or ctx is done.
func awaitSession(ctx context.Context, s *session.Store, wait time.Duration) {
	if wait <= 0 || !s.IsLoading() {
		return
	}
	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-s.Ready():
	case <-timer.C:
	case <-ctx.Done():
	}
}

func defaultPending(w http.ResponseWriter, _ *http.Request, message string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Refresh", "1")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`<!DOCTYPE html><html lang="es"><head><meta charset="utf-8"><title>CDG LOBOS</title></head><body><p role="status">` + message + `</p></body></html>`))
}

