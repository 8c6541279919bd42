// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/lobos/internal/auth"
	"github.com/olegiv/lobos/internal/client"
	"github.com/olegiv/lobos/internal/storage"
	"github.com/olegiv/lobos/internal/testutil"
)

type sessionState int

const (
	stateLoading sessionState = iota
	stateAnonymous
	stateUser
	stateAdmin
)

func newTestClient(t *testing.T, state sessionState) *client.Client {
	t.Helper()
	ctx := context.Background()
	st := storage.Bind(storage.NewMemoryBackend(), "test")
	c := client.New("test", st, auth.NewMockProvider(), testutil.TestLoggerSilent(), 0)
	t.Cleanup(c.Toasts.Close)

	switch state {
	case stateLoading:
		c.Session.MarkLoading()
	case stateAnonymous:
		c.Session.Initialize(ctx)
	case stateUser:
		_, err := c.Session.Login(ctx, "socio@cdglobos.com", "password123")
		require.NoError(t, err)
	case stateAdmin:
		_, err := c.Session.Login(ctx, "admin@cdglobos.com", "password123")
		require.NoError(t, err)
	}

	return c
}

func serveGuarded(mw func(http.Handler) http.Handler, c *client.Client) (*httptest.ResponseRecorder, bool) {
	reached := false
	h := mw(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	if c != nil {
		req = req.WithContext(WithClient(req.Context(), c))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec, reached
}

func TestGuards(t *testing.T) {
	tests := []struct {
		name         string
		admin        bool
		state        sessionState
		wantReached  bool
		wantLocation string
		wantPending  string
	}{
		{"auth loading", false, stateLoading, false, "", MsgCheckingAuth},
		{"auth anonymous", false, stateAnonymous, false, LoginPath, ""},
		{"auth user", false, stateUser, true, "", ""},
		{"auth admin", false, stateAdmin, true, "", ""},
		{"admin loading", true, stateLoading, false, "", MsgCheckingPermissions},
		{"admin anonymous", true, stateAnonymous, false, LoginPath, ""},
		{"admin user", true, stateUser, false, HomePath, ""},
		{"admin admin", true, stateAdmin, true, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mw := RequireAuth(GuardConfig{})
			if tt.admin {
				mw = RequireAdmin(GuardConfig{})
			}

			rec, reached := serveGuarded(mw, newTestClient(t, tt.state))

			assert.Equal(t, tt.wantReached, reached)
			switch {
			case tt.wantLocation != "":
				assert.Equal(t, http.StatusSeeOther, rec.Code)
				assert.Equal(t, tt.wantLocation, rec.Header().Get("Location"))
			case tt.wantPending != "":
				assert.Equal(t, http.StatusOK, rec.Code)
				assert.Contains(t, rec.Body.String(), tt.wantPending)
				assert.Equal(t, "1", rec.Header().Get("Refresh"))
			default:
				assert.Equal(t, http.StatusOK, rec.Code)
			}
		})
	}
}

func TestGuard_NoClientRedirectsToLogin(t *testing.T) {
	rec, reached := serveGuarded(RequireAuth(GuardConfig{}), nil)
	assert.False(t, reached)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, LoginPath, rec.Header().Get("Location"))
}

func TestGuard_WaitsForSession(t *testing.T) {
	c := newTestClient(t, stateLoading)
	go func() {
		time.Sleep(20 * time.Millisecond)
		c.Session.Initialize(context.Background())
	}()

	rec, reached := serveGuarded(RequireAuth(GuardConfig{Wait: 5 * time.Second}), c)
	assert.False(t, reached)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, LoginPath, rec.Header().Get("Location"))
}

func TestGuard_WaitTimesOutToPending(t *testing.T) {
	c := newTestClient(t, stateLoading)

	start := time.Now()
	rec, reached := serveGuarded(RequireAdmin(GuardConfig{Wait: 30 * time.Millisecond}), c)
	assert.False(t, reached)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
	assert.Contains(t, rec.Body.String(), MsgCheckingPermissions)
}

func TestGuard_CustomPending(t *testing.T) {
	var got string
	cfg := GuardConfig{Pending: func(w http.ResponseWriter, _ *http.Request, message string) {
		got = message
		w.WriteHeader(http.StatusAccepted)
	}}

	rec, _ := serveGuarded(RequireAuth(cfg), newTestClient(t, stateLoading))
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, MsgCheckingAuth, got)
}

func TestGuard_LogoutRevokesAccess(t *testing.T) {
	c := newTestClient(t, stateAdmin)
	mw := RequireAdmin(GuardConfig{})

	_, reached := serveGuarded(mw, c)
	require.True(t, reached)

	c.Session.Logout(context.Background())

	rec, reached := serveGuarded(mw, c)
	assert.False(t, reached)
	assert.Equal(t, LoginPath, rec.Header().Get("Location"))
}

func TestDefaultPending(t *testing.T) {
	rec := httptest.NewRecorder()
	defaultPending(rec, httptest.NewRequest(http.MethodGet, "/", nil), MsgCheckingAuth)

	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/html"))
	assert.Contains(t, rec.Body.String(), `role="status"`)
}
