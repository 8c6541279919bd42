// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/lobos/internal/storage"
)

func decodeCart(t *testing.T, body string) CartResponse {
	t.Helper()
	var cart CartResponse
	require.NoError(t, json.Unmarshal([]byte(body), &cart))
	return cart
}

func TestCartJSONFlow(t *testing.T) {
	app := newTestApp(t)
	app.login("socio@cdglobos.com")

	_, body := app.postJSON(RouteCart, url.Values{"product_id": {"prod-1"}})
	cart := decodeCart(t, body)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 1, cart.ItemCount)
	assert.InDelta(t, 35000.0, cart.Total, 0.001)

	// Adding the same product merges into one line item.
	_, body = app.postJSON(RouteCart, url.Values{"product_id": {"prod-1"}, "quantity": {"2"}})
	cart = decodeCart(t, body)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)

	_, body = app.postJSON(RouteCart, url.Values{"product_id": {"prod-3"}})
	cart = decodeCart(t, body)
	assert.Len(t, cart.Items, 2)
	assert.Equal(t, 4, cart.ItemCount)
	assert.InDelta(t, 3*35000.0+9500.0, cart.Total, 0.001)

	_, body = app.postJSON("/carrito/prod-1/cantidad", url.Values{"quantity": {"1"}})
	cart = decodeCart(t, body)
	assert.Equal(t, 2, cart.ItemCount)

	_, body = app.postJSON("/carrito/prod-1/cantidad", url.Values{"quantity": {"0"}})
	cart = decodeCart(t, body)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "prod-3", cart.Items[0].ID)

	_, body = app.postJSON(RouteCartToggle, nil)
	assert.True(t, decodeCart(t, body).IsOpen)

	_, body = app.postJSON("/carrito/prod-3/eliminar", nil)
	assert.Empty(t, decodeCart(t, body).Items)

	_, body = app.postJSON(RouteCart, url.Values{"product_id": {"prod-2"}})
	assert.Len(t, decodeCart(t, body).Items, 1)
	_, body = app.postJSON(RouteCartClear, nil)
	cart = decodeCart(t, body)
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.Total)
}

func TestCartPanelOpenState(t *testing.T) {
	app := newTestApp(t)
	app.login("socio@cdglobos.com")

	tests := []struct {
		name     string
		form     url.Values
		wantOpen bool
	}{
		{name: "open explicitly", form: url.Values{"open": {"true"}}, wantOpen: true},
		{name: "open again stays open", form: url.Values{"open": {"true"}}, wantOpen: true},
		{name: "close explicitly", form: url.Values{"open": {"false"}}, wantOpen: false},
		{name: "close again stays closed", form: url.Values{"open": {"false"}}, wantOpen: false},
		{name: "toggle without value", form: nil, wantOpen: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := app.postJSON(RouteCartToggle, tt.form)
			require.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, tt.wantOpen, decodeCart(t, body).IsOpen)
		})
	}

	resp, _ := app.postJSON(RouteCartToggle, url.Values{"open": {"quizas"}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCartUnknownProduct(t *testing.T) {
	app := newTestApp(t)
	app.login("socio@cdglobos.com")

	resp, body := app.postJSON(RouteCart, url.Values{"product_id": {"nope"}})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, msgProductNotFound)
}

func TestCartFormFlowRedirectsBack(t *testing.T) {
	app := newTestApp(t)
	app.login("socio@cdglobos.com")

	form := url.Values{"product_id": {"prod-2"}}
	req, err := http.NewRequest(http.MethodPost, app.srv.URL+RouteCart, strings.NewReader(form.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Referer", app.srv.URL+RouteNews)
	resp, _ := app.do(req)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, RouteNews, resp.Header.Get("Location"))

	_, body := app.get(RouteRoot)
	assert.Contains(t, body, msgAddedToCart)
}

func TestCartPersistsAcrossEviction(t *testing.T) {
	app := newTestApp(t)
	app.login("socio@cdglobos.com")

	app.postJSON(RouteCart, url.Values{"product_id": {"prod-1"}, "quantity": {"2"}})

	app.registry.Wait()
	app.registry.EvictIdle(-time.Second)
	require.Zero(t, app.registry.Len())

	_, body := app.getJSON(RouteCart)
	cart := decodeCart(t, body)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.False(t, cart.IsOpen)
}

func TestCorruptCartStartsEmpty(t *testing.T) {
	app := newTestApp(t)
	app.login("socio@cdglobos.com")
	app.postJSON(RouteCart, url.Values{"product_id": {"prod-1"}})
	app.registry.Wait()

	// Corrupt every stored cart, then force a rebuild.
	ctx := context.Background()
	for _, ns := range app.backend.Namespaces() {
		require.NoError(t, app.backend.Set(ctx, ns, storage.KeyCart, "{not json"))
	}
	app.registry.EvictIdle(-time.Second)

	_, body := app.getJSON(RouteCart)
	assert.Empty(t, decodeCart(t, body).Items)
}
