// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/lobos/internal/model"
	"github.com/olegiv/lobos/internal/scheduler"
	"github.com/olegiv/lobos/internal/store"
)

type fakeJobs struct {
	ran []string
}

func (f *fakeJobs) Jobs() []scheduler.JobInfo {
	return []scheduler.JobInfo{{Name: "evict-idle-clients", Description: "Evict idle clients", Schedule: "@every 1m"}}
}

func (f *fakeJobs) Trigger(name string) error {
	if name != "evict-idle-clients" {
		return fmt.Errorf("trigger %q: %w", name, scheduler.ErrJobNotFound)
	}
	f.ran = append(f.ran, name)
	return nil
}

type fakeEvents struct{}

func (fakeEvents) ListRecentEvents(context.Context, int64) ([]store.Event, error) {
	return []store.Event{{ID: 1, Level: "WARN", Category: model.EventCategoryStorage, Message: "error loading cart", CreatedAt: time.Now()}}, nil
}

func newAdminApp(t *testing.T) (*testApp, *fakeJobs) {
	t.Helper()
	jobs := &fakeJobs{}
	app := newTestApp(t, func(cfg *RouterConfig) {
		cfg.Jobs = jobs
		cfg.Events = fakeEvents{}
	})
	app.login("admin@cdglobos.com")
	return app, jobs
}

func TestAdminDashboard(t *testing.T) {
	app, _ := newAdminApp(t)

	resp, body := app.get(RouteAdmin)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "evict-idle-clients")
	assert.Contains(t, body, "error loading cart")
	assert.Contains(t, body, "1 clientes en memoria")
}

func TestAdminRunJob(t *testing.T) {
	app, jobs := newAdminApp(t)

	resp, _ := app.post("/admin/tareas/evict-idle-clients/ejecutar", nil)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, RouteAdmin, resp.Header.Get("Location"))
	assert.Equal(t, []string{"evict-idle-clients"}, jobs.ran)

	app.post("/admin/tareas/nope/ejecutar", nil)
	_, body := app.get(RouteAdmin)
	assert.Contains(t, body, msgJobTriggered)
	assert.Contains(t, body, msgJobNotFound)
}

func TestAdminPagesRender(t *testing.T) {
	app, _ := newAdminApp(t)

	tests := []struct {
		path string
		want string
	}{
		{"/admin/noticias", "Cena anual del club"},
		{"/admin/noticias?q=cena", "Cena anual del club"},
		{"/admin/noticias?edit=2", "Guardar cambios"},
		{"/admin/programacion", "Atlético Norte"},
		{"/admin/programacion?edit=1", "Atlético Norte"},
		{"/admin/negocios", "Parrilla El Lobo"},
		{"/admin/negocios?edit=1", "La Pizzería de Don Pepe"},
		{"/admin/productos", "Camiseta titular 2025"},
		{"/admin/productos?edit=prod-1", "35000"},
		{"/admin/usuarios", "María García"},
		{"/admin/usuarios?role=admin", "Carlos Admin"},
		{"/admin/usuarios?edit=user-1", "Juan Pérez"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, body := app.get(tt.path)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Contains(t, body, tt.want)
		})
	}

	_, body := app.get("/admin/noticias?q=cena")
	assert.NotContains(t, body, "Gran victoria")
	_, body = app.get("/admin/usuarios?role=admin")
	assert.NotContains(t, body, "Juan Pérez")
}

func TestAdminEditUnknownRedirects(t *testing.T) {
	app, _ := newAdminApp(t)

	for _, p := range []string{"/admin/noticias", "/admin/programacion", "/admin/negocios", "/admin/productos", "/admin/usuarios"} {
		resp, _ := app.get(p + "?edit=missing")
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode, p)
		assert.Equal(t, p, resp.Header.Get("Location"), p)
	}
}

func TestAdminNewsCRUD(t *testing.T) {
	app, _ := newAdminApp(t)
	before := len(app.content.ListNews())

	resp, body := app.post("/admin/noticias", url.Values{"title": {""}, "category": {"Otra"}})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body, "El título es requerido")
	assert.Contains(t, body, "Categoría inválida")
	assert.Len(t, app.content.ListNews(), before)

	resp, _ = app.post("/admin/noticias", url.Values{
		"title":       {"Torneo de invierno"},
		"description": {"Inscripciones abiertas"},
		"content":     {"**Importante**"},
		"category":    {"Eventos"},
		"is_new":      {"on"},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/admin/noticias", resp.Header.Get("Location"))

	items := app.content.SearchNews("Torneo de invierno")
	require.Len(t, items, 1)
	created := items[0]
	assert.Equal(t, "Admin", created.Author)
	assert.True(t, created.IsNew)
	assert.False(t, created.IsPinned)

	resp, _ = app.post("/admin/noticias/"+created.ID, url.Values{
		"title":       {"Torneo de invierno 2026"},
		"description": {"Inscripciones abiertas"},
		"category":    {"Eventos"},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	updated, err := app.content.GetNews(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Torneo de invierno 2026", updated.Title)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	app.post("/admin/noticias/"+created.ID+"/fijar", nil)
	pinned, err := app.content.GetNews(created.ID)
	require.NoError(t, err)
	assert.True(t, pinned.IsPinned)
	assert.Equal(t, created.ID, app.content.ListNews()[0].ID)

	app.post("/admin/noticias/"+created.ID+"/eliminar", nil)
	_, err = app.content.GetNews(created.ID)
	assert.Error(t, err)

	resp, _ = app.post("/admin/noticias/missing/eliminar", nil)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	_, body = app.get("/admin/noticias")
	assert.Contains(t, body, msgNotFound)

	// Edits are visible on the public pages.
	resp, _ = app.get("/noticias/" + created.ID)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAdminMatchesCRUD(t *testing.T) {
	app, _ := newAdminApp(t)

	resp, body := app.post("/admin/programacion", url.Values{
		"home_team": {"CDG LOBOS"},
		"away_team": {"Sportivo Laguna"},
		"date":      {"15/08/2026"},
		"time":      {"25:00"},
		"category":  {"2013"},
		"status":    {model.MatchStatusUpcoming},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body, "Fecha inválida")
	assert.Contains(t, body, "Hora inválida")

	resp, _ = app.post("/admin/programacion", url.Values{
		"home_team":  {"CDG LOBOS"},
		"away_team":  {"Sportivo Laguna"},
		"date":       {"2026-08-15"},
		"time":       {"10:30"},
		"location":   {"Cancha Municipal"},
		"tournament": {"Liga"},
		"category":   {"2013"},
		"status":     {model.MatchStatusUpcoming},
		"has_callup": {"on"},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	found := app.content.SearchMatches("Sportivo Laguna")
	require.Len(t, found, 1)
	m := found[0]
	assert.True(t, m.HasCallup)
	assert.Equal(t, "2013", m.Category)

	_, body = app.get("/programacion?categoria=2013")
	assert.Contains(t, body, "Sportivo Laguna")

	resp, _ = app.post("/admin/programacion/"+m.ID, url.Values{
		"home_team": {"CDG LOBOS"},
		"away_team": {"Sportivo Laguna"},
		"date":      {"2026-08-15"},
		"time":      {"10:30"},
		"category":  {"2013"},
		"status":    {model.MatchStatusFinished},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	got, err := app.content.GetMatch(m.ID)
	require.NoError(t, err)
	assert.Equal(t, model.MatchStatusFinished, got.Status)

	app.post("/admin/programacion/"+m.ID+"/eliminar", nil)
	_, err = app.content.GetMatch(m.ID)
	assert.Error(t, err)
}

func TestAdminBusinessesCRUD(t *testing.T) {
	app, _ := newAdminApp(t)

	resp, body := app.post("/admin/negocios", url.Values{
		"name":     {"Kiosco"},
		"category": {"restaurantes"},
		"rating":   {"7"},
		"phone":    {"abc"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body, "La calificación debe estar entre 0 y 5")
	assert.Contains(t, body, msgPhoneInvalid)

	resp, _ = app.post("/admin/negocios", url.Values{
		"name":        {"Heladería Polar"},
		"description": {"Helados artesanales"},
		"category":    {"restaurantes"},
		"rating":      {"4.5"},
		"hours_open":  {"10:00"},
		"hours_close": {"23:00"},
		"is_open":     {"on"},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	found := app.content.SearchBusinesses("Heladería Polar")
	require.Len(t, found, 1)
	b := found[0]
	require.NotNil(t, b.Rating)
	assert.InDelta(t, 4.5, *b.Rating, 0.001)
	assert.False(t, b.IsFeatured)

	resp, _ = app.get("/emprendimientos/restaurantes/" + b.ID)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	app.post("/admin/negocios/"+b.ID+"/destacar", nil)
	got, err := app.content.GetBusiness("restaurantes", b.ID)
	require.NoError(t, err)
	assert.True(t, got.IsFeatured)

	resp, _ = app.post("/admin/negocios/"+b.ID, url.Values{
		"name":     {"Heladería Polar"},
		"category": {"restaurantes"},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	got, err = app.content.GetBusiness("restaurantes", b.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Rating)

	app.post("/admin/negocios/"+b.ID+"/eliminar", nil)
	assert.Empty(t, app.content.SearchBusinesses("Heladería Polar"))
}

func TestAdminProductsCRUD(t *testing.T) {
	app, _ := newAdminApp(t)

	resp, body := app.post("/admin/productos", url.Values{"name": {"Gorra"}, "price": {"-1"}, "stock": {"x"}})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body, "Precio inválido")
	assert.Contains(t, body, "Stock inválido")

	resp, _ = app.post("/admin/productos", url.Values{
		"name":     {"Gorra oficial"},
		"price":    {"12000"},
		"stock":    {"10"},
		"category": {"Accesorios"},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	found := app.content.SearchProducts("Gorra oficial")
	require.Len(t, found, 1)
	p := found[0]
	assert.InDelta(t, 12000.0, p.Price, 0.001)
	assert.Equal(t, 10, p.Stock)

	// New products can be bought right away.
	_, cartBody := app.postJSON(RouteCart, url.Values{"product_id": {p.ID}})
	assert.Len(t, decodeCart(t, cartBody).Items, 1)

	resp, _ = app.post("/admin/productos/"+p.ID, url.Values{"name": {"Gorra oficial"}, "price": {"13000"}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	got, err := app.content.GetProduct(p.ID)
	require.NoError(t, err)
	assert.InDelta(t, 13000.0, got.Price, 0.001)

	app.post("/admin/productos/"+p.ID+"/eliminar", nil)
	_, err = app.content.GetProduct(p.ID)
	assert.Error(t, err)

	// The cart keeps its copy of a deleted product.
	_, cartBody = app.getJSON(RouteCart)
	assert.Len(t, decodeCart(t, cartBody).Items, 1)
}

func TestAdminUsersCRUD(t *testing.T) {
	app, _ := newAdminApp(t)
	stats := app.content.MemberStats()

	resp, body := app.post("/admin/usuarios", url.Values{"name": {"Pablo"}, "email": {"pablo"}, "role": {"editor"}})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body, msgEmailInvalid)
	assert.Contains(t, body, "Rol inválido")

	resp, _ = app.post("/admin/usuarios", url.Values{
		"name":      {"Pablo Díaz"},
		"email":     {"pablo@example.com"},
		"role":      {model.RoleAdmin},
		"is_active": {"on"},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, stats.Total+1, app.content.MemberStats().Total)
	assert.Equal(t, stats.Admins+1, app.content.MemberStats().Admins)

	found := app.content.SearchMembers("pablo@example.com", "")
	require.Len(t, found, 1)
	m := found[0]

	app.post("/admin/usuarios/"+m.ID+"/estado", nil)
	got, err := app.content.GetMember(m.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	resp, _ = app.post("/admin/usuarios/"+m.ID, url.Values{
		"name":  {"Pablo Díaz"},
		"email": {"pablo@example.com"},
		"role":  {model.RoleUser},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	got, err = app.content.GetMember(m.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RoleUser, got.Role)

	app.post("/admin/usuarios/"+m.ID+"/eliminar", nil)
	assert.Equal(t, stats.Total, app.content.MemberStats().Total)
}
