// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package render renders the portal's html/template pages. Every page is
// wrapped in a layout that also shows the client's toasts and, for member
// pages, the cart panel.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/olegiv/lobos/internal/middleware"
	"github.com/olegiv/lobos/internal/model"
	"github.com/olegiv/lobos/internal/toast"
)

// Renderer handles template rendering with caching.
type Renderer struct {
	templates map[string]*template.Template
	isDev     bool
	now       func() time.Time
	markdown  goldmark.Markdown
	sanitizer *bluemonday.Policy
}

// Config holds renderer configuration.
type Config struct {
	TemplatesFS fs.FS
	IsDev       bool

	// Now overrides the clock used for relative dates.
	Now func() time.Time
}

// layoutSets maps each template directory to the layout its pages use.
var layoutSets = []struct {
	dir    string
	layout string
}{
	{"pages", "layouts/main.html"},
	{"auth", "layouts/auth.html"},
	{"admin", "layouts/admin.html"},
}

const baseLayout = "layouts/base.html"

// New creates a new Renderer with parsed templates.
func New(cfg Config) (*Renderer, error) {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	r := &Renderer{
		templates: make(map[string]*template.Template),
		isDev:     cfg.IsDev,
		now:       now,
		markdown:  goldmark.New(goldmark.WithExtensions(extension.GFM)),
		sanitizer: bluemonday.UGCPolicy(),
	}

	if err := r.parseTemplates(cfg.TemplatesFS); err != nil {
		return nil, err
	}

	return r, nil
}

// parseTemplates parses all templates from the filesystem.
func (r *Renderer) parseTemplates(templatesFS fs.FS) error {
	partials, err := r.getTemplateFiles(templatesFS, "partials")
	if err != nil {
		return fmt.Errorf("getting partials: %w", err)
	}

	for _, set := range layoutSets {
		pages, err := r.getTemplateFiles(templatesFS, set.dir)
		if err != nil {
			return fmt.Errorf("getting %s templates: %w", set.dir, err)
		}

		for _, tmplPath := range pages {
			name := set.dir + "/" + strings.TrimSuffix(path.Base(tmplPath), ".html")

			// Parse in order: base layout, section layout, partials, page template
			files := []string{baseLayout, set.layout}
			files = append(files, partials...)
			files = append(files, tmplPath)

			tmpl, err := template.New("").Funcs(r.templateFuncs()).ParseFS(templatesFS, files...)
			if err != nil {
				return fmt.Errorf("parsing template %s: %w", name, err)
			}

			r.templates[name] = tmpl
		}
	}

	return nil
}

// getTemplateFiles returns all .html files in a directory.
func (r *Renderer) getTemplateFiles(templatesFS fs.FS, dir string) ([]string, error) {
	var files []string

	entries, err := fs.ReadDir(templatesFS, dir)
	if err != nil {
		return nil, err
	}

	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".html") {
			files = append(files, path.Join(dir, entry.Name()))
		}
	}

	return files, nil
}

// Has reports whether a template with the given name was parsed.
func (r *Renderer) Has(name string) bool {
	_, ok := r.templates[name]
	return ok
}

// CartView is the cart panel's snapshot.
type CartView struct {
	Items []model.LineItem
	Total float64
	Count int
	Open  bool
}

// TemplateData holds data passed to templates.
type TemplateData struct {
	Title string
	Data  any

	// Form echoes submitted values back into a form; Errors holds
	// per-field validation messages.
	Form   map[string]string
	Errors map[string]string

	CurrentPath string
	CurrentYear int
	IsDev       bool

	User    *model.User
	IsAdmin bool
	Theme   string
	Toasts  []toast.Toast
	Cart    CartView
}

// Render renders a template with status 200.
func (r *Renderer) Render(w http.ResponseWriter, req *http.Request, name string, data TemplateData) error {
	return r.RenderStatus(w, req, http.StatusOK, name, data)
}

// RenderStatus renders a template with the given status code. Client state
// (user, toasts, cart, theme) is filled in from the request context.
func (r *Renderer) RenderStatus(w http.ResponseWriter, req *http.Request, status int, name string, data TemplateData) error {
	tmpl, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("template %s not found", name)
	}

	data.CurrentYear = r.now().Year()
	data.CurrentPath = req.URL.Path
	data.IsDev = r.isDev
	r.fillClient(req, &data)

	// Render to buffer first to catch errors
	buf := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(buf, "base", data); err != nil {
		return fmt.Errorf("executing template %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
	return nil
}

// MustRender renders a template and turns a failure into a logged 500.
func (r *Renderer) MustRender(w http.ResponseWriter, req *http.Request, status int, name string, data TemplateData) {
	if err := r.RenderStatus(w, req, status, name, data); err != nil {
		slog.Error("failed to render template", "template", name, "error", err, "category", model.EventCategorySystem)
		http.Error(w, "Error interno del servidor", http.StatusInternalServerError)
	}
}

func (r *Renderer) fillClient(req *http.Request, data *TemplateData) {
	data.Theme = "light"

	c := middleware.GetClient(req)
	if c == nil {
		return
	}

	if user, ok := c.Session.User(); ok {
		data.User = &user
		data.IsAdmin = user.IsAdmin()
	}
	data.Theme = c.Theme(req.Context())
	data.Toasts = c.Toasts.List()
	data.Cart = CartView{
		Items: c.Cart.Items(),
		Total: c.Cart.Total(),
		Count: c.Cart.ItemCount(),
		Open:  c.Cart.IsOpen(),
	}
}
