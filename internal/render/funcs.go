// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package render

import (
	"bytes"
	"html/template"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/olegiv/lobos/internal/model"
	"github.com/olegiv/lobos/internal/util"
)

// templateFuncs returns custom template functions.
func (r *Renderer) templateFuncs() template.FuncMap {
	return template.FuncMap{
		"formatDate":   util.FormatDate,
		"longDate":     util.FormatLongDate,
		"matchDate":    util.FormatMatchDate,
		"formatPrice":  util.FormatPrice,
		"formatPhone":  util.FormatPhone,
		"truncate":     util.Truncate,
		"initial":      util.Initial,
		"slug":         util.Slugify,
		"whatsappLink": util.WhatsAppLink,
		"mapsLink":     util.MapsLink,
		"relativeTime": func(t time.Time) string {
			return util.FormatRelativeTime(t, r.now())
		},
		"markdown": r.Markdown,
		"rating": func(v *float64) string {
			if v == nil {
				return ""
			}
			return strconv.FormatFloat(*v, 'f', 1, 64)
		},
		"categoryName": func(id string) string {
			if c, ok := model.FindCategory(id); ok {
				return c.Name
			}
			return id
		},
		"businessCategoryName": func(id string) string {
			if c, ok := model.FindBusinessCategory(id); ok {
				return c.Name
			}
			return id
		},
		"navActive": func(current, prefix string) bool {
			if prefix == "/" {
				return current == "/"
			}
			return current == prefix || strings.HasPrefix(current, prefix+"/")
		},
		"add": func(a, b int) int {
			return a + b
		},
		"millis": func(d time.Duration) int64 {
			return d.Milliseconds()
		},
	}
}

// Markdown converts news content to sanitized HTML. On a conversion error
// the source is returned escaped.
func (r *Renderer) Markdown(src string) template.HTML {
	var buf bytes.Buffer
	if err := r.markdown.Convert([]byte(src), &buf); err != nil {
		slog.Warn("markdown conversion failed", "error", err, "category", model.EventCategoryContent)
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(r.sanitizer.SanitizeBytes(buf.Bytes()))
}
