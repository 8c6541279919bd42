// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// checkboxOn is how a checked box is echoed back into a form.
const checkboxOn = "on"

// formFields returns the trimmed values of the named fields.
func formFields(r *http.Request, names ...string) map[string]string {
	values := make(map[string]string, len(names))
	for _, name := range names {
		values[name] = strings.TrimSpace(r.FormValue(name))
	}
	return values
}

// checkbox reports whether an HTML checkbox was submitted checked.
func checkbox(v string) bool {
	switch strings.ToLower(v) {
	case checkboxOn, "true", "1", "yes":
		return true
	}
	return false
}

// checkboxValue converts a flag to its form representation.
func checkboxValue(b bool) string {
	if b {
		return checkboxOn
	}
	return ""
}

// parseQuantity parses a cart quantity. Missing or malformed values yield def.
func parseQuantity(v string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return n
}

// backURL returns the local path of the Referer, or fallback when there is
// none or it points elsewhere.
func backURL(r *http.Request, fallback string) string {
	ref := r.Referer()
	if ref == "" {
		return fallback
	}
	u, err := url.Parse(ref)
	if err != nil {
		return fallback
	}
	if u.Host != "" && u.Host != r.Host {
		return fallback
	}
	if !strings.HasPrefix(u.Path, "/") || strings.HasPrefix(u.Path, "//") {
		return fallback
	}
	if u.RawQuery != "" {
		return u.Path + "?" + u.RawQuery
	}
	return u.Path
}
