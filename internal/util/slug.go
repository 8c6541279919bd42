// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package util holds the portal's small helpers: slugs, Spanish date and
// price formatting, contact links and form validators.
package util

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// validSlug is a route segment: lowercase ASCII words joined by single hyphens.
var validSlug = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// stripMarks removes combining accents after decomposition, so "Información"
// becomes "Informacion" and "Año" becomes "Ano".
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify turns a label such as a news category into the form used in
// filter links: "Información" -> "informacion", "Tienda Deportiva" ->
// "tienda-deportiva". Runs of anything other than ASCII letters and digits
// collapse into one hyphen.
func Slugify(label string) string {
	plain, _, err := transform.String(stripMarks, label)
	if err != nil {
		plain = label
	}

	var b strings.Builder
	b.Grow(len(plain))
	gap := false
	for _, r := range strings.ToLower(plain) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if gap && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			gap = false
			continue
		}
		gap = true
	}
	return b.String()
}

// IsValidSlug reports whether s can be a category segment of a URL.
func IsValidSlug(s string) bool {
	return validSlug.MatchString(s)
}
