// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "accented category", input: "Información", expected: "informacion"},
		{name: "two words", input: "Tienda Deportiva", expected: "tienda-deportiva"},
		{name: "n tilde", input: "Año Nuevo", expected: "ano-nuevo"},
		{name: "punctuation", input: "¡Gran victoria!", expected: "gran-victoria"},
		{name: "numbers", input: "Categoría 2011-2012", expected: "categoria-2011-2012"},
		{name: "repeated separators", input: "Salud  -  Bienestar", expected: "salud-bienestar"},
		{name: "surrounding spaces", input: "  Eventos  ", expected: "eventos"},
		{name: "only symbols", input: "!@#$%", expected: ""},
		{name: "empty", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Slugify(tt.input)
			if result != tt.expected {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestIsValidSlug(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"restaurantes", true},
		{"tienda-deportiva", true},
		{"2011-2012", true},
		{"", false},
		{"Restaurantes", false},
		{"tienda deportiva", false},
		{"-salud", false},
		{"salud-", false},
		{"a--b", false},
		{"educación", false},
		{"../admin", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := IsValidSlug(tt.input); got != tt.expected {
				t.Errorf("IsValidSlug(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSlugifyProducesValidSlugs(t *testing.T) {
	for _, in := range []string{"Deportes", "Eventos", "Información", "Convocatoria", "Resultados", "Salud y Bienestar"} {
		if s := Slugify(in); !IsValidSlug(s) {
			t.Errorf("Slugify(%q) = %q is not a valid slug", in, s)
		}
	}
}
