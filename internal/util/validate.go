// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 8

var (
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRegex = regexp.MustCompile(`^\+?(54)?[\s-]?\d{10}$`)
)

// IsValidEmail performs a shape check on an email address.
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// IsValidPassword reports whether password has at least MinPasswordLength
// characters.
func IsValidPassword(password string) bool {
	return utf8.RuneCountInString(password) >= MinPasswordLength
}

// IsValidPhone accepts Argentine numbers: ten digits, optionally prefixed
// by +54. Whitespace is ignored.
func IsValidPhone(phone string) bool {
	return phoneRegex.MatchString(strings.Join(strings.Fields(phone), ""))
}

// IsNotEmpty reports whether value has non-whitespace content.
func IsNotEmpty(value string) bool {
	return strings.TrimSpace(value) != ""
}

// IsValidURL reports whether raw is an absolute URL.
func IsValidURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.Scheme != "" && (u.Host != "" || u.Opaque != "")
}
