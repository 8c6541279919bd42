// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the domain types shared by the club portal: the
// session user, cart line items, content fixtures and the static catalogs.
package model

import "time"

// User roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is the session user record. It is stored verbatim under the user
// data storage key, so its JSON shape is the persisted format.
type User struct {
	ID     string  `json:"id"`
	Email  string  `json:"email"`
	Name   string  `json:"name"`
	Role   string  `json:"role"`
	Avatar *string `json:"avatar"`
	Phone  string  `json:"phone,omitempty"`
}

// IsAdmin returns true if the user has admin role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// AvatarURL returns the avatar reference or an empty string.
func (u User) AvatarURL() string {
	if u.Avatar == nil {
		return ""
	}
	return *u.Avatar
}

// Member is an entry of the admin user directory. It is fixture data and
// unrelated to the session user.
type Member struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	LastLogin time.Time `json:"lastLogin"`
}

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}
