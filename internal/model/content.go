// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// NewsItem is a club news article.
type NewsItem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Content     string    `json:"content"`
	Image       string    `json:"image,omitempty"`
	Category    string    `json:"category"`
	Author      string    `json:"author"`
	IsPinned    bool      `json:"isPinned"`
	IsNew       bool      `json:"isNew"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Team is one side of a match.
type Team struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Logo string `json:"logo,omitempty"`
}

// Match statuses used by the fixtures.
const (
	MatchStatusUpcoming = "Próximo"
	MatchStatusLive     = "En Vivo"
	MatchStatusFinished = "Finalizado"
)

// Match is a scheduled fixture of one of the club's teams.
type Match struct {
	ID           string `json:"id"`
	HomeTeam     Team   `json:"homeTeam"`
	AwayTeam     Team   `json:"awayTeam"`
	Date         string `json:"date"` // YYYY-MM-DD
	Time         string `json:"time"` // HH:MM
	Location     string `json:"location"`
	Address      string `json:"address"`
	Tournament   string `json:"tournament"`
	Round        string `json:"round"`
	Category     string `json:"category"`
	Status       string `json:"status"`
	HasCallup    bool   `json:"hasCallup"`
	StadiumImage string `json:"stadiumImage,omitempty"`
}

// Hours is a business's daily opening window, as HH:MM strings.
type Hours struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

// Business is a local business affiliated with the club.
type Business struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Logo        string   `json:"logo,omitempty"`
	Rating      *float64 `json:"rating"`
	Phone       string   `json:"phone"`
	Address     string   `json:"address"`
	IsOpen      bool     `json:"isOpen"`
	Hours       Hours    `json:"hours"`
	IsFeatured  bool     `json:"isFeatured"`
}
