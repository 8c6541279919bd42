// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"strconv"

	"github.com/olegiv/lobos/internal/model"
)

// MatchInput holds the editable fields of a match.
type MatchInput struct {
	HomeTeam     string
	HomeLogo     string
	AwayTeam     string
	AwayLogo     string
	Date         string
	Time         string
	Location     string
	Address      string
	Tournament   string
	Round        string
	Category     string
	Status       string
	HasCallup    bool
	StadiumImage string
}

// MatchesByCategory returns the matches of one team category. An empty
// category selects model.DefaultCategory.
func (r *Repository) MatchesByCategory(category string) []model.Match {
	if category == "" {
		category = model.DefaultCategory
	}
	return r.matches.filter(func(m model.Match) bool { return m.Category == category })
}

// UpcomingMatches returns up to n matches that have not been played yet.
func (r *Repository) UpcomingMatches(n int) []model.Match {
	return limit(r.matches.filter(func(m model.Match) bool {
		return m.Status == model.MatchStatusUpcoming
	}), n)
}

// ListMatches returns every match.
func (r *Repository) ListMatches() []model.Match {
	return r.matches.all()
}

// GetMatch returns the match with the given ID.
func (r *Repository) GetMatch(id string) (model.Match, error) {
	return r.matches.get(id)
}

// SearchMatches filters matches by team names or tournament.
func (r *Repository) SearchMatches(query string) []model.Match {
	return r.matches.filter(func(m model.Match) bool {
		return containsFold(query, m.HomeTeam.Name, m.AwayTeam.Name, m.Tournament)
	})
}

// CreateMatch appends a match. Both teams get IDs derived from the match's
// creation time.
func (r *Repository) CreateMatch(in MatchInput) model.Match {
	id, ms := r.newID("match")
	teamBase := "team-" + strconv.FormatInt(ms, 10)
	m := model.Match{
		ID:       id,
		HomeTeam: model.Team{ID: teamBase + "-home"},
		AwayTeam: model.Team{ID: teamBase + "-away"},
	}
	in.apply(&m)
	r.matches.append(m)
	return m
}

// UpdateMatch replaces the editable fields of a match, keeping team IDs.
func (r *Repository) UpdateMatch(id string, in MatchInput) (model.Match, error) {
	return r.matches.update(id, in.apply)
}

// DeleteMatch removes a match.
func (r *Repository) DeleteMatch(id string) error {
	return r.matches.remove(id)
}

func (in MatchInput) apply(m *model.Match) {
	m.HomeTeam.Name = in.HomeTeam
	m.HomeTeam.Logo = in.HomeLogo
	m.AwayTeam.Name = in.AwayTeam
	m.AwayTeam.Logo = in.AwayLogo
	m.Date = in.Date
	m.Time = in.Time
	m.Location = in.Location
	m.Address = in.Address
	m.Tournament = in.Tournament
	m.Round = in.Round
	m.Category = in.Category
	m.Status = in.Status
	m.HasCallup = in.HasCallup
	m.StadiumImage = in.StadiumImage
}
