// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import "github.com/olegiv/lobos/internal/model"

// DashboardStats are the counters shown on the admin dashboard.
type DashboardStats struct {
	TotalNews       int
	PinnedNews      int
	TotalMatches    int
	UpcomingMatches int
	TotalBusinesses int
	OpenBusinesses  int
	TotalProducts   int
	TotalUsers      int
	ActiveUsers     int
}

// Stats computes the dashboard counters from the live collections.
func (r *Repository) Stats() DashboardStats {
	members := r.MemberStats()
	return DashboardStats{
		TotalNews:       r.news.count(nil),
		PinnedNews:      r.news.count(func(n model.NewsItem) bool { return n.IsPinned }),
		TotalMatches:    r.matches.count(nil),
		UpcomingMatches: r.matches.count(func(m model.Match) bool { return m.Status == model.MatchStatusUpcoming }),
		TotalBusinesses: r.businesses.count(nil),
		OpenBusinesses:  r.businesses.count(func(b model.Business) bool { return b.IsOpen }),
		TotalProducts:   r.products.count(nil),
		TotalUsers:      members.Total,
		ActiveUsers:     members.Active,
	}
}
