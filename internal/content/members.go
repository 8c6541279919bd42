// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import "github.com/olegiv/lobos/internal/model"

// RoleFilterAll disables role filtering in SearchMembers.
const RoleFilterAll = "all"

// MemberInput holds the editable fields of a directory member.
type MemberInput struct {
	Name     string
	Email    string
	Role     string
	IsActive bool
}

// MemberStats summarizes the member directory.
type MemberStats struct {
	Total    int
	Active   int
	Admins   int
	Inactive int
}

// SearchMembers filters the directory by name or email and by role. A role
// of "" or RoleFilterAll matches every role.
func (r *Repository) SearchMembers(query, role string) []model.Member {
	return r.members.filter(func(m model.Member) bool {
		if role != "" && role != RoleFilterAll && m.Role != role {
			return false
		}
		return containsFold(query, m.Name, m.Email)
	})
}

// GetMember returns the member with the given ID.
func (r *Repository) GetMember(id string) (model.Member, error) {
	return r.members.get(id)
}

// CreateMember appends a member that has never logged in.
func (r *Repository) CreateMember(in MemberInput) model.Member {
	id, _ := r.newID("user")
	m := model.Member{ID: id, CreatedAt: r.now()}
	in.apply(&m)
	r.members.append(m)
	return m
}

// UpdateMember replaces the editable fields of a member.
func (r *Repository) UpdateMember(id string, in MemberInput) (model.Member, error) {
	return r.members.update(id, in.apply)
}

// DeleteMember removes a member.
func (r *Repository) DeleteMember(id string) error {
	return r.members.remove(id)
}

// ToggleMemberActive flips the active flag.
func (r *Repository) ToggleMemberActive(id string) (model.Member, error) {
	return r.members.update(id, func(m *model.Member) { m.IsActive = !m.IsActive })
}

// MemberStats counts members by state and role.
func (r *Repository) MemberStats() MemberStats {
	var s MemberStats
	for _, m := range r.members.all() {
		s.Total++
		if m.IsActive {
			s.Active++
		} else {
			s.Inactive++
		}
		if m.Role == model.RoleAdmin {
			s.Admins++
		}
	}
	return s
}

func (in MemberInput) apply(m *model.Member) {
	m.Name = in.Name
	m.Email = in.Email
	m.Role = in.Role
	m.IsActive = in.IsActive
}
