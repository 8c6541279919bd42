// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/lobos/internal/content"
	"github.com/olegiv/lobos/internal/model"
	"github.com/olegiv/lobos/internal/render"
	"github.com/olegiv/lobos/internal/util"
)

var memberFields = []string{"name", "email", "role", "is_active"}

// AdminUsersData is the user directory content.
type AdminUsersData struct {
	Query  string
	EditID string
	Role   string
	Stats  content.MemberStats
	Items  []model.Member
}

// UsersList renders the user directory. ?role filters by role.
func (h *AdminHandler) UsersList(w http.ResponseWriter, r *http.Request) {
	query, editID := adminListParams(r)
	role := usersRoleFilter(r)
	form := map[string]string{"role": model.RoleUser, "is_active": checkboxOn}
	if editID != "" {
		m, err := h.content.GetMember(editID)
		if err != nil {
			toastError(w, r, redirectAdminUsers, msgNotFound)
			return
		}
		form = memberForm(m)
	}
	h.renderUsers(w, r, http.StatusOK, query, role, editID, form, nil)
}

// UserCreate handles the new-member form.
func (h *AdminHandler) UserCreate(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, redirectAdminUsers) {
		return
	}
	form := formFields(r, memberFields...)
	in, errs := validateMemberInput(form)
	if len(errs) > 0 {
		h.renderUsers(w, r, http.StatusUnprocessableEntity, "", content.RoleFilterAll, "", form, errs)
		return
	}

	m := h.content.CreateMember(in)
	slog.Info("member created", "id", m.ID, "category", model.EventCategoryContent)
	toastSuccess(w, r, redirectAdminUsers, msgCreated)
}

// UserUpdate handles the edit form.
func (h *AdminHandler) UserUpdate(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, redirectAdminUsers) {
		return
	}
	form := formFields(r, memberFields...)
	in, errs := validateMemberInput(form)
	if len(errs) > 0 {
		h.renderUsers(w, r, http.StatusUnprocessableEntity, "", content.RoleFilterAll, chi.URLParam(r, "id"), form, errs)
		return
	}
	updateAndRedirect(w, r, redirectAdminUsers, "member", func(id string) (model.Member, error) {
		return h.content.UpdateMember(id, in)
	})
}

// UserDelete removes a member.
func (h *AdminHandler) UserDelete(w http.ResponseWriter, r *http.Request) {
	deleteAndRedirect(w, r, redirectAdminUsers, "member", h.content.DeleteMember)
}

// UserToggleActive activates or deactivates a member.
func (h *AdminHandler) UserToggleActive(w http.ResponseWriter, r *http.Request) {
	toggleAndRedirect(w, r, redirectAdminUsers, h.content.ToggleMemberActive)
}

func (h *AdminHandler) renderUsers(w http.ResponseWriter, r *http.Request, status int, query, role, editID string, form, errs map[string]string) {
	h.renderer.MustRender(w, r, status, tmplAdminUsers, render.TemplateData{
		Title:  "Usuarios",
		Form:   form,
		Errors: errs,
		Data: AdminUsersData{
			Query:  query,
			EditID: editID,
			Role:   role,
			Stats:  h.content.MemberStats(),
			Items:  h.content.SearchMembers(query, role),
		},
	})
}

// usersRoleFilter reads ?role, defaulting unknown values to all roles.
func usersRoleFilter(r *http.Request) string {
	role := r.URL.Query().Get("role")
	if model.ValidRole(role) {
		return role
	}
	return content.RoleFilterAll
}

func memberForm(m model.Member) map[string]string {
	return map[string]string{
		"name":      m.Name,
		"email":     m.Email,
		"role":      m.Role,
		"is_active": checkboxValue(m.IsActive),
	}
}

func validateMemberInput(form map[string]string) (content.MemberInput, map[string]string) {
	errs := make(map[string]string)
	if !util.IsNotEmpty(form["name"]) {
		errs["name"] = msgNameRequired
	}
	validateEmail(errs, form["email"])
	if !model.ValidRole(form["role"]) {
		errs["role"] = "Rol inválido"
	}
	return content.MemberInput{
		Name:     form["name"],
		Email:    form["email"],
		Role:     form["role"],
		IsActive: checkbox(form["is_active"]),
	}, errs
}
