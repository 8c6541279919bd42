// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/lobos/internal/content"
	"github.com/olegiv/lobos/internal/model"
	"github.com/olegiv/lobos/internal/render"
	"github.com/olegiv/lobos/internal/util"
)

var matchFields = []string{
	"home_team", "home_logo", "away_team", "away_logo", "date", "time",
	"location", "address", "tournament", "round", "category", "status",
	"has_callup", "stadium_image",
}

// matchStatuses are the values offered by the match editor.
var matchStatuses = []string{model.MatchStatusUpcoming, model.MatchStatusLive, model.MatchStatusFinished}

// AdminMatchesData is the match editor content.
type AdminMatchesData struct {
	Query      string
	EditID     string
	Items      []model.Match
	Categories []model.Category
	Statuses   []string
}

// MatchesList renders the match editor.
func (h *AdminHandler) MatchesList(w http.ResponseWriter, r *http.Request) {
	query, editID := adminListParams(r)
	form := map[string]string{"category": model.DefaultCategory, "status": model.MatchStatusUpcoming}
	if editID != "" {
		m, err := h.content.GetMatch(editID)
		if err != nil {
			toastError(w, r, redirectAdminMatches, msgMatchNotFound)
			return
		}
		form = matchForm(m)
	}
	h.renderMatches(w, r, http.StatusOK, query, editID, form, nil)
}

// MatchCreate handles the new-match form.
func (h *AdminHandler) MatchCreate(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, redirectAdminMatches) {
		return
	}
	form := formFields(r, matchFields...)
	in, errs := validateMatchInput(form)
	if len(errs) > 0 {
		h.renderMatches(w, r, http.StatusUnprocessableEntity, "", "", form, errs)
		return
	}

	m := h.content.CreateMatch(in)
	slog.Info("match created", "id", m.ID, "category", model.EventCategoryContent)
	toastSuccess(w, r, redirectAdminMatches, msgCreated)
}

// MatchUpdate handles the edit form.
func (h *AdminHandler) MatchUpdate(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, redirectAdminMatches) {
		return
	}
	form := formFields(r, matchFields...)
	in, errs := validateMatchInput(form)
	if len(errs) > 0 {
		h.renderMatches(w, r, http.StatusUnprocessableEntity, "", chi.URLParam(r, "id"), form, errs)
		return
	}
	updateAndRedirect(w, r, redirectAdminMatches, "match", func(id string) (model.Match, error) {
		return h.content.UpdateMatch(id, in)
	})
}

// MatchDelete removes a match.
func (h *AdminHandler) MatchDelete(w http.ResponseWriter, r *http.Request) {
	deleteAndRedirect(w, r, redirectAdminMatches, "match", h.content.DeleteMatch)
}

func (h *AdminHandler) renderMatches(w http.ResponseWriter, r *http.Request, status int, query, editID string, form, errs map[string]string) {
	h.renderer.MustRender(w, r, status, tmplAdminMatches, render.TemplateData{
		Title:  "Programación",
		Form:   form,
		Errors: errs,
		Data: AdminMatchesData{
			Query:      query,
			EditID:     editID,
			Items:      h.content.SearchMatches(query),
			Categories: model.Categories,
			Statuses:   matchStatuses,
		},
	})
}

func matchForm(m model.Match) map[string]string {
	return map[string]string{
		"home_team":     m.HomeTeam.Name,
		"home_logo":     m.HomeTeam.Logo,
		"away_team":     m.AwayTeam.Name,
		"away_logo":     m.AwayTeam.Logo,
		"date":          m.Date,
		"time":          m.Time,
		"location":      m.Location,
		"address":       m.Address,
		"tournament":    m.Tournament,
		"round":         m.Round,
		"category":      m.Category,
		"status":        m.Status,
		"has_callup":    checkboxValue(m.HasCallup),
		"stadium_image": m.StadiumImage,
	}
}

// validateMatchInput validates the match form and returns the input and field errors.
func validateMatchInput(form map[string]string) (content.MatchInput, map[string]string) {
	errs := make(map[string]string)
	if !util.IsNotEmpty(form["home_team"]) {
		errs["home_team"] = "El equipo local es requerido"
	}
	if !util.IsNotEmpty(form["away_team"]) {
		errs["away_team"] = "El equipo visitante es requerido"
	}
	if _, err := time.Parse(time.DateOnly, form["date"]); err != nil {
		errs["date"] = "Fecha inválida"
	}
	if _, err := time.Parse("15:04", form["time"]); err != nil {
		errs["time"] = "Hora inválida"
	}
	if _, ok := model.FindCategory(form["category"]); !ok {
		errs["category"] = "Categoría inválida"
	}
	if !slices.Contains(matchStatuses, form["status"]) {
		errs["status"] = "Estado inválido"
	}
	for _, f := range []string{"home_logo", "away_logo", "stadium_image"} {
		if form[f] != "" && !util.IsValidURL(form[f]) {
			errs[f] = "URL inválida"
		}
	}
	return content.MatchInput{
		HomeTeam:     form["home_team"],
		HomeLogo:     form["home_logo"],
		AwayTeam:     form["away_team"],
		AwayLogo:     form["away_logo"],
		Date:         form["date"],
		Time:         form["time"],
		Location:     form["location"],
		Address:      form["address"],
		Tournament:   form["tournament"],
		Round:        form["round"],
		Category:     form["category"],
		Status:       form["status"],
		HasCallup:    checkbox(form["has_callup"]),
		StadiumImage: form["stadium_image"],
	}, errs
}
