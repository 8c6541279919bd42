// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/olegiv/lobos/internal/auth"
	"github.com/olegiv/lobos/internal/middleware"
	"github.com/olegiv/lobos/internal/model"
	"github.com/olegiv/lobos/internal/render"
	"github.com/olegiv/lobos/internal/session"
	"github.com/olegiv/lobos/internal/toast"
	"github.com/olegiv/lobos/internal/util"
)

// Validation messages of the auth forms.
const (
	msgEmailRequired    = "El email es requerido"
	msgEmailInvalid     = "Email inválido"
	msgPasswordRequired = "La contraseña es requerida"
	msgPasswordShort    = "La contraseña debe tener al menos 8 caracteres"
	msgPasswordMismatch = "Las contraseñas no coinciden"
	msgNameRequired     = "El nombre es requerido"
	msgPhoneInvalid     = "Teléfono inválido"
)

// AuthHandler handles authentication routes.
type AuthHandler struct {
	renderer *render.Renderer
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(renderer *render.Renderer) *AuthHandler {
	return &AuthHandler{renderer: renderer}
}

// LoginForm renders the login page. Authenticated clients go home.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if h.redirectAuthenticated(w, r) {
		return
	}
	h.renderer.MustRender(w, r, http.StatusOK, tmplLogin, render.TemplateData{
		Title: "Iniciar sesión",
	})
}

// Login handles the login form submission.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	c := middleware.GetClient(r)
	if c == nil {
		logAndInternalError(w, "login without client")
		return
	}
	if !parseFormOrRedirect(w, r, RouteLogin) {
		return
	}

	form := formFields(r, "email")
	password := r.FormValue("password")

	if errs := validateLoginInput(form["email"], password); len(errs) > 0 {
		h.renderer.MustRender(w, r, http.StatusUnprocessableEntity, tmplLogin, render.TemplateData{
			Title:  "Iniciar sesión",
			Form:   form,
			Errors: errs,
		})
		return
	}

	if _, err := c.Session.Login(r.Context(), form["email"], password); err != nil {
		notify(r, failureMessage(err, session.MsgLoginFailed), toast.Error)
		h.renderer.MustRender(w, r, http.StatusOK, tmplLogin, render.TemplateData{
			Title: "Iniciar sesión",
			Form:  form,
		})
		return
	}

	toastSuccess(w, r, RouteRoot, msgWelcome)
}

// RegisterForm renders the registration page.
func (h *AuthHandler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	if h.redirectAuthenticated(w, r) {
		return
	}
	h.renderer.MustRender(w, r, http.StatusOK, tmplRegister, render.TemplateData{
		Title: "Crear cuenta",
	})
}

// Register handles the registration form submission.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	c := middleware.GetClient(r)
	if c == nil {
		logAndInternalError(w, "register without client")
		return
	}
	if !parseFormOrRedirect(w, r, RouteRegister) {
		return
	}

	form := formFields(r, "name", "email", "phone")
	params := auth.RegisterParams{
		Name:     form["name"],
		Email:    form["email"],
		Phone:    form["phone"],
		Password: r.FormValue("password"),
	}

	if errs := validateRegisterInput(params, r.FormValue("password_confirm")); len(errs) > 0 {
		h.renderer.MustRender(w, r, http.StatusUnprocessableEntity, tmplRegister, render.TemplateData{
			Title:  "Crear cuenta",
			Form:   form,
			Errors: errs,
		})
		return
	}

	if _, err := c.Session.Register(r.Context(), params); err != nil {
		notify(r, failureMessage(err, session.MsgRegisterFailed), toast.Error)
		h.renderer.MustRender(w, r, http.StatusOK, tmplRegister, render.TemplateData{
			Title: "Crear cuenta",
			Form:  form,
		})
		return
	}

	toastSuccess(w, r, RouteRoot, msgRegistered)
}

// Logout ends the client's session and returns to the login page.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	c := middleware.GetClient(r)
	if c == nil {
		http.Redirect(w, r, RouteLogin, http.StatusSeeOther)
		return
	}

	user, _ := c.Session.User()
	c.Session.Logout(r.Context())
	slog.Info("user logged out", "user_id", user.ID, "category", model.EventCategoryAuth)

	toastAndRedirect(w, r, RouteLogin, msgLoggedOut, toast.Info)
}

// redirectAuthenticated sends authenticated clients home. Returns true if
// it redirected.
func (h *AuthHandler) redirectAuthenticated(w http.ResponseWriter, r *http.Request) bool {
	c := middleware.GetClient(r)
	if c == nil || !c.Session.IsAuthenticated() {
		return false
	}
	http.Redirect(w, r, RouteRoot, http.StatusSeeOther)
	return true
}

// failureMessage extracts the user-facing text of a session failure.
func failureMessage(err error, fallback string) string {
	var fe *session.FailureError
	if errors.As(err, &fe) && fe.Message != "" {
		return fe.Message
	}
	return fallback
}

// validateLoginInput checks the login form and returns field errors.
func validateLoginInput(email, password string) map[string]string {
	errs := make(map[string]string)
	validateEmail(errs, email)
	if password == "" {
		errs["password"] = msgPasswordRequired
	}
	return errs
}

// validateRegisterInput checks the registration form and returns field errors.
func validateRegisterInput(p auth.RegisterParams, confirm string) map[string]string {
	errs := make(map[string]string)
	if !util.IsNotEmpty(p.Name) {
		errs["name"] = msgNameRequired
	}
	validateEmail(errs, p.Email)
	if p.Phone != "" && !util.IsValidPhone(p.Phone) {
		errs["phone"] = msgPhoneInvalid
	}
	switch {
	case p.Password == "":
		errs["password"] = msgPasswordRequired
	case !util.IsValidPassword(p.Password):
		errs["password"] = msgPasswordShort
	}
	if confirm != p.Password {
		errs["password_confirm"] = msgPasswordMismatch
	}
	return errs
}

func validateEmail(errs map[string]string, email string) {
	switch {
	case email == "":
		errs["email"] = msgEmailRequired
	case !util.IsValidEmail(email):
		errs["email"] = msgEmailInvalid
	}
}
