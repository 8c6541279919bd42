// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

// Route pattern constants for chi router registration.
const (
	// RouteRoot is the home page.
	RouteRoot = "/"
	// RouteLogin is the login route.
	RouteLogin = "/login"
	// RouteRegister is the registration route.
	RouteRegister = "/register"
	// RouteLogout is the logout route.
	RouteLogout = "/logout"

	// RouteNews is the news listing.
	RouteNews = "/noticias"
	// RouteNewsID is a news item.
	RouteNewsID = RouteNews + RouteParamID
	// RouteSchedule is the match schedule.
	RouteSchedule = "/programacion"
	// RouteScheduleID is a match.
	RouteScheduleID = RouteSchedule + RouteParamID
	// RouteBusinesses is the business directory.
	RouteBusinesses = "/emprendimientos"
	// RouteBusinessCategory is a business directory section.
	RouteBusinessCategory = RouteBusinesses + "/{categoria}"
	// RouteBusinessDetail is a business inside its section.
	RouteBusinessDetail = RouteBusinessCategory + "/{negocioId}"
	// RouteProfile is the profile page.
	RouteProfile = "/perfil"
	// RouteProfileTheme stores the theme preference.
	RouteProfileTheme = RouteProfile + "/tema"

	// RouteCart adds a product to the cart.
	RouteCart = "/carrito"
	// RouteCartToggle opens or closes the cart panel.
	RouteCartToggle = RouteCart + "/toggle"
	// RouteCartClear empties the cart.
	RouteCartClear = RouteCart + "/vaciar"
	// RouteCartQuantity sets a line item's quantity.
	RouteCartQuantity = RouteCart + RouteParamID + "/cantidad"
	// RouteCartRemove removes a line item.
	RouteCartRemove = RouteCart + RouteParamID + "/eliminar"

	// RouteToasts lists pending toasts as JSON.
	RouteToasts = "/toasts"
	// RouteToastDismiss dismisses one toast.
	RouteToastDismiss = RouteToasts + RouteParamID + "/dismiss"

	// RouteHealth is the health check.
	RouteHealth = "/health"
	// RouteStatic serves embedded assets.
	RouteStatic = "/static/*"

	// RouteAdmin is the admin dashboard.
	RouteAdmin = "/admin"
	// RouteAdminJobRun triggers a scheduled job, relative to RouteAdmin.
	RouteAdminJobRun = "/tareas/{name}/ejecutar"

	// Admin sections, relative to RouteAdmin.
	RouteAdminNews       = "/noticias"
	RouteAdminMatches    = "/programacion"
	RouteAdminBusinesses = "/negocios"
	RouteAdminProducts   = "/productos"
	RouteAdminUsers      = "/usuarios"

	// RouteParamID is the ID parameter pattern.
	RouteParamID = "/{id}"
	// RouteSuffixDelete deletes an entity.
	RouteSuffixDelete = "/eliminar"
	// RouteSuffixPin toggles a news item's pin.
	RouteSuffixPin = "/fijar"
	// RouteSuffixFeature toggles a business's featured flag.
	RouteSuffixFeature = "/destacar"
	// RouteSuffixActive toggles a member's active flag.
	RouteSuffixActive = "/estado"
)

// Redirect targets.
const (
	redirectAdmin           = RouteAdmin
	redirectAdminNews       = RouteAdmin + RouteAdminNews
	redirectAdminMatches    = RouteAdmin + RouteAdminMatches
	redirectAdminBusinesses = RouteAdmin + RouteAdminBusinesses
	redirectAdminProducts   = RouteAdmin + RouteAdminProducts
	redirectAdminUsers      = RouteAdmin + RouteAdminUsers
)

// Template names.
const (
	tmplHome             = "pages/home"
	tmplNews             = "pages/news"
	tmplNewsDetail       = "pages/news_detail"
	tmplSchedule         = "pages/schedule"
	tmplMatchDetail      = "pages/match_detail"
	tmplBusinesses       = "pages/businesses"
	tmplBusinessCategory = "pages/business_category"
	tmplBusinessDetail   = "pages/business_detail"
	tmplProfile          = "pages/profile"
	tmplNotFound         = "pages/not_found"
	tmplLogin            = "auth/login"
	tmplRegister         = "auth/register"
	tmplPending          = "auth/pending"
	tmplAdminDashboard   = "admin/dashboard"
	tmplAdminNews        = "admin/news"
	tmplAdminMatches     = "admin/matches"
	tmplAdminBusinesses  = "admin/businesses"
	tmplAdminProducts    = "admin/products"
	tmplAdminUsers       = "admin/users"
)

// User-facing messages.
const (
	msgWelcome          = "¡Bienvenido a CDG LOBOS!"
	msgRegistered       = "¡Cuenta creada! Bienvenido a CDG LOBOS"
	msgLoggedOut        = "Sesión cerrada"
	msgInvalidForm      = "Datos del formulario inválidos"
	msgAddedToCart      = "Producto agregado al carrito"
	msgRemovedFromCart  = "Producto eliminado del carrito"
	msgCartCleared      = "Carrito vaciado"
	msgProductNotFound  = "Producto no encontrado"
	msgThemeSaved       = "Tema actualizado"
	msgThemeError       = "No se pudo guardar el tema"
	msgSaved            = "Cambios guardados"
	msgCreated          = "Creado correctamente"
	msgDeleted          = "Eliminado correctamente"
	msgNotFound         = "No encontrado"
	msgJobTriggered     = "Tarea ejecutada"
	msgJobNotFound      = "Tarea no encontrada"
	msgNewsNotFound     = "Noticia no encontrada"
	msgMatchNotFound    = "Partido no encontrado"
	msgBusinessNotFound = "Negocio no encontrado"
	msgCategoryNotFound = "Categoría no encontrada"
)
