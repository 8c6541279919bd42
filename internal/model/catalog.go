// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Category is a team category used to filter the match schedule.
type Category struct {
	ID   string
	Name string
}

// BusinessCategory groups the business directory.
type BusinessCategory struct {
	ID   string
	Name string
	Icon string
}

// DefaultCategory is the schedule filter selected when none is given.
const DefaultCategory = "2011-2012"

// Categories lists the club's team categories in display order.
var Categories = []Category{
	{ID: "2011-2012", Name: "2011-2012"},
	{ID: "2013", Name: "2013"},
	{ID: "2014-2015", Name: "2014-2015"},
	{ID: "primera", Name: "Primera División"},
	{ID: "reserva", Name: "Reserva"},
	{ID: "sub21", Name: "Sub-21"},
	{ID: "juveniles", Name: "Juveniles"},
	{ID: "femenino", Name: "Femenino"},
}

// BusinessCategories lists the business directory sections.
var BusinessCategories = []BusinessCategory{
	{ID: "restaurantes", Name: "Restaurantes", Icon: "restaurant"},
	{ID: "servicios", Name: "Servicios", Icon: "business_center"},
	{ID: "domicilios", Name: "Domicilios", Icon: "delivery_dining"},
	{ID: "tienda-deportiva", Name: "Tienda Deportiva", Icon: "sports_soccer"},
	{ID: "salud", Name: "Salud y Bienestar", Icon: "health_and_safety"},
	{ID: "educacion", Name: "Educación", Icon: "school"},
}

// NewsCategories are the categories offered by the news editor.
var NewsCategories = []string{"Deportes", "Eventos", "Información", "Convocatoria", "Resultados"}

// FindCategory returns the team category with the given ID.
func FindCategory(id string) (Category, bool) {
	for _, c := range Categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// FindBusinessCategory returns the business category with the given ID.
func FindBusinessCategory(id string) (BusinessCategory, bool) {
	for _, c := range BusinessCategories {
		if c.ID == id {
			return c, true
		}
	}
	return BusinessCategory{}, false
}
