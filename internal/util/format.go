// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var (
	spanishDays = [...]string{"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado"}

	spanishMonths = [...]string{
		"enero", "febrero", "marzo", "abril", "mayo", "junio",
		"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
	}

	priceP = message.NewPrinter(language.MustParse("es-AR"))

	nonDigits = regexp.MustCompile(`\D`)
)

// FormatDate formats t as dd/mm/yyyy.
func FormatDate(t time.Time) string {
	return t.Format("02/01/2006")
}

// FormatLongDate formats t as "sábado, 08 de marzo".
func FormatLongDate(t time.Time) string {
	return fmt.Sprintf("%s, %02d de %s", spanishDays[t.Weekday()], t.Day(), spanishMonths[t.Month()-1])
}

// FormatMatchDate parses a YYYY-MM-DD match date and formats it with
// FormatLongDate. Unparseable input is returned unchanged.
func FormatMatchDate(date string) string {
	t, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return date
	}
	return FormatLongDate(t)
}

// FormatRelativeTime describes t relative to now in Spanish, e.g.
// "hace 3 días" or "en alrededor de 2 horas".
func FormatRelativeTime(t, now time.Time) string {
	d := now.Sub(t)
	prefix := "hace "
	if d < 0 {
		d = -d
		prefix = "en "
	}
	return prefix + distance(d)
}

func distance(d time.Duration) string {
	const day = 24 * time.Hour
	switch {
	case d < 30*time.Second:
		return "menos de un minuto"
	case d < 90*time.Second:
		return "1 minuto"
	case d < 45*time.Minute:
		return fmt.Sprintf("%d minutos", int((d+30*time.Second)/time.Minute))
	case d < 90*time.Minute:
		return "alrededor de 1 hora"
	case d < day:
		return fmt.Sprintf("alrededor de %d horas", int((d+30*time.Minute)/time.Hour))
	case d < 42*time.Hour:
		return "1 día"
	case d < 30*day:
		return fmt.Sprintf("%d días", int((d+12*time.Hour)/day))
	case d < 45*day:
		return "alrededor de 1 mes"
	case d < 60*day:
		return "alrededor de 2 meses"
	case d < 365*day:
		return fmt.Sprintf("%d meses", int((d+15*day)/(30*day)))
	default:
		years := int(d / (365 * day))
		if years == 1 {
			return "alrededor de 1 año"
		}
		return fmt.Sprintf("alrededor de %d años", years)
	}
}

// FormatPrice formats an amount in Argentine pesos, e.g. "$ 35.000,00".
func FormatPrice(amount float64) string {
	return "$ " + priceP.Sprint(number.Decimal(amount, number.Scale(2)))
}

// FormatPhone formats a ten-digit number as "+11 4567-8901". Other inputs
// are returned unchanged.
func FormatPhone(phone string) string {
	digits := nonDigits.ReplaceAllString(phone, "")
	if len(digits) != 10 {
		return phone
	}
	return "+" + digits[:2] + " " + digits[2:6] + "-" + digits[6:]
}

// Truncate shortens text to at most maxLen runes followed by "...".
func Truncate(text string, maxLen int) string {
	if utf8.RuneCountInString(text) <= maxLen {
		return text
	}
	runes := []rune(text)
	return string(runes[:maxLen]) + "..."
}

// Initial returns the upper-cased first letter of name, or "U".
func Initial(name string) string {
	r, _ := utf8.DecodeRuneInString(strings.TrimSpace(name))
	if r == utf8.RuneError {
		return "U"
	}
	return string(unicode.ToUpper(r))
}

// encodeURIComponent escapes s for a query value with spaces as %20.
func encodeURIComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// WhatsAppLink builds a wa.me link with a pre-filled message.
func WhatsAppLink(phone, message string) string {
	return "https://wa.me/" + nonDigits.ReplaceAllString(phone, "") + "?text=" + encodeURIComponent(message)
}

// MapsLink builds a Google Maps search link for an address.
func MapsLink(address string) string {
	return "https://www.google.com/maps/search/?api=1&query=" + encodeURIComponent(address)
}
