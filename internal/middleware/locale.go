// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"net/http"
	"strings"

	"golang.org/x/text/language"

	"github.com/olegiv/menu-go/internal/model"
)

// ContextKeyLocale is the context key for the resolved request locale.
const ContextKeyLocale ContextKey = "locale"

// LocaleCookieName is the cookie name for the locale preference.
const LocaleCookieName = "menu_locale"

// localeMatcher matches Accept-Language headers against the supported
// locales. The order mirrors model.SupportedLocales with English first,
// making it the matcher fallback.
var localeMatcher = language.NewMatcher([]language.Tag{
	language.English,
	language.Arabic,
	language.Turkish,
})

// Locale creates middleware that resolves the request locale.
// Priority order:
// 1. Query parameter ?locale=xx (explicit switch, updates the cookie)
// 2. Cookie preference
// 3. Accept-Language header
// 4. defaultLocale
func Locale(defaultLocale string) func(http.Handler) http.Handler {
	if !model.IsValidLocale(defaultLocale) {
		defaultLocale = model.DefaultLocale
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			locale := defaultLocale

			switch {
			case model.IsValidLocale(strings.ToLower(r.URL.Query().Get("locale"))):
				locale = strings.ToLower(r.URL.Query().Get("locale"))
				SetLocaleCookie(w, locale)
			case cookieLocale(r) != "":
				locale = cookieLocale(r)
			case matchAcceptLanguage(r.Header.Get("Accept-Language")) != "":
				locale = matchAcceptLanguage(r.Header.Get("Accept-Language"))
			}

			ctx := context.WithValue(r.Context(), ContextKeyLocale, locale)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetLocale retrieves the resolved locale from the request context,
// falling back to the default locale.
func GetLocale(r *http.Request) string {
	locale, ok := r.Context().Value(ContextKeyLocale).(string)
	if !ok || locale == "" {
		return model.DefaultLocale
	}
	return locale
}

// SetLocaleCookie persists a locale preference for one year.
func SetLocaleCookie(w http.ResponseWriter, locale string) {
	http.SetCookie(w, &http.Cookie{
		Name:     LocaleCookieName,
		Value:    locale,
		Path:     "/",
		MaxAge:   365 * 24 * 60 * 60,
		HttpOnly: false, // Read by the frontend for direction switching
		SameSite: http.SameSiteLaxMode,
	})
}

// cookieLocale returns the cookie preference, or "" when absent or invalid.
func cookieLocale(r *http.Request) string {
	cookie, err := r.Cookie(LocaleCookieName)
	if err != nil {
		return ""
	}
	locale := strings.ToLower(cookie.Value)
	if !model.IsValidLocale(locale) {
		return ""
	}
	return locale
}

// matchAcceptLanguage maps an Accept-Language header onto a supported
// locale, or "" when the header is empty or matches nothing well.
func matchAcceptLanguage(header string) string {
	if header == "" {
		return ""
	}

	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return ""
	}

	_, index, conf := localeMatcher.Match(tags...)
	if conf == language.No {
		return ""
	}

	return model.SupportedLocales()[index]
}
