// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines domain constants and types shared across the
// application: menu locales, profile roles, and audit event categories.
package model

// Supported menu locales.
const (
	LocaleEnglish = "en"
	LocaleArabic  = "ar"
	LocaleTurkish = "tr"
)

// DefaultLocale is used when no locale can be resolved for a request.
const DefaultLocale = LocaleEnglish

// SupportedLocales returns all menu locales in display order.
func SupportedLocales() []string {
	return []string{LocaleEnglish, LocaleArabic, LocaleTurkish}
}

// IsValidLocale checks if a locale code is one of the supported menu locales.
func IsValidLocale(locale string) bool {
	for _, l := range SupportedLocales() {
		if l == locale {
			return true
		}
	}
	return false
}

// Text directions.
const (
	DirectionLTR = "ltr"
	DirectionRTL = "rtl"
)

// LocaleDirection returns the text direction for a locale.
// Arabic is the only right-to-left locale on the menu.
func LocaleDirection(locale string) string {
	if locale == LocaleArabic {
		return DirectionRTL
	}
	return DirectionLTR
}
