// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package validate

import (
	"github.com/olegiv/menu-go/internal/model"
)

// LoginSchema validates the login form. The password rule here only
// requires presence; complexity is enforced at account creation.
func LoginSchema() Schema {
	return Schema{
		"email": EmailRule(),
		"password": {
			Required:  true,
			MinLength: 1,
		},
	}
}

// RegisterSchema validates staff account creation.
func RegisterSchema() Schema {
	return Schema{
		"email":    EmailRule(),
		"password": PasswordRule(),
		"role":     RoleRule(),
	}
}

// ProfileSchema validates profile updates.
func ProfileSchema() Schema {
	return Schema{
		"email": EmailRule(),
		"role":  RoleRule(),
	}
}

// CategorySchema validates the category form, including its full
// translation set.
func CategorySchema() Schema {
	return Schema{
		"slug":         SlugRule(),
		"sort_order":   SortOrderRule(),
		"translations": translationsRule(),
	}
}

// ItemSchema validates the item form, including its full translation and
// price sets.
func ItemSchema() Schema {
	return Schema{
		"category_id": {
			Required: true,
			Custom: []CustomCheck{
				func(value any) string {
					if s, ok := value.(string); !ok || s == "" {
						return "Category ID is required"
					}
					return ""
				},
			},
		},
		"image_url":    URLRule(),
		"sort_order":   SortOrderRule(),
		"translations": translationsRule(),
		"prices":       pricesRule(),
	}
}

// translationsRule checks the translation list shape: a non-empty array
// whose elements each carry a supported locale and a name.
func translationsRule() Rule {
	return Rule{
		Required: true,
		Custom: []CustomCheck{
			func(value any) string {
				list, ok := value.([]any)
				if !ok {
					return "Translations must be an array"
				}
				if len(list) == 0 {
					return "At least one translation is required"
				}
				for _, elem := range list {
					t, ok := elem.(map[string]any)
					if !ok {
						return "Each translation must have locale and name"
					}
					locale, _ := t["locale"].(string)
					name, _ := t["name"].(string)
					if locale == "" || name == "" {
						return "Each translation must have locale and name"
					}
					if !model.IsValidLocale(locale) {
						return "Invalid locale in translation"
					}
				}
				return ""
			},
		},
	}
}

// pricesRule checks the price list shape: a non-empty array whose
// elements each carry a size name and a non-negative integer price.
func pricesRule() Rule {
	return Rule{
		Required: true,
		Custom: []CustomCheck{
			func(value any) string {
				list, ok := value.([]any)
				if !ok {
					return "Prices must be an array"
				}
				if len(list) == 0 {
					return "At least one price is required"
				}
				for _, elem := range list {
					p, ok := elem.(map[string]any)
					if !ok {
						return "Each price must have a size name"
					}
					if sizeName, ok := p["size_name"].(string); !ok || sizeName == "" {
						return "Each price must have a size name"
					}
					cents, ok := toFloat(p["price_cents"])
					if !ok || cents < 0 {
						return "Each price must have a valid price in cents"
					}
					if !IsIntegral(p["price_cents"]) {
						return "Each price must have a valid price in cents"
					}
				}
				return ""
			},
		},
	}
}
