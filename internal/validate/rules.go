// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package validate

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/olegiv/menu-go/internal/model"
)

var (
	emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	slugPattern  = regexp.MustCompile(`^[a-z0-9-]+$`)
	urlPattern   = regexp.MustCompile(`^(https?://|/)\S+$`)
)

// Password bounds.
const (
	PasswordMinLength = 8
	PasswordMaxLength = 128
)

// EmailRule validates an email address.
func EmailRule() Rule {
	return Rule{
		Required:  true,
		MaxLength: 255,
		Pattern:   emailPattern,
	}
}

// PasswordRule validates password complexity. Each character class is an
// independent check so every missing class is reported at once.
func PasswordRule() Rule {
	return Rule{
		Required:  true,
		MinLength: PasswordMinLength,
		MaxLength: PasswordMaxLength,
		Custom: []CustomCheck{
			requireClass(unicode.IsLower, "Password must contain at least one lowercase letter"),
			requireClass(unicode.IsUpper, "Password must contain at least one uppercase letter"),
			requireClass(unicode.IsDigit, "Password must contain at least one number"),
			requireClass(isSymbol, "Password must contain at least one special character"),
		},
	}
}

// SlugRule validates a URL-safe slug: lowercase alphanumerics and hyphens,
// with no leading, trailing, or doubled hyphens.
func SlugRule() Rule {
	return Rule{
		Required:  true,
		MinLength: 1,
		MaxLength: 255,
		Pattern:   slugPattern,
		Custom: []CustomCheck{
			stringCheck(func(s string) string {
				if strings.HasPrefix(s, "-") || strings.HasSuffix(s, "-") {
					return "Slug cannot start or end with a hyphen"
				}
				return ""
			}),
			stringCheck(func(s string) string {
				if strings.Contains(s, "--") {
					return "Slug cannot contain consecutive hyphens"
				}
				return ""
			}),
		},
	}
}

// NameRule validates a display name.
func NameRule() Rule {
	return Rule{
		Required:  true,
		MinLength: 1,
		MaxLength: 255,
		Custom: []CustomCheck{
			stringCheck(func(s string) string {
				if strings.TrimSpace(s) == "" {
					return "Name cannot be empty or only whitespace"
				}
				return ""
			}),
		},
	}
}

// MaxPriceCents is the largest representable price (999,999.99 TRY).
const MaxPriceCents = 99999999

// PriceCentsRule validates a price in integer minor-currency units.
func PriceCentsRule() Rule {
	return Rule{
		Required: true,
		Min:      floatPtr(0),
		Max:      floatPtr(MaxPriceCents),
		Custom: []CustomCheck{
			func(value any) string {
				if !IsIntegral(value) {
					return "Price must be a whole number (cents)"
				}
				return ""
			},
		},
	}
}

// SortOrderRule validates an optional non-negative sort position.
func SortOrderRule() Rule {
	return Rule{
		Min: floatPtr(0),
		Custom: []CustomCheck{
			func(value any) string {
				if !IsIntegral(value) {
					return "Sort order must be a whole number"
				}
				return ""
			},
		},
	}
}

// URLRule validates an optional image URL: absolute http(s), or a
// site-relative path as returned by the upload endpoint.
func URLRule() Rule {
	return Rule{
		Pattern:   urlPattern,
		MaxLength: 2048,
	}
}

// LocaleRule validates membership in the supported menu locales.
func LocaleRule() Rule {
	return Rule{
		Required: true,
		Custom: []CustomCheck{
			stringCheck(func(s string) string {
				if !model.IsValidLocale(s) {
					return fmt.Sprintf("Locale must be one of: %s", strings.Join(model.SupportedLocales(), ", "))
				}
				return ""
			}),
		},
	}
}

// RoleRule validates membership in the profile roles.
func RoleRule() Rule {
	return Rule{
		Required: true,
		Custom: []CustomCheck{
			stringCheck(func(s string) string {
				if !model.IsValidRole(s) {
					return fmt.Sprintf("Role must be one of: %s", strings.Join(model.ValidRoles(), ", "))
				}
				return ""
			}),
		},
	}
}

// requireClass builds a check that a string contains at least one rune of
// the given class. Non-string values pass; the string checks own them.
func requireClass(class func(rune) bool, message string) CustomCheck {
	return stringCheck(func(s string) string {
		for _, r := range s {
			if class(r) {
				return ""
			}
		}
		return message
	})
}

// isSymbol reports whether a rune counts as a password symbol:
// anything that is neither a letter, a digit, nor whitespace.
func isSymbol(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsSpace(r)
}

// stringCheck adapts a string predicate into a CustomCheck that ignores
// non-string values.
func stringCheck(check func(string) string) CustomCheck {
	return func(value any) string {
		s, ok := value.(string)
		if !ok {
			return ""
		}
		return check(s)
	}
}
