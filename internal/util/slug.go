// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package util provides small shared helpers, including URL slug
// generation with Unicode normalization.
package util

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// nonSlugChars matches everything outside the slug alphabet.
	nonSlugChars = regexp.MustCompile(`[^a-z0-9-]+`)
	// repeatedHyphens matches runs of two or more hyphens.
	repeatedHyphens = regexp.MustCompile(`-{2,}`)
)

// Slugify converts text to a URL-safe slug: accents are decomposed and
// stripped, the result is lowercased, spaces become hyphens, and anything
// outside [a-z0-9-] is removed. Used to derive category slugs from the
// English translation name when the form omits one.
func Slugify(s string) string {
	// Decompose accented characters and drop the combining marks.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)

	result = strings.ToLower(result)
	result = strings.ReplaceAll(result, " ", "-")
	result = nonSlugChars.ReplaceAllString(result, "")
	result = repeatedHyphens.ReplaceAllString(result, "-")

	return strings.Trim(result, "-")
}

// IsValidSlug reports whether s is a well-formed slug: non-empty,
// lowercase alphanumerics and hyphens only, with no leading, trailing,
// or consecutive hyphens.
func IsValidSlug(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-') {
			return false
		}
	}
	if s[0] == '-' || s[len(s)-1] == '-' {
		return false
	}
	return !strings.Contains(s, "--")
}
