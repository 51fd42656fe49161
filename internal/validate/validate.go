// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package validate implements a declarative field validation engine.
// A Schema maps field names to Rules; Validate checks an untyped record
// against a schema and reports every violated check per field.
package validate

import (
	"fmt"
	"regexp"
	"unicode/utf8"
)

// CustomCheck inspects a present value and returns an error message,
// or the empty string when the value is acceptable.
type CustomCheck func(value any) string

// Rule describes the checks applied to a single field.
// Zero-valued options are inactive, so rules list only the checks they need.
type Rule struct {
	Required  bool
	MinLength int            // strings only, inclusive
	MaxLength int            // strings only, inclusive
	Pattern   *regexp.Regexp // strings only
	Min       *float64       // numbers only, inclusive
	Max       *float64       // numbers only, inclusive
	Custom    []CustomCheck  // run last, each check appends its own message
}

// Schema maps field names to their rules. Fields present in the data but
// absent from the schema are ignored.
type Schema map[string]Rule

// Result is the outcome of validating a record against a schema.
// Errors contains an entry only for fields that produced at least one message.
type Result struct {
	Valid  bool                `json:"valid"`
	Errors map[string][]string `json:"errors"`
}

// Validate checks data against schema. It is a pure function: it never
// panics and never mutates its inputs. Checks that do not apply to the
// value's type are skipped silently.
func Validate(data map[string]any, schema Schema) Result {
	errors := make(map[string][]string)

	for field, rule := range schema {
		if fieldErrors := checkField(data[field], rule, field); len(fieldErrors) > 0 {
			errors[field] = fieldErrors
		}
	}

	return Result{
		Valid:  len(errors) == 0,
		Errors: errors,
	}
}

// checkField runs every applicable check for one field, accumulating
// messages. A missing required value short-circuits with a single error;
// a missing optional value is always valid.
func checkField(value any, rule Rule, field string) []string {
	var errs []string

	if isAbsent(value) {
		if rule.Required {
			errs = append(errs, fmt.Sprintf("%s is required", field))
		}
		return errs
	}

	if s, ok := value.(string); ok {
		if rule.MinLength > 0 && utf8.RuneCountInString(s) < rule.MinLength {
			errs = append(errs, fmt.Sprintf("%s must be at least %d characters", field, rule.MinLength))
		}
		if rule.MaxLength > 0 && utf8.RuneCountInString(s) > rule.MaxLength {
			errs = append(errs, fmt.Sprintf("%s must be no more than %d characters", field, rule.MaxLength))
		}
		if rule.Pattern != nil && !rule.Pattern.MatchString(s) {
			errs = append(errs, fmt.Sprintf("%s format is invalid", field))
		}
	}

	if n, ok := toFloat(value); ok {
		if rule.Min != nil && n < *rule.Min {
			errs = append(errs, fmt.Sprintf("%s must be at least %v", field, *rule.Min))
		}
		if rule.Max != nil && n > *rule.Max {
			errs = append(errs, fmt.Sprintf("%s must be no more than %v", field, *rule.Max))
		}
	}

	for _, check := range rule.Custom {
		if msg := check(value); msg != "" {
			errs = append(errs, msg)
		}
	}

	return errs
}

// isAbsent reports whether a value counts as missing: nil (absent key or
// JSON null) or the empty string.
func isAbsent(value any) bool {
	if value == nil {
		return true
	}
	s, ok := value.(string)
	return ok && s == ""
}

// toFloat converts the numeric types produced by JSON decoding and form
// parsing to float64 for bound checks.
func toFloat(value any) (float64, bool) {
	switch n := value.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// IsIntegral reports whether a numeric value has no fractional part.
// Non-numeric values are integral by definition (the type-gated numeric
// checks do not apply to them).
func IsIntegral(value any) bool {
	n, ok := toFloat(value)
	if !ok {
		return true
	}
	return n == float64(int64(n))
}

// floatPtr is a convenience for building rules with numeric bounds.
func floatPtr(f float64) *float64 {
	return &f
}
