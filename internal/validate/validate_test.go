package validate

import (
	"regexp"
	"strings"
	"testing"
)

func TestValidate_RequiredShortCircuit(t *testing.T) {
	schema := Schema{
		"name": {
			Required:  true,
			MinLength: 5,
			Pattern:   regexp.MustCompile(`^x`),
		},
	}

	for _, value := range []any{nil, ""} {
		result := Validate(map[string]any{"name": value}, schema)
		if result.Valid {
			t.Fatalf("missing required value %v accepted", value)
		}
		if len(result.Errors["name"]) != 1 {
			t.Fatalf("expected exactly one error, got %v", result.Errors["name"])
		}
		if result.Errors["name"][0] != "name is required" {
			t.Fatalf("unexpected message: %q", result.Errors["name"][0])
		}
	}
}

func TestValidate_AbsentOptionalIsValid(t *testing.T) {
	schema := Schema{
		"nickname": {
			MinLength: 3,
			Pattern:   regexp.MustCompile(`^[a-z]+$`),
			Custom: []CustomCheck{
				func(any) string { return "custom should not run" },
			},
		},
	}

	result := Validate(map[string]any{}, schema)
	if !result.Valid {
		t.Fatalf("absent optional field produced errors: %v", result.Errors)
	}
	if len(result.Errors) != 0 {
		t.Fatalf("expected empty error map, got %v", result.Errors)
	}
}

func TestValidate_StringChecksAccumulate(t *testing.T) {
	schema := Schema{
		"code": {
			Required:  true,
			MinLength: 5,
			Pattern:   regexp.MustCompile(`^[0-9]+$`),
		},
	}

	result := Validate(map[string]any{"code": "ab"}, schema)
	if result.Valid {
		t.Fatal("invalid value accepted")
	}
	errs := result.Errors["code"]
	if len(errs) != 2 {
		t.Fatalf("expected both minLength and pattern errors, got %v", errs)
	}
}

func TestValidate_NumericBounds(t *testing.T) {
	schema := Schema{"price": PriceCentsRule()}

	tests := []struct {
		name  string
		value any
		valid bool
	}{
		{"zero", 0, true},
		{"positive int", 500, true},
		{"json float", float64(1500), true},
		{"negative", -1, false},
		{"over max", MaxPriceCents + 1, false},
		{"fractional", 10.5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Validate(map[string]any{"price": tt.value}, schema)
			if result.Valid != tt.valid {
				t.Fatalf("value %v: valid=%v, want %v (errors: %v)",
					tt.value, result.Valid, tt.valid, result.Errors)
			}
		})
	}
}

func TestValidate_TypeGatedChecksSkipped(t *testing.T) {
	// A pattern rule applied to a numeric value must be skipped, not fail.
	schema := Schema{
		"field": {
			Required: true,
			Pattern:  regexp.MustCompile(`^[a-z]+$`),
		},
	}

	result := Validate(map[string]any{"field": 42}, schema)
	if !result.Valid {
		t.Fatalf("pattern on non-string value produced errors: %v", result.Errors)
	}
}

func TestValidate_UnknownFieldsIgnored(t *testing.T) {
	schema := Schema{"email": EmailRule()}

	result := Validate(map[string]any{
		"email":      "user@example.com",
		"unexpected": "anything",
	}, schema)
	if !result.Valid {
		t.Fatalf("unknown field caused errors: %v", result.Errors)
	}
}

func TestValidate_CustomRunsAfterFailedBuiltins(t *testing.T) {
	schema := Schema{
		"slug": {
			Required:  true,
			MinLength: 10,
			Custom: []CustomCheck{
				func(any) string { return "custom fired" },
			},
		},
	}

	result := Validate(map[string]any{"slug": "short"}, schema)
	errs := result.Errors["slug"]
	if len(errs) != 2 {
		t.Fatalf("expected minLength and custom errors, got %v", errs)
	}
	if errs[len(errs)-1] != "custom fired" {
		t.Fatalf("custom check did not run last: %v", errs)
	}
}

func TestPasswordRule_ReportsAllMissingClasses(t *testing.T) {
	schema := Schema{"password": PasswordRule()}

	result := Validate(map[string]any{"password": "lowercaseonly"}, schema)
	if result.Valid {
		t.Fatal("weak password accepted")
	}

	errs := strings.Join(result.Errors["password"], "; ")
	for _, want := range []string{
		"uppercase letter",
		"number",
		"special character",
	} {
		if !strings.Contains(errs, want) {
			t.Errorf("missing %q message in %q", want, errs)
		}
	}
	if strings.Contains(errs, "lowercase") {
		t.Errorf("lowercase message reported for a lowercase password: %q", errs)
	}
}

func TestPasswordRule_StrongPasswordAccepted(t *testing.T) {
	schema := Schema{"password": PasswordRule()}

	result := Validate(map[string]any{"password": "Str0ng#pass"}, schema)
	if !result.Valid {
		t.Fatalf("strong password rejected: %v", result.Errors)
	}
}

func TestSlugRule(t *testing.T) {
	schema := Schema{"slug": SlugRule()}

	tests := []struct {
		slug  string
		valid bool
	}{
		{"item-name", true},
		{"a", true},
		{"item--name", false},
		{"-item", false},
		{"item-", false},
		{"Item", false},
		{"with space", false},
	}

	for _, tt := range tests {
		result := Validate(map[string]any{"slug": tt.slug}, schema)
		if result.Valid != tt.valid {
			t.Errorf("slug %q: valid=%v, want %v (errors: %v)",
				tt.slug, result.Valid, tt.valid, result.Errors)
		}
	}
}

func TestLocaleAndRoleRules(t *testing.T) {
	schema := Schema{"locale": LocaleRule(), "role": RoleRule()}

	result := Validate(map[string]any{"locale": "tr", "role": "staff"}, schema)
	if !result.Valid {
		t.Fatalf("valid locale/role rejected: %v", result.Errors)
	}

	result = Validate(map[string]any{"locale": "de", "role": "root"}, schema)
	if result.Valid {
		t.Fatal("unsupported locale/role accepted")
	}
	if len(result.Errors["locale"]) == 0 || len(result.Errors["role"]) == 0 {
		t.Fatalf("expected errors for both fields, got %v", result.Errors)
	}
}

func TestLoginSchema_EndToEnd(t *testing.T) {
	result := Validate(map[string]any{
		"email":    "bad",
		"password": "",
	}, LoginSchema())

	if result.Valid {
		t.Fatal("invalid login accepted")
	}

	emailErrs := result.Errors["email"]
	if len(emailErrs) == 0 || !strings.Contains(emailErrs[0], "format is invalid") {
		t.Fatalf("expected email format error, got %v", emailErrs)
	}

	passwordErrs := result.Errors["password"]
	if len(passwordErrs) != 1 || passwordErrs[0] != "password is required" {
		t.Fatalf("expected single required error for password, got %v", passwordErrs)
	}
}
