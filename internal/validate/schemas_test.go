package validate

import (
	"testing"
)

func validItemData() map[string]any {
	return map[string]any{
		"category_id": "7f9c6a1e-0000-0000-0000-000000000001",
		"sort_order":  float64(2),
		"translations": []any{
			map[string]any{"locale": "en", "name": "Latte"},
			map[string]any{"locale": "tr", "name": "Latte", "description": "Sutlu kahve"},
		},
		"prices": []any{
			map[string]any{"size_name": "Small", "price_cents": float64(4500)},
			map[string]any{"size_name": "Large", "price_cents": float64(6000)},
		},
	}
}

func TestItemSchema_Valid(t *testing.T) {
	result := Validate(validItemData(), ItemSchema())
	if !result.Valid {
		t.Fatalf("valid item rejected: %v", result.Errors)
	}
}

func TestItemSchema_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(map[string]any)
		field  string
	}{
		{
			"missing category",
			func(d map[string]any) { delete(d, "category_id") },
			"category_id",
		},
		{
			"translations not a list",
			func(d map[string]any) { d["translations"] = "nope" },
			"translations",
		},
		{
			"empty translations",
			func(d map[string]any) { d["translations"] = []any{} },
			"translations",
		},
		{
			"translation without name",
			func(d map[string]any) {
				d["translations"] = []any{map[string]any{"locale": "en"}}
			},
			"translations",
		},
		{
			"unsupported translation locale",
			func(d map[string]any) {
				d["translations"] = []any{map[string]any{"locale": "fr", "name": "Cafe"}}
			},
			"translations",
		},
		{
			"empty prices",
			func(d map[string]any) { d["prices"] = []any{} },
			"prices",
		},
		{
			"price without size name",
			func(d map[string]any) {
				d["prices"] = []any{map[string]any{"price_cents": float64(100)}}
			},
			"prices",
		},
		{
			"negative price",
			func(d map[string]any) {
				d["prices"] = []any{map[string]any{"size_name": "S", "price_cents": float64(-1)}}
			},
			"prices",
		},
		{
			"fractional price",
			func(d map[string]any) {
				d["prices"] = []any{map[string]any{"size_name": "S", "price_cents": 99.5}}
			},
			"prices",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := validItemData()
			tt.mutate(data)

			result := Validate(data, ItemSchema())
			if result.Valid {
				t.Fatal("invalid item accepted")
			}
			if len(result.Errors[tt.field]) == 0 {
				t.Fatalf("expected error on %q, got %v", tt.field, result.Errors)
			}
		})
	}
}

func TestItemSchema_ImageURL(t *testing.T) {
	data := validItemData()
	data["image_url"] = "/uploads/items/7f9c/latte.jpg"
	if result := Validate(data, ItemSchema()); !result.Valid {
		t.Fatalf("site-relative upload URL rejected: %v", result.Errors)
	}

	data["image_url"] = "ftp://example.com/latte.jpg"
	if result := Validate(data, ItemSchema()); result.Valid {
		t.Fatal("non-http scheme accepted")
	}
}

func TestCategorySchema(t *testing.T) {
	data := map[string]any{
		"slug": "hot-drinks",
		"translations": []any{
			map[string]any{"locale": "en", "name": "Hot Drinks"},
			map[string]any{"locale": "ar", "name": "مشروبات ساخنة"},
			map[string]any{"locale": "tr", "name": "Sıcak İçecekler"},
		},
	}

	result := Validate(data, CategorySchema())
	if !result.Valid {
		t.Fatalf("valid category rejected: %v", result.Errors)
	}

	data["slug"] = "Hot Drinks"
	result = Validate(data, CategorySchema())
	if result.Valid {
		t.Fatal("category with invalid slug accepted")
	}
}

func TestRegisterSchema(t *testing.T) {
	result := Validate(map[string]any{
		"email":    "staff@example.com",
		"password": "Str0ng#pass",
		"role":     "staff",
	}, RegisterSchema())
	if !result.Valid {
		t.Fatalf("valid registration rejected: %v", result.Errors)
	}

	result = Validate(map[string]any{
		"email":    "staff@example.com",
		"password": "weak",
		"role":     "superuser",
	}, RegisterSchema())
	if result.Valid {
		t.Fatal("invalid registration accepted")
	}
	if len(result.Errors["password"]) == 0 || len(result.Errors["role"]) == 0 {
		t.Fatalf("expected password and role errors, got %v", result.Errors)
	}
}
