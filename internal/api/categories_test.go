// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"testing"

	"github.com/olegiv/menu-go/internal/model"
	"github.com/olegiv/menu-go/internal/service"
)

func adminCookie(t *testing.T, ts *testServer) *http.Cookie {
	t.Helper()
	ts.createProfile(t, "admin@example.com", "Str0ng!Passw0rd", model.RoleAdmin)
	return ts.login(t, "admin@example.com", "Str0ng!Passw0rd")
}

func TestAdminCategories_RequireAuth(t *testing.T) {
	ts := newTestServer(t)

	w := ts.request(t, http.MethodGet, "/api/v1/admin/categories", nil, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestCreateCategory(t *testing.T) {
	ts := newTestServer(t)
	cookie := adminCookie(t, ts)

	body := map[string]any{
		"slug":       "beverages",
		"sort_order": 2,
		"is_active":  true,
		"translations": []map[string]any{
			{"locale": "en", "name": "Beverages"},
			{"locale": "tr", "name": "İçecekler"},
		},
	}
	w := ts.request(t, http.MethodPost, "/api/v1/admin/categories", body, cookie)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var category service.CategoryRecord
	decodeData(t, w, &category)
	if category.Slug != "beverages" {
		t.Errorf("Slug = %q", category.Slug)
	}
	if len(category.Translations) != 2 {
		t.Errorf("got %d translations, want 2", len(category.Translations))
	}
}

func TestCreateCategory_DerivesSlugFromName(t *testing.T) {
	ts := newTestServer(t)
	cookie := adminCookie(t, ts)

	body := map[string]any{
		"translations": []map[string]any{
			{"locale": "en", "name": "Hot Drinks & Teas"},
			{"locale": "tr", "name": "Sıcak İçecekler"},
		},
	}
	w := ts.request(t, http.MethodPost, "/api/v1/admin/categories", body, cookie)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var category service.CategoryRecord
	decodeData(t, w, &category)
	if category.Slug != "hot-drinks-teas" {
		t.Errorf("Slug = %q, want one derived from the English name", category.Slug)
	}
}

func TestCreateCategory_ValidationErrors(t *testing.T) {
	ts := newTestServer(t)
	cookie := adminCookie(t, ts)

	// Missing slug, empty translations
	body := map[string]any{"translations": []map[string]any{}}
	w := ts.request(t, http.MethodPost, "/api/v1/admin/categories", body, cookie)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422, body = %s", w.Code, w.Body.String())
	}

	detail := decodeError(t, w)
	if len(detail.Details["slug"]) == 0 {
		t.Error("expected slug errors")
	}
	if len(detail.Details["translations"]) == 0 {
		t.Error("expected translations errors")
	}
}

func TestCreateCategory_DuplicateSlug(t *testing.T) {
	ts := newTestServer(t)
	cookie := adminCookie(t, ts)

	body := map[string]any{
		"slug":         "desserts",
		"translations": []map[string]any{{"locale": "en", "name": "Desserts"}},
	}
	w := ts.request(t, http.MethodPost, "/api/v1/admin/categories", body, cookie)
	if w.Code != http.StatusCreated {
		t.Fatalf("first create status = %d", w.Code)
	}

	w = ts.request(t, http.MethodPost, "/api/v1/admin/categories", body, cookie)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("duplicate create status = %d, want 422", w.Code)
	}
	detail := decodeError(t, w)
	if len(detail.Details["slug"]) == 0 {
		t.Error("expected slug duplicate error")
	}
}

func TestUpdateCategory_ReplacesTranslations(t *testing.T) {
	ts := newTestServer(t)
	cookie := adminCookie(t, ts)
	category, _ := seedMenu(t, ts)

	body := map[string]any{
		"slug":         "desserts",
		"sort_order":   1,
		"is_active":    true,
		"translations": []map[string]any{{"locale": "en", "name": "Sweet Things"}},
	}
	w := ts.request(t, http.MethodPut, "/api/v1/admin/categories/"+category.ID, body, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var updated service.CategoryRecord
	decodeData(t, w, &updated)
	if len(updated.Translations) != 1 {
		t.Fatalf("got %d translations, want full replacement to 1", len(updated.Translations))
	}
	if updated.Translations[0].Name != "Sweet Things" {
		t.Errorf("Name = %q", updated.Translations[0].Name)
	}
}

func TestUpdateCategory_NotFound(t *testing.T) {
	ts := newTestServer(t)
	cookie := adminCookie(t, ts)

	body := map[string]any{
		"slug":         "ghost",
		"translations": []map[string]any{{"locale": "en", "name": "Ghost"}},
	}
	w := ts.request(t, http.MethodPut, "/api/v1/admin/categories/nope", body, cookie)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestDeleteCategory(t *testing.T) {
	ts := newTestServer(t)
	cookie := adminCookie(t, ts)
	category, item := seedMenu(t, ts)

	w := ts.request(t, http.MethodDelete, "/api/v1/admin/categories/"+category.ID, nil, cookie)
	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", w.Code)
	}

	// Items cascade with the category
	w = ts.request(t, http.MethodGet, "/api/v1/admin/items/"+item.ID, nil, cookie)
	if w.Code != http.StatusNotFound {
		t.Fatalf("item after category delete = %d, want 404", w.Code)
	}
}

func TestListCategories_IncludesInactive(t *testing.T) {
	ts := newTestServer(t)
	cookie := adminCookie(t, ts)
	seedMenu(t, ts)

	inactive := map[string]any{
		"slug":         "archived",
		"is_active":    false,
		"translations": []map[string]any{{"locale": "en", "name": "Archived"}},
	}
	if w := ts.request(t, http.MethodPost, "/api/v1/admin/categories", inactive, cookie); w.Code != http.StatusCreated {
		t.Fatalf("create status = %d", w.Code)
	}

	w := ts.request(t, http.MethodGet, "/api/v1/admin/categories", nil, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var categories []service.CategoryRecord
	decodeData(t, w, &categories)
	if len(categories) != 2 {
		t.Errorf("got %d categories, want 2 (inactive visible to admin)", len(categories))
	}
}
