// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/olegiv/menu-go/internal/menu"
	"github.com/olegiv/menu-go/internal/service"
)

// seedMenu creates one active category with one active item and returns both.
func seedMenu(t *testing.T, ts *testServer) (service.CategoryRecord, service.ItemRecord) {
	t.Helper()
	ctx := context.Background()

	category, err := ts.handler.menus.CreateCategory(ctx, service.CategoryInput{
		Slug:      "desserts",
		SortOrder: 1,
		IsActive:  true,
		Translations: []menu.Translation{
			{Locale: "en", Name: "Desserts"},
			{Locale: "ar", Name: "حلويات"},
			{Locale: "tr", Name: "Tatlılar"},
		},
	})
	if err != nil {
		t.Fatalf("creating category: %v", err)
	}

	item, err := ts.handler.menus.CreateItem(ctx, service.ItemInput{
		CategoryID: category.ID,
		SortOrder:  1,
		IsActive:   true,
		Translations: []menu.Translation{
			{Locale: "en", Name: "Waffle", Description: "With chocolate"},
			{Locale: "ar", Name: "وافل"},
		},
		Prices: []menu.Price{
			{SizeName: "Regular", PriceCents: 3500, IsActive: true, SortOrder: 1},
			{SizeName: "Old", PriceCents: 100, IsActive: false, SortOrder: 2},
		},
	})
	if err != nil {
		t.Fatalf("creating item: %v", err)
	}
	return category, item
}

func TestListMenuCategories(t *testing.T) {
	ts := newTestServer(t)
	seedMenu(t, ts)

	w := ts.request(t, http.MethodGet, "/api/v1/menu/categories?locale=ar", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var categories []menu.CategoryView
	decodeData(t, w, &categories)
	if len(categories) != 1 {
		t.Fatalf("got %d categories, want 1", len(categories))
	}
	if categories[0].Name != "حلويات" {
		t.Errorf("Name = %q, want Arabic translation", categories[0].Name)
	}
}

func TestListMenuCategories_DirectionMeta(t *testing.T) {
	ts := newTestServer(t)
	seedMenu(t, ts)

	w := ts.request(t, http.MethodGet, "/api/v1/menu/categories?locale=ar", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	meta := decodeMeta(t, w)
	if meta.Locale != "ar" || meta.Direction != "rtl" {
		t.Errorf("meta = %s/%s, want ar/rtl", meta.Locale, meta.Direction)
	}

	w = ts.request(t, http.MethodGet, "/api/v1/menu/categories", nil, nil)
	meta = decodeMeta(t, w)
	if meta.Locale != "en" || meta.Direction != "ltr" {
		t.Errorf("meta = %s/%s, want en/ltr", meta.Locale, meta.Direction)
	}
}

func TestGetMenuCategory(t *testing.T) {
	ts := newTestServer(t)
	_, item := seedMenu(t, ts)

	w := ts.request(t, http.MethodGet, "/api/v1/menu/categories/desserts", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var detail service.CategoryDetail
	decodeData(t, w, &detail)
	if detail.Category.Name != "Desserts" {
		t.Errorf("category name = %q", detail.Category.Name)
	}
	if len(detail.Items) != 1 {
		t.Fatalf("got %d items, want 1", len(detail.Items))
	}
	if detail.Items[0].ID != item.ID {
		t.Errorf("item ID = %q, want %q", detail.Items[0].ID, item.ID)
	}
	if detail.Items[0].MinPriceCents != 3500 {
		t.Errorf("MinPriceCents = %d, want 3500 (inactive price excluded)", detail.Items[0].MinPriceCents)
	}
}

func TestGetMenuCategory_NotFound(t *testing.T) {
	ts := newTestServer(t)

	w := ts.request(t, http.MethodGet, "/api/v1/menu/categories/nope", nil, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	if detail := decodeError(t, w); detail.Code != "not_found" {
		t.Errorf("error code = %q", detail.Code)
	}
}

func TestGetMenuCategory_InactiveHidden(t *testing.T) {
	ts := newTestServer(t)

	_, err := ts.handler.menus.CreateCategory(context.Background(), service.CategoryInput{
		Slug:         "hidden",
		IsActive:     false,
		Translations: []menu.Translation{{Locale: "en", Name: "Hidden"}},
	})
	if err != nil {
		t.Fatalf("creating category: %v", err)
	}

	w := ts.request(t, http.MethodGet, "/api/v1/menu/categories/hidden", nil, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404 for inactive category", w.Code)
	}
}

func TestGetMenuItem(t *testing.T) {
	ts := newTestServer(t)
	_, item := seedMenu(t, ts)

	w := ts.request(t, http.MethodGet, "/api/v1/menu/items/"+item.ID+"?locale=ar", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var view menu.ItemView
	decodeData(t, w, &view)
	if view.Name != "وافل" {
		t.Errorf("Name = %q, want Arabic translation", view.Name)
	}
	if len(view.Prices) != 1 {
		t.Errorf("got %d prices, want 1 active", len(view.Prices))
	}
	if view.CategoryName != "حلويات" {
		t.Errorf("CategoryName = %q", view.CategoryName)
	}
}

func TestGetMenuItem_UnknownID(t *testing.T) {
	ts := newTestServer(t)

	w := ts.request(t, http.MethodGet, "/api/v1/menu/items/no-such-id", nil, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestLocaleFallback(t *testing.T) {
	ts := newTestServer(t)
	seedMenu(t, ts)

	// German is unsupported; matcher falls back to the default locale
	r := ts.request(t, http.MethodGet, "/api/v1/menu/categories", nil, nil)
	if r.Code != http.StatusOK {
		t.Fatalf("status = %d", r.Code)
	}
	var categories []menu.CategoryView
	decodeData(t, r, &categories)
	if categories[0].Name != "Desserts" {
		t.Errorf("Name = %q, want English default", categories[0].Name)
	}
}
