// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/menu-go/internal/middleware"
	"github.com/olegiv/menu-go/internal/model"
)

// ListMenuCategories handles GET /api/v1/menu/categories.
// Returns active categories with names resolved for the request locale.
// Meta carries the resolved locale and its text direction.
func (h *Handler) ListMenuCategories(w http.ResponseWriter, r *http.Request) {
	locale := middleware.GetLocale(r)

	categories, err := h.menus.ListPublicCategories(r.Context(), locale)
	if err != nil {
		slog.Error("failed to list public categories", "error", err)
		WriteInternalError(w, "Failed to list categories")
		return
	}

	WriteSuccess(w, categories, &Meta{Locale: locale, Direction: model.LocaleDirection(locale)})
}

// GetMenuCategory handles GET /api/v1/menu/categories/{slug}.
// Returns one active category with its active items. Inactive or unknown
// categories are indistinguishable: both respond 404.
func (h *Handler) GetMenuCategory(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if slug == "" {
		WriteBadRequest(w, "Slug is required")
		return
	}
	locale := middleware.GetLocale(r)

	detail, err := h.menus.GetPublicCategory(r.Context(), slug, locale)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Category not found")
			return
		}
		slog.Error("failed to get public category", "slug", slug, "error", err)
		WriteInternalError(w, "Failed to retrieve category")
		return
	}

	WriteSuccess(w, detail, nil)
}

// GetMenuItem handles GET /api/v1/menu/items/{id}.
func (h *Handler) GetMenuItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		WriteBadRequest(w, "Item ID is required")
		return
	}
	locale := middleware.GetLocale(r)

	item, err := h.menus.GetPublicItem(r.Context(), id, locale)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Item not found")
			return
		}
		slog.Error("failed to get public item", "item_id", id, "error", err)
		WriteInternalError(w, "Failed to retrieve item")
		return
	}

	WriteSuccess(w, item, nil)
}
