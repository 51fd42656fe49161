// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/menu-go/internal/menu"
	"github.com/olegiv/menu-go/internal/middleware"
	"github.com/olegiv/menu-go/internal/model"
	"github.com/olegiv/menu-go/internal/service"
	"github.com/olegiv/menu-go/internal/util"
	"github.com/olegiv/menu-go/internal/validate"
)

// CategoryRequest is the request body for category create and update.
// Translations replace the full stored set on every write.
type CategoryRequest struct {
	Slug         string             `json:"slug"`
	SortOrder    int64              `json:"sort_order"`
	IsActive     bool               `json:"is_active"`
	Translations []menu.Translation `json:"translations"`
}

func (req CategoryRequest) toInput() service.CategoryInput {
	return service.CategoryInput{
		Slug:         req.Slug,
		SortOrder:    req.SortOrder,
		IsActive:     req.IsActive,
		Translations: req.Translations,
	}
}

// ListCategories handles GET /api/v1/admin/categories.
// Returns all categories, active or not, with their full translation sets.
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.menus.ListCategories(r.Context())
	if err != nil {
		slog.Error("failed to list categories", "error", err)
		WriteInternalError(w, "Failed to list categories")
		return
	}
	WriteSuccess(w, categories, nil)
}

// GetCategory handles GET /api/v1/admin/categories/{id}.
func (h *Handler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	category, err := h.menus.GetCategory(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Category not found")
			return
		}
		slog.Error("failed to get category", "category_id", id, "error", err)
		WriteInternalError(w, "Failed to retrieve category")
		return
	}
	WriteSuccess(w, category, nil)
}

// deriveSlug fills in a missing slug from the English translation name.
// A request that carries neither still fails the slug validation rule.
func deriveSlug(record map[string]any) {
	if s, _ := record["slug"].(string); s != "" {
		return
	}
	list, _ := record["translations"].([]any)
	for _, elem := range list {
		t, ok := elem.(map[string]any)
		if !ok {
			continue
		}
		if locale, _ := t["locale"].(string); locale != model.LocaleEnglish {
			continue
		}
		if name, _ := t["name"].(string); name != "" {
			if slug := util.Slugify(name); slug != "" {
				record["slug"] = slug
			}
		}
		return
	}
}

// CreateCategory handles POST /api/v1/admin/categories.
func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CategoryRequest
	if !decodeAndValidate(w, r, validate.CategorySchema(), &req, deriveSlug) {
		return
	}

	category, err := h.menus.CreateCategory(ctx, req.toInput())
	if err != nil {
		if isUniqueViolation(err) {
			WriteValidationError(w, map[string][]string{"slug": {"Slug already exists"}})
			return
		}
		slog.Error("failed to create category", "slug", req.Slug, "error", err)
		WriteInternalError(w, "Failed to create category")
		return
	}

	h.events.Info(ctx, model.EventCategoryCategory, "Category created",
		middleware.GetProfileID(r), middleware.ClientIP(r),
		map[string]any{"category_id": category.ID, "slug": category.Slug})

	WriteCreated(w, category)
}

// UpdateCategory handles PUT /api/v1/admin/categories/{id}.
func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	var req CategoryRequest
	if !decodeAndValidate(w, r, validate.CategorySchema(), &req) {
		return
	}

	category, err := h.menus.UpdateCategory(ctx, id, req.toInput())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Category not found")
			return
		}
		if isUniqueViolation(err) {
			WriteValidationError(w, map[string][]string{"slug": {"Slug already exists"}})
			return
		}
		slog.Error("failed to update category", "category_id", id, "error", err)
		WriteInternalError(w, "Failed to update category")
		return
	}

	h.events.Info(ctx, model.EventCategoryCategory, "Category updated",
		middleware.GetProfileID(r), middleware.ClientIP(r),
		map[string]any{"category_id": category.ID, "slug": category.Slug})

	WriteSuccess(w, category, nil)
}

// DeleteCategory handles DELETE /api/v1/admin/categories/{id}.
// Items in the category are removed by the cascading foreign key.
func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	if err := h.menus.DeleteCategory(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Category not found")
			return
		}
		slog.Error("failed to delete category", "category_id", id, "error", err)
		WriteInternalError(w, "Failed to delete category")
		return
	}

	h.events.Info(ctx, model.EventCategoryCategory, "Category deleted",
		middleware.GetProfileID(r), middleware.ClientIP(r),
		map[string]any{"category_id": id})

	w.WriteHeader(http.StatusNoContent)
}
