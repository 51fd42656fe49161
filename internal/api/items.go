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
	"github.com/olegiv/menu-go/internal/validate"
)

// ItemRequest is the request body for item create and update.
// Translations and prices replace the full stored sets on every write.
type ItemRequest struct {
	CategoryID   string             `json:"category_id"`
	ImageURL     string             `json:"image_url"`
	SortOrder    int64              `json:"sort_order"`
	IsActive     bool               `json:"is_active"`
	Translations []menu.Translation `json:"translations"`
	Prices       []menu.Price       `json:"prices"`
}

func (req ItemRequest) toInput() service.ItemInput {
	return service.ItemInput{
		CategoryID:   req.CategoryID,
		ImageURL:     req.ImageURL,
		SortOrder:    req.SortOrder,
		IsActive:     req.IsActive,
		Translations: req.Translations,
		Prices:       req.Prices,
	}
}

// ListItems handles GET /api/v1/admin/items. An optional ?category=
// query parameter restricts the result to one category; the unfiltered
// list carries the item count in meta.
func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	categoryID := r.URL.Query().Get("category")

	items, err := h.menus.ListItems(r.Context(), categoryID)
	if err != nil {
		slog.Error("failed to list items", "error", err)
		WriteInternalError(w, "Failed to list items")
		return
	}

	var meta *Meta
	if categoryID == "" {
		total, err := h.queries.CountItems(r.Context())
		if err != nil {
			slog.Error("failed to count items", "error", err)
			WriteInternalError(w, "Failed to list items")
			return
		}
		meta = &Meta{Total: total}
	}
	WriteSuccess(w, items, meta)
}

// GetItem handles GET /api/v1/admin/items/{id}.
func (h *Handler) GetItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	item, err := h.menus.GetItem(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Item not found")
			return
		}
		slog.Error("failed to get item", "item_id", id, "error", err)
		WriteInternalError(w, "Failed to retrieve item")
		return
	}
	WriteSuccess(w, item, nil)
}

// CreateItem handles POST /api/v1/admin/items.
func (h *Handler) CreateItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ItemRequest
	if !decodeAndValidate(w, r, validate.ItemSchema(), &req) {
		return
	}

	item, err := h.menus.CreateItem(ctx, req.toInput())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteValidationError(w, map[string][]string{"category_id": {"Category does not exist"}})
			return
		}
		slog.Error("failed to create item", "category_id", req.CategoryID, "error", err)
		WriteInternalError(w, "Failed to create item")
		return
	}

	h.events.Info(ctx, model.EventCategoryItem, "Item created",
		middleware.GetProfileID(r), middleware.ClientIP(r),
		map[string]any{"item_id": item.ID, "category_id": item.CategoryID})

	WriteCreated(w, item)
}

// UpdateItem handles PUT /api/v1/admin/items/{id}.
func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	var req ItemRequest
	if !decodeAndValidate(w, r, validate.ItemSchema(), &req) {
		return
	}

	item, err := h.menus.UpdateItem(ctx, id, req.toInput())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Either the item or the target category does not exist
			WriteNotFound(w, "Item or category not found")
			return
		}
		slog.Error("failed to update item", "item_id", id, "error", err)
		WriteInternalError(w, "Failed to update item")
		return
	}

	h.events.Info(ctx, model.EventCategoryItem, "Item updated",
		middleware.GetProfileID(r), middleware.ClientIP(r),
		map[string]any{"item_id": item.ID})

	WriteSuccess(w, item, nil)
}

// DeleteItem handles DELETE /api/v1/admin/items/{id}. Uploaded image
// files referenced by the item are removed along with it.
func (h *Handler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	item, err := h.menus.DeleteItem(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Item not found")
			return
		}
		slog.Error("failed to delete item", "item_id", id, "error", err)
		WriteInternalError(w, "Failed to delete item")
		return
	}

	if imageUUID := imageUUIDFromURL(item.ImageURL); imageUUID != "" {
		if err := h.processor.DeleteImageFiles(imageUUID); err != nil {
			slog.Warn("failed to delete item image files", "item_id", id, "error", err)
		}
	}

	h.events.Info(ctx, model.EventCategoryItem, "Item deleted",
		middleware.GetProfileID(r), middleware.ClientIP(r),
		map[string]any{"item_id": id})

	w.WriteHeader(http.StatusNoContent)
}
