// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"log/slog"
	"net/http"
)

// ListEvents handles GET /api/v1/admin/events. Events are returned
// newest first with page/per_page pagination.
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	page := parsePageParam(r)
	perPage := parsePerPageParam(r, 50, 200)
	offset := (page - 1) * perPage

	events, err := h.events.List(r.Context(), int64(perPage), int64(offset))
	if err != nil {
		slog.Error("failed to list events", "error", err)
		WriteInternalError(w, "Failed to list events")
		return
	}

	WriteSuccess(w, events.Events, &Meta{
		Total:   events.Total,
		Page:    page,
		PerPage: perPage,
		Pages:   pageCount(events.Total, perPage),
	})
}
