// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api provides the REST handlers for the menu service.
package api

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/menu-go/internal/config"
	"github.com/olegiv/menu-go/internal/imaging"
	"github.com/olegiv/menu-go/internal/middleware"
	"github.com/olegiv/menu-go/internal/service"
	"github.com/olegiv/menu-go/internal/store"
)

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	db              *sql.DB
	queries         *store.Queries
	menus           *service.MenuService
	events          *service.EventService
	sessionManager  *scs.SessionManager
	loginProtection *middleware.LoginProtection
	processor       *imaging.Processor
	cfg             *config.Config
}

// NewHandler creates a new API handler.
func NewHandler(db *sql.DB, sm *scs.SessionManager, lp *middleware.LoginProtection,
	processor *imaging.Processor, events *service.EventService, cfg *config.Config) *Handler {
	return &Handler{
		db:              db,
		queries:         store.New(db),
		menus:           service.NewMenuService(db),
		events:          events,
		sessionManager:  sm,
		loginProtection: lp,
		processor:       processor,
		cfg:             cfg,
	}
}

// Response is the standard API response wrapper.
type Response struct {
	Data any   `json:"data,omitempty"`
	Meta *Meta `json:"meta,omitempty"`
}

// Meta contains pagination, locale, and other metadata. Direction is the
// text direction for the resolved locale so clients can switch layout
// without a locale table of their own.
type Meta struct {
	Total     int64  `json:"total,omitempty"`
	Page      int    `json:"page,omitempty"`
	PerPage   int    `json:"per_page,omitempty"`
	Pages     int    `json:"pages,omitempty"`
	Locale    string `json:"locale,omitempty"`
	Direction string `json:"direction,omitempty"`
}

// ErrorResponse is the standard API error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Details map[string][]string `json:"details,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteSuccess writes a successful JSON response.
func WriteSuccess(w http.ResponseWriter, data any, meta *Meta) {
	WriteJSON(w, http.StatusOK, Response{Data: data, Meta: meta})
}

// WriteCreated writes a 201 Created JSON response.
func WriteCreated(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusCreated, Response{Data: data})
}

// WriteError writes an error JSON response.
func WriteError(w http.ResponseWriter, statusCode int, code, message string, details map[string][]string) {
	WriteJSON(w, statusCode, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// WriteBadRequest writes a 400 Bad Request response.
func WriteBadRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, "bad_request", message, nil)
}

// WriteNotFound writes a 404 Not Found response.
func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, "not_found", message, nil)
}

// WriteUnauthorized writes a 401 Unauthorized response.
func WriteUnauthorized(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusUnauthorized, "unauthorized", message, nil)
}

// WriteForbidden writes a 403 Forbidden response.
func WriteForbidden(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusForbidden, "forbidden", message, nil)
}

// WriteInternalError writes a 500 Internal Server Error response.
func WriteInternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, "internal_error", message, nil)
}

// WriteValidationError writes a 422 Unprocessable Entity response with
// the per-field messages accumulated by the validation engine.
func WriteValidationError(w http.ResponseWriter, fieldErrors map[string][]string) {
	WriteError(w, http.StatusUnprocessableEntity, "validation_error", "Validation failed", fieldErrors)
}

// parsePageParam parses the "page" query parameter (1-based, default 1).
func parsePageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// parsePerPageParam parses the "per_page" query parameter, clamped to max.
func parsePerPageParam(r *http.Request, defaultVal, max int) int {
	perPage, err := strconv.Atoi(r.URL.Query().Get("per_page"))
	if err != nil || perPage < 1 {
		return defaultVal
	}
	if perPage > max {
		return max
	}
	return perPage
}

// pageCount computes the number of pages for a total at perPage items each.
func pageCount(total int64, perPage int) int {
	pages := int(total) / perPage
	if int(total)%perPage != 0 {
		pages++
	}
	return pages
}

// StatusResponse contains API status information.
type StatusResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// Status returns the API status.
func (h *Handler) Status(w http.ResponseWriter, _ *http.Request) {
	WriteSuccess(w, StatusResponse{
		Status:  "ok",
		Version: "v1",
	}, nil)
}
