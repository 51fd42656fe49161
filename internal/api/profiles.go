// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/menu-go/internal/auth"
	"github.com/olegiv/menu-go/internal/middleware"
	"github.com/olegiv/menu-go/internal/model"
	"github.com/olegiv/menu-go/internal/store"
	"github.com/olegiv/menu-go/internal/validate"
)

// CreateProfileRequest is the request body for POST /api/v1/admin/profiles.
type CreateProfileRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

// UpdateRoleRequest is the request body for PUT /api/v1/admin/profiles/{id}/role.
type UpdateRoleRequest struct {
	Role string `json:"role"`
}

// ListProfiles handles GET /api/v1/admin/profiles.
func (h *Handler) ListProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.queries.ListProfiles(r.Context())
	if err != nil {
		slog.Error("failed to list profiles", "error", err)
		WriteInternalError(w, "Failed to list profiles")
		return
	}
	total, err := h.queries.CountProfiles(r.Context())
	if err != nil {
		slog.Error("failed to count profiles", "error", err)
		WriteInternalError(w, "Failed to list profiles")
		return
	}

	responses := make([]ProfileResponse, 0, len(profiles))
	for _, p := range profiles {
		responses = append(responses, profileToResponse(p))
	}
	WriteSuccess(w, responses, &Meta{Total: total})
}

// CreateProfile handles POST /api/v1/admin/profiles. Admins use this to
// create staff accounts; password complexity is enforced here.
func (h *Handler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateProfileRequest
	if !decodeAndValidate(w, r, validate.RegisterSchema(), &req) {
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		WriteInternalError(w, "Failed to create profile")
		return
	}

	now := time.Now()
	profile, err := h.queries.CreateProfile(ctx, store.CreateProfileParams{
		Email:        req.Email,
		PasswordHash: hash,
		Name:         req.Name,
		Role:         req.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if isUniqueViolation(err) {
			WriteValidationError(w, map[string][]string{"email": {"Email already registered"}})
			return
		}
		slog.Error("failed to create profile", "email", req.Email, "error", err)
		WriteInternalError(w, "Failed to create profile")
		return
	}

	h.events.Info(ctx, model.EventCategoryProfile, "Profile created",
		middleware.GetProfileID(r), middleware.ClientIP(r),
		map[string]any{"created_profile_id": profile.ID, "email": profile.Email, "role": profile.Role})

	WriteCreated(w, profileToResponse(profile))
}

// UpdateProfileRole handles PUT /api/v1/admin/profiles/{id}/role.
// Admins cannot demote themselves; this keeps at least one admin able
// to manage roles.
func (h *Handler) UpdateProfileRole(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		WriteBadRequest(w, "Invalid profile ID")
		return
	}

	var req UpdateRoleRequest
	if !decodeAndValidate(w, r, validate.Schema{"role": validate.RoleRule()}, &req) {
		return
	}

	if actor := middleware.GetProfile(r); actor != nil && actor.ID == id && req.Role != model.RoleAdmin {
		WriteValidationError(w, map[string][]string{"role": {"Cannot change your own admin role"}})
		return
	}

	profile, err := h.queries.UpdateProfileRole(ctx, store.UpdateProfileRoleParams{
		ID:        id,
		Role:      req.Role,
		UpdatedAt: time.Now(),
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Profile not found")
			return
		}
		slog.Error("failed to update profile role", "profile_id", id, "error", err)
		WriteInternalError(w, "Failed to update role")
		return
	}

	h.events.Info(ctx, model.EventCategoryProfile, "Profile role updated",
		middleware.GetProfileID(r), middleware.ClientIP(r),
		map[string]any{"target_profile_id": profile.ID, "role": profile.Role})

	WriteSuccess(w, profileToResponse(profile), nil)
}
