// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/olegiv/menu-go/internal/auth"
	"github.com/olegiv/menu-go/internal/middleware"
	"github.com/olegiv/menu-go/internal/model"
	"github.com/olegiv/menu-go/internal/store"
	"github.com/olegiv/menu-go/internal/validate"
)

// LoginRequest is the request body for POST /api/v1/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProfileResponse represents a signed-in profile in API responses.
type ProfileResponse struct {
	ID          int64      `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	Role        string     `json:"role"`
	CreatedAt   time.Time  `json:"created_at"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// profileToResponse converts a store.Profile to ProfileResponse.
func profileToResponse(p store.Profile) ProfileResponse {
	resp := ProfileResponse{
		ID:        p.ID,
		Email:     p.Email,
		Name:      p.Name,
		Role:      p.Role,
		CreatedAt: p.CreatedAt,
	}
	if p.LastLoginAt.Valid {
		resp.LastLoginAt = &p.LastLoginAt.Time
	}
	return resp
}

// Login handles POST /api/v1/auth/login. Only staff and admin accounts
// may sign in; customer profiles are rejected without revealing whether
// the password matched.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	clientIP := middleware.ClientIP(r)

	var req LoginRequest
	if !decodeAndValidate(w, r, validate.LoginSchema(), &req) {
		return
	}

	if locked, remaining := h.loginProtection.IsAccountLocked(req.Email); locked {
		h.events.Warning(ctx, model.EventCategoryAuth, "Login attempt on locked account",
			0, clientIP, map[string]any{"email": req.Email})
		WriteError(w, http.StatusTooManyRequests, "account_locked",
			fmt.Sprintf("Account locked. Try again in %s", formatDuration(remaining)), nil)
		return
	}

	profile, err := h.queries.GetProfileByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			h.events.Warning(ctx, model.EventCategoryAuth, "Login failed: profile not found",
				0, clientIP, map[string]any{"email": req.Email})
		} else {
			slog.Error("database error during login", "error", err)
		}
		// Record failed attempt even for non-existent profiles to prevent enumeration
		h.recordLoginFailure(w, ctx, req.Email, 0, clientIP)
		return
	}

	valid, err := auth.CheckPassword(req.Password, profile.PasswordHash)
	if err != nil {
		slog.Error("password check error", "error", err)
		WriteUnauthorized(w, "Invalid email or password")
		return
	}
	if !valid {
		h.events.Warning(ctx, model.EventCategoryAuth, "Login failed: invalid password",
			profile.ID, clientIP, map[string]any{"email": req.Email})
		h.recordLoginFailure(w, ctx, req.Email, profile.ID, clientIP)
		return
	}

	if !model.RoleCanManageMenu(profile.Role) {
		h.events.Warning(ctx, model.EventCategoryAuth, "Login rejected: customer account",
			profile.ID, clientIP, map[string]any{"email": req.Email})
		WriteForbidden(w, "Customer accounts cannot sign in to the management API")
		return
	}

	h.loginProtection.RecordSuccessfulLogin(req.Email)

	// Re-hash if the stored hash uses outdated parameters
	if auth.NeedsRehash(profile.PasswordHash) {
		if newHash, hashErr := auth.HashPassword(req.Password); hashErr == nil {
			if updErr := h.queries.UpdateProfilePassword(ctx, store.UpdateProfilePasswordParams{
				ID:           profile.ID,
				PasswordHash: newHash,
				UpdatedAt:    time.Now(),
			}); updErr != nil {
				slog.Error("failed to re-hash password", "error", updErr, "profile_id", profile.ID)
			} else {
				slog.Info("password re-hashed with updated parameters", "profile_id", profile.ID)
			}
		}
	}

	if err := h.queries.UpdateProfileLastLogin(ctx, store.UpdateProfileLastLoginParams{
		ID:          profile.ID,
		LastLoginAt: time.Now(),
	}); err != nil {
		// Don't block login on this error
		slog.Error("failed to update last login time", "error", err, "profile_id", profile.ID)
	}

	// Regenerate session ID to prevent session fixation
	if err := h.sessionManager.RenewToken(ctx); err != nil {
		slog.Error("session renewal error", "error", err)
		WriteInternalError(w, "Failed to establish session")
		return
	}
	h.sessionManager.Put(ctx, middleware.SessionKeyProfileID, profile.ID)

	slog.Info("profile logged in", "profile_id", profile.ID, "email", profile.Email)
	h.events.Info(ctx, model.EventCategoryAuth, "Profile logged in",
		profile.ID, clientIP, map[string]any{"email": profile.Email})

	WriteSuccess(w, profileToResponse(profile), nil)
}

// Logout handles POST /api/v1/auth/logout.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	profileID := h.sessionManager.GetInt64(ctx, middleware.SessionKeyProfileID)

	if profileID > 0 {
		h.events.Info(ctx, model.EventCategoryAuth, "Profile logged out",
			profileID, middleware.ClientIP(r), nil)
	}

	if err := h.sessionManager.Destroy(ctx); err != nil {
		slog.Error("session destroy error", "error", err)
		WriteInternalError(w, "Failed to end session")
		return
	}

	slog.Info("profile logged out", "profile_id", profileID)
	WriteSuccess(w, map[string]string{"status": "logged_out"}, nil)
}

// Me handles GET /api/v1/auth/me.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	profile := middleware.GetProfile(r)
	if profile == nil {
		WriteUnauthorized(w, "Not authenticated")
		return
	}
	WriteSuccess(w, profileToResponse(*profile), nil)
}

// recordLoginFailure records a failed attempt and writes the appropriate
// error response: 429 when the attempt triggers a lockout, 401 otherwise.
func (h *Handler) recordLoginFailure(w http.ResponseWriter, ctx context.Context, email string, profileID int64, clientIP string) {
	if locked, lockDuration := h.loginProtection.RecordFailedAttempt(email); locked {
		h.events.Warning(ctx, model.EventCategoryAuth, "Account locked due to failed attempts",
			profileID, clientIP, map[string]any{"email": email, "duration": lockDuration.String()})
		WriteError(w, http.StatusTooManyRequests, "account_locked",
			fmt.Sprintf("Too many failed attempts. Try again in %s", formatDuration(lockDuration)), nil)
		return
	}
	WriteUnauthorized(w, "Invalid email or password")
}

// formatDuration formats a duration into a human-readable string.
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%d seconds", int(d.Seconds()))
	}
	if d < time.Hour {
		mins := int(d.Minutes())
		if mins == 1 {
			return "1 minute"
		}
		return fmt.Sprintf("%d minutes", mins)
	}
	hours := int(d.Hours())
	if hours == 1 {
		return "1 hour"
	}
	return fmt.Sprintf("%d hours", hours)
}
