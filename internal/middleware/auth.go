// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/menu-go/internal/model"
	"github.com/olegiv/menu-go/internal/store"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// ContextKeyProfile is the context key for the signed-in profile.
const ContextKeyProfile ContextKey = "profile"

// SessionKeyProfileID is the session key holding the signed-in profile ID.
const SessionKeyProfileID = "profile_id"

// LoadProfile creates middleware that loads the signed-in profile into
// the request context. Requests without a session pass through; a
// session pointing at a deleted profile is destroyed.
func LoadProfile(sm *scs.SessionManager, db *sql.DB) func(http.Handler) http.Handler {
	queries := store.New(db)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			profileID := sm.GetInt64(r.Context(), SessionKeyProfileID)
			if profileID == 0 {
				next.ServeHTTP(w, r)
				return
			}

			profile, err := queries.GetProfile(r.Context(), profileID)
			if err != nil {
				_ = sm.Destroy(r.Context())
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyProfile, profile)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetProfile retrieves the signed-in profile from the request context.
// Returns nil if no profile is in context.
func GetProfile(r *http.Request) *store.Profile {
	profile, ok := r.Context().Value(ContextKeyProfile).(store.Profile)
	if !ok {
		return nil
	}
	return &profile
}

// GetProfileID returns the signed-in profile's ID, or 0 if not found.
// Safe to use in logging where a zero-value is acceptable.
func GetProfileID(r *http.Request) int64 {
	if profile := GetProfile(r); profile != nil {
		return profile.ID
	}
	return 0
}

// RequireAuth creates middleware that rejects unauthenticated requests
// with a JSON 401.
func RequireAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if GetProfile(r) == nil {
				WriteAPIError(w, http.StatusUnauthorized, "unauthorized", "Authentication required", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireMenuAccess creates middleware that requires a staff or admin
// profile. Customer accounts get a JSON 403.
func RequireMenuAccess() func(http.Handler) http.Handler {
	return requireRole(model.RoleCanManageMenu)
}

// RequireAdmin creates middleware that requires an admin profile.
func RequireAdmin() func(http.Handler) http.Handler {
	return requireRole(func(role string) bool { return role == model.RoleAdmin })
}

func requireRole(allowed func(role string) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			profile := GetProfile(r)
			if profile == nil {
				WriteAPIError(w, http.StatusUnauthorized, "unauthorized", "Authentication required", nil)
				return
			}

			if !allowed(profile.Role) {
				slog.Warn("access denied",
					"status", http.StatusForbidden,
					"method", r.Method,
					"path", r.URL.Path,
					"profile_id", profile.ID,
					"profile_role", profile.Role,
					"remote_addr", r.RemoteAddr,
				)
				WriteAPIError(w, http.StatusForbidden, "forbidden", "Insufficient permissions", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
