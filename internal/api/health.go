// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/olegiv/menu-go/internal/middleware"
	"github.com/olegiv/menu-go/internal/model"
	"github.com/olegiv/menu-go/internal/version"
)

// HealthHandler handles health check requests.
type HealthHandler struct {
	db        *sql.DB
	startTime time.Time
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(db *sql.DB) *HealthHandler {
	return &HealthHandler{
		db:        db,
		startTime: time.Now(),
	}
}

// HealthStatusPublic is the minimal health response for unauthenticated callers.
type HealthStatusPublic struct {
	Status string `json:"status"`
}

// HealthStatus is the full health response for admin callers.
type HealthStatus struct {
	Status    string           `json:"status"`
	Timestamp time.Time        `json:"timestamp"`
	Uptime    string           `json:"uptime"`
	Version   string           `json:"version"`
	Checks    map[string]Check `json:"checks,omitempty"`
}

// Check represents a single health check result.
type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// Health handles GET /health.
// Unauthenticated callers get a minimal status; admins get check details.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	dbCheck := h.checkDatabase(r.Context())

	status := "healthy"
	statusCode := http.StatusOK
	if dbCheck.Status != "healthy" {
		status = "degraded"
		statusCode = http.StatusServiceUnavailable
	}

	profile := middleware.GetProfile(r)
	if profile == nil || profile.Role != model.RoleAdmin {
		WriteJSON(w, statusCode, HealthStatusPublic{Status: status})
		return
	}

	WriteJSON(w, statusCode, HealthStatus{
		Status:    status,
		Timestamp: time.Now().UTC(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Version:   version.Version,
		Checks: map[string]Check{
			"database": dbCheck,
		},
	})
}

// Live handles GET /health/live. It only confirms the process responds.
func (h *HealthHandler) Live(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusOK, HealthStatusPublic{Status: "alive"})
}

// Ready handles GET /health/ready. Ready means the database answers.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if check := h.checkDatabase(r.Context()); check.Status != "healthy" {
		WriteJSON(w, http.StatusServiceUnavailable, HealthStatusPublic{Status: "not_ready"})
		return
	}
	WriteJSON(w, http.StatusOK, HealthStatusPublic{Status: "ready"})
}

// checkDatabase pings the database with a short timeout.
func (h *HealthHandler) checkDatabase(ctx context.Context) Check {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	start := time.Now()
	err := h.db.PingContext(ctx)
	latency := time.Since(start)

	if err != nil {
		return Check{
			Status:  "unhealthy",
			Message: fmt.Sprintf("database ping failed: %v", err),
			Latency: latency.String(),
		}
	}
	return Check{
		Status:  "healthy",
		Latency: latency.String(),
	}
}
