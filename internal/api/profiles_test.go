// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/olegiv/menu-go/internal/model"
)

func TestProfiles_AdminOnly(t *testing.T) {
	ts := newTestServer(t)
	ts.createProfile(t, "staff@example.com", "Str0ng!Passw0rd", model.RoleStaff)
	cookie := ts.login(t, "staff@example.com", "Str0ng!Passw0rd")

	w := ts.request(t, http.MethodGet, "/api/v1/admin/profiles", nil, cookie)
	if w.Code != http.StatusForbidden {
		t.Fatalf("staff access = %d, want 403", w.Code)
	}
}

func TestCreateProfile(t *testing.T) {
	ts := newTestServer(t)
	cookie := adminCookie(t, ts)

	body := map[string]any{
		"email":    "staff@example.com",
		"password": "An0ther!Secret9",
		"name":     "New Staff",
		"role":     model.RoleStaff,
	}
	w := ts.request(t, http.MethodPost, "/api/v1/admin/profiles", body, cookie)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var profile ProfileResponse
	decodeData(t, w, &profile)
	if profile.Role != model.RoleStaff {
		t.Errorf("Role = %q", profile.Role)
	}

	// The new account can sign in
	ts.login(t, "staff@example.com", "An0ther!Secret9")

	// Both accounts show up in the list with a matching total
	w = ts.request(t, http.MethodGet, "/api/v1/admin/profiles", nil, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}
	if meta := decodeMeta(t, w); meta.Total != 2 {
		t.Errorf("Total = %d, want 2", meta.Total)
	}
}

func TestCreateProfile_WeakPassword(t *testing.T) {
	ts := newTestServer(t)
	cookie := adminCookie(t, ts)

	body := map[string]any{
		"email":    "weak@example.com",
		"password": "short",
		"role":     model.RoleStaff,
	}
	w := ts.request(t, http.MethodPost, "/api/v1/admin/profiles", body, cookie)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", w.Code)
	}
	detail := decodeError(t, w)
	if len(detail.Details["password"]) == 0 {
		t.Error("expected password errors")
	}
}

func TestCreateProfile_DuplicateEmail(t *testing.T) {
	ts := newTestServer(t)
	cookie := adminCookie(t, ts)

	body := map[string]any{
		"email":    "admin@example.com",
		"password": "An0ther!Secret9",
		"role":     model.RoleStaff,
	}
	w := ts.request(t, http.MethodPost, "/api/v1/admin/profiles", body, cookie)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", w.Code)
	}
}

func TestUpdateProfileRole(t *testing.T) {
	ts := newTestServer(t)
	cookie := adminCookie(t, ts)
	staff := ts.createProfile(t, "staff@example.com", "Str0ng!Passw0rd", model.RoleStaff)

	w := ts.request(t, http.MethodPut,
		fmt.Sprintf("/api/v1/admin/profiles/%d/role", staff.ID),
		map[string]any{"role": model.RoleAdmin}, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var profile ProfileResponse
	decodeData(t, w, &profile)
	if profile.Role != model.RoleAdmin {
		t.Errorf("Role = %q, want admin", profile.Role)
	}
}

func TestUpdateProfileRole_CannotDemoteSelf(t *testing.T) {
	ts := newTestServer(t)
	cookie := adminCookie(t, ts)

	// The admin created by adminCookie has ID 1
	w := ts.request(t, http.MethodPut, "/api/v1/admin/profiles/1/role",
		map[string]any{"role": model.RoleStaff}, cookie)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", w.Code)
	}
}

func TestUpdateProfileRole_InvalidRole(t *testing.T) {
	ts := newTestServer(t)
	cookie := adminCookie(t, ts)
	staff := ts.createProfile(t, "staff@example.com", "Str0ng!Passw0rd", model.RoleStaff)

	w := ts.request(t, http.MethodPut,
		fmt.Sprintf("/api/v1/admin/profiles/%d/role", staff.ID),
		map[string]any{"role": "superuser"}, cookie)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", w.Code)
	}
}
