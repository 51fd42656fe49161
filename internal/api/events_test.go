// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/olegiv/menu-go/internal/service"
)

func TestListEvents(t *testing.T) {
	ts := newTestServer(t)
	cookie := adminCookie(t, ts)

	// The login above recorded an auth event; add two menu writes
	seedMenu(t, ts)
	body := map[string]any{
		"slug":         "drinks",
		"translations": []map[string]any{{"locale": "en", "name": "Drinks"}},
	}
	if w := ts.request(t, http.MethodPost, "/api/v1/admin/categories", body, cookie); w.Code != http.StatusCreated {
		t.Fatalf("create status = %d", w.Code)
	}

	w := ts.request(t, http.MethodGet, "/api/v1/admin/events", nil, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var envelope struct {
		Data []service.EventRecord `json:"data"`
		Meta Meta                  `json:"meta"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if envelope.Meta.Total < 2 {
		t.Errorf("Total = %d, want at least login and create events", envelope.Meta.Total)
	}
	if len(envelope.Data) == 0 {
		t.Fatal("no events returned")
	}
	// Newest first
	if envelope.Data[0].Message != "Category created" {
		t.Errorf("newest event = %q, want the category create", envelope.Data[0].Message)
	}
}

func TestListEvents_Pagination(t *testing.T) {
	ts := newTestServer(t)
	cookie := adminCookie(t, ts)

	w := ts.request(t, http.MethodGet, "/api/v1/admin/events?page=1&per_page=1", nil, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var envelope struct {
		Data []service.EventRecord `json:"data"`
		Meta Meta                  `json:"meta"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(envelope.Data) != 1 {
		t.Errorf("got %d events, want 1 per page", len(envelope.Data))
	}
	if envelope.Meta.PerPage != 1 {
		t.Errorf("PerPage = %d", envelope.Meta.PerPage)
	}
}

func TestListEvents_RequiresAuth(t *testing.T) {
	ts := newTestServer(t)

	w := ts.request(t, http.MethodGet, "/api/v1/admin/events", nil, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}
