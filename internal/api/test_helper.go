// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"github.com/olegiv/menu-go/internal/auth"
	"github.com/olegiv/menu-go/internal/config"
	"github.com/olegiv/menu-go/internal/imaging"
	"github.com/olegiv/menu-go/internal/middleware"
	"github.com/olegiv/menu-go/internal/service"
	"github.com/olegiv/menu-go/internal/session"
	"github.com/olegiv/menu-go/internal/store"
	"github.com/olegiv/menu-go/internal/testutil"
)

// testServer bundles the handler with everything a request needs.
type testServer struct {
	db         *sql.DB
	queries    *store.Queries
	handler    *Handler
	router     *chi.Mux
	sm         *scs.SessionManager
	uploadsDir string
}

// newTestServer builds a handler over a migrated temp database and a
// router wired the same way as the application.
func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db := testutil.NewTestDB(t)
	sm := session.New(db, true)
	lp := middleware.NewLoginProtection(middleware.LoginProtectionConfig{
		IPRateLimit:       100,
		IPBurst:           100,
		MaxFailedAttempts: 5,
		LockoutDuration:   time.Minute,
		AttemptWindow:     time.Minute,
	})
	uploadsDir := t.TempDir()
	processor := imaging.NewProcessor(uploadsDir)
	events := service.NewEventService(db, testutil.NewTestLogger())
	cfg := &config.Config{Env: "development", DefaultLocale: "en"}

	h := NewHandler(db, sm, lp, processor, events, cfg)
	hh := NewHealthHandler(db)

	r := chi.NewRouter()
	r.Use(sm.LoadAndSave)
	r.Use(middleware.Locale(cfg.DefaultLocale))
	r.Use(middleware.LoadProfile(sm, db))

	r.Get("/health", hh.Health)
	r.Get("/health/live", hh.Live)
	r.Get("/health/ready", hh.Ready)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/status", h.Status)
		r.Get("/menu/categories", h.ListMenuCategories)
		r.Get("/menu/categories/{slug}", h.GetMenuCategory)
		r.Get("/menu/items/{id}", h.GetMenuItem)

		r.Post("/auth/login", h.Login)
		r.Post("/auth/logout", h.Logout)
		r.Get("/auth/me", h.Me)

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireMenuAccess())

			r.Get("/categories", h.ListCategories)
			r.Post("/categories", h.CreateCategory)
			r.Get("/categories/{id}", h.GetCategory)
			r.Put("/categories/{id}", h.UpdateCategory)
			r.Delete("/categories/{id}", h.DeleteCategory)

			r.Get("/items", h.ListItems)
			r.Post("/items", h.CreateItem)
			r.Get("/items/{id}", h.GetItem)
			r.Put("/items/{id}", h.UpdateItem)
			r.Delete("/items/{id}", h.DeleteItem)

			r.Post("/upload", h.Upload)
			r.Get("/events", h.ListEvents)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin())
				r.Get("/profiles", h.ListProfiles)
				r.Post("/profiles", h.CreateProfile)
				r.Put("/profiles/{id}/role", h.UpdateProfileRole)
			})
		})
	})

	return &testServer{
		db:         db,
		queries:    store.New(db),
		handler:    h,
		router:     r,
		sm:         sm,
		uploadsDir: uploadsDir,
	}
}

// createProfile inserts a profile with the given role and returns it.
func (ts *testServer) createProfile(t *testing.T, email, password, role string) store.Profile {
	t.Helper()

	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("hashing password: %v", err)
	}
	now := time.Now()
	profile, err := ts.queries.CreateProfile(context.Background(), store.CreateProfileParams{
		Email:        email,
		PasswordHash: hash,
		Name:         "Test Profile",
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		t.Fatalf("creating profile: %v", err)
	}
	return profile
}

// login signs a profile in and returns its session cookie.
func (ts *testServer) login(t *testing.T, email, password string) *http.Cookie {
	t.Helper()

	w := ts.request(t, http.MethodPost, "/api/v1/auth/login",
		map[string]any{"email": email, "password": password}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d, body = %s", w.Code, w.Body.String())
	}
	for _, c := range w.Result().Cookies() {
		if c.Name == "session" {
			return c
		}
	}
	t.Fatal("no session cookie in login response")
	return nil
}

// request performs one request against the router. A non-nil body is
// JSON-encoded; a non-nil cookie authenticates the request.
func (ts *testServer) request(t *testing.T, method, target string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshaling body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	r := httptest.NewRequest(method, target, reader)
	if body != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		r.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, r)
	return w
}

// decodeData unmarshals the "data" member of a response envelope into dst.
func decodeData(t *testing.T, w *httptest.ResponseRecorder, dst any) {
	t.Helper()

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decoding envelope: %v", err)
	}
	if err := json.Unmarshal(envelope.Data, dst); err != nil {
		t.Fatalf("decoding data: %v", err)
	}
}

// decodeMeta unmarshals the "meta" member of a response envelope.
func decodeMeta(t *testing.T, w *httptest.ResponseRecorder) Meta {
	t.Helper()

	var envelope struct {
		Meta Meta `json:"meta"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decoding envelope: %v", err)
	}
	return envelope.Meta
}

// decodeError unmarshals an error response body.
func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorDetail {
	t.Helper()

	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding error response: %v", err)
	}
	return resp.Error
}
