package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/olegiv/menu-go/internal/store"
)

// withProfile injects a profile into the request context the way
// LoadProfile does.
func withProfile(r *http.Request, role string) *http.Request {
	profile := store.Profile{ID: 1, Email: "test@example.com", Role: role}
	return r.WithContext(context.WithValue(r.Context(), ContextKeyProfile, profile))
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireMenuAccess(t *testing.T) {
	tests := []struct {
		name       string
		role       string
		wantStatus int
	}{
		{"admin allowed", "admin", http.StatusOK},
		{"staff allowed", "staff", http.StatusOK},
		{"customer forbidden", "customer", http.StatusForbidden},
		{"unknown role forbidden", "something", http.StatusForbidden},
	}

	handler := RequireMenuAccess()(okHandler())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := withProfile(httptest.NewRequest(http.MethodGet, "/api/v1/admin/categories", nil), tt.role)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, r)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestRequireMenuAccess_Unauthenticated(t *testing.T) {
	handler := RequireMenuAccess()(okHandler())

	r := httptest.NewRequest(http.MethodGet, "/api/v1/admin/categories", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, r)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}

	var apiErr APIError
	if err := json.NewDecoder(w.Body).Decode(&apiErr); err != nil {
		t.Fatalf("decoding error body: %v", err)
	}
	if apiErr.Error.Code != "unauthorized" {
		t.Errorf("error code = %q, want unauthorized", apiErr.Error.Code)
	}
}

func TestRequireAdmin_StaffForbidden(t *testing.T) {
	handler := RequireAdmin()(okHandler())

	r := withProfile(httptest.NewRequest(http.MethodPut, "/api/v1/admin/profiles/2/role", nil), "staff")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, r)

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}

func TestGetProfile(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if GetProfile(r) != nil {
		t.Error("expected nil profile for bare request")
	}
	if GetProfileID(r) != 0 {
		t.Error("expected zero profile ID for bare request")
	}

	r = withProfile(r, "admin")
	profile := GetProfile(r)
	if profile == nil || profile.Email != "test@example.com" {
		t.Errorf("profile = %+v", profile)
	}
	if GetProfileID(r) != 1 {
		t.Errorf("GetProfileID = %d, want 1", GetProfileID(r))
	}
}
