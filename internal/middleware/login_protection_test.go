package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestProtection() *LoginProtection {
	return NewLoginProtection(LoginProtectionConfig{
		IPRateLimit:       100, // Effectively unlimited for lockout tests
		IPBurst:           100,
		MaxFailedAttempts: 3,
		LockoutDuration:   time.Minute,
		AttemptWindow:     time.Minute,
	})
}

func TestLoginProtection_LockoutAfterMaxFailures(t *testing.T) {
	lp := newTestProtection()
	email := "admin@example.com"

	locked, _ := lp.RecordFailedAttempt(email)
	if locked {
		t.Fatal("locked after 1 attempt")
	}
	locked, _ = lp.RecordFailedAttempt(email)
	if locked {
		t.Fatal("locked after 2 attempts")
	}
	locked, duration := lp.RecordFailedAttempt(email)
	if !locked {
		t.Fatal("not locked after 3 attempts")
	}
	if duration != time.Minute {
		t.Errorf("lock duration = %v, want 1m", duration)
	}

	isLocked, remaining := lp.IsAccountLocked(email)
	if !isLocked {
		t.Fatal("IsAccountLocked = false after lockout")
	}
	if remaining <= 0 || remaining > time.Minute {
		t.Errorf("remaining = %v", remaining)
	}
}

func TestLoginProtection_SuccessClearsAttempts(t *testing.T) {
	lp := newTestProtection()
	email := "admin@example.com"

	lp.RecordFailedAttempt(email)
	lp.RecordFailedAttempt(email)
	if got := lp.GetRemainingAttempts(email); got != 1 {
		t.Fatalf("remaining attempts = %d, want 1", got)
	}

	lp.RecordSuccessfulLogin(email)
	if got := lp.GetRemainingAttempts(email); got != 3 {
		t.Errorf("remaining attempts after success = %d, want 3", got)
	}
}

func TestLoginProtection_ExponentialBackoff(t *testing.T) {
	lp := newTestProtection()
	email := "admin@example.com"

	// First lockout: 1 minute
	lp.RecordFailedAttempt(email)
	lp.RecordFailedAttempt(email)
	_, first := lp.RecordFailedAttempt(email)

	// Second lockout: 2 minutes
	lp.RecordFailedAttempt(email)
	lp.RecordFailedAttempt(email)
	_, second := lp.RecordFailedAttempt(email)

	if second != 2*first {
		t.Errorf("second lockout = %v, want double of %v", second, first)
	}
}

func TestLoginProtection_MiddlewareRateLimitsPost(t *testing.T) {
	lp := NewLoginProtection(LoginProtectionConfig{
		IPRateLimit: 0.001, // Effectively one request only
		IPBurst:     1,
	})
	handler := lp.Middleware()(okHandler())

	r := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
	r.RemoteAddr = "10.0.0.1:1234"

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("first request status = %d", w.Code)
	}

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("second request status = %d, want 429", w.Code)
	}

	// GET requests bypass the limiter
	get := httptest.NewRequest(http.MethodGet, "/api/v1/auth/login", nil)
	get.RemoteAddr = "10.0.0.1:1234"
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, get)
	if w.Code != http.StatusOK {
		t.Errorf("GET status = %d, want 200", w.Code)
	}
}
