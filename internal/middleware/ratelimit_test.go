package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAllowBurstThenThrottle(t *testing.T) {
	limiter := NewIPRateLimiter(1, 3)

	for i := 0; i < 3; i++ {
		if !limiter.Allow("10.0.0.1") {
			t.Fatalf("request %d inside burst should pass", i)
		}
	}
	if limiter.Allow("10.0.0.1") {
		t.Fatal("request beyond burst should be throttled")
	}

	// other IPs have their own bucket
	if !limiter.Allow("10.0.0.2") {
		t.Fatal("different IP must not share the bucket")
	}
}

func TestRateLimitFunc(t *testing.T) {
	limiter := NewIPRateLimiter(1, 1)
	calls := 0
	handler := RateLimitFunc(limiter, func(w http.ResponseWriter, r *http.Request) {
		calls++
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.9:1234"

	rec := httptest.NewRecorder()
	handler(rec, req)
	if rec.Code != http.StatusOK || calls != 1 {
		t.Fatalf("first request should pass, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler(rec, req)
	if rec.Code != http.StatusTooManyRequests || calls != 1 {
		t.Fatalf("second request should be throttled, got %d", rec.Code)
	}
}

func TestGetIPPrefersForwardedHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "127.0.0.1:9999"
	req.Header.Set("X-Forwarded-For", "203.0.113.7")

	if ip := getIP(req); ip != "203.0.113.7" {
		t.Fatalf("expected forwarded IP, got %s", ip)
	}
}
