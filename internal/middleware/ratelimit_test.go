package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRateLimitMiddlewareGeneralBurst(t *testing.T) {
	mw := NewRateLimitMiddleware(100, 1)

	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := mw.Handler(nextHandler)

	// Well within the general burst.
	for i := 0; i < 10; i++ {
		req := httptest.NewRequest("GET", "/api/courses", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("Request %d failed with status %d", i, rec.Code)
		}
	}
}

func TestRateLimitMiddlewareLimitedAuth(t *testing.T) {
	mw := NewRateLimitMiddleware(100, 1)

	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := mw.Handler(nextHandler)

	// Burst of 1: the first login attempt consumes the token.
	req1 := httptest.NewRequest("POST", "/api/login", nil)
	rec1 := httptest.NewRecorder()
	handler.ServeHTTP(rec1, req1)
	assert.Equal(t, http.StatusOK, rec1.Code)

	req2 := httptest.NewRequest("POST", "/api/login", nil)
	rec2 := httptest.NewRecorder()
	handler.ServeHTTP(rec2, req2)
	assert.Equal(t, http.StatusTooManyRequests, rec2.Code)

	// The stricter bucket does not throttle general traffic.
	req3 := httptest.NewRequest("GET", "/api/courses", nil)
	rec3 := httptest.NewRecorder()
	handler.ServeHTTP(rec3, req3)
	assert.Equal(t, http.StatusOK, rec3.Code)
}

func TestRateLimitMiddlewareDefaults(t *testing.T) {
	mw := NewRateLimitMiddleware(-1, 0)
	assert.Equal(t, 100, mw.generalRPM)
	assert.Equal(t, 10, mw.authRPM)
}

func TestIsAuthPath(t *testing.T) {
	assert.True(t, isAuthPath("/api/login"))
	assert.True(t, isAuthPath("/api/register"))
	assert.False(t, isAuthPath("/api/courses"))
	assert.False(t, isAuthPath("/api/users/me"))
}
