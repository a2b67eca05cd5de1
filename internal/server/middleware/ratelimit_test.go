package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/iudanet/cloudsync/internal/server/handlers"
)

func TestRateLimiter_Allow(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	limiter := NewRateLimiter(2, time.Minute, zap.NewNop())
	defer limiter.Stop()
	limiter.now = func() time.Time { return now }

	assert.True(t, limiter.Allow("a"))
	assert.True(t, limiter.Allow("a"))
	assert.False(t, limiter.Allow("a"), "request over limit should be denied")

	// ключи учитываются раздельно
	assert.True(t, limiter.Allow("b"))

	now = now.Add(time.Minute)
	assert.True(t, limiter.Allow("a"), "tokens should be refilled")

	now = now.Add(5 * time.Minute)
	limiter.cleanupOldBuckets()
	limiter.mu.Lock()
	assert.Empty(t, limiter.buckets)
	limiter.mu.Unlock()

	limiter.Stop()
}

func TestRateLimiter_Middleware(t *testing.T) {
	limiter := NewRateLimiter(1, time.Minute, zap.NewNop())
	defer limiter.Stop()

	handler := limiter.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	serve := func(r *http.Request) int {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		return w.Code
	}

	anon := httptest.NewRequest(http.MethodGet, "/", nil)
	anon.RemoteAddr = "10.0.0.1:5555"
	assert.Equal(t, http.StatusOK, serve(anon))
	assert.Equal(t, http.StatusTooManyRequests, serve(anon))

	// авторизованные устройства с того же адреса имеют свой лимит
	device := httptest.NewRequest(http.MethodGet, "/", nil)
	device.RemoteAddr = "10.0.0.1:5555"
	device = device.WithContext(handlers.WithIdentity(device.Context(), "alice", "dev-a"))
	assert.Equal(t, http.StatusOK, serve(device))
	assert.Equal(t, http.StatusTooManyRequests, serve(device))
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		headers    map[string]string
		name       string
		remoteAddr string
		want       string
	}{
		{name: "remote addr", remoteAddr: "192.168.1.1:1234", want: "192.168.1.1"},
		{name: "forwarded for", remoteAddr: "10.0.0.1:1", headers: map[string]string{"X-Forwarded-For": "203.0.113.5, 10.0.0.1"}, want: "203.0.113.5"},
		{name: "real ip", remoteAddr: "10.0.0.1:1", headers: map[string]string{"X-Real-IP": "198.51.100.7"}, want: "198.51.100.7"},
		{name: "addr without port", remoteAddr: "pipe", want: "pipe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, getClientIP(req))
		})
	}
}
