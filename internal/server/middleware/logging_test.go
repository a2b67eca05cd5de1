package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggingMiddleware(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		status    int
		wantLevel zapcore.Level
	}{
		{name: "ok", path: "/api/v1/cloud/query", status: http.StatusOK, wantLevel: zapcore.InfoLevel},
		{name: "client error", path: "/api/v1/cloud/lock", status: http.StatusLocked, wantLevel: zapcore.WarnLevel},
		{name: "server error", path: "/api/v1/cloud/query", status: http.StatusBadGateway, wantLevel: zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			handler := LoggingMiddleware(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte("body"))
			}))

			req := httptest.NewRequest(http.MethodPost, tt.path, nil)
			handler.ServeHTTP(httptest.NewRecorder(), req)

			entries := logs.All()
			require.Len(t, entries, 1)
			assert.Equal(t, tt.wantLevel, entries[0].Level)

			fields := entries[0].ContextMap()
			assert.Equal(t, tt.path, fields["path"])
			assert.Equal(t, int64(tt.status), fields["status"])
			assert.Equal(t, int64(4), fields["bytes_written"])
		})
	}
}

func TestLoggingMiddleware_SkipPaths(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	handler := LoggingMiddleware(zap.New(core), "/api/v1/health")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	assert.Zero(t, logs.Len())

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/cloud/query", nil))
	assert.Equal(t, 1, logs.Len())
}
