package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iudanet/cloudsync/pkg/api"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthHandler_Health(t *testing.T) {
	tests := []struct {
		pinger     Pinger
		name       string
		wantStatus string
		wantCode   int
	}{
		{
			name:       "no database",
			wantCode:   http.StatusOK,
			wantStatus: "ok",
		},
		{
			name:       "database available",
			pinger:     pingFunc(func(ctx context.Context) error { return nil }),
			wantCode:   http.StatusOK,
			wantStatus: "ok",
		},
		{
			name:       "database down",
			pinger:     pingFunc(func(ctx context.Context) error { return errors.New("closed") }),
			wantCode:   http.StatusServiceUnavailable,
			wantStatus: "unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHealthHandler(tt.pinger, "1.2.3", zap.NewNop())

			req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
			w := httptest.NewRecorder()
			handler.Health(w, req)

			resp := w.Result()
			defer func() {
				assert.NoError(t, resp.Body.Close())
			}()

			assert.Equal(t, tt.wantCode, resp.StatusCode)
			assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

			var health api.HealthResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
			assert.Equal(t, tt.wantStatus, health.Status)
			assert.Equal(t, "1.2.3", health.Version)
		})
	}
}
