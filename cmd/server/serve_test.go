package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iudanet/cloudsync/internal/config"
	"github.com/iudanet/cloudsync/internal/server/handlers"
)

func testConfig(t *testing.T) *config.ServerConfig {
	t.Helper()
	return &config.ServerConfig{
		Addr:   "127.0.0.1:0",
		DBPath: filepath.Join(t.TempDir(), "cloud.db"),
		JWT: config.JWTConfig{
			Secret:   "0123456789abcdef0123456789abcdef",
			Issuer:   "cloudsync",
			TokenTTL: time.Hour,
		},
		LockLease: 30 * time.Second,
	}
}

// tokenFrom достает токен из вывода команды token
func tokenFrom(t *testing.T, out string) string {
	t.Helper()
	for _, line := range strings.Split(out, "\n") {
		if v, ok := strings.CutPrefix(line, "token:"); ok {
			return strings.TrimSpace(v)
		}
	}
	t.Fatalf("no token in %q", out)
	return ""
}

func TestIssueToken(t *testing.T) {
	cfg := testConfig(t)

	var out bytes.Buffer
	require.NoError(t, issueToken(&out, cfg, "alice", "laptop", 0))
	assert.Contains(t, out.String(), "device:  laptop")

	claims, err := handlers.ValidateAccessToken(jwtConfig(cfg), tokenFrom(t, out.String()))
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.UserID)
	assert.Equal(t, "laptop", claims.DeviceID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)

	out.Reset()
	require.NoError(t, issueToken(&out, cfg, "alice", "", time.Minute))
	claims, err = handlers.ValidateAccessToken(jwtConfig(cfg), tokenFrom(t, out.String()))
	require.NoError(t, err)
	assert.NotEmpty(t, claims.DeviceID, "random device id")
	assert.WithinDuration(t, time.Now().Add(time.Minute), claims.ExpiresAt.Time, 10*time.Second)

	assert.Error(t, issueToken(&bytes.Buffer{}, cfg, "", "laptop", 0))
}

func TestNewServer(t *testing.T) {
	cfg := testConfig(t)
	srv, store, err := newServer(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	var out bytes.Buffer
	require.NoError(t, issueToken(&out, cfg, "alice", "laptop", 0))
	token := tokenFrom(t, out.String())

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		token  string
		want   int
	}{
		{name: "health", method: http.MethodGet, path: "/api/v1/health", want: http.StatusOK},
		{name: "metrics", method: http.MethodGet, path: "/metrics", want: http.StatusOK},
		{name: "query without token", method: http.MethodPost, path: "/api/v1/cloud/query", body: `{"table":"notes"}`, want: http.StatusUnauthorized},
		{name: "query", method: http.MethodPost, path: "/api/v1/cloud/query", body: `{"table":"notes","limit":10}`, token: token, want: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(tt.method, ts.URL+tt.path, strings.NewReader(tt.body))
			require.NoError(t, err)
			req.Header.Set("Content-Type", "application/json")
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()
			body, _ := io.ReadAll(resp.Body)
			assert.Equal(t, tt.want, resp.StatusCode, string(body))
		})
	}

	t.Run("metrics include cloud db stats", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/metrics")
		require.NoError(t, err)
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, string(body), "go_sql_open_connections")
	})
}
