package handlers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessToken(t *testing.T) {
	cfg := JWTConfig{Secret: []byte("test-secret"), Issuer: "cloudsync", TokenTTL: time.Hour}

	token, expiresAt, err := GenerateAccessToken(cfg, "alice", "dev-a")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	claims, err := ValidateAccessToken(cfg, token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.UserID)
	assert.Equal(t, "dev-a", claims.DeviceID)
	assert.Equal(t, "cloudsync", claims.Issuer)

	_, err = ValidateAccessToken(JWTConfig{Secret: []byte("other")}, token)
	assert.Error(t, err)

	expired := JWTConfig{Secret: cfg.Secret, TokenTTL: -time.Minute}
	token, _, err = GenerateAccessToken(expired, "alice", "dev-a")
	require.NoError(t, err)
	_, err = ValidateAccessToken(expired, token)
	assert.Error(t, err)

	_, _, err = GenerateAccessToken(cfg, "alice", "")
	assert.Error(t, err)
}

func TestIdentityContext(t *testing.T) {
	ctx := context.Background()
	_, ok := GetUserID(ctx)
	assert.False(t, ok)

	ctx = WithIdentity(ctx, "alice", "dev-a")
	userID, ok := GetUserID(ctx)
	require.True(t, ok)
	assert.Equal(t, "alice", userID)

	deviceID, ok := GetDeviceID(ctx)
	require.True(t, ok)
	assert.Equal(t, "dev-a", deviceID)
}
