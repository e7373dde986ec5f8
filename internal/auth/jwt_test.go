package auth_test

import (
	"testing"

	"pushresume/internal/auth"
	"pushresume/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setTestSecret(ttl int) {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.TTL = ttl
	config.AppConfig = cfg
}

func TestGenerateAndParseToken(t *testing.T) {
	setTestSecret(600)

	token, err := auth.GenerateToken("user-1")
	require.NoError(t, err)

	claims, err := auth.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
}

func TestParseToken_BadSignature(t *testing.T) {
	setTestSecret(600)

	token, err := auth.GenerateToken("user-1")
	require.NoError(t, err)

	config.AppConfig.JWT.Secret = "another-secret"
	_, err = auth.ParseToken(token)
	require.Error(t, err)
}

func TestParseToken_Expired(t *testing.T) {
	setTestSecret(-60)

	token, err := auth.GenerateToken("user-1")
	require.NoError(t, err)

	_, err = auth.ParseToken(token)
	require.Error(t, err)
}

func TestParseToken_Garbage(t *testing.T) {
	setTestSecret(600)

	_, err := auth.ParseToken("not.a.jwt")
	require.Error(t, err)
}
