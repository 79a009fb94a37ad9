package config_test

import (
	"testing"
	"time"

	"github.com/SscSPs/citizen_accounts/internal/platform/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ReadsEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_EXPIRY_DURATION", "15m")
	t.Setenv("PASSWORD_HASH_ALGORITHM", "bcrypt")
	t.Setenv("FACEBOOK_CLIENT_ID", "fb-client")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 15*time.Minute, cfg.JWTExpiryDuration)
	assert.Equal(t, "bcrypt", cfg.PasswordHashAlgorithm)
	assert.Equal(t, "fb-client", cfg.FacebookClientID)
	assert.Equal(t, "mail.verification", cfg.MailSubject)
}

func TestLoadConfig_InvalidExpiryFallsBack(t *testing.T) {
	t.Setenv("JWT_EXPIRY_DURATION", "soon")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, time.Hour, cfg.JWTExpiryDuration)
}
