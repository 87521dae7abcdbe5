package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 60*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, "development", cfg.Server.Environment)

	assert.Equal(t, "groq", cfg.LLM.Primary.Provider)
	assert.Equal(t, "llama-3.3-70b-versatile", cfg.LLM.Primary.DefaultModel)
	assert.Equal(t, 0.3, cfg.LLM.Temperature)
	assert.Equal(t, 800, cfg.LLM.MaxTokens)
	assert.Nil(t, cfg.LLM.SecondaryConfig())

	assert.Equal(t, 2*time.Hour, cfg.Session.TTL)
	assert.Equal(t, 10*time.Minute, cfg.Session.JanitorInterval)
	assert.Equal(t, int64(10), cfg.Session.MaxUploadMB)
	assert.Equal(t, 1, cfg.Session.ContextWindow)

	assert.Equal(t, "docufill", cfg.Token.Issuer)
	assert.Contains(t, cfg.CORS.AllowedOrigins, "http://localhost:3000")
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DOCUFILL_SERVER_PORT", ":9090")
	t.Setenv("DOCUFILL_LLM_PRIMARY_API_KEY", "gsk_test")
	t.Setenv("DOCUFILL_LLM_PRIMARY_DEFAULT_MODEL", "llama-3.1-8b-instant")
	t.Setenv("DOCUFILL_LLM_SECONDARY_PROVIDER", "openai")
	t.Setenv("DOCUFILL_LLM_SECONDARY_API_KEY", "sk_test")
	t.Setenv("DOCUFILL_SESSION_TTL", "30m")
	t.Setenv("DOCUFILL_SESSION_MAX_UPLOAD_MB", "5")
	t.Setenv("DOCUFILL_TOKEN_SECRET", "env-secret")
	t.Setenv("DOCUFILL_CORS_ALLOWED_ORIGINS", "https://app.example.com, https://staging.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Port)
	assert.Equal(t, "gsk_test", cfg.LLM.Primary.APIKey)
	assert.Equal(t, "llama-3.1-8b-instant", cfg.LLM.Primary.DefaultModel)

	secondary := cfg.LLM.SecondaryConfig()
	require.NotNil(t, secondary)
	assert.Equal(t, "openai", secondary.Provider)
	assert.Equal(t, "sk_test", secondary.APIKey)

	assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
	assert.Equal(t, int64(5), cfg.Session.MaxUploadMB)
	assert.Equal(t, "env-secret", cfg.Token.Secret)
	assert.Equal(t, []string{"https://app.example.com", "https://staging.example.com"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_PlatformPortFallback(t *testing.T) {
	t.Setenv("PORT", "7000")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Server.Port)
}

func TestLoad_ExplicitPortWinsOverPlatformPort(t *testing.T) {
	t.Setenv("PORT", "7000")
	t.Setenv("DOCUFILL_SERVER_PORT", ":9090")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Port)
}
