package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir()) // no .env file

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, []string{"llama-3.3-70b-versatile", "llama-3.1-8b-instant"}, cfg.LLMModels)
	assert.Equal(t, 15*time.Second, cfg.FetchTimeout())
	assert.Equal(t, 60*time.Second, cfg.LLMTimeout())
	assert.Equal(t, 30*24*time.Hour, cfg.SessionTTL())
	assert.Equal(t, int64(5<<20), cfg.FetchMaxBytes)
	assert.InDelta(t, 0.1, cfg.LLMTemperature, 1e-9)
	assert.Empty(t, cfg.LLMAPIKey)
	assert.Empty(t, cfg.FetchProxies)
	assert.Empty(t, cfg.CORSAllowedOrigins)
}

func TestLoad_Environment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("LLM_API_KEY", "secret")
	t.Setenv("LLM_MODELS", "model-a, ,model-b")
	t.Setenv("FETCH_TIMEOUT_SECONDS", "5")
	t.Setenv("FETCH_PROXIES", "http://p1:8080,http://p2:8080")
	t.Setenv("SESSION_COOKIE_SECURE", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.LLMAPIKey)
	assert.Equal(t, []string{"model-a", "model-b"}, cfg.LLMModels)
	assert.Equal(t, 5*time.Second, cfg.FetchTimeout())
	assert.Equal(t, []string{"http://p1:8080", "http://p2:8080"}, cfg.FetchProxies)
	assert.True(t, cfg.SessionCookieSecure)
}
