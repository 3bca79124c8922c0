package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nazarious-ucu/weather-dashboard/internal/config"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg, err := config.NewConfig()
	require.NoError(t, err)

	assert.Equal(t, 60*time.Second, cfg.RateLimit.Window)
	assert.Equal(t, 30, cfg.RateLimit.MaxRequests)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, 1000, cfg.Cache.MaxSize)
	assert.Equal(t, 100, cfg.Cache.EvictBatch)
	assert.Equal(t, 10*time.Second, cfg.Weather.FetchTimeout)
	assert.Equal(t, config.CacheBackendMemory, cfg.Cache.Backend)
	assert.False(t, cfg.DemoMode())
	assert.Equal(t, "0.0.0.0:8080", cfg.ServerAddress())
	assert.Equal(t, "localhost:6379", cfg.Redis.Address())
}

func TestNewConfig_FromEnv(t *testing.T) {
	t.Setenv("WEATHER_API_MODE", "demo")
	t.Setenv("RATE_LIMIT_MAX_REQUESTS", "5")
	t.Setenv("CACHE_TTL", "30s")
	t.Setenv("SERVER_HOST", "127.0.0.1")
	t.Setenv("SERVER_HTTP_PORT", "9999")

	cfg, err := config.NewConfig()
	require.NoError(t, err)

	assert.True(t, cfg.DemoMode())
	assert.Equal(t, 5, cfg.RateLimit.MaxRequests)
	assert.Equal(t, 30*time.Second, cfg.Cache.TTL)
	assert.Equal(t, "127.0.0.1:9999", cfg.ServerAddress())
}

func TestNewConfig_Invalid(t *testing.T) {
	t.Setenv("RATE_LIMIT_MAX_REQUESTS", "0")
	t.Setenv("CACHE_BACKEND", "memcached")

	_, err := config.NewConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RATE_LIMIT_MAX_REQUESTS")
	assert.Contains(t, err.Error(), "CACHE_BACKEND")
}

func TestNewConfig_InvalidUpstreamThrottle(t *testing.T) {
	t.Setenv("WEATHER_UPSTREAM_RPS", "0")
	t.Setenv("WEATHER_UPSTREAM_BURST", "0")

	_, err := config.NewConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WEATHER_UPSTREAM_RPS")
	assert.Contains(t, err.Error(), "WEATHER_UPSTREAM_BURST")
}

func TestNewConfig_BadDuration(t *testing.T) {
	t.Setenv("RATE_LIMIT_WINDOW", "soon")

	_, err := config.NewConfig()
	assert.Error(t, err)
}
