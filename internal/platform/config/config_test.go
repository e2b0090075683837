package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestFromLookup_Defaults(t *testing.T) {
	cfg, err := fromLookup(lookupFrom(nil))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, ":9090", cfg.MetricsAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.False(t, cfg.RegulatedMode)
	assert.Equal(t, 1000, cfg.MaxBatch)
	assert.Equal(t, 30, cfg.RateLimit.Generate)
	assert.Equal(t, 120, cfg.RateLimit.Validate)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
	assert.Empty(t, cfg.Redis.URL)
}

func TestFromLookup_Overrides(t *testing.T) {
	cfg, err := fromLookup(lookupFrom(map[string]string{
		"HKID_GATEWAY_ADDR":   ":8181",
		"REGULATED_MODE":      "true",
		"HKID_MAX_BATCH":      "50",
		"RATE_LIMIT_DISABLED": "1",
		"RATE_LIMIT_WINDOW":   "30s",
		"REDIS_URL":           "redis://localhost:6379/0",
		"REDIS_POOL_SIZE":     "4",
	}))
	require.NoError(t, err)

	assert.Equal(t, ":8181", cfg.Addr)
	assert.True(t, cfg.RegulatedMode)
	assert.Equal(t, 50, cfg.MaxBatch)
	assert.True(t, cfg.RateLimit.Disabled)
	assert.Equal(t, 30*time.Second, cfg.RateLimit.Window)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Redis.URL)
	assert.Equal(t, 4, cfg.Redis.PoolSize)
}

func TestFromLookup_InvalidValues(t *testing.T) {
	for key, value := range map[string]string{
		"HKID_MAX_BATCH":     "lots",
		"RATE_LIMIT_WINDOW":  "soon",
		"REGULATED_MODE":     "maybe",
		"REDIS_DIAL_TIMEOUT": "5",
	} {
		_, err := fromLookup(lookupFrom(map[string]string{key: value}))
		require.Error(t, err, key)
		assert.Contains(t, err.Error(), key)
	}
}

func TestFromLookup_RangeChecks(t *testing.T) {
	_, err := fromLookup(lookupFrom(map[string]string{"HKID_MAX_BATCH": "0"}))
	assert.Error(t, err)

	_, err = fromLookup(lookupFrom(map[string]string{"RATE_LIMIT_WINDOW": "-1s"}))
	assert.Error(t, err)
}
