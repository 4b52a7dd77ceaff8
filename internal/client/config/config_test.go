package config

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	assert.Equal(t, "http://localhost:8000", cfg.ServerEndpointAddr)
	assert.Equal(t, "deepbrief.db", cfg.CacheDSN)
	assert.Equal(t, 120*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 1*time.Second, cfg.VerifyBackoff)
	assert.Equal(t, 500*time.Millisecond, cfg.HistoryRetryDelay)
}

func TestParseEnv_OverridesDefaults(t *testing.T) {
	t.Setenv("DEEPBRIEF_API_URL", "https://api.deepbrief.example")
	t.Setenv("DEEPBRIEF_CACHE_DSN", "/tmp/cache.db")
	t.Setenv("DEEPBRIEF_REQUEST_TIMEOUT", "90s")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, "https://api.deepbrief.example", cfg.ServerEndpointAddr)
	assert.Equal(t, "/tmp/cache.db", cfg.CacheDSN)
	assert.Equal(t, 90*time.Second, cfg.RequestTimeout)
}

func TestParseEnv_UnsetKeepsCurrent(t *testing.T) {
	t.Setenv("DEEPBRIEF_API_URL", "")
	t.Setenv("DEEPBRIEF_CACHE_DSN", "")
	t.Setenv("DEEPBRIEF_REQUEST_TIMEOUT", "")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, "http://localhost:8000", cfg.ServerEndpointAddr)
	assert.Equal(t, 120*time.Second, cfg.RequestTimeout)
}

func TestParseEnv_BadDurationIgnored(t *testing.T) {
	t.Setenv("DEEPBRIEF_REQUEST_TIMEOUT", "soon")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, 120*time.Second, cfg.RequestTimeout)
}

func TestJsonConfig_DurationFormats(t *testing.T) {
	data := []byte(`{
		"server_endpoint_addr": "https://api.deepbrief.example",
		"cache_dsn": "local.db",
		"request_timeout": "45s",
		"verify_backoff": 2000000000
	}`)

	var jc JsonConfig
	require.NoError(t, json.Unmarshal(data, &jc))

	assert.Equal(t, "https://api.deepbrief.example", jc.ServerEndpointAddr)
	assert.Equal(t, "local.db", jc.CacheDSN)
	assert.Equal(t, 45*time.Second, jc.RequestTimeout.Duration)
	assert.Equal(t, 2*time.Second, jc.VerifyBackoff.Duration)
}
