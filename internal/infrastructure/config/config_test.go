package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp switches to an empty directory so a config.toml from the
// working tree cannot leak into the test.
func chdirTemp(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "weather-trend", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "7860", cfg.App.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "bg", cfg.Weather.Language)
	assert.Equal(t, "Europe/Sofia", cfg.Weather.Timezone)
	assert.Equal(t, "8250 Obzor, Bulgaria", cfg.Weather.DefaultLocation)
	assert.Equal(t, 2, cfg.Weather.ForecastDays)
	assert.Equal(t, "anthropic", cfg.Analyzer.Provider)
	assert.Equal(t, "memory", cfg.Cache.Backend)
	assert.Equal(t, 10*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, 15*time.Minute, cfg.Refresher.Interval)
	assert.InDelta(t, 1.0, cfg.Telemetry.SamplingRatio, 0.001)
}

func TestLoadFromFile(t *testing.T) {
	chdirTemp(t)

	toml := `
[app]
name = "trend-test"
port = "9000"

[weather]
default_location = "Varna, Bulgaria"
forecast_days = 3

[cache]
backend = "redis"
ttl = "5m"

[cache.redis]
host = "redis.internal"
port = 6380
`
	dir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(toml), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "trend-test", cfg.App.Name)
	assert.Equal(t, "9000", cfg.App.Port)
	assert.Equal(t, "Varna, Bulgaria", cfg.Weather.DefaultLocation)
	assert.Equal(t, 3, cfg.Weather.ForecastDays)
	assert.Equal(t, "redis", cfg.Cache.Backend)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "redis.internal", cfg.Cache.Redis.Host)
	assert.Equal(t, 6380, cfg.Cache.Redis.Port)
}

func TestLoadNegativeRefresherIntervalFallsBack(t *testing.T) {
	chdirTemp(t)

	toml := `
[refresher]
enabled = true
interval = "-5m"
`
	dir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(toml), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 15*time.Minute, cfg.Refresher.Interval)
}

func TestLoadEnvOverride(t *testing.T) {
	chdirTemp(t)

	t.Setenv("OBZOR_APP_PORT", "8081")
	t.Setenv("OBZOR_LOG_LEVEL", "debug")
	t.Setenv("OBZOR_WEATHER_API_KEY", "prefixed-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.App.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "prefixed-key", cfg.Weather.APIKey)
}

func TestLoadBareSecretNames(t *testing.T) {
	chdirTemp(t)

	t.Setenv("WEATHER_API_KEY", "bare-weather")
	t.Setenv("ANTHROPIC_API_KEY", "bare-anthropic")
	t.Setenv("HUGGING_FACE_API_KEY", "bare-hf")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "bare-weather", cfg.Weather.APIKey)
	assert.Equal(t, "bare-anthropic", cfg.Anthropic.APIKey)
	assert.Equal(t, "bare-hf", cfg.HuggingFace.APIKey)
}

func TestLoadPrefixedSecretWinsOverBare(t *testing.T) {
	chdirTemp(t)

	t.Setenv("WEATHER_API_KEY", "bare")
	t.Setenv("OBZOR_WEATHER_API_KEY", "prefixed")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "prefixed", cfg.Weather.APIKey)
}

func TestLoadRejectsUnknownAnalyzer(t *testing.T) {
	chdirTemp(t)

	t.Setenv("OBZOR_ANALYZER_PROVIDER", "openai")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "analyzer.provider")
}

func TestLoadRejectsUnknownCacheBackend(t *testing.T) {
	chdirTemp(t)

	t.Setenv("OBZOR_CACHE_BACKEND", "memcached")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cache.backend")
}

func TestLoadProductionRequiresKeys(t *testing.T) {
	chdirTemp(t)

	t.Setenv("OBZOR_APP_ENV", "production")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "weather.api_key")

	t.Setenv("WEATHER_API_KEY", "wk")
	_, err = Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "anthropic.api_key")

	t.Setenv("ANTHROPIC_API_KEY", "ak")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "production", cfg.App.Env)
}

func TestLoadRejectsForecastDaysOutOfRange(t *testing.T) {
	chdirTemp(t)

	t.Setenv("OBZOR_WEATHER_FORECAST_DAYS", "7")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "forecast_days")
}
