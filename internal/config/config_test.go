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

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "astral", cfg.Ephemeris)
	assert.Equal(t, "https://nominatim.openstreetmap.org", cfg.NominatimBaseURL)
	assert.Contains(t, cfg.NominatimUserAgent, "sun-chart")
	assert.Equal(t, 10*time.Second, cfg.NominatimTimeout)
	assert.Equal(t, 128, cfg.GeocodeCacheSize)
	assert.Equal(t, "output", cfg.OutputDir)
	assert.Equal(t, "fonts", cfg.FontsDir)
	assert.Equal(t, 1400, cfg.ChartWidth)
	assert.Equal(t, 800, cfg.ChartHeight)
	assert.Equal(t, []string{"english", "arabic", "japanese"}, cfg.Languages)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("EPHEMERIS", "noaa")
	t.Setenv("NOMINATIM_BASE_URL", "http://localhost:8088")
	t.Setenv("NOMINATIM_USER_AGENT", "my-app/1.0")
	t.Setenv("NOMINATIM_TIMEOUT", "10s")
	t.Setenv("GEOCODE_CACHE_SIZE", "500")
	t.Setenv("OUTPUT_DIR", "/tmp/charts")
	t.Setenv("FONTS_DIR", "/usr/share/fonts")
	t.Setenv("CHART_WIDTH", "1920")
	t.Setenv("CHART_HEIGHT", "1080")
	t.Setenv("LANGUAGES", "japanese,english")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "noaa", cfg.Ephemeris)
	assert.Equal(t, "http://localhost:8088", cfg.NominatimBaseURL)
	assert.Equal(t, "my-app/1.0", cfg.NominatimUserAgent)
	assert.Equal(t, 10*time.Second, cfg.NominatimTimeout)
	assert.Equal(t, 500, cfg.GeocodeCacheSize)
	assert.Equal(t, "/tmp/charts", cfg.OutputDir)
	assert.Equal(t, "/usr/share/fonts", cfg.FontsDir)
	assert.Equal(t, 1920, cfg.ChartWidth)
	assert.Equal(t, 1080, cfg.ChartHeight)
	assert.Equal(t, []string{"japanese", "english"}, cfg.Languages)
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_NegativeShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "-1s")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_InvalidNominatimTimeout(t *testing.T) {
	t.Setenv("NOMINATIM_TIMEOUT", "bad")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NOMINATIM_TIMEOUT")
}

func TestLoad_InvalidEphemeris(t *testing.T) {
	t.Setenv("EPHEMERIS", "sundial")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "EPHEMERIS")
}

func TestLoad_EphemerisCaseInsensitive(t *testing.T) {
	t.Setenv("EPHEMERIS", "NOAA")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "noaa", cfg.Ephemeris)
}

func TestLoad_CacheSizeZeroDisablesCache(t *testing.T) {
	t.Setenv("GEOCODE_CACHE_SIZE", "0")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.GeocodeCacheSize)
}

func TestLoad_NegativeCacheSize(t *testing.T) {
	t.Setenv("GEOCODE_CACHE_SIZE", "-5")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEOCODE_CACHE_SIZE")
}

func TestLoad_InvalidChartWidth(t *testing.T) {
	t.Setenv("CHART_WIDTH", "0")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CHART_WIDTH")
}

func TestLoad_UnknownLanguage(t *testing.T) {
	t.Setenv("LANGUAGES", "english,klingon")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "klingon")
}

func TestLoad_LanguagesNormalized(t *testing.T) {
	t.Setenv("LANGUAGES", " Japanese , ARABIC ")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"japanese", "arabic"}, cfg.Languages)
}

func TestLoad_LanguagesAllSeparators(t *testing.T) {
	t.Setenv("LANGUAGES", ",,,")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LANGUAGES")
}
