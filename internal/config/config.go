package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Ephemeris selects the solar calculation backend: "astral" or "noaa".
	Ephemeris string

	// Nominatim geocoding configuration.
	NominatimBaseURL   string
	NominatimUserAgent string
	NominatimTimeout   time.Duration

	// GeocodeCacheSize caps the geocode LRU cache; 0 disables caching.
	GeocodeCacheSize int

	OutputDir   string
	FontsDir    string
	ChartWidth  int
	ChartHeight int

	// Languages lists the chart languages to render, in output order.
	Languages []string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parsePositiveDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	nominatimTimeout, err := parsePositiveDuration("NOMINATIM_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	cacheSize, err := parseNonNegativeInt("GEOCODE_CACHE_SIZE", 128)
	if err != nil {
		return nil, err
	}

	width, err := parsePositiveInt("CHART_WIDTH", 1400)
	if err != nil {
		return nil, err
	}

	height, err := parsePositiveInt("CHART_HEIGHT", 800)
	if err != nil {
		return nil, err
	}

	languages, err := parseLanguages(envOrDefault("LANGUAGES", "english,arabic,japanese"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		Ephemeris: strings.ToLower(envOrDefault("EPHEMERIS", "astral")),

		NominatimBaseURL:   envOrDefault("NOMINATIM_BASE_URL", "https://nominatim.openstreetmap.org"),
		NominatimUserAgent: envOrDefault("NOMINATIM_USER_AGENT", "sun-chart/1.0 (github.com/couchcryptid/sun-chart)"),
		NominatimTimeout:   nominatimTimeout,
		GeocodeCacheSize:   cacheSize,

		OutputDir:   envOrDefault("OUTPUT_DIR", "output"),
		FontsDir:    envOrDefault("FONTS_DIR", "fonts"),
		ChartWidth:  width,
		ChartHeight: height,
		Languages:   languages,
	}

	switch cfg.Ephemeris {
	case "astral", "noaa":
	default:
		return nil, fmt.Errorf("invalid EPHEMERIS %q: must be \"astral\" or \"noaa\"", cfg.Ephemeris)
	}

	return cfg, nil
}

// knownLanguages are the languages the renderer has translations for.
var knownLanguages = map[string]bool{
	"english":  true,
	"arabic":   true,
	"japanese": true,
}

func parseLanguages(raw string) ([]string, error) {
	parts := strings.Split(raw, ",")
	languages := make([]string, 0, len(parts))
	for _, part := range parts {
		lang := strings.ToLower(strings.TrimSpace(part))
		if lang == "" {
			continue
		}
		if !knownLanguages[lang] {
			return nil, fmt.Errorf("invalid LANGUAGES: unknown language %q", lang)
		}
		languages = append(languages, lang)
	}
	if len(languages) == 0 {
		return nil, errors.New("LANGUAGES must name at least one language")
	}
	return languages, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parsePositiveDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, fallback))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parsePositiveInt(key string, fallback int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return n, nil
}

func parseNonNegativeInt(key string, fallback int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return n, nil
}
