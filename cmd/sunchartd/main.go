package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/sun-chart/internal/adapter/astral"
	httpadapter "github.com/couchcryptid/sun-chart/internal/adapter/http"
	"github.com/couchcryptid/sun-chart/internal/adapter/noaa"
	"github.com/couchcryptid/sun-chart/internal/adapter/nominatim"
	"github.com/couchcryptid/sun-chart/internal/adapter/tzlookup"
	"github.com/couchcryptid/sun-chart/internal/config"
	"github.com/couchcryptid/sun-chart/internal/domain"
	"github.com/couchcryptid/sun-chart/internal/locale"
	"github.com/couchcryptid/sun-chart/internal/observability"
	"github.com/couchcryptid/sun-chart/internal/pipeline"
	"github.com/couchcryptid/sun-chart/internal/render"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	// Geocode caching is optional (GEOCODE_CACHE_SIZE=0 disables it).
	var geocoder domain.Geocoder = nominatim.NewClient(cfg.NominatimBaseURL, cfg.NominatimUserAgent, cfg.NominatimTimeout, logger)
	if cfg.GeocodeCacheSize > 0 {
		geocoder = nominatim.NewCachedGeocoder(geocoder, cfg.GeocodeCacheSize, metrics.GeocodeCache)
		logger.Info("geocode caching enabled", "cache_size", cfg.GeocodeCacheSize)
	}

	var ephemeris domain.Ephemeris
	switch cfg.Ephemeris {
	case "noaa":
		ephemeris = noaa.New()
	default:
		ephemeris = astral.New()
	}
	logger.Info("ephemeris engine selected", "engine", cfg.Ephemeris)

	languages := make([]locale.Language, 0, len(cfg.Languages))
	for _, name := range cfg.Languages {
		lang, err := locale.Parse(name)
		if err != nil {
			slog.Error("invalid language in config", "language", name, "error", err)
			os.Exit(1)
		}
		languages = append(languages, lang)
	}

	fonts := render.LoadFonts(cfg.FontsDir, logger)
	renderer := render.NewRenderer(fonts, cfg.ChartWidth, cfg.ChartHeight, logger)

	gen := pipeline.New(geocoder, tzlookup.New(), ephemeris, renderer, cfg.OutputDir, languages, logger, metrics)

	srv := httpadapter.NewServer(cfg.HTTPAddr, gen, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Run the startup self-check; /readyz reports 503 until it passes.
	go func() {
		if err := gen.SelfCheck(); err != nil {
			logger.Error("self-check failed", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
