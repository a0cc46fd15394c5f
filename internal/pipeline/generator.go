// Package pipeline orchestrates the chart generation flow: resolve a place
// to coordinates and a time zone, compute a year of sun times, and render
// the localized charts.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/sun-chart/internal/domain"
	"github.com/couchcryptid/sun-chart/internal/locale"
	"github.com/couchcryptid/sun-chart/internal/observability"
	"github.com/couchcryptid/sun-chart/internal/render"
)

// Generator wires the geocoder, ephemeris, and renderer into the operations
// the CLI and the HTTP server expose.
type Generator struct {
	geocoder  domain.Geocoder
	zones     domain.ZoneLookup
	ephemeris domain.Ephemeris
	renderer  *render.Renderer
	outputDir string
	languages []locale.Language
	logger    *slog.Logger
	metrics   *observability.Metrics
	ready     atomic.Bool
}

// New creates a Generator. An empty language list means all supported
// languages.
func New(geocoder domain.Geocoder, zones domain.ZoneLookup, ephemeris domain.Ephemeris, renderer *render.Renderer, outputDir string, languages []locale.Language, logger *slog.Logger, metrics *observability.Metrics) *Generator {
	if len(languages) == 0 {
		languages = locale.All()
	}
	return &Generator{
		geocoder:  geocoder,
		zones:     zones,
		ephemeris: ephemeris,
		renderer:  renderer,
		outputDir: outputDir,
		languages: languages,
		logger:    logger,
		metrics:   metrics,
	}
}

// Languages returns the configured chart languages in output order.
func (g *Generator) Languages() []locale.Language {
	return g.languages
}

// Resolve turns user input into a location, recording geocode request
// metrics. The returns mirror domain.ResolveLocation.
func (g *Generator) Resolve(ctx context.Context, input string) (*domain.Location, []domain.Location, error) {
	operation := "search"
	if _, _, ok := domain.ParseCoordinates(input); ok {
		operation = "reverse"
	}

	start := time.Now()
	loc, matches, err := domain.ResolveLocation(ctx, input, g.geocoder, g.zones, g.logger)
	g.metrics.GeocodeDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())

	switch {
	case errors.Is(err, domain.ErrLocationNotFound):
		g.metrics.GeocodeRequests.WithLabelValues(operation, "empty").Inc()
	case err != nil && !errors.Is(err, domain.ErrAmbiguousLocation):
		g.metrics.GeocodeRequests.WithLabelValues(operation, "error").Inc()
	default:
		// A list of candidates still counts as an answered request.
		g.metrics.GeocodeRequests.WithLabelValues(operation, "success").Inc()
	}
	return loc, matches, err
}

// ComputeYear computes the full-year series for a position, recording
// computation metrics.
func (g *Generator) ComputeYear(pos domain.Position, year int) (domain.YearSeries, error) {
	g.metrics.ComputationsInFlight.Inc()
	defer g.metrics.ComputationsInFlight.Dec()

	start := time.Now()
	series, err := domain.ComputeYear(pos, year, g.ephemeris, g.logger)
	if err != nil {
		return nil, err
	}

	g.metrics.ComputeDuration.Observe(time.Since(start).Seconds())
	g.metrics.DaysComputed.Add(float64(len(series)))
	g.metrics.PolarDays.Add(float64(len(series.PolarDays())))

	g.logger.Info("computed year series",
		"year", year,
		"days", len(series),
		"valid_sunrises", series.ValidSunrises(),
		"lat", pos.Lat,
		"lon", pos.Lon,
	)
	return series, nil
}

// ComputeDay returns the sunrise and sunset instants for a single date.
func (g *Generator) ComputeDay(pos domain.Position, date time.Time) (time.Time, time.Time, error) {
	return domain.ComputeDay(pos, date, g.ephemeris)
}

// Charts renders every configured language to the output directory, SVG and
// PNG per language. A year with zero valid sunrises yields ErrNoUsableData
// rather than an empty chart.
func (g *Generator) Charts(series domain.YearSeries, loc *domain.Location) ([]render.ChartFiles, error) {
	if series.ValidSunrises() == 0 {
		return nil, fmt.Errorf("charts for %s: %w", loc.Name, domain.ErrNoUsableData)
	}

	files := make([]render.ChartFiles, 0, len(g.languages))
	for _, lang := range g.languages {
		out, err := g.LanguageCharts(series, loc, lang)
		if err != nil {
			return nil, err
		}
		files = append(files, out)
	}
	return files, nil
}

// LanguageCharts renders one language's SVG and PNG chart files to the
// output directory.
func (g *Generator) LanguageCharts(series domain.YearSeries, loc *domain.Location, lang locale.Language) (render.ChartFiles, error) {
	if series.ValidSunrises() == 0 {
		return render.ChartFiles{}, fmt.Errorf("charts for %s: %w", loc.Name, domain.ErrNoUsableData)
	}

	name := loc.LocalizedName(string(lang))

	start := time.Now()
	out, err := g.renderer.WriteFiles(series, name, lang, g.outputDir)
	if err != nil {
		g.metrics.RenderErrors.Inc()
		return render.ChartFiles{}, fmt.Errorf("render %s charts: %w", lang.DisplayName(), err)
	}
	g.metrics.RenderDuration.Observe(time.Since(start).Seconds())
	g.metrics.ChartsRendered.WithLabelValues(string(lang), string(render.FormatSVG)).Inc()
	g.metrics.ChartsRendered.WithLabelValues(string(lang), string(render.FormatPNG)).Inc()

	return out, nil
}

// RenderChart encodes a single language and format to w.
func (g *Generator) RenderChart(w io.Writer, series domain.YearSeries, loc *domain.Location, lang locale.Language, format render.Format) error {
	if series.ValidSunrises() == 0 {
		return fmt.Errorf("chart for %s: %w", loc.Name, domain.ErrNoUsableData)
	}

	start := time.Now()
	if err := g.renderer.Render(series, loc.LocalizedName(string(lang)), lang, format, w); err != nil {
		g.metrics.RenderErrors.Inc()
		return err
	}
	g.metrics.RenderDuration.Observe(time.Since(start).Seconds())
	g.metrics.ChartsRendered.WithLabelValues(string(lang), string(format)).Inc()
	return nil
}

// SelfCheck computes today's sun times at the equator, where a sunrise and
// sunset always exist, then marks the generator ready.
func (g *Generator) SelfCheck() error {
	pos := domain.Position{Lat: 0, Lon: 0, Zone: "UTC"}
	today := domain.Today(time.UTC)

	rise, set, err := domain.ComputeDay(pos, today, g.ephemeris)
	if err != nil {
		return fmt.Errorf("self-check: %w", err)
	}
	if rise.IsZero() || set.IsZero() {
		return errors.New("self-check: expected a sunrise and a sunset at the equator")
	}

	g.ready.Store(true)
	g.logger.Info("self-check passed", "sunrise", rise, "sunset", set)
	return nil
}

// CheckReadiness returns nil once the startup self-check has passed, or an
// error describing why the service is not yet ready.
func (g *Generator) CheckReadiness(_ context.Context) error {
	if !g.ready.Load() {
		return errors.New("generator self-check has not passed yet")
	}
	return nil
}
