// Package http exposes the sun-chart API: health and readiness probes,
// Prometheus metrics, and the /v1 endpoints for year series, single days,
// and encoded charts.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/sun-chart/internal/domain"
	"github.com/couchcryptid/sun-chart/internal/locale"
	"github.com/couchcryptid/sun-chart/internal/render"
)

// Generator is the subset of the pipeline the HTTP API serves.
type Generator interface {
	Resolve(ctx context.Context, input string) (*domain.Location, []domain.Location, error)
	ComputeYear(pos domain.Position, year int) (domain.YearSeries, error)
	ComputeDay(pos domain.Position, date time.Time) (time.Time, time.Time, error)
	RenderChart(w io.Writer, series domain.YearSeries, loc *domain.Location, lang locale.Language, format render.Format) error
	CheckReadiness(ctx context.Context) error
}

// Server exposes the HTTP API over a standard net/http server.
type Server struct {
	httpServer *http.Server
	generator  Generator
	logger     *slog.Logger
}

// NewServer creates a Server with all routes registered.
func NewServer(addr string, generator Generator, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		generator: generator,
		logger:    logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /v1/year", s.handleYear)
	mux.HandleFunc("GET /v1/day", s.handleDay)
	mux.HandleFunc("GET /v1/chart", s.handleChart)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.generator.CheckReadiness(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// --- /v1 wire types ---

type locationDTO struct {
	Name    string  `json:"name"`
	State   string  `json:"state,omitempty"`
	Country string  `json:"country,omitempty"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Zone    string  `json:"zone"`
}

type dayDTO struct {
	Date    string   `json:"date"`
	Sunrise *float64 `json:"sunrise"`
	Noon    *float64 `json:"noon"`
	Sunset  *float64 `json:"sunset"`
}

type yearResponse struct {
	Location locationDTO `json:"location"`
	Year     int         `json:"year"`
	Days     []dayDTO    `json:"days"`
}

type dayResponse struct {
	Location locationDTO `json:"location"`
	Date     string      `json:"date"`
	Sunrise  *string     `json:"sunrise"`
	Sunset   *string     `json:"sunset"`
}

type ambiguousResponse struct {
	Error      string        `json:"error"`
	Candidates []locationDTO `json:"candidates"`
}

func toLocationDTO(loc domain.Location) locationDTO {
	return locationDTO{
		Name:    loc.Name,
		State:   loc.State,
		Country: loc.Country,
		Lat:     loc.Lat,
		Lon:     loc.Lon,
		Zone:    loc.Zone,
	}
}

// --- /v1 handlers ---

func (s *Server) handleYear(w http.ResponseWriter, r *http.Request) {
	loc, ok := s.resolvePlace(w, r)
	if !ok {
		return
	}
	year, ok := s.parseYear(w, r)
	if !ok {
		return
	}

	series, err := s.generator.ComputeYear(loc.Position(), year)
	if err != nil {
		s.logger.Error("year computation failed", "place", loc.Name, "year", year, "error", err)
		writeError(w, http.StatusInternalServerError, "sun time computation failed")
		return
	}

	days := make([]dayDTO, 0, len(series))
	for _, day := range series {
		days = append(days, dayDTO{
			Date:    day.Date.Format(time.DateOnly),
			Sunrise: day.Sunrise,
			Noon:    day.Noon,
			Sunset:  day.Sunset,
		})
	}

	writeJSON(w, http.StatusOK, yearResponse{
		Location: toLocationDTO(*loc),
		Year:     year,
		Days:     days,
	})
}

func (s *Server) handleDay(w http.ResponseWriter, r *http.Request) {
	loc, ok := s.resolvePlace(w, r)
	if !ok {
		return
	}

	date, ok := s.parseDate(w, r, loc)
	if !ok {
		return
	}

	rise, set, err := s.generator.ComputeDay(loc.Position(), date)
	if err != nil {
		s.logger.Error("day computation failed", "place", loc.Name, "date", date.Format(time.DateOnly), "error", err)
		writeError(w, http.StatusInternalServerError, "sun time computation failed")
		return
	}

	writeJSON(w, http.StatusOK, dayResponse{
		Location: toLocationDTO(*loc),
		Date:     date.Format(time.DateOnly),
		Sunrise:  instant(rise),
		Sunset:   instant(set),
	})
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	loc, ok := s.resolvePlace(w, r)
	if !ok {
		return
	}
	year, ok := s.parseYear(w, r)
	if !ok {
		return
	}

	lang := locale.English
	if v := r.URL.Query().Get("lang"); v != "" {
		parsed, err := locale.Parse(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		lang = parsed
	}

	format := render.FormatSVG
	switch v := r.URL.Query().Get("format"); v {
	case "", string(render.FormatSVG):
	case string(render.FormatPNG):
		format = render.FormatPNG
	default:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown format %q", v))
		return
	}

	series, err := s.generator.ComputeYear(loc.Position(), year)
	if err != nil {
		s.logger.Error("year computation failed", "place", loc.Name, "year", year, "error", err)
		writeError(w, http.StatusInternalServerError, "sun time computation failed")
		return
	}

	// Render to a buffer first so failures never leave a partial image body.
	var buf bytes.Buffer
	if err := s.generator.RenderChart(&buf, series, loc, lang, format); err != nil {
		if errors.Is(err, domain.ErrNoUsableData) {
			writeError(w, http.StatusUnprocessableEntity, "no usable sun time data for this location")
			return
		}
		s.logger.Error("chart rendering failed", "place", loc.Name, "error", err)
		writeError(w, http.StatusInternalServerError, "chart rendering failed")
		return
	}

	name := loc.LocalizedName(string(lang))
	filename := render.BaseName(name, year, lang) + "." + string(format)

	switch format {
	case render.FormatPNG:
		w.Header().Set("Content-Type", "image/png")
	default:
		w.Header().Set("Content-Type", "image/svg+xml")
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes()) //nolint:errcheck // client gone, nothing to do
}

// resolvePlace reads the place query parameter and resolves it, writing the
// appropriate error response itself. The bool reports success.
func (s *Server) resolvePlace(w http.ResponseWriter, r *http.Request) (*domain.Location, bool) {
	place := r.URL.Query().Get("place")
	if place == "" {
		writeError(w, http.StatusBadRequest, "place is required")
		return nil, false
	}

	loc, matches, err := s.generator.Resolve(r.Context(), place)
	switch {
	case errors.Is(err, domain.ErrAmbiguousLocation):
		candidates := make([]locationDTO, 0, len(matches))
		for _, m := range matches {
			candidates = append(candidates, toLocationDTO(m))
		}
		writeJSON(w, http.StatusUnprocessableEntity, ambiguousResponse{
			Error:      "ambiguous place",
			Candidates: candidates,
		})
		return nil, false
	case errors.Is(err, domain.ErrLocationNotFound):
		writeError(w, http.StatusNotFound, fmt.Sprintf("no location found for %q", place))
		return nil, false
	case err != nil:
		s.logger.Error("geocoding failed", "place", place, "error", err)
		writeError(w, http.StatusBadGateway, "geocoding failed")
		return nil, false
	}
	return loc, true
}

// parseYear reads the year query parameter, defaulting to the current year.
func (s *Server) parseYear(w http.ResponseWriter, r *http.Request) (int, bool) {
	v := r.URL.Query().Get("year")
	if v == "" {
		return domain.CurrentYear(), true
	}
	year, err := strconv.Atoi(v)
	if err != nil || year < 1 || year > 9999 {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid year %q", v))
		return 0, false
	}
	return year, true
}

// parseDate reads the date query parameter, defaulting to today in the
// location's zone.
func (s *Server) parseDate(w http.ResponseWriter, r *http.Request, loc *domain.Location) (time.Time, bool) {
	v := r.URL.Query().Get("date")
	if v == "" {
		tz, err := time.LoadLocation(loc.Zone)
		if err != nil {
			s.logger.Error("bad zone on resolved location", "zone", loc.Zone, "error", err)
			writeError(w, http.StatusInternalServerError, "time zone resolution failed")
			return time.Time{}, false
		}
		return domain.Today(tz), true
	}

	date, err := time.Parse(time.DateOnly, v)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid date %q, want YYYY-MM-DD", v))
		return time.Time{}, false
	}
	return date, true
}

func instant(t time.Time) *string {
	if t.IsZero() {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
