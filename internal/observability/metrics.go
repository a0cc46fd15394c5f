package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// sun-chart service.
type Metrics struct {
	DaysComputed         prometheus.Counter
	PolarDays            prometheus.Counter
	ComputationsInFlight prometheus.Gauge
	ComputeDuration      prometheus.Histogram

	// Geocoding metrics.
	GeocodeRequests *prometheus.CounterVec   // labels: operation={search,reverse}, outcome={success,error,empty}
	GeocodeCache    *prometheus.CounterVec   // labels: operation={search,reverse}, result={hit,miss}
	GeocodeDuration *prometheus.HistogramVec // labels: operation={search,reverse}

	// Chart rendering metrics.
	ChartsRendered *prometheus.CounterVec // labels: language, format={svg,png}
	RenderDuration prometheus.Histogram
	RenderErrors   prometheus.Counter
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		DaysComputed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sunchart",
			Name:      "days_computed_total",
			Help:      "Total days of solar events computed.",
		}),
		PolarDays: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sunchart",
			Name:      "polar_days_total",
			Help:      "Total computed days on which the sun neither rose nor set.",
		}),
		ComputationsInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "sunchart",
			Name:      "computations_in_flight",
			Help:      "Full-year computations currently running.",
		}),
		ComputeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "sunchart",
			Name:      "year_compute_duration_seconds",
			Help:      "Duration of a full-year solar computation.",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5},
		}),
		GeocodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sunchart",
			Name:      "geocode_requests_total",
			Help:      "Geocoding requests by operation and outcome.",
		}, []string{"operation", "outcome"}),
		GeocodeCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sunchart",
			Name:      "geocode_cache_total",
			Help:      "Geocoding cache lookups by operation and result.",
		}, []string{"operation", "result"}),
		GeocodeDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "sunchart",
			Name:      "geocode_duration_seconds",
			Help:      "Nominatim request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"operation"}),
		ChartsRendered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sunchart",
			Name:      "charts_rendered_total",
			Help:      "Charts rendered by language and output format.",
		}, []string{"language", "format"}),
		RenderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "sunchart",
			Name:      "chart_render_duration_seconds",
			Help:      "Duration of a single chart render including encoding.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		RenderErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sunchart",
			Name:      "render_errors_total",
			Help:      "Total chart rendering failures.",
		}),
	}

	prometheus.MustRegister(
		m.DaysComputed,
		m.PolarDays,
		m.ComputationsInFlight,
		m.ComputeDuration,
		m.GeocodeRequests,
		m.GeocodeCache,
		m.GeocodeDuration,
		m.ChartsRendered,
		m.RenderDuration,
		m.RenderErrors,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		DaysComputed:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: "sunchart", Name: "days_computed_total"}),
		PolarDays:            prometheus.NewCounter(prometheus.CounterOpts{Namespace: "sunchart", Name: "polar_days_total"}),
		ComputationsInFlight: prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "sunchart", Name: "computations_in_flight"}),
		ComputeDuration:      prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "sunchart", Name: "year_compute_duration_seconds"}),
		GeocodeRequests:      prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "sunchart", Name: "geocode_requests_total"}, []string{"operation", "outcome"}),
		GeocodeCache:         prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "sunchart", Name: "geocode_cache_total"}, []string{"operation", "result"}),
		GeocodeDuration:      prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "sunchart", Name: "geocode_duration_seconds"}, []string{"operation"}),
		ChartsRendered:       prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "sunchart", Name: "charts_rendered_total"}, []string{"language", "format"}),
		RenderDuration:       prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "sunchart", Name: "chart_render_duration_seconds"}),
		RenderErrors:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: "sunchart", Name: "render_errors_total"}),
	}
}
