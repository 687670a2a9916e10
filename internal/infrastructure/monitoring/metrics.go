package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	ResponseSize    *prometheus.HistogramVec

	// Launcher metrics
	Resolutions     *prometheus.CounterVec
	Logos           *prometheus.CounterVec
	ResolveDuration prometheus.Histogram
	TilesReturned   prometheus.Gauge

	// System metrics
	Uptime    prometheus.GaugeFunc
	startTime time.Time

	gatherer prometheus.Gatherer
}

// NewMetrics creates a metrics collector registered with a fresh registry
func NewMetrics() *Metrics {
	return NewMetricsWith(prometheus.NewRegistry())
}

// NewMetricsWith creates a metrics collector registered with reg
func NewMetricsWith(reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)
	start := time.Now()

	return &Metrics{
		startTime: start,
		gatherer:  reg,

		// HTTP metrics
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "launcher_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "launcher_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"method", "path"},
		),
		ResponseSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "launcher_http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000},
			},
			[]string{"method", "path"},
		),

		// Launcher metrics
		Resolutions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "launcher_app_resolutions_total",
				Help: "Installed apps by the tier that produced their route",
			},
			[]string{"tier"},
		),
		Logos: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "launcher_logos_total",
				Help: "Resolved tiles by logo source",
			},
			[]string{"source"},
		),
		ResolveDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "launcher_resolve_duration_seconds",
				Help:    "Duration of a full tile resolution",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
		),
		TilesReturned: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "launcher_tiles",
				Help: "Number of tiles returned by the last resolution",
			},
		),

		// System metrics
		Uptime: factory.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "launcher_uptime_seconds",
				Help: "Service uptime in seconds",
			},
			func() float64 { return time.Since(start).Seconds() },
		),
	}
}

// Gatherer returns the registry the metrics are registered with
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.gatherer
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration, respSize int64) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	m.ResponseSize.WithLabelValues(method, path).Observe(float64(respSize))
}

// RecordTier records which resolution tier produced an app's route
func (m *Metrics) RecordTier(tier string) {
	m.Resolutions.WithLabelValues(tier).Inc()
}

// RecordLogo records where a tile's logo came from
func (m *Metrics) RecordLogo(source string) {
	m.Logos.WithLabelValues(source).Inc()
}

// RecordResolve records a completed resolution
func (m *Metrics) RecordResolve(tiles int, duration time.Duration) {
	m.ResolveDuration.Observe(duration.Seconds())
	m.TilesReturned.Set(float64(tiles))
}
