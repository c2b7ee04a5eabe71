// Package metrics exposes Prometheus counters for the HTTP API, the calculators and
// the upstream services.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tartampluch/go-folio/internal/config"
)

// Collector owns a private registry so several collectors can coexist (tests, CLI).
type Collector struct {
	registry *prometheus.Registry

	// API
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	ErrorsTotal     *prometheus.CounterVec

	// Calculators
	CalculationsTotal *prometheus.CounterVec

	// Upstream services
	UpstreamCallsTotal *prometheus.CounterVec
}

// NewCollector registers every metric under namespace. An empty namespace selects
// the application default.
func NewCollector(namespace string) *Collector {
	if namespace == "" {
		namespace = config.MetricsNamespace
	}
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Collector{
		registry: reg,

		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "api_requests_total",
				Help:      "Total number of API requests by endpoint, method, and status",
			},
			[]string{config.LabelEndpoint, config.LabelMethod, config.LabelStatus},
		),

		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "api_request_duration_seconds",
				Help:      "API request duration in seconds",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.02, 0.05, 0.1, 0.2, 0.5, 1.0, 2.0, 5.0},
			},
			[]string{config.LabelEndpoint},
		),

		ErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "api_errors_total",
				Help:      "Total number of API errors by type",
			},
			[]string{config.LabelErrorType, config.LabelEndpoint},
		),

		CalculationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "calculations_total",
				Help:      "Calculator invocations by calculator and outcome",
			},
			[]string{config.LabelCalculator, config.LabelOutcome},
		),

		UpstreamCallsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "upstream_calls_total",
				Help:      "Outbound calls by upstream service and outcome",
			},
			[]string{config.LabelUpstream, config.LabelOutcome},
		),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// Registry gives access to the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Timer measures one operation.
type Timer struct {
	start    time.Time
	observer prometheus.Observer
}

// NewTimer starts a timer reporting to histogram.
func (c *Collector) NewTimer(histogram prometheus.Observer) *Timer {
	return &Timer{start: time.Now(), observer: histogram}
}

// ObserveDuration records the elapsed time since the timer started.
func (t *Timer) ObserveDuration() time.Duration {
	d := time.Since(t.start)
	if t.observer != nil {
		t.observer.Observe(d.Seconds())
	}
	return d
}

// RecordRequest counts one API request and its duration.
func (c *Collector) RecordRequest(endpoint, method string, status int, d time.Duration) {
	c.RequestsTotal.WithLabelValues(endpoint, method, strconv.Itoa(status)).Inc()
	c.RequestDuration.WithLabelValues(endpoint).Observe(d.Seconds())
}

// RecordError counts an API error.
func (c *Collector) RecordError(errorType, endpoint string) {
	c.ErrorsTotal.WithLabelValues(errorType, endpoint).Inc()
}

// RecordCalculation counts a calculator outcome (ok, not_ready, error).
func (c *Collector) RecordCalculation(calculator, outcome string) {
	c.CalculationsTotal.WithLabelValues(calculator, outcome).Inc()
}

// ObserveUpstream counts an outbound call. It makes Collector an upstream.Recorder.
func (c *Collector) ObserveUpstream(upstream, outcome string) {
	c.UpstreamCallsTotal.WithLabelValues(upstream, outcome).Inc()
}
