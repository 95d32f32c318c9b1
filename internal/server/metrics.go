package server

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

// Metrics manages the Prometheus metrics of the HTTP surface.
type Metrics struct {
	Requests        *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	Scenarios       *prometheus.CounterVec
	Reports         *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// NewMetrics creates the metrics on their own registry so several servers
// (and tests) can coexist in one process.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	f := promauto.With(reg)
	return &Metrics{
		Requests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "riskdash_http_requests_total",
				Help: "Total number of HTTP requests.",
			},
			[]string{"route", "method", "status"},
		),
		RequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "riskdash_http_request_duration_seconds",
				Help:    "Latency of HTTP requests.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		),
		Scenarios: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "riskdash_scenario_evaluations_total",
				Help: "Scenario evaluations by scenario kind and view.",
			},
			[]string{"view", "kind"},
		),
		Reports: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "riskdash_reports_total",
				Help: "Rendered reports by format.",
			},
			[]string{"format"},
		),
		gatherer: reg,
	}
}

// RecordRequest records one served request
func (m *Metrics) RecordRequest(route, method string, status int, duration time.Duration) {
	m.Requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(route).Observe(duration.Seconds())
}

// RecordScenario records a scenario evaluated for a view
func (m *Metrics) RecordScenario(view, kind string) {
	m.Scenarios.WithLabelValues(view, kind).Inc()
}

// RecordReport records a rendered report
func (m *Metrics) RecordReport(format string) {
	m.Reports.WithLabelValues(format).Inc()
}

// Handler exposes the registry in the Prometheus text format
func (m *Metrics) Handler() fasthttp.RequestHandler {
	return fasthttpadaptor.NewFastHTTPHandler(promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{}))
}
