// Package metrics exposes prometheus collectors for the HTTP surface and the
// ledger views it renders.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AnTengye/saasledger/pkg/ledger"
)

const namespace = "saasledger"

// DefaultHTTPDurationBuckets are latency buckets in seconds.
var DefaultHTTPDurationBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5}

// Metrics holds every collector, registered on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	LedgerBuildsTotal     *prometheus.CounterVec
	LedgerApplications    prometheus.Histogram
	RenewalCountdownTotal *prometheus.CounterVec
	SelectedApplications  prometheus.Gauge
}

// New registers all collectors on a fresh registry, plus the Go and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: reg,
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests",
		}, []string{"method", "path", "status_code"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration",
			Buckets:   DefaultHTTPDurationBuckets,
		}, []string{"method", "path"}),
		LedgerBuildsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ledger_builds_total",
			Help:      "Ledger views rendered, by sort policy",
		}, []string{"sort"}),
		LedgerApplications: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "ledger_applications",
			Help:      "Applications per rendered ledger",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100},
		}),
		RenewalCountdownTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "renewal_countdowns_total",
			Help:      "Renewal countdown badges rendered, by urgency",
		}, []string{"urgency"}),
		SelectedApplications: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "selected_applications",
			Help:      "Applications currently selected across all companies",
		}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.LedgerBuildsTotal,
		m.LedgerApplications,
		m.RenewalCountdownTotal,
		m.SelectedApplications,
	)
	return m
}

// Handler serves the registry in the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveLedger records one rendered ledger view.
func (m *Metrics) ObserveLedger(l ledger.Ledger) {
	m.LedgerBuildsTotal.WithLabelValues(string(l.Policy)).Inc()
	m.LedgerApplications.Observe(float64(len(l.Entries)))
	for _, e := range l.Entries {
		if e.Countdown != nil {
			m.RenewalCountdownTotal.WithLabelValues(string(e.Countdown.Urgency)).Inc()
		}
	}
}

// SetSelected records how many applications are selected in total. Company
// ids come from a request header, so they are not used as a label.
func (m *Metrics) SetSelected(n int) {
	m.SelectedApplications.Set(float64(n))
}
