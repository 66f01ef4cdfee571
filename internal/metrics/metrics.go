// Package metrics exposes the service's Prometheus collectors.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stpnv0/EventRadar/internal/domain"
)

// Search outcomes.
const (
	OutcomePrimary  = "primary"
	OutcomeCached   = "cached"
	OutcomeFallback = "fallback"
	OutcomeFailed   = "failed"
	OutcomeInvalid  = "invalid"
)

// Metrics holds its own registry so tests and multiple instances never clash
// on the global default registerer. A nil *Metrics is a valid no-op.
type Metrics struct {
	registry *prometheus.Registry

	searches      *prometheus.CounterVec
	searchDur     prometheus.Summary
	providerReq   *prometheus.CounterVec
	lastSuccessTS *prometheus.GaugeVec
	droppedRaw    *prometheus.CounterVec
	httpRequests  *prometheus.CounterVec
	sweptEntries  prometheus.Counter
}

func New() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.searches = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "event_radar",
		Name:      "searches_total",
		Help:      "Searches served, by outcome",
	}, []string{"outcome"})
	m.searchDur = prometheus.NewSummary(prometheus.SummaryOpts{
		Namespace:  "event_radar",
		Name:       "search_duration_seconds",
		Help:       "Time spent answering a search",
		Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
	})
	m.providerReq = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "event_radar",
		Name:      "provider_requests_total",
		Help:      "Logical provider calls by status",
	}, []string{"provider", "status"})
	m.lastSuccessTS = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "event_radar",
		Name:      "provider_last_success_timestamp_seconds",
		Help:      "Unix timestamp of the last successful provider call",
	}, []string{"provider"})
	m.droppedRaw = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "event_radar",
		Name:      "raw_records_dropped_total",
		Help:      "Provider records that could not be normalized",
	}, []string{"provider"})
	m.httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "event_radar",
		Name:      "http_requests_total",
		Help:      "HTTP requests by route and status code",
	}, []string{"method", "route", "code"})
	m.sweptEntries = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "event_radar",
		Name:      "cache_swept_entries_total",
		Help:      "Expired cache entries removed by the sweeper",
	})

	m.registry.MustRegister(
		m.searches, m.searchDur, m.providerReq, m.lastSuccessTS,
		m.droppedRaw, m.httpRequests, m.sweptEntries,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// TrackCacheSize exports the live cache size, read at scrape time.
func (m *Metrics) TrackCacheSize(size func() int) {
	if m == nil {
		return
	}
	m.registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "event_radar",
		Name:      "cache_entries",
		Help:      "Entries currently held in the search cache",
	}, func() float64 { return float64(size()) }))
}

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObserveSearch(outcome string, took time.Duration) {
	if m == nil {
		return
	}
	m.searches.WithLabelValues(outcome).Inc()
	m.searchDur.Observe(took.Seconds())
}

func (m *Metrics) ProviderCall(provider string, err error) {
	if m == nil {
		return
	}
	m.providerReq.WithLabelValues(provider, ErrorKind(err)).Inc()
	if err == nil {
		m.lastSuccessTS.WithLabelValues(provider).SetToCurrentTime()
	}
}

func (m *Metrics) RawDropped(provider string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.droppedRaw.WithLabelValues(provider).Add(float64(n))
}

func (m *Metrics) ObserveHTTP(method, route string, code int) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
}

func (m *Metrics) CacheSwept(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.sweptEntries.Add(float64(n))
}

// ErrorKind maps an error onto a low-cardinality label.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrConfig):
		return "config"
	case errors.Is(err, domain.ErrAuth):
		return "auth"
	case errors.Is(err, domain.ErrParse):
		return "parse"
	case errors.Is(err, domain.ErrEventNotFound):
		return "not_found"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	case errors.Is(err, domain.ErrTransientProvider):
		return "transient"
	default:
		return "error"
	}
}
