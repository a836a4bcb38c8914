package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "basstatic"

// Commit results
const (
	ResultOK    = "ok"
	ResultError = "error"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by route and status code.",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	// Commits counts admin writes by kind (document, media) and result
	Commits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "admin_commits_total",
		Help:      "Admin commits to the backing store.",
	}, []string{"kind", "result"})

	DocumentLoads = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "document_loads_total",
		Help:      "Events document loads by source and result.",
	}, []string{"source", "result"})

	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "document_cache_lookups_total",
		Help:      "Document cache lookups by outcome.",
	}, []string{"outcome"})
)

// ObserveCommit records one admin commit attempt
func ObserveCommit(kind string, err error) {
	result := ResultOK
	if err != nil {
		result = ResultError
	}
	Commits.WithLabelValues(kind, result).Inc()
}

// Handler exposes the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}
