// Package metrics holds the Prometheus collectors for upstream API traffic.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OutcomeOK       = "ok"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

var (
	upstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pokedex",
		Name:      "upstream_requests_total",
		Help:      "Requests sent to the creature API, by endpoint and outcome.",
	}, []string{"endpoint", "outcome"})

	upstreamLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "pokedex",
		Name:      "upstream_request_seconds",
		Help:      "Latency of creature API requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"endpoint"})

	filterResolutions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pokedex",
		Name:      "filter_resolutions_total",
		Help:      "Filter resolutions, by whether their result was committed or superseded.",
	}, []string{"result"})
)

// ObserveUpstream records one API call.
func ObserveUpstream(endpoint, outcome string, took time.Duration) {
	upstreamRequests.WithLabelValues(endpoint, outcome).Inc()
	upstreamLatency.WithLabelValues(endpoint).Observe(took.Seconds())
}

// ObserveResolution records whether a filter resolution was kept.
func ObserveResolution(committed bool) {
	if committed {
		filterResolutions.WithLabelValues("committed").Inc()
		return
	}
	filterResolutions.WithLabelValues("superseded").Inc()
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
