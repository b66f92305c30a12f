package remote

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	requestsTotal  *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	staleDropped   *prometheus.CounterVec
}

var metricsSingleton = sync.OnceValue(func() *metrics {
	return &metrics{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "backend",
			Name:      "requests_total",
			Help:      "Total number of calls to the REST backend.",
		}, []string{"resource", "method", "result"}),
		requestLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "backend",
			Name:      "request_latency_seconds",
			Help:      "Latency distribution of calls to the REST backend.",
			Buckets: []float64{
				0.005, 0.01, 0.02, 0.05,
				0.1, 0.2, 0.5,
				1, 2, 5, 10,
			},
		}, []string{"resource", "method"}),
		staleDropped: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "backend",
			Name:      "stale_lists_dropped_total",
			Help:      "List responses discarded because a newer fetch was issued.",
		}, []string{"resource"}),
	}
})

func getMetrics() *metrics {
	return metricsSingleton()
}

// ObserveStaleList counts a list response that arrived after a newer fetch
// had been issued for the same resource.
func ObserveStaleList(resource string) {
	getMetrics().staleDropped.WithLabelValues(resource).Inc()
}
